package contracts

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"hallbook/internal/domain/models"
)

type fakeContractRepo struct {
	contracts map[string]models.Contract

	searchTerm  string
	searchPage  int64
	searchLimit int64
}

func newFakeContractRepo() *fakeContractRepo {
	return &fakeContractRepo{contracts: map[string]models.Contract{}}
}

func (r *fakeContractRepo) Insert(_ context.Context, c models.Contract) (models.Contract, error) {
	c.ID = primitive.NewObjectID()
	r.contracts[c.ID.Hex()] = c
	return c, nil
}

func (r *fakeContractRepo) Replace(_ context.Context, id primitive.ObjectID, c models.Contract) (models.Contract, error) {
	if _, ok := r.contracts[id.Hex()]; !ok {
		return models.Contract{}, mongo.ErrNoDocuments
	}
	c.ID = id
	r.contracts[id.Hex()] = c
	return c, nil
}

func (r *fakeContractRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, status models.ContractStatus) error {
	c, ok := r.contracts[id.Hex()]
	if !ok {
		return mongo.ErrNoDocuments
	}
	c.Status = status
	r.contracts[id.Hex()] = c
	return nil
}

func (r *fakeContractRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.contracts[id.Hex()]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(r.contracts, id.Hex())
	return nil
}

func (r *fakeContractRepo) FindByID(_ context.Context, id primitive.ObjectID) (models.Contract, error) {
	c, ok := r.contracts[id.Hex()]
	if !ok {
		return models.Contract{}, mongo.ErrNoDocuments
	}
	return c, nil
}

func (r *fakeContractRepo) Search(_ context.Context, term string, page, limit int64) ([]models.Contract, int64, error) {
	r.searchTerm = term
	r.searchPage = page
	r.searchLimit = limit
	return nil, 0, nil
}

func (r *fakeContractRepo) FindAll(_ context.Context) ([]models.Contract, error) {
	out := make([]models.Contract, 0, len(r.contracts))
	for _, c := range r.contracts {
		out = append(out, c)
	}
	return out, nil
}

type fakeRates struct {
	customer models.RateConfig
	internal models.RateConfig
}

func (f fakeRates) Get(_ context.Context, kind models.RateKind) (models.RateConfig, error) {
	if kind == models.RateKindCustomer {
		return f.customer, nil
	}
	return f.internal, nil
}

func testRates() fakeRates {
	return fakeRates{
		customer: models.RateConfig{
			HourlyRate:          500000,
			ExtraHourRate:       300000,
			ServiceFeePerPerson: 50000,
		},
		internal: models.RateConfig{
			HourlyRate:          200000,
			ExtraHourRate:       100000,
			ServiceFeePerPerson: 30000,
		},
	}
}

func eventContract() models.Contract {
	return models.Contract{
		ContractOwner:     "رضایی",
		EventDate:         "1403/02/10",
		StartTime:         "17:00",
		EndTime:           "22:00",
		ServiceStaffCount: 5,
	}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("derives both breakdowns from the rate tables", func(t *testing.T) {
		repo := newFakeContractRepo()
		svc := NewService(repo, testRates(), nil)

		saved, err := svc.Create(ctx, eventContract(), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if saved.CustomerCosts.EntryFee != 1400000 {
			t.Fatalf("customer entry fee = %v, want 1400000", saved.CustomerCosts.EntryFee)
		}
		if saved.CustomerCosts.ServiceFee != 250000 {
			t.Fatalf("customer service fee = %v, want 250000", saved.CustomerCosts.ServiceFee)
		}
		if saved.InternalCosts.EntryFee != 500000 {
			t.Fatalf("internal entry fee = %v, want 500000", saved.InternalCosts.EntryFee)
		}
		if saved.CreatedAt.IsZero() || saved.UpdatedAt.IsZero() {
			t.Fatal("timestamps not set")
		}
	})

	t.Run("defaults the status to reservation", func(t *testing.T) {
		svc := NewService(newFakeContractRepo(), testRates(), nil)

		saved, err := svc.Create(ctx, eventContract(), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if saved.Status != models.StatusReservation {
			t.Fatalf("status = %q, want reservation", saved.Status)
		}
	})

	t.Run("overridden fields survive the recompute", func(t *testing.T) {
		svc := NewService(newFakeContractRepo(), testRates(), nil)

		c := eventContract()
		c.CustomerCosts.EntryFee = 999999

		saved, err := svc.Create(ctx, c, []string{"customer.entryFee"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if saved.CustomerCosts.EntryFee != 999999 {
			t.Fatalf("override lost: entry fee = %v", saved.CustomerCosts.EntryFee)
		}
		// Only the named perspective keeps the hand-set value.
		if saved.InternalCosts.EntryFee != 500000 {
			t.Fatalf("internal entry fee = %v, want 500000", saved.InternalCosts.EntryFee)
		}
	})

	t.Run("rejects unknown override references", func(t *testing.T) {
		svc := NewService(newFakeContractRepo(), testRates(), nil)

		_, err := svc.Create(ctx, eventContract(), []string{"customer.bogus"})
		if !errors.Is(err, ErrUnknownOverrideField) {
			t.Fatalf("expected ErrUnknownOverrideField, got %v", err)
		}
	})

	t.Run("rejects unknown statuses", func(t *testing.T) {
		svc := NewService(newFakeContractRepo(), testRates(), nil)

		c := eventContract()
		c.Status = "pending"
		_, err := svc.Create(ctx, c, nil)
		if !errors.Is(err, ErrInvalidStatus) {
			t.Fatalf("expected ErrInvalidStatus, got %v", err)
		}
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("preserves the creation timestamp and re-prices", func(t *testing.T) {
		repo := newFakeContractRepo()
		svc := NewService(repo, testRates(), nil)

		saved, err := svc.Create(ctx, eventContract(), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		changed := eventContract()
		changed.EndTime = "19:00"
		changed.Status = models.StatusFinal

		updated, err := svc.Update(ctx, saved.ID.Hex(), changed, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !updated.CreatedAt.Equal(saved.CreatedAt) {
			t.Fatal("creation timestamp changed on update")
		}
		// 2 hours fits in the base rate.
		if updated.CustomerCosts.EntryFee != 500000 {
			t.Fatalf("entry fee = %v, want 500000", updated.CustomerCosts.EntryFee)
		}
		if updated.Status != models.StatusFinal {
			t.Fatalf("status = %q, want final", updated.Status)
		}
	})

	t.Run("unknown contract", func(t *testing.T) {
		svc := NewService(newFakeContractRepo(), testRates(), nil)

		_, err := svc.Update(ctx, primitive.NewObjectID().Hex(), eventContract(), nil)
		if !errors.Is(err, ErrContractNotFound) {
			t.Fatalf("expected ErrContractNotFound, got %v", err)
		}
	})

	t.Run("malformed id", func(t *testing.T) {
		svc := NewService(newFakeContractRepo(), testRates(), nil)

		_, err := svc.Update(ctx, "nope", eventContract(), nil)
		if !errors.Is(err, ErrInvalidID) {
			t.Fatalf("expected ErrInvalidID, got %v", err)
		}
	})
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo := newFakeContractRepo()
	svc := NewService(repo, testRates(), nil)

	saved, err := svc.Create(ctx, eventContract(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("applies a valid transition", func(t *testing.T) {
		if err := svc.UpdateStatus(ctx, saved.ID.Hex(), models.StatusCancelled); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, _ := repo.FindByID(ctx, saved.ID)
		if got.Status != models.StatusCancelled {
			t.Fatalf("status = %q, want cancelled", got.Status)
		}
	})

	t.Run("rejects unknown statuses", func(t *testing.T) {
		err := svc.UpdateStatus(ctx, saved.ID.Hex(), "archived")
		if !errors.Is(err, ErrInvalidStatus) {
			t.Fatalf("expected ErrInvalidStatus, got %v", err)
		}
	})

	t.Run("unknown contract", func(t *testing.T) {
		err := svc.UpdateStatus(ctx, primitive.NewObjectID().Hex(), models.StatusFinal)
		if !errors.Is(err, ErrContractNotFound) {
			t.Fatalf("expected ErrContractNotFound, got %v", err)
		}
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	repo := newFakeContractRepo()
	svc := NewService(repo, testRates(), nil)

	saved, err := svc.Create(ctx, eventContract(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Delete(ctx, saved.ID.Hex()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Delete(ctx, saved.ID.Hex()); !errors.Is(err, ErrContractNotFound) {
		t.Fatalf("expected ErrContractNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, "nope"); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestSearchPaging(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name      string
		page      int64
		limit     int64
		wantPage  int64
		wantLimit int64
	}{
		{"defaults", 0, 0, 1, 10},
		{"negative page", -3, 25, 1, 25},
		{"limit capped", 1, 500, 1, 50},
		{"passes through sane values", 4, 20, 4, 20},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeContractRepo()
			svc := NewService(repo, testRates(), nil)

			res, err := svc.Search(ctx, "رضایی", tc.page, tc.limit)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if repo.searchPage != tc.wantPage || repo.searchLimit != tc.wantLimit {
				t.Fatalf("repo called with page=%d limit=%d, want page=%d limit=%d",
					repo.searchPage, repo.searchLimit, tc.wantPage, tc.wantLimit)
			}
			if res.Page != tc.wantPage || res.Limit != tc.wantLimit {
				t.Fatalf("result page=%d limit=%d, want page=%d limit=%d",
					res.Page, res.Limit, tc.wantPage, tc.wantLimit)
			}
			if repo.searchTerm != "رضایی" {
				t.Fatalf("search term = %q", repo.searchTerm)
			}
		})
	}
}
