package studio

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"hallbook/internal/domain/models"
)

type fakeStudioRepo struct {
	contracts map[string]models.StudioContract
}

func newFakeStudioRepo() *fakeStudioRepo {
	return &fakeStudioRepo{contracts: map[string]models.StudioContract{}}
}

func (r *fakeStudioRepo) Insert(_ context.Context, c models.StudioContract) (models.StudioContract, error) {
	c.ID = primitive.NewObjectID()
	r.contracts[c.ID.Hex()] = c
	return c, nil
}

func (r *fakeStudioRepo) Replace(_ context.Context, id primitive.ObjectID, c models.StudioContract) (models.StudioContract, error) {
	if _, ok := r.contracts[id.Hex()]; !ok {
		return models.StudioContract{}, mongo.ErrNoDocuments
	}
	c.ID = id
	r.contracts[id.Hex()] = c
	return c, nil
}

func (r *fakeStudioRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.contracts[id.Hex()]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(r.contracts, id.Hex())
	return nil
}

func (r *fakeStudioRepo) List(_ context.Context) ([]models.StudioContract, error) {
	out := make([]models.StudioContract, 0, len(r.contracts))
	for _, c := range r.contracts {
		out = append(out, c)
	}
	return out, nil
}

func TestTotal(t *testing.T) {
	cases := []struct {
		name     string
		services []models.ServiceItem
		discount float64
		want     float64
	}{
		{"no services", nil, 0, 0},
		{"sums items", []models.ServiceItem{{Title: "فیلمبرداری", Price: 3000000}, {Title: "عکاسی", Price: 2000000}}, 0, 5000000},
		{"applies the discount", []models.ServiceItem{{Title: "عکاسی", Price: 2000000}}, 500000, 1500000},
		{"discount can exceed the sum", []models.ServiceItem{{Title: "عکاسی", Price: 100}}, 500, -400},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Total(tc.services, tc.discount); got != tc.want {
				t.Fatalf("Total = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCreateComputesTotal(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeStudioRepo(), nil)

	saved, err := svc.Create(ctx, models.StudioContract{
		FullName: "مریم احمدی",
		Services: []models.ServiceItem{
			{Title: "فیلمبرداری", Price: 3000000},
			{Title: "آلبوم", Price: 1200000},
		},
		Discount:   200000,
		TotalPrice: 1, // client-sent value is ignored
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.TotalPrice != 4000000 {
		t.Fatalf("total = %v, want 4000000", saved.TotalPrice)
	}
	if saved.CreatedAt.IsZero() || saved.UpdatedAt.IsZero() {
		t.Fatal("timestamps not set")
	}
}

func TestUpdateRecomputesTotal(t *testing.T) {
	ctx := context.Background()
	repo := newFakeStudioRepo()
	svc := NewService(repo, nil)

	saved, err := svc.Create(ctx, models.StudioContract{
		FullName: "مریم احمدی",
		Services: []models.ServiceItem{{Title: "عکاسی", Price: 2000000}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	changed := saved
	changed.Services = append(changed.Services, models.ServiceItem{Title: "آلبوم", Price: 1000000})
	changed.Discount = 500000

	updated, err := svc.Update(ctx, saved.ID.Hex(), changed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.TotalPrice != 2500000 {
		t.Fatalf("total = %v, want 2500000", updated.TotalPrice)
	}
}

func TestUpdateErrors(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeStudioRepo(), nil)

	if _, err := svc.Update(ctx, "nope", models.StudioContract{}); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
	if _, err := svc.Update(ctx, primitive.NewObjectID().Hex(), models.StudioContract{}); !errors.Is(err, ErrContractNotFound) {
		t.Fatalf("expected ErrContractNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	repo := newFakeStudioRepo()
	svc := NewService(repo, nil)

	saved, err := svc.Create(ctx, models.StudioContract{FullName: "مریم احمدی"})
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
