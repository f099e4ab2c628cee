package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"hallbook/internal/auth"
	"hallbook/internal/config"
	"hallbook/internal/domain/models"
)

type fakeUserRepo struct {
	users map[string]models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]models.User{}}
}

func (r *fakeUserRepo) Insert(_ context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	r.users[u.ID.Hex()] = u
	return u, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u models.User) error {
	if _, ok := r.users[u.ID.Hex()]; !ok {
		return mongo.ErrNoDocuments
	}
	r.users[u.ID.Hex()] = u
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (models.User, error) {
	u, ok := r.users[id.Hex()]
	if !ok {
		return models.User{}, mongo.ErrNoDocuments
	}
	return u, nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) List(_ context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) AdminExists(_ context.Context, excludeID primitive.ObjectID) (bool, error) {
	for _, u := range r.users {
		if u.Role == models.RoleAdmin && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:        "test-secret",
		JWTRefreshSecret: "test-refresh-secret",
		AccessTokenTTL:   time.Hour,
		RefreshTokenTTL:  24 * time.Hour,
		BcryptCost:       4,
		DefaultAdminUser: "admin",
		DefaultAdminPass: "admin-pass",
	}
}

func newTestService(repo Repository) *Service {
	return NewService(repo, testAuthConfig(), nil)
}

func TestCanAccess(t *testing.T) {
	t.Run("user needs the page in the allow-list", func(t *testing.T) {
		pages := []string{models.PageCreateContract}
		if !CanAccess(models.RoleUser, pages, models.PageCreateContract) {
			t.Fatal("expected access to allowed page")
		}
		if CanAccess(models.RoleUser, pages, models.PageUserManagement) {
			t.Fatal("expected denial for page outside the allow-list")
		}
	})

	t.Run("admin accesses everything regardless of list", func(t *testing.T) {
		for _, page := range models.AllPages {
			if !CanAccess(models.RoleAdmin, nil, page) {
				t.Fatalf("admin denied page %s", page)
			}
		}
	})

	t.Run("empty list denies every page for users", func(t *testing.T) {
		for _, page := range models.AllPages {
			if CanAccess(models.RoleUser, nil, page) {
				t.Fatalf("user with no pages allowed page %s", page)
			}
		}
	})
}

func TestNormalizeAllowedPages(t *testing.T) {
	t.Run("admin is forced to the full page set", func(t *testing.T) {
		pages, err := NormalizeAllowedPages(models.RoleAdmin, []string{models.PageReporting})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(pages) != len(models.AllPages) {
			t.Fatalf("expected %d pages, got %d", len(models.AllPages), len(pages))
		}
	})

	t.Run("unknown page is rejected", func(t *testing.T) {
		_, err := NormalizeAllowedPages(models.RoleUser, []string{"backdoor"})
		if !errors.Is(err, ErrUnknownPage) {
			t.Fatalf("expected ErrUnknownPage, got %v", err)
		}
	})

	t.Run("nil becomes an empty list", func(t *testing.T) {
		pages, err := NormalizeAllowedPages(models.RoleUser, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if pages == nil || len(pages) != 0 {
			t.Fatalf("expected empty list, got %v", pages)
		}
	})
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("hashes the password and defaults the role", func(t *testing.T) {
		svc := newTestService(newFakeUserRepo())

		u, err := svc.Create(ctx, CreateInput{Username: "sara", Password: "secret1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if u.Role != models.RoleUser {
			t.Fatalf("expected default role user, got %s", u.Role)
		}
		if u.Password == "secret1" {
			t.Fatal("password stored in plain text")
		}
		if !auth.VerifyPassword(u.Password, "secret1") {
			t.Fatal("stored hash does not verify")
		}
	})

	t.Run("rejects duplicate usernames", func(t *testing.T) {
		svc := newTestService(newFakeUserRepo())

		if _, err := svc.Create(ctx, CreateInput{Username: "sara", Password: "secret1"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, err := svc.Create(ctx, CreateInput{Username: "sara", Password: "other12"})
		if !errors.Is(err, ErrUserExists) {
			t.Fatalf("expected ErrUserExists, got %v", err)
		}
	})

	t.Run("allows at most one admin", func(t *testing.T) {
		svc := newTestService(newFakeUserRepo())

		if _, err := svc.Create(ctx, CreateInput{Username: "boss", Password: "secret1", Role: models.RoleAdmin}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, err := svc.Create(ctx, CreateInput{Username: "boss2", Password: "secret1", Role: models.RoleAdmin})
		if !errors.Is(err, ErrAdminExists) {
			t.Fatalf("expected ErrAdminExists, got %v", err)
		}
	})

	t.Run("admin receives the full page set", func(t *testing.T) {
		svc := newTestService(newFakeUserRepo())

		u, err := svc.Create(ctx, CreateInput{
			Username:     "boss",
			Password:     "secret1",
			Role:         models.RoleAdmin,
			AllowedPages: []string{models.PageReporting},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(u.AllowedPages) != len(models.AllPages) {
			t.Fatalf("expected full page set, got %v", u.AllowedPages)
		}
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	created, err := svc.Create(ctx, CreateInput{
		Username:     "sara",
		Password:     "secret1",
		AllowedPages: []string{models.PageCreateContract},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("issues a verifiable token pair", func(t *testing.T) {
		res, err := svc.Login(ctx, "sara", "secret1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Role != string(models.RoleUser) {
			t.Fatalf("unexpected role %q", res.Role)
		}
		if len(res.AllowedPages) != 1 || res.AllowedPages[0] != models.PageCreateContract {
			t.Fatalf("unexpected allowed pages %v", res.AllowedPages)
		}

		id, err := auth.ParseToken(testAuthConfig().JWTSecret, res.Token)
		if err != nil {
			t.Fatalf("access token does not parse: %v", err)
		}
		if id.UserID != created.ID.Hex() || id.Username != "sara" {
			t.Fatalf("unexpected identity %+v", id)
		}
		if _, err := auth.ParseToken(testAuthConfig().JWTRefreshSecret, res.RefreshToken); err != nil {
			t.Fatalf("refresh token does not parse: %v", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "sara", "wrong-pass")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody", "secret1")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("refresh exchanges for a new access token", func(t *testing.T) {
		res, err := svc.Login(ctx, "sara", "secret1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		token, err := svc.Refresh(res.RefreshToken)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := auth.ParseToken(testAuthConfig().JWTSecret, token); err != nil {
			t.Fatalf("refreshed token does not parse: %v", err)
		}
	})

	t.Run("refresh rejects an access token", func(t *testing.T) {
		res, err := svc.Login(ctx, "sara", "secret1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := svc.Refresh(res.Token); err == nil {
			t.Fatal("expected error refreshing with an access token")
		}
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects malformed ids", func(t *testing.T) {
		svc := newTestService(newFakeUserRepo())
		_, err := svc.Update(ctx, "nope", UpdateInput{})
		if !errors.Is(err, ErrInvalidUserID) {
			t.Fatalf("expected ErrInvalidUserID, got %v", err)
		}
	})

	t.Run("promotion fails while another admin exists", func(t *testing.T) {
		svc := newTestService(newFakeUserRepo())

		if _, err := svc.Create(ctx, CreateInput{Username: "boss", Password: "secret1", Role: models.RoleAdmin}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		u, err := svc.Create(ctx, CreateInput{Username: "sara", Password: "secret1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		admin := models.RoleAdmin
		_, err = svc.Update(ctx, u.ID.Hex(), UpdateInput{Role: &admin})
		if !errors.Is(err, ErrAdminExists) {
			t.Fatalf("expected ErrAdminExists, got %v", err)
		}
	})

	t.Run("promotion grants the full page set", func(t *testing.T) {
		svc := newTestService(newFakeUserRepo())

		u, err := svc.Create(ctx, CreateInput{Username: "sara", Password: "secret1", AllowedPages: []string{models.PageReporting}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		admin := models.RoleAdmin
		updated, err := svc.Update(ctx, u.ID.Hex(), UpdateInput{Role: &admin})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Role != models.RoleAdmin {
			t.Fatalf("expected admin role, got %s", updated.Role)
		}
		if len(updated.AllowedPages) != len(models.AllPages) {
			t.Fatalf("expected full page set, got %v", updated.AllowedPages)
		}
	})

	t.Run("allow-list update rejects unknown pages", func(t *testing.T) {
		svc := newTestService(newFakeUserRepo())

		u, err := svc.Create(ctx, CreateInput{Username: "sara", Password: "secret1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		pages := []string{"backdoor"}
		_, err = svc.Update(ctx, u.ID.Hex(), UpdateInput{AllowedPages: &pages})
		if !errors.Is(err, ErrUnknownPage) {
			t.Fatalf("expected ErrUnknownPage, got %v", err)
		}
	})

	t.Run("password change re-hashes", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := newTestService(repo)

		u, err := svc.Create(ctx, CreateInput{Username: "sara", Password: "secret1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		newPass := "changed1"
		updated, err := svc.Update(ctx, u.ID.Hex(), UpdateInput{Password: &newPass})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !auth.VerifyPassword(updated.Password, "changed1") {
			t.Fatal("new password does not verify")
		}
	})
}

func TestAuthorize(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeUserRepo())

	u, err := svc.Create(ctx, CreateInput{Username: "sara", Password: "secret1", AllowedPages: []string{models.PageHallContracts}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("allows a listed page", func(t *testing.T) {
		ok, err := svc.Authorize(ctx, u.ID.Hex(), models.PageHallContracts)
		if err != nil || !ok {
			t.Fatalf("expected access, got ok=%v err=%v", ok, err)
		}
	})

	t.Run("denies an unlisted page", func(t *testing.T) {
		ok, err := svc.Authorize(ctx, u.ID.Hex(), models.PageUserManagement)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Fatal("expected denial")
		}
	})

	t.Run("denies a deleted account", func(t *testing.T) {
		ok, err := svc.Authorize(ctx, primitive.NewObjectID().Hex(), models.PageHallContracts)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Fatal("expected denial for unknown account")
		}
	})

	t.Run("rejects malformed ids", func(t *testing.T) {
		_, err := svc.Authorize(ctx, "nope", models.PageHallContracts)
		if !errors.Is(err, ErrInvalidUserID) {
			t.Fatalf("expected ErrInvalidUserID, got %v", err)
		}
	})
}

func TestEnsureDefaultAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("bootstraps on an empty collection", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := newTestService(repo)

		if err := svc.EnsureDefaultAdmin(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		u, err := repo.FindByUsername(ctx, "admin")
		if err != nil {
			t.Fatalf("admin not created: %v", err)
		}
		if u.Role != models.RoleAdmin {
			t.Fatalf("expected admin role, got %s", u.Role)
		}
	})

	t.Run("does nothing when users exist", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := newTestService(repo)

		if _, err := svc.Create(ctx, CreateInput{Username: "sara", Password: "secret1"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := svc.EnsureDefaultAdmin(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n, _ := repo.Count(ctx); n != 1 {
			t.Fatalf("expected 1 user, got %d", n)
		}
	})

	t.Run("skips when no password is configured", func(t *testing.T) {
		repo := newFakeUserRepo()
		cfg := testAuthConfig()
		cfg.DefaultAdminPass = ""
		svc := NewService(repo, cfg, nil)

		if err := svc.EnsureDefaultAdmin(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n, _ := repo.Count(ctx); n != 0 {
			t.Fatalf("expected no users, got %d", n)
		}
	})
}
