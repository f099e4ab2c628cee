// Package users implements account management and the permission gate: who
// may open which back-office page, and the single-admin discipline.
package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"hallbook/internal/auth"
	"hallbook/internal/config"
	"hallbook/internal/domain/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrAdminExists        = errors.New("admin user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidUserID      = errors.New("invalid user id")
	ErrUnknownPage        = errors.New("unknown page identifier")
)

// Repository is the persistence surface the service depends on.
type Repository interface {
	Insert(ctx context.Context, u models.User) (models.User, error)
	Update(ctx context.Context, u models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Count(ctx context.Context) (int64, error)
	AdminExists(ctx context.Context, excludeID primitive.ObjectID) (bool, error)
}

// Service manages accounts and issues tokens.
type Service struct {
	repo   Repository
	cfg    config.AuthConfig
	logger *zap.Logger
}

// NewService wires a new user service instance.
func NewService(repo Repository, cfg config.AuthConfig, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, cfg: cfg, logger: logger}
}

// CanAccess decides whether a role with the given allow-list may open a
// page. Admins implicitly access every page; everyone else needs the page
// in their allow-list.
func CanAccess(role models.Role, allowedPages []string, page string) bool {
	if role == models.RoleAdmin {
		return true
	}
	for _, p := range allowedPages {
		if p == page {
			return true
		}
	}
	return false
}

// NormalizeAllowedPages enforces the admin rule: an admin always holds the
// full page set, no partial admin subsets. Other roles keep their list,
// which must only contain known pages.
func NormalizeAllowedPages(role models.Role, pages []string) ([]string, error) {
	if role == models.RoleAdmin {
		return append([]string(nil), models.AllPages...), nil
	}
	for _, p := range pages {
		if !models.KnownPage(p) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownPage, p)
		}
	}
	if pages == nil {
		pages = []string{}
	}
	return pages, nil
}

// Authorize loads the account behind a token and runs the page gate against
// its current allow-list, so a revoked page takes effect without reissuing
// tokens.
func (s *Service) Authorize(ctx context.Context, userID, page string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return false, ErrInvalidUserID
	}
	u, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return CanAccess(u.Role, u.AllowedPages, page), nil
}

// LoginResult is what a successful authentication returns to the client.
type LoginResult struct {
	Token        string   `json:"token"`
	RefreshToken string   `json:"refreshToken"`
	Role         string   `json:"role"`
	AllowedPages []string `json:"allowedPages"`
}

// Login verifies credentials and issues the access/refresh token pair.
func (s *Service) Login(ctx context.Context, username, password string) (LoginResult, error) {
	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}
	if !auth.VerifyPassword(u.Password, password) {
		return LoginResult{}, ErrInvalidCredentials
	}

	id := auth.Identity{UserID: u.ID.Hex(), Username: u.Username, Role: string(u.Role)}
	token, err := auth.NewToken(s.cfg.JWTSecret, id, s.cfg.AccessTokenTTL)
	if err != nil {
		return LoginResult{}, err
	}
	refresh, err := auth.NewToken(s.cfg.JWTRefreshSecret, id, s.cfg.RefreshTokenTTL)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{
		Token:        token,
		RefreshToken: refresh,
		Role:         string(u.Role),
		AllowedPages: u.AllowedPages,
	}, nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *Service) Refresh(refreshToken string) (string, error) {
	id, err := auth.ParseToken(s.cfg.JWTRefreshSecret, refreshToken)
	if err != nil {
		return "", err
	}
	return auth.NewToken(s.cfg.JWTSecret, id, s.cfg.AccessTokenTTL)
}

// CreateInput are the fields accepted when registering an account.
type CreateInput struct {
	Username     string
	Password     string
	Role         models.Role
	AllowedPages []string
}

// Create registers a new account. At most one admin may exist.
func (s *Service) Create(ctx context.Context, in CreateInput) (models.User, error) {
	if in.Role == "" {
		in.Role = models.RoleUser
	}

	if _, err := s.repo.FindByUsername(ctx, in.Username); err == nil {
		return models.User{}, ErrUserExists
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, err
	}

	if in.Role == models.RoleAdmin {
		exists, err := s.repo.AdminExists(ctx, primitive.NilObjectID)
		if err != nil {
			return models.User{}, err
		}
		if exists {
			return models.User{}, ErrAdminExists
		}
	}

	pages, err := NormalizeAllowedPages(in.Role, in.AllowedPages)
	if err != nil {
		return models.User{}, err
	}

	hash, err := auth.HashPassword(in.Password, s.cfg.BcryptCost)
	if err != nil {
		return models.User{}, err
	}

	now := time.Now().UTC()
	u := models.User{
		Username:     in.Username,
		Password:     hash,
		Role:         in.Role,
		AllowedPages: pages,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	saved, err := s.repo.Insert(ctx, u)
	if err != nil {
		return models.User{}, err
	}
	s.logger.Info("user created", zap.String("username", saved.Username), zap.String("role", string(saved.Role)))
	return saved, nil
}

// UpdateInput carries the optional fields of a user update; nil means
// unchanged.
type UpdateInput struct {
	Password     *string
	Role         *models.Role
	AllowedPages *[]string
}

// Update applies a partial account update, preserving the original rules:
// promoting to admin requires no other admin, and an admin's allow-list is
// always forced back to the full page set.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.User{}, ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}

	if in.Password != nil {
		hash, err := auth.HashPassword(*in.Password, s.cfg.BcryptCost)
		if err != nil {
			return models.User{}, err
		}
		u.Password = hash
	}

	if in.Role != nil && *in.Role == models.RoleAdmin && u.Role != models.RoleAdmin {
		exists, err := s.repo.AdminExists(ctx, oid)
		if err != nil {
			return models.User{}, err
		}
		if exists {
			return models.User{}, ErrAdminExists
		}
		u.Role = models.RoleAdmin
	} else if in.Role != nil && *in.Role == models.RoleUser {
		u.Role = models.RoleUser
	}

	if in.AllowedPages != nil {
		u.AllowedPages = *in.AllowedPages
	}
	u.AllowedPages, err = NormalizeAllowedPages(u.Role, u.AllowedPages)
	if err != nil {
		return models.User{}, err
	}

	u.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// List returns all accounts (password hashes stay internal; the model never
// serializes them).
func (s *Service) List(ctx context.Context) ([]models.User, error) {
	return s.repo.List(ctx)
}

// EnsureDefaultAdmin creates the bootstrap admin account when the user
// collection is empty. A configured password is required; without one the
// bootstrap is skipped with a warning so the operator notices.
func (s *Service) EnsureDefaultAdmin(ctx context.Context) error {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	if s.cfg.DefaultAdminPass == "" {
		s.logger.Warn("no users exist and DEFAULT_ADMIN_PASSWORD is unset, skipping admin bootstrap")
		return nil
	}

	_, err = s.Create(ctx, CreateInput{
		Username: s.cfg.DefaultAdminUser,
		Password: s.cfg.DefaultAdminPass,
		Role:     models.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("bootstrap default admin: %w", err)
	}
	s.logger.Info("default admin user created", zap.String("username", s.cfg.DefaultAdminUser))
	return nil
}
