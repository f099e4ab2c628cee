// Package contracts orchestrates hall contract persistence around the
// pricing engine: every create or full update revalidates the raw inputs
// and re-derives the cost breakdowns before the document is stored.
package contracts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"hallbook/internal/domain/models"
	"hallbook/internal/pricing"
)

var (
	ErrContractNotFound     = errors.New("contract not found")
	ErrInvalidID            = errors.New("invalid contract id")
	ErrInvalidStatus        = errors.New("invalid contract status")
	ErrUnknownOverrideField = errors.New("unknown overridden field")
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

// Repository is the persistence surface the service depends on.
type Repository interface {
	Insert(ctx context.Context, c models.Contract) (models.Contract, error)
	Replace(ctx context.Context, id primitive.ObjectID, c models.Contract) (models.Contract, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.ContractStatus) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Contract, error)
	Search(ctx context.Context, term string, page, limit int64) ([]models.Contract, int64, error)
	FindAll(ctx context.Context) ([]models.Contract, error)
}

// RateReader supplies the two rate configurations to the pricing engine.
type RateReader interface {
	Get(ctx context.Context, kind models.RateKind) (models.RateConfig, error)
}

// Service wires contract persistence to the pricing engine.
type Service struct {
	repo   Repository
	rates  RateReader
	logger *zap.Logger
}

// NewService wires a new contract service instance.
func NewService(repo Repository, rates RateReader, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, rates: rates, logger: logger}
}

// SearchResult is one page of contracts.
type SearchResult struct {
	Contracts  []models.Contract `json:"contracts"`
	TotalCount int64             `json:"totalCount"`
	Page       int64             `json:"page"`
	Limit      int64             `json:"limit"`
}

// Create validates, prices, and stores a new contract. The overriddenFields
// are "perspective.field" references for the derived values the caller set
// by hand; everything else is re-derived from the rate tables.
func (s *Service) Create(ctx context.Context, c models.Contract, overriddenFields []string) (models.Contract, error) {
	priced, err := s.price(ctx, c, overriddenFields)
	if err != nil {
		return models.Contract{}, err
	}

	now := time.Now().UTC()
	priced.CreatedAt = now
	priced.UpdatedAt = now
	if priced.Status == "" {
		priced.Status = models.StatusReservation
	}
	if !priced.Status.Valid() {
		return models.Contract{}, ErrInvalidStatus
	}

	saved, err := s.repo.Insert(ctx, priced)
	if err != nil {
		return models.Contract{}, err
	}
	s.logger.Info("contract created",
		zap.String("id", saved.ID.Hex()),
		zap.String("owner", saved.ContractOwner),
		zap.String("event_date", saved.EventDate))
	return saved, nil
}

// Update replaces a contract wholesale after re-running the pricing engine.
func (s *Service) Update(ctx context.Context, id string, c models.Contract, overriddenFields []string) (models.Contract, error) {
	oid, err := parseID(id)
	if err != nil {
		return models.Contract{}, err
	}

	existing, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Contract{}, ErrContractNotFound
		}
		return models.Contract{}, err
	}

	priced, err := s.price(ctx, c, overriddenFields)
	if err != nil {
		return models.Contract{}, err
	}
	if !priced.Status.Valid() {
		return models.Contract{}, ErrInvalidStatus
	}
	priced.CreatedAt = existing.CreatedAt
	priced.UpdatedAt = time.Now().UTC()

	saved, err := s.repo.Replace(ctx, oid, priced)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Contract{}, ErrContractNotFound
		}
		return models.Contract{}, err
	}
	return saved, nil
}

// UpdateStatus applies the narrow status-only patch.
func (s *Service) UpdateStatus(ctx context.Context, id string, status models.ContractStatus) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	if !status.Valid() {
		return ErrInvalidStatus
	}
	if err := s.repo.UpdateStatus(ctx, oid, status); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrContractNotFound
		}
		return err
	}
	return nil
}

// Delete removes a contract permanently.
func (s *Service) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, oid); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrContractNotFound
		}
		return err
	}
	return nil
}

// Search pages through contracts by owner name or event date.
func (s *Service) Search(ctx context.Context, term string, page, limit int64) (SearchResult, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	contracts, total, err := s.repo.Search(ctx, term, page, limit)
	if err != nil {
		return SearchResult{}, err
	}
	return SearchResult{Contracts: contracts, TotalCount: total, Page: page, Limit: limit}, nil
}

// All returns every contract; used by the reporting aggregation.
func (s *Service) All(ctx context.Context) ([]models.Contract, error) {
	return s.repo.FindAll(ctx)
}

func (s *Service) price(ctx context.Context, c models.Contract, overriddenFields []string) (models.Contract, error) {
	ov, err := parseOverrides(overriddenFields)
	if err != nil {
		return models.Contract{}, err
	}

	customer, err := s.rates.Get(ctx, models.RateKindCustomer)
	if err != nil {
		return models.Contract{}, fmt.Errorf("load customer rates: %w", err)
	}
	internal, err := s.rates.Get(ctx, models.RateKindInternal)
	if err != nil {
		return models.Contract{}, fmt.Errorf("load internal rates: %w", err)
	}

	return pricing.Recompute(c, customer, internal, ov), nil
}

func parseOverrides(refs []string) (*pricing.Overrides, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	ov := pricing.NewOverrides()
	for _, ref := range refs {
		p, f, err := pricing.ParseFieldRef(ref)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownOverrideField, ref)
		}
		ov.MarkOverridden(p, f)
	}
	return ov, nil
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return oid, nil
}
