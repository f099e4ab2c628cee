// Package studio manages photo-studio contracts. Their pricing is trivial:
// the total is the sum of the service items minus the discount, recomputed
// server-side on every write.
package studio

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"hallbook/internal/domain/models"
)

var (
	ErrContractNotFound = errors.New("studio contract not found")
	ErrInvalidID        = errors.New("invalid studio contract id")
)

// Repository is the persistence surface the service depends on.
type Repository interface {
	Insert(ctx context.Context, c models.StudioContract) (models.StudioContract, error)
	Replace(ctx context.Context, id primitive.ObjectID, c models.StudioContract) (models.StudioContract, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context) ([]models.StudioContract, error)
}

// Service wires studio contract persistence to the total computation.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService wires a new studio service instance.
func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// Total computes the studio contract price from its service items.
func Total(services []models.ServiceItem, discount float64) float64 {
	var total float64
	for _, s := range services {
		total += s.Price
	}
	return total - discount
}

// Create stores a new studio contract with its computed total.
func (s *Service) Create(ctx context.Context, c models.StudioContract) (models.StudioContract, error) {
	now := time.Now().UTC()
	c.TotalPrice = Total(c.Services, c.Discount)
	c.CreatedAt = now
	c.UpdatedAt = now

	saved, err := s.repo.Insert(ctx, c)
	if err != nil {
		return models.StudioContract{}, err
	}
	s.logger.Info("studio contract created",
		zap.String("id", saved.ID.Hex()),
		zap.String("full_name", saved.FullName))
	return saved, nil
}

// Update replaces a studio contract wholesale, recomputing the total.
func (s *Service) Update(ctx context.Context, id string, c models.StudioContract) (models.StudioContract, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.StudioContract{}, ErrInvalidID
	}

	c.TotalPrice = Total(c.Services, c.Discount)
	c.UpdatedAt = time.Now().UTC()

	saved, err := s.repo.Replace(ctx, oid, c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.StudioContract{}, ErrContractNotFound
		}
		return models.StudioContract{}, err
	}
	return saved, nil
}

// Delete removes a studio contract permanently.
func (s *Service) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}
	if err := s.repo.Delete(ctx, oid); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrContractNotFound
		}
		return err
	}
	return nil
}

// List returns all studio contracts, newest first.
func (s *Service) List(ctx context.Context) ([]models.StudioContract, error) {
	return s.repo.List(ctx)
}
