package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hallbook/internal/domain/models"
)

// RateRepository persists the two rate configuration documents. They are
// upserted, never deleted.
type RateRepository struct {
	coll *mongo.Collection
}

// NewRateRepository builds a repository over the "rate_configs" collection.
func NewRateRepository(db *mongo.Database) *RateRepository {
	return &RateRepository{coll: db.Collection("rate_configs")}
}

// Get fetches the configuration of the given kind, creating a zeroed
// document on first access.
func (r *RateRepository) Get(ctx context.Context, kind models.RateKind) (models.RateConfig, error) {
	now := time.Now().UTC()
	filter := bson.M{"kind": kind}
	update := bson.M{
		"$setOnInsert": bson.M{
			"kind":       kind,
			"created_at": now,
			"updated_at": now,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var cfg models.RateConfig
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&cfg); err != nil {
		return models.RateConfig{}, fmt.Errorf("get %s rates: %w", kind, err)
	}
	return cfg, nil
}

// Set replaces all rate fields of the given kind wholesale.
func (r *RateRepository) Set(ctx context.Context, kind models.RateKind, cfg models.RateConfig) (models.RateConfig, error) {
	now := time.Now().UTC()
	filter := bson.M{"kind": kind}
	update := bson.M{
		"$set": bson.M{
			"hourly_rate":             cfg.HourlyRate,
			"extra_hour_rate":         cfg.ExtraHourRate,
			"service_fee_per_person":  cfg.ServiceFeePerPerson,
			"tax_rate_percent":        cfg.TaxRatePercent,
			"juice_price_per_person":  cfg.JuicePricePerPerson,
			"tea_price_per_person":    cfg.TeaPricePerPerson,
			"firework_price_per_unit": cfg.FireworkPricePerUnit,
			"candle_price":            cfg.CandlePrice,
			"flower_price":            cfg.FlowerPrice,
			"water_price_per_unit":    cfg.WaterPricePerUnit,
			"dinner_price_per_person": cfg.DinnerPricePerPerson,
			"updated_at":              now,
		},
		"$setOnInsert": bson.M{
			"kind":       kind,
			"created_at": now,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var saved models.RateConfig
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&saved); err != nil {
		return models.RateConfig{}, fmt.Errorf("set %s rates: %w", kind, err)
	}
	return saved, nil
}
