package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/punitarani/flights-tracker-sub001/internal/models"
)

// Cache stores search results keyed by their filters. The core never
// touches it; caching is a consumer-side concern at the API layer.
type Cache interface {
	GetItineraries(ctx context.Context, f models.SearchFilters, topN int) ([]models.Itinerary, bool)
	SetItineraries(ctx context.Context, f models.SearchFilters, topN int, itineraries []models.Itinerary) error
	GetDatePrices(ctx context.Context, f models.DateSearchFilters) ([]models.DatePrice, bool)
	SetDatePrices(ctx context.Context, f models.DateSearchFilters, prices []models.DatePrice) error
	Close() error
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Host: "localhost",
		Port: "6379",
		TTL:  5 * time.Minute,
	}
}

func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{client: client, ttl: cfg.TTL}, nil
}

func (c *RedisCache) GetItineraries(ctx context.Context, f models.SearchFilters, topN int) ([]models.Itinerary, bool) {
	var itineraries []models.Itinerary
	if !c.get(ctx, itinerariesKey(f, topN), &itineraries) {
		return nil, false
	}
	return itineraries, true
}

func (c *RedisCache) SetItineraries(ctx context.Context, f models.SearchFilters, topN int, itineraries []models.Itinerary) error {
	return c.set(ctx, itinerariesKey(f, topN), itineraries)
}

func (c *RedisCache) GetDatePrices(ctx context.Context, f models.DateSearchFilters) ([]models.DatePrice, bool) {
	var prices []models.DatePrice
	if !c.get(ctx, datesKey(f), &prices) {
		return nil, false
	}
	return prices, true
}

func (c *RedisCache) SetDatePrices(ctx context.Context, f models.DateSearchFilters, prices []models.DatePrice) error {
	return c.set(ctx, datesKey(f), prices)
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) get(ctx context.Context, key string, out interface{}) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, out) == nil
}

func (c *RedisCache) set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

func itinerariesKey(f models.SearchFilters, topN int) string {
	return hashKey("flights:", struct {
		Filters models.SearchFilters
		TopN    int
	}{f, topN})
}

func datesKey(f models.DateSearchFilters) string {
	return hashKey("dates:", f)
}

func hashKey(prefix string, v interface{}) string {
	data, _ := json.Marshal(v)
	hash := sha256.Sum256(data)
	return prefix + hex.EncodeToString(hash[:])
}

type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) GetItineraries(context.Context, models.SearchFilters, int) ([]models.Itinerary, bool) {
	return nil, false
}

func (c *NoOpCache) SetItineraries(context.Context, models.SearchFilters, int, []models.Itinerary) error {
	return nil
}

func (c *NoOpCache) GetDatePrices(context.Context, models.DateSearchFilters) ([]models.DatePrice, bool) {
	return nil, false
}

func (c *NoOpCache) SetDatePrices(context.Context, models.DateSearchFilters, []models.DatePrice) error {
	return nil
}

func (c *NoOpCache) Close() error {
	return nil
}
