package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/reachdesk/backend/internal/metrics"
	"github.com/reachdesk/backend/internal/models"
	"go.uber.org/zap"
)

// Cache is a byte cache with per-entry ttl. Get reports ok=false on a miss.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
}

// LookupService serves the shared template reference tables. Results are
// cached; a cache failure falls through to the store.
type LookupService struct {
	lookupRepo LookupStore
	cache      Cache
	ttl        time.Duration
	log        *zap.Logger
}

func NewLookupService(lookupRepo LookupStore, cache Cache, ttl time.Duration, log *zap.Logger) *LookupService {
	if log == nil {
		log = zap.NewNop()
	}
	return &LookupService{lookupRepo: lookupRepo, cache: cache, ttl: ttl, log: log}
}

func lookupCacheKey(kind models.LookupKind) string {
	return "lookups:" + string(kind)
}

// Options returns the rows of kind as label/value pairs. Button types come
// ordered by id, every other kind by name.
func (s *LookupService) Options(ctx context.Context, kind models.LookupKind) ([]models.LookupOption, error) {
	key := lookupCacheKey(kind)
	if s.cache != nil {
		data, ok, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			metrics.LookupCacheTotal.WithLabelValues(string(kind), "error").Inc()
			s.log.Warn("lookup cache read failed", zap.String("kind", string(kind)), zap.Error(err))
		case ok:
			var opts []models.LookupOption
			if err := json.Unmarshal(data, &opts); err == nil {
				metrics.LookupCacheTotal.WithLabelValues(string(kind), "hit").Inc()
				return opts, nil
			}
		default:
			metrics.LookupCacheTotal.WithLabelValues(string(kind), "miss").Inc()
		}
	}

	rows, err := s.lookupRepo.List(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	opts := make([]models.LookupOption, 0, len(rows))
	for _, r := range rows {
		opts = append(opts, models.LookupOption{Label: r.Name, Value: r.ID})
	}

	if s.cache != nil {
		if data, err := json.Marshal(opts); err == nil {
			if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
				s.log.Warn("lookup cache write failed", zap.String("kind", string(kind)), zap.Error(err))
			}
		}
	}
	return opts, nil
}
