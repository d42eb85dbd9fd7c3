package dataset

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"career-insights/internal/domain/posting"

	"go.uber.org/zap"
)

// Source yields the raw record set.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]posting.Record, error)
	Fingerprint(ctx context.Context) (string, error)
}

// SnapshotCache stores the loaded record set between process starts.
type SnapshotCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
}

var ErrNoSource = errors.New("no dataset source configured")

type snapshot struct {
	Fingerprint string           `json:"fingerprint"`
	Records     []posting.Record `json:"records"`
}

func SnapshotKey(fingerprint string) string {
	sum := sha256.Sum256([]byte(fingerprint))
	return "dataset:snapshot:" + hex.EncodeToString(sum[:])
}

func SnapshotLockKey(snapshotKey string) string {
	return "dataset:lock:" + snapshotKey[len("dataset:snapshot:"):]
}

// Loader performs the one-time base load.
type Loader struct {
	source   Source
	cache    SnapshotCache
	logger   *zap.Logger
	lockWait time.Duration
	now      func() time.Time
}

func NewLoader(source Source, cache SnapshotCache, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		source:   source,
		cache:    cache,
		logger:   logger,
		lockWait: 500 * time.Millisecond,
		now:      time.Now,
	}
}

// Load returns the record set, preferring a cached snapshot that
// matches the source fingerprint. Cache failures never fail the load.
func (l *Loader) Load(ctx context.Context) (*posting.Dataset, error) {
	if l == nil || l.source == nil {
		return nil, ErrNoSource
	}

	fp, err := l.source.Fingerprint(ctx)
	if err != nil {
		return nil, fmt.Errorf("fingerprint %s source: %w", l.source.Name(), err)
	}
	key := SnapshotKey(fp)

	if records, ok := l.fromCache(ctx, key, fp); ok {
		return l.build(records, fp, "cache"), nil
	}

	lockKey := SnapshotLockKey(key)
	locked := false
	if l.cache != nil {
		ok, err := l.cache.SetIfNotExists(ctx, lockKey, "1", 30*time.Second)
		switch {
		case err == nil && ok:
			locked = true
		case err == nil && !ok:
			// another replica is loading the same snapshot
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(l.lockWait):
			}
			if records, ok := l.fromCache(ctx, key, fp); ok {
				return l.build(records, fp, "cache"), nil
			}
		}
	}

	records, err := l.source.Load(ctx)
	if err != nil {
		if locked {
			_ = l.cache.Delete(ctx, lockKey)
		}
		return nil, fmt.Errorf("load %s source: %w", l.source.Name(), err)
	}
	if records == nil {
		records = make([]posting.Record, 0)
	}

	if l.cache != nil {
		if err := l.cache.SetJSON(ctx, key, snapshot{Fingerprint: fp, Records: records}, 0); err != nil {
			l.logger.Warn("[Dataset] snapshot write failed", zap.String("key", key), zap.Error(err))
		}
		if locked {
			_ = l.cache.Delete(ctx, lockKey)
		}
	}

	return l.build(records, fp, l.source.Name()), nil
}

func (l *Loader) fromCache(ctx context.Context, key, fp string) ([]posting.Record, bool) {
	if l.cache == nil {
		return nil, false
	}
	var snap snapshot
	hit, err := l.cache.GetJSON(ctx, key, &snap)
	if err != nil {
		l.logger.Warn("[Dataset] snapshot read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if !hit || snap.Fingerprint != fp {
		l.logger.Debug("[Dataset] snapshot MISS", zap.String("key", key))
		return nil, false
	}
	l.logger.Debug("[Dataset] snapshot HIT", zap.String("key", key))
	if snap.Records == nil {
		snap.Records = make([]posting.Record, 0)
	}
	return snap.Records, true
}

func (l *Loader) build(records []posting.Record, fp, origin string) *posting.Dataset {
	ds := &posting.Dataset{
		Records:     records,
		Fingerprint: fp,
		Source:      origin,
		LoadedAt:    l.now().UTC(),
	}
	l.logger.Info("[Dataset] loaded",
		zap.String("origin", origin),
		zap.Int("records", len(records)),
	)
	return ds
}
