// Package cache implements the read-through cache used by the list and detail
// endpoints.
//
// Entries are derived data. Writes to services or bookings do not evict
// anything, so a reader may see a projection up to one TTL old after a
// mutation. A nil Store, or a Store that fails, only costs performance:
// Remember falls back to the loader and returns the same shape.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/service-booking/utils"
)

// DefaultTTL is used by the list and detail endpoints.
const DefaultTTL = 60 * time.Second

// Store is a best-effort byte cache. A missing or expired key is reported as
// (nil, false, nil), never as an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Param is one named component of a cache key.
type Param struct {
	Name  string
	Value interface{}
}

func P(name string, value interface{}) Param {
	return Param{Name: name, Value: value}
}

// Key joins namespace and params in the order given:
//
//	Key("services-v1", P("page", 2), P("per_page", 10)) == "services-v1:page:2:per_page:10"
func Key(namespace string, params ...Param) string {
	var b strings.Builder
	b.WriteString(namespace)
	for _, p := range params {
		fmt.Fprintf(&b, ":%s:%v", p.Name, p.Value)
	}
	return b.String()
}

// Source tells where a Remember result came from.
type Source string

const (
	SourceCache Source = "cache"
	SourceStore Source = "db"
)

func (s Source) Hit() bool { return s == SourceCache }

// Remember returns the cached value for key, or calls load, caches its result
// for ttl and returns it. Errors from load are returned as-is and nothing is
// cached for them.
func Remember[T any](ctx context.Context, store Store, key string, ttl time.Duration, load func(ctx context.Context) (T, error)) (T, Source, error) {
	if store != nil {
		raw, ok, err := store.Get(ctx, key)
		if err != nil {
			utils.ErrorLogger.WithFields(logrus.Fields{"key": key}).Warnf("cache get failed: %v", err)
		}
		if ok {
			var cached T
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, SourceCache, nil
			}
			utils.ErrorLogger.WithFields(logrus.Fields{"key": key}).Warn("cache entry undecodable, reloading")
		}
	}

	value, err := load(ctx)
	if err != nil {
		var zero T
		return zero, SourceStore, err
	}

	if store != nil {
		raw, err := json.Marshal(value)
		if err == nil {
			err = store.Set(ctx, key, raw, ttl)
		}
		if err != nil {
			utils.ErrorLogger.WithFields(logrus.Fields{"key": key}).Warnf("cache set failed: %v", err)
		}
	}
	return value, SourceStore, nil
}
