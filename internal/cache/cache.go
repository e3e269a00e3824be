package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	prefix = "dreamhome:listings"
	genKey = prefix + ":gen"
)

// Listings caches listing query results. Every write to the property store
// bumps a generation number that is part of each key, so stale entries are
// simply never read again and expire on their own.
type Listings struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(addr, password string, db int, ttl time.Duration) *Listings {
	return &Listings{
		rdb: redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db}),
		ttl: ttl,
	}
}

func (c *Listings) Ping(ctx context.Context) error { return c.rdb.Ping(ctx).Err() }

func (c *Listings) Close() error { return c.rdb.Close() }

// Get decodes the cached value into dest and reports the generation it
// looked at. A miss is (gen, false, nil); pass gen on to Set so a result
// computed before an Invalidate is never filed under the newer generation.
func (c *Listings) Get(ctx context.Context, scope string, params map[string]string, dest any) (int64, bool, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return 0, false, err
	}
	data, err := c.rdb.Get(ctx, Key(scope, gen, params)).Bytes()
	if errors.Is(err, redis.Nil) {
		return gen, false, nil
	}
	if err != nil {
		return gen, false, fmt.Errorf("cache get: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return gen, false, fmt.Errorf("cache decode: %w", err)
	}
	return gen, true, nil
}

// Set stores value under the generation returned by the Get that missed.
func (c *Listings) Set(ctx context.Context, gen int64, scope string, params map[string]string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := c.rdb.Set(ctx, Key(scope, gen, params), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Invalidate retires every cached listing result.
func (c *Listings) Invalidate(ctx context.Context) error {
	if err := c.rdb.Incr(ctx, genKey).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}

func (c *Listings) generation(ctx context.Context) (int64, error) {
	n, err := c.rdb.Get(ctx, genKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("cache generation: %w", err)
	}
	return n, nil
}

// Key hashes the sorted parameters so equal queries share an entry
// regardless of parameter order. Blank values are dropped. Pairs are JSON
// encoded so separators inside a value cannot mimic another parameter.
func Key(scope string, gen int64, params map[string]string) string {
	pairs := make([][2]string, 0, len(params))
	for k, v := range params {
		if v = strings.TrimSpace(v); v != "" {
			pairs = append(pairs, [2]string{k, v})
		}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i][0] < pairs[j][0] })

	data, _ := json.Marshal(pairs)
	sum := md5.Sum(data)
	return prefix + ":" + strconv.FormatInt(gen, 10) + ":" + scope + ":" + hex.EncodeToString(sum[:])
}
