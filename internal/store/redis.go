package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	runsKey = "debt-calculator-runs"
	maxRuns = 100
)

// Redis stores the scenario blob with GET/SET and keeps run history in a
// capped list.
type Redis struct {
	client *redis.Client
}

// OpenRedis connects to addr and pings it.
func OpenRedis(ctx context.Context, addr string) (*Redis, error) {
	if addr == "" {
		return nil, errors.New("redis address is empty")
	}
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", addr, err)
	}
	return &Redis{client: rdb}, nil
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (r *Redis) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, key, value, 0).Err()
}

func (r *Redis) RecordRun(ctx context.Context, run Run) error {
	data, err := json.Marshal(run)
	if err != nil {
		return err
	}
	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, runsKey, data)
	pipe.LTrim(ctx, runsKey, 0, maxRuns-1)
	_, err = pipe.Exec(ctx)
	return err
}

func (r *Redis) Runs(ctx context.Context, limit int) ([]Run, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}
	items, err := r.client.LRange(ctx, runsKey, 0, stop).Result()
	if err != nil {
		return nil, err
	}
	runs := make([]Run, 0, len(items))
	for _, item := range items {
		var run Run
		if err := json.Unmarshal([]byte(item), &run); err != nil {
			return nil, fmt.Errorf("parsing run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
