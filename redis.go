package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const maxTxRetries = 10

type redisGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// NewRedisStore connects to redis, retrying the ping until it answers or ctx
// is done.
func NewRedisStore(ctx context.Context, config RedisConfig) (*RedisStore, error) {
	opt, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	r := redis.NewClient(opt)

	result, err := r.Ping(ctx).Result()

	for err != nil || result != "PONG" {
		log.WithFields(log.Fields{
			"url":    config.RedisURL,
			"err":    err,
			"result": result,
		}).Error("Retrying connection to redis.")

		select {
		case <-ctx.Done():
			r.Close()
			return nil, fmt.Errorf("connect to redis: %w", ctx.Err())
		case <-time.After(5 * time.Second):
		}
		result, err = r.Ping(ctx).Result()
	}

	log.Info("Connected to redis.")

	return &RedisStore{
		client: r,
		mutex:  &sync.Mutex{},
		key:    config.Prefix + ":scores",
	}, nil
}

func (r *RedisStore) log(fields ...map[string]interface{}) *log.Entry {
	output := log.WithFields(log.Fields{
		"source": "redis.go",
		"key":    r.key,
	})

	if fields != nil {
		output = output.WithFields(fields[0])
	}

	return output
}

func (r *RedisStore) Load(ctx context.Context) ([]float64, error) {
	return r.get(ctx, r.client)
}

// SubmitScore runs the read-modify-write inside a WATCH transaction so writers
// in other processes sharing the key cannot clobber each other.
func (r *RedisStore) SubmitScore(ctx context.Context, score float64) (float64, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	txf := func(tx *redis.Tx) error {
		scores, err := r.get(ctx, tx)
		if err != nil {
			return err
		}

		scores = InsertScore(scores, score)
		data, err := encodeScores(scores)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, r.key, data, 0)
			return nil
		})
		return err
	}

	for i := 0; i < maxTxRetries; i++ {
		err := r.client.Watch(ctx, txf, r.key)
		if err == nil {
			r.log(map[string]interface{}{
				"score": score,
			}).Info("Saved score.")
			return score, nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return 0, err
		}

		r.log(map[string]interface{}{
			"attempt": i + 1,
		}).Debug("Leaderboard changed during submit, retrying.")
	}

	return 0, fmt.Errorf("submit score: gave up after %d conflicting transactions", maxTxRetries)
}

func (r *RedisStore) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis at %s: %w", r.client.Options().Addr, err)
	}

	return nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

func (r *RedisStore) get(ctx context.Context, c redisGetter) ([]float64, error) {
	raw, err := c.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []float64{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", r.key, err)
	}

	return decodeScores(raw)
}
