package recents

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func recentsKey(username string) string {
	return fmt.Sprintf("fleetconsole:recents:%s", username)
}

// Replace swaps the user's cached recents list wholesale, newest first.
func (r *RedisStore) Replace(ctx context.Context, username string, views []View) error {
	key := recentsKey(username)
	pipe := r.client.Pipeline()
	pipe.Del(ctx, key)
	for _, v := range views {
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		pipe.RPush(ctx, key, data)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (r *RedisStore) List(ctx context.Context, username string, max int) ([]View, error) {
	vals, err := r.client.LRange(ctx, recentsKey(username), 0, int64(max)-1).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	views := make([]View, 0, len(vals))
	for _, val := range vals {
		var v View
		if err := json.Unmarshal([]byte(val), &v); err != nil {
			continue
		}
		views = append(views, v)
	}
	return views, nil
}

func (r *RedisStore) Clear(ctx context.Context, username string) error {
	return r.client.Del(ctx, recentsKey(username)).Err()
}
