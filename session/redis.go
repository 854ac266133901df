package session

import (
	"time"

	"github.com/go-redis/redis"
)

// Redis is the production Backend.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Set(key, value string, ttl time.Duration) error {
	return r.client.Set(key, value, ttl).Err()
}

func (r *Redis) Get(key string) (string, error) {
	v, err := r.client.Get(key).Result()
	if err == redis.Nil {
		return "", ErrNotFound
	}
	return v, err
}

func (r *Redis) Take(key string) (string, error) {
	var get *redis.StringCmd
	_, err := r.client.TxPipelined(func(pipe redis.Pipeliner) error {
		get = pipe.Get(key)
		pipe.Del(key)
		return nil
	})
	if err == redis.Nil {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return get.Val(), nil
}

func (r *Redis) Del(key string) error {
	return r.client.Del(key).Err()
}
