package redis

import (
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/auctra/goapi/base/ctx"
	"github.com/auctra/goapi/base/metrics"
)

const (
	keyAttribute = "key"

	// retTTLNoKey is the return value of TTL when the key does not exist
	retTTLNoKey = -2

	// retTTLNoExpire is the return value of TTL when the key exists but has
	// no associated expire
	retTTLNoExpire = -1
)

// ErrNotFound is returned when the key does not exist
var ErrNotFound = redis.ErrNil

// Service provides a minimal cache interface over redis
type Service interface {
	Get(c ctx.Ctx, key string) ([]byte, error)
	Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error
	Del(c ctx.Ctx, key string) error
	Incr(c ctx.Ctx, key string) (int64, error)
	TTL(c ctx.Ctx, key string) (time.Duration, error)
}

type impl struct {
	name string
	met  metrics.Service
	pool *redis.Pool
}

// New creates a redis service backed by the given pool
func New(name string, met metrics.Service, pool *redis.Pool) Service {
	return &impl{
		name: name,
		met:  met,
		pool: pool,
	}
}

func (im *impl) Get(c ctx.Ctx, key string) ([]byte, error) {
	defer im.met.BumpTime("latency", "cmd", "get").End()

	conn := im.pool.Get()
	defer conn.Close()

	data, err := redis.Bytes(conn.Do("GET", key))
	if err != nil {
		if err == redis.ErrNil {
			return nil, ErrNotFound
		}
		c.WithField("err", err).WithField(keyAttribute, key).Error("redis GET failed")
		im.met.BumpSum("err", 1, "cmd", "get")
		return nil, err
	}
	return data, nil
}

func (im *impl) Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	defer im.met.BumpTime("latency", "cmd", "set").End()

	conn := im.pool.Get()
	defer conn.Close()

	var err error
	if ttl > 0 {
		_, err = conn.Do("SET", key, value, "PX", int64(ttl/time.Millisecond))
	} else {
		_, err = conn.Do("SET", key, value)
	}
	if err != nil {
		c.WithField("err", err).WithField(keyAttribute, key).Error("redis SET failed")
		im.met.BumpSum("err", 1, "cmd", "set")
		return err
	}
	return nil
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	defer im.met.BumpTime("latency", "cmd", "del").End()

	conn := im.pool.Get()
	defer conn.Close()

	if _, err := conn.Do("DEL", key); err != nil {
		c.WithField("err", err).WithField(keyAttribute, key).Error("redis DEL failed")
		im.met.BumpSum("err", 1, "cmd", "del")
		return err
	}
	return nil
}

func (im *impl) Incr(c ctx.Ctx, key string) (int64, error) {
	defer im.met.BumpTime("latency", "cmd", "incr").End()

	conn := im.pool.Get()
	defer conn.Close()

	n, err := redis.Int64(conn.Do("INCR", key))
	if err != nil {
		c.WithField("err", err).WithField(keyAttribute, key).Error("redis INCR failed")
		im.met.BumpSum("err", 1, "cmd", "incr")
		return 0, err
	}
	return n, nil
}

func (im *impl) TTL(c ctx.Ctx, key string) (time.Duration, error) {
	defer im.met.BumpTime("latency", "cmd", "ttl").End()

	conn := im.pool.Get()
	defer conn.Close()

	res, err := redis.Int(conn.Do("TTL", key))
	if err != nil {
		c.WithField("err", err).WithField(keyAttribute, key).Error("redis TTL failed")
		im.met.BumpSum("err", 1, "cmd", "ttl")
		return 0, err
	}
	if res == retTTLNoKey {
		return 0, ErrNotFound
	}
	if res == retTTLNoExpire {
		return 0, nil
	}
	return time.Duration(res) * time.Second, nil
}
