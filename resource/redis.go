package resource

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// DefaultRedisPrefix is the key prefix used when none is given.
const DefaultRedisPrefix = "respond:resource:"

const (
	fieldModified = "modified"
	fieldLength   = "length"
	fieldData     = "data"
)

// Redis is a repository storing each resource as a redis hash.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis returns a repository using client. Keys are prefix + name.
func NewRedis(client *redis.Client, prefix string) *Redis {
	if client == nil {
		panic("redis client cannot be nil")
	}
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &Redis{client: client, prefix: prefix}
}

// Put stores data under name, replacing any previous content.
func (r *Redis) Put(ctx context.Context, name string, modified time.Time, data []byte) error {
	name, err := cleanPath(name)
	if err != nil {
		return err
	}
	err = r.client.HSet(ctx, r.prefix+name, map[string]interface{}{
		fieldModified: modified.UnixMilli(),
		fieldLength:   len(data),
		fieldData:     data,
	}).Err()
	if err != nil {
		return errors.Wrapf(err, "redis hset %s", name)
	}
	log.Trace().Str("name", name).Int("length", len(data)).Msg("Stored resource")
	return nil
}

// Delete removes the resource stored under name.
func (r *Redis) Delete(ctx context.Context, name string) error {
	name, err := cleanPath(name)
	if err != nil {
		return err
	}
	return errors.Wrapf(r.client.Del(ctx, r.prefix+name).Err(), "redis del %s", name)
}

// Resource looks up the metadata of the resource stored under p.
func (r *Redis) Resource(ctx context.Context, p string) (Resource, error) {
	name, err := cleanPath(p)
	if err != nil {
		return nil, err
	}
	res := &redisResource{ctx: ctx, client: r.client, key: r.prefix + name, name: name}
	vals, err := r.client.HMGet(ctx, res.key, fieldModified, fieldLength).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "redis hmget %s", name)
	}
	if len(vals) != 2 || vals[0] == nil || vals[1] == nil {
		return res, nil
	}
	modified, err := strconv.ParseInt(fmt.Sprint(vals[0]), 10, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "parse modified time of %s", name)
	}
	if res.length, err = strconv.ParseInt(fmt.Sprint(vals[1]), 10, 64); err != nil {
		return nil, errors.Wrapf(err, "parse length of %s", name)
	}
	res.exists = true
	res.modified = time.UnixMilli(modified)
	return res, nil
}

type redisResource struct {
	ctx      context.Context
	client   *redis.Client
	key      string
	name     string
	exists   bool
	modified time.Time
	length   int64
}

func (r *redisResource) Name() string            { return r.name }
func (r *redisResource) String() string          { return r.name }
func (r *redisResource) Exists() bool            { return r.exists }
func (r *redisResource) LastModified() time.Time { return r.modified }
func (r *redisResource) Length() int64           { return r.length }

func (r *redisResource) Open() (io.ReadCloser, error) {
	data, err := r.client.HGet(r.ctx, r.key, fieldData).Bytes()
	if err == redis.Nil {
		return nil, errors.Wrap(fs.ErrNotExist, r.name)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "redis hget %s", r.name)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}
