package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"ai-learning-service/internal/app"
	"ai-learning-service/internal/domain"
)

// LevelCache is a read-through Redis decorator for a LevelRepository.
// Level documents are cached whole as JSON values:
//
//	SET level:{id}      {level JSON}
//	SET level:num:{n}   {level id}
//
// Status writes go through to the backing store and drop the cached keys.
type LevelCache struct {
	client *redis.Client
	inner  app.LevelRepository
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewLevelCache(client *redis.Client, inner app.LevelRepository, ttl time.Duration) *LevelCache {
	return &LevelCache{
		client: client,
		inner:  inner,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *LevelCache) FindByID(ctx context.Context, id string) (domain.Level, error) {
	key := c.levelKey(id)
	if raw, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var level domain.Level
		if err := json.Unmarshal(raw, &level); err == nil {
			return level, nil
		}
	}

	result, err, _ := c.sf.Do("id:"+id, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if raw, err := c.client.Get(ctx, key).Bytes(); err == nil {
			var level domain.Level
			if err := json.Unmarshal(raw, &level); err == nil {
				return level, nil
			}
		}
		level, err := c.inner.FindByID(ctx, id)
		if err != nil {
			return domain.Level{}, err
		}
		c.fill(ctx, level)
		return level, nil
	})
	if err != nil {
		return domain.Level{}, err
	}
	return result.(domain.Level), nil
}

func (c *LevelCache) FindByNumber(ctx context.Context, levelNumber int) (domain.Level, error) {
	if id, err := c.client.Get(ctx, c.numberKey(levelNumber)).Result(); err == nil && id != "" {
		return c.FindByID(ctx, id)
	}

	result, err, _ := c.sf.Do("num:"+strconv.Itoa(levelNumber), func() (interface{}, error) {
		level, err := c.inner.FindByNumber(ctx, levelNumber)
		if err != nil {
			return domain.Level{}, err
		}
		c.fill(ctx, level)
		return level, nil
	})
	if err != nil {
		return domain.Level{}, err
	}
	return result.(domain.Level), nil
}

// ListOrdered always reads through; the full ordered listing is served
// straight from the backing store.
func (c *LevelCache) ListOrdered(ctx context.Context) ([]domain.Level, error) {
	return c.inner.ListOrdered(ctx)
}

func (c *LevelCache) Save(ctx context.Context, level domain.Level) error {
	if err := c.inner.Save(ctx, level); err != nil {
		return err
	}
	_ = c.client.Del(ctx, c.levelKey(level.ID), c.numberKey(level.LevelNumber)).Err()
	return nil
}

func (c *LevelCache) InsertMany(ctx context.Context, levels []domain.Level) error {
	return c.inner.InsertMany(ctx, levels)
}

func (c *LevelCache) fill(ctx context.Context, level domain.Level) {
	data, err := json.Marshal(level)
	if err != nil {
		return
	}
	ttl := c.ttlWithJitter()
	pipe := c.client.Pipeline()
	pipe.Set(ctx, c.levelKey(level.ID), data, ttl)
	pipe.Set(ctx, c.numberKey(level.LevelNumber), level.ID, ttl)
	_, _ = pipe.Exec(ctx)
}

func (c *LevelCache) levelKey(id string) string {
	return "level:" + id
}

func (c *LevelCache) numberKey(levelNumber int) string {
	return fmt.Sprintf("level:num:%d", levelNumber)
}

func (c *LevelCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
