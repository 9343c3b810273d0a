package data

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/reelbase/catalog/internal/conf"
)

// ProviderSet is data providers.
var ProviderSet = wire.NewSet(
	NewData,
	NewMovieRepo,
	NewActorRepo,
	NewRatingRepo,
	NewUserRepo,
	NewTxManager,
)

// cacheTTL bounds how long cached reads may go stale when an invalidation
// is missed.
const cacheTTL = 15 * time.Minute

// Data encapsulates the database handle and the optional Redis cache. Its
// lifecycle is owned by the process entry point via the cleanup func.
type Data struct {
	db  *gorm.DB
	rdb *redis.Client
	log *log.Helper
}

// NewData opens the configured database (postgres or sqlite), migrates the
// schema, and connects to Redis when an address is configured. Redis is
// optional: a failed ping logs a warning and disables caching.
func NewData(c *conf.Data, logger log.Logger) (*Data, func(), error) {
	l := log.NewHelper(logger)

	db, err := openDatabase(c.Database)
	if err != nil {
		l.Errorf("failed to connect to database: %v", err)
		return nil, nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		l.Errorf("failed to get database instance: %v", err)
		return nil, nil, err
	}

	maxIdle := c.Database.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = 10
	}
	maxOpen := c.Database.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 100
	}
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetConnMaxLifetime(c.Database.ConnMaxLifetimeOrDefault(time.Hour))

	if err := Migrate(db); err != nil {
		l.Errorf("failed to migrate schema: %v", err)
		return nil, nil, err
	}

	l.Infof("database connected (%s)", c.Database.Driver)

	var rdb *redis.Client
	if c.Redis != nil && c.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:         c.Redis.Addr,
			ReadTimeout:  c.Redis.ReadTimeoutOrDefault(200 * time.Millisecond),
			WriteTimeout: c.Redis.WriteTimeoutOrDefault(200 * time.Millisecond),
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			l.Warnf("failed to connect to redis, running without cache: %v", err)
			rdb = nil
		} else {
			l.Info("redis connected")
		}
	}

	data := &Data{
		db:  db,
		rdb: rdb,
		log: l,
	}

	cleanup := func() {
		l.Info("closing data resources")
		if data.rdb != nil {
			if err := data.rdb.Close(); err != nil {
				l.Errorf("failed to close redis: %v", err)
			}
		}
		if err := sqlDB.Close(); err != nil {
			l.Errorf("failed to close database: %v", err)
		}
	}

	return data, cleanup, nil
}

// DB exposes the underlying gorm handle for maintenance tooling such as
// the seed command.
func (d *Data) DB() *gorm.DB {
	return d.db
}

func openDatabase(c *conf.Database) (*gorm.DB, error) {
	// TranslateError surfaces unique violations as gorm.ErrDuplicatedKey
	// on both drivers, which the repos rely on for conflict detection.
	cfg := &gorm.Config{TranslateError: true}
	switch c.Driver {
	case "sqlite":
		return gorm.Open(sqlite.Open(c.Source), cfg)
	case "", "postgres":
		return gorm.Open(postgres.Open(c.Source), cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", c.Driver)
	}
}

// Migrate creates or updates the catalog schema. The seed tool reuses it.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Movie{},
		&Actor{},
		&MovieActor{},
		&MovieRating{},
		&User{},
	)
}

// cacheGet loads a JSON-cached value. It reports false on miss, decode
// failure, or when caching is disabled.
func cacheGet[T any](ctx context.Context, d *Data, key string, out *T) bool {
	if d.rdb == nil {
		return false
	}
	raw, err := d.rdb.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false
	}
	return true
}

// cacheSet stores a JSON-encoded value; failures are ignored.
func cacheSet(ctx context.Context, d *Data, key string, v any) {
	if d.rdb == nil {
		return
	}
	if raw, err := json.Marshal(v); err == nil {
		d.rdb.Set(ctx, key, raw, cacheTTL)
	}
}

// cacheDel drops cached keys; failures are ignored.
func cacheDel(ctx context.Context, d *Data, keys ...string) {
	if d.rdb == nil || len(keys) == 0 {
		return
	}
	d.rdb.Del(ctx, keys...)
}

func movieCacheKey(id uint) string {
	return fmt.Sprintf("movie:%d", id)
}

func ratingAggCacheKey(movieID uint) string {
	return fmt.Sprintf("rating:agg:%d", movieID)
}
