// Package container builds the application dependency graph in order:
// config, infrastructure, stores, services, handlers.
package container

import (
	"context"
	"fmt"
	"time"

	"github.com/jeffbulltech/cosmere-api/internal/config"
	"github.com/jeffbulltech/cosmere-api/internal/domains/book"
	"github.com/jeffbulltech/cosmere-api/internal/domains/character"
	"github.com/jeffbulltech/cosmere-api/internal/domains/magicsystem"
	"github.com/jeffbulltech/cosmere-api/internal/domains/series"
	"github.com/jeffbulltech/cosmere-api/internal/domains/shard"
	"github.com/jeffbulltech/cosmere-api/internal/domains/world"
	infracache "github.com/jeffbulltech/cosmere-api/internal/infrastructure/cache"
	"github.com/jeffbulltech/cosmere-api/internal/infrastructure/database"
	essearch "github.com/jeffbulltech/cosmere-api/internal/infrastructure/search"
	"github.com/jeffbulltech/cosmere-api/internal/repository"
	"github.com/jeffbulltech/cosmere-api/internal/search"
	pkgcache "github.com/jeffbulltech/cosmere-api/pkg/cache"
	"github.com/jeffbulltech/cosmere-api/pkg/logger"
)

type Container struct {
	Config *config.Config
	DB     *database.PostgresDB
	Cache  pkgcache.Cache
	Loader *pkgcache.Loader
	Engine *essearch.Engine

	WorldStore        repository.Store[world.World]
	SeriesStore       repository.Store[series.Series]
	BookStore         repository.Store[book.Book]
	AppearanceStore   repository.Store[book.Appearance]
	CharacterStore    repository.Store[character.Character]
	RelationshipStore repository.Store[character.Relationship]
	MagicUseStore     repository.Store[character.MagicUse]
	MagicSystemStore  repository.Store[magicsystem.MagicSystem]
	ShardStore        repository.Store[shard.Shard]
	VesselStore       repository.Store[shard.Vessel]

	WorldService       *world.Service
	SeriesService      *series.Service
	BookService        *book.Service
	CharacterService   *character.Service
	MagicSystemService *magicsystem.Service
	ShardService       *shard.Service
	Aggregator         *search.Aggregator

	WorldHandler       *world.Handler
	SeriesHandler      *series.Handler
	BookHandler        *book.Handler
	CharacterHandler   *character.Handler
	MagicSystemHandler *magicsystem.Handler
	ShardHandler       *shard.Handler
	SearchHandler      *search.Handler
}

// New builds the container. Postgres is required; Redis and Elasticsearch
// failures degrade (no caching, no full-text search) rather than abort.
func New() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	c.Config = cfg
	logger.Info("configuration loaded", map[string]interface{}{
		"environment": cfg.App.Environment,
	})

	db := database.NewPostgresDB(&cfg.Database)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check: %w", err)
	}
	c.DB = db
	logger.Info("database connected", nil)

	redisCache := infracache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Ping(context.Background()); err != nil {
		logger.Warn("redis unavailable, running without cache", err)
	} else {
		c.Cache = redisCache
		c.Loader = pkgcache.NewLoader(redisCache, cfg.Cache.Prefix, cfg.Cache.TTL)
		logger.Info("redis connected", nil)
	}

	engine, err := essearch.NewEngine(&cfg.Search)
	if err != nil {
		logger.Warn("elasticsearch unavailable, full-text search disabled", err)
	} else if err := engine.Ping(context.Background()); err != nil {
		logger.Warn("elasticsearch unreachable, full-text search disabled", err)
	} else {
		c.Engine = engine
		logger.Info("search engine connected", nil)
	}

	c.initStores()
	c.initServices()
	c.initHandlers()

	logger.Info("container initialized", nil)
	return c, nil
}

func (c *Container) initStores() {
	pool := c.DB.Pool

	c.WorldStore = world.NewStore(pool)
	c.SeriesStore = series.NewStore(pool)
	c.BookStore = book.NewStore(pool)
	c.AppearanceStore = book.NewAppearanceStore(pool)
	c.CharacterStore = character.NewStore(pool)
	c.RelationshipStore = character.NewRelationshipStore(pool)
	c.MagicUseStore = character.NewMagicUseStore(pool)
	c.MagicSystemStore = magicsystem.NewStore(pool)
	c.ShardStore = shard.NewStore(pool)
	c.VesselStore = shard.NewVesselStore(pool)
}

func (c *Container) initServices() {
	c.WorldService = world.NewService(c.WorldStore, c.Loader)
	c.SeriesService = series.NewService(c.SeriesStore, c.Loader)
	c.MagicSystemService = magicsystem.NewService(c.MagicSystemStore, c.Loader)
	c.ShardService = shard.NewService(c.ShardStore, c.VesselStore, c.WorldStore, c.Loader)
	c.CharacterService = character.NewService(
		c.CharacterStore,
		c.RelationshipStore,
		c.MagicUseStore,
		c.MagicSystemStore,
		c.Loader,
	)
	c.BookService = book.NewService(c.BookStore, c.AppearanceStore, c.CharacterStore, c.Loader)

	c.Aggregator = search.NewAggregator(map[string]search.SearchFunc{
		"worlds":        search.Wrap(c.WorldStore),
		"series":        search.Wrap(c.SeriesStore),
		"books":         search.Wrap(c.BookStore),
		"characters":    search.Wrap(c.CharacterStore),
		"magic_systems": search.Wrap(c.MagicSystemStore),
		"shards":        search.Wrap(c.ShardStore),
	}, c.Config.Search.MaxResults)
}

func (c *Container) initHandlers() {
	p := c.Config.Pagination

	c.WorldHandler = world.NewHandler(c.WorldService, p)
	c.SeriesHandler = series.NewHandler(c.SeriesService, p)
	c.BookHandler = book.NewHandler(c.BookService, p)
	c.CharacterHandler = character.NewHandler(c.CharacterService, p)
	c.MagicSystemHandler = magicsystem.NewHandler(c.MagicSystemService, p)
	c.ShardHandler = shard.NewHandler(c.ShardService, p)
	c.SearchHandler = search.NewHandler(c.Aggregator, c.Engine, p)
}

// Cleanup releases infrastructure resources during shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
		logger.Info("database connections closed", nil)
	}
	if c.Cache != nil {
		if rc, ok := c.Cache.(*infracache.RedisCache); ok {
			if err := rc.Close(); err != nil {
				logger.Warn("redis close failed", err)
			} else {
				logger.Info("redis connections closed", nil)
			}
		}
	}
}
