package cli

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"go.uber.org/zap"

	"checklist-assessment-service/internal/app"
	"checklist-assessment-service/internal/catalog"
	"checklist-assessment-service/internal/config"
	"checklist-assessment-service/internal/infra/memory"
	pgstore "checklist-assessment-service/internal/infra/postgres"
	redisstore "checklist-assessment-service/internal/infra/redis"
	"checklist-assessment-service/internal/infra/sqlite"
	"checklist-assessment-service/internal/quiz"
)

// runtime holds the storage backends selected by configuration.
type runtime struct {
	cfg         config.Config
	log         *zap.Logger
	submissions app.SubmissionRepository
	catalogs    app.CatalogRepository
	attempts    app.AttemptRepository
	closers     []func() error
}

func openRuntime(ctx context.Context, cfg config.Config, log *zap.Logger) (*runtime, error) {
	rt := &runtime{cfg: cfg, log: log}
	if err := rt.openSubmissions(ctx); err != nil {
		rt.Close()
		return nil, err
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		p, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			rt.Close()
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		pool = p
		rt.closers = append(rt.closers, func() error { p.Close(); return nil })
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		rt.closers = append(rt.closers, redisClient.Close)
	}

	loader, err := catalogLoader(cfg, pool)
	if err != nil {
		rt.Close()
		return nil, err
	}
	catalogTTL := config.TTLDuration(cfg.Catalog.TTL, 10*time.Minute)
	attemptTTL := config.TTLDuration(cfg.Attempt.TTL, config.TTLDuration(cfg.Redis.TTL, 2*time.Hour))
	if redisClient != nil {
		rt.catalogs = redisstore.NewCatalogRepository(redisClient, loader, catalogTTL, log)
		rt.attempts = redisstore.NewAttemptStore(redisClient, attemptTTL)
	} else {
		rt.catalogs = memory.NewCatalogRepository(loader, catalogTTL)
		rt.attempts = memory.NewAttemptStore(attemptTTL)
	}

	if _, err := rt.catalogs.GetCatalog(ctx, cfg.Catalog.ID); err != nil {
		rt.Close()
		return nil, fmt.Errorf("default catalog %q: %w", cfg.Catalog.ID, err)
	}
	return rt, nil
}

func (rt *runtime) openSubmissions(ctx context.Context) error {
	switch rt.cfg.Storage.Driver {
	case config.DriverSQLite:
		store, err := sqlite.Open(rt.cfg.SQLite.Path)
		if err != nil {
			return err
		}
		rt.submissions = store
		rt.closers = append(rt.closers, store.Close)
	case config.DriverPostgres:
		db := openBun(rt.cfg.Postgres.URL)
		rt.closers = append(rt.closers, db.Close)
		if err := migrateDB(ctx, db); err != nil {
			return err
		}
		rt.submissions = pgstore.NewSubmissionStore(db)
	case config.DriverMemory:
		rt.submissions = memory.NewSubmissionStore()
	default:
		return fmt.Errorf("unknown storage driver %q", rt.cfg.Storage.Driver)
	}
	rt.log.Info("submission storage ready", zap.String("driver", rt.cfg.Storage.Driver))
	return nil
}

// catalogLoader consults built-in and file catalogs first, then Postgres.
// A catalog file replaces a built-in catalog with the same id.
func catalogLoader(cfg config.Config, pool *pgxpool.Pool) (memory.CatalogLoader, error) {
	static := catalog.Builtin()
	if cfg.Catalog.File != "" {
		c, err := catalog.LoadFile(cfg.Catalog.File)
		if err != nil {
			return nil, err
		}
		static[c.ID] = c
	}
	loaders := memory.FallbackLoader{memory.NewStaticCatalogLoader(static)}
	if pool != nil {
		loaders = append(loaders, pgstore.NewCatalogStore(pool))
	}
	return loaders, nil
}

func (rt *runtime) services() (*app.SubmissionService, *app.AdminService, *app.QuizService, *app.Seeder) {
	submissions := app.NewSubmissionService(rt.submissions, rt.catalogs, rt.cfg.Catalog.ID, rt.log)
	admin := app.NewAdminService(rt.submissions, rt.cfg.Admin.Password, rt.log)
	gate := quiz.Gate{RequireAssessor: rt.cfg.RequireAssessor()}
	quizzes := app.NewQuizService(rt.attempts, rt.catalogs, submissions, gate, rt.cfg.Catalog.ID, rt.log)
	seeder := app.NewSeeder(submissions, rt.catalogs, rt.cfg.Catalog.ID)
	return submissions, admin, quizzes, seeder
}

// Close releases backends in reverse order of opening.
func (rt *runtime) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](); err != nil {
			rt.log.Warn("close failed", zap.Error(err))
		}
	}
	rt.closers = nil
}

func openBun(url string) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(url)))
	return bun.NewDB(sqldb, pgdialect.New())
}
