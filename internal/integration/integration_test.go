package integration

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
	"go.uber.org/zap/zaptest"

	"checklist-assessment-service/internal/app"
	"checklist-assessment-service/internal/catalog"
	"checklist-assessment-service/internal/domain"
	"checklist-assessment-service/internal/infra/memory"
	pgstore "checklist-assessment-service/internal/infra/postgres"
	pgmigrations "checklist-assessment-service/internal/infra/postgres/migrations"
	infraredis "checklist-assessment-service/internal/infra/redis"
	"checklist-assessment-service/internal/quiz"
)

func importedCatalog() domain.Catalog {
	return domain.Catalog{
		ID:      "imported",
		Scoring: domain.PolicyPositionalDecay,
		Sections: []domain.Section{
			{
				Name:        "Consultation",
				TotalPoints: 6,
				Criteria: []domain.Criterion{
					{Description: "Checked itinerary", Points: 2, InputType: domain.InputBinary, Options: []string{"Yes", "No"}},
					{Description: "Risk discussion", Points: 4, InputType: domain.InputMultiple, Options: []string{"Thorough", "Partial", "None"}},
				},
			},
		},
	}
}

func TestAttemptSubmittedToPostgres(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	db := migrateDB(t, ctx, pgURL)
	defer db.Close()

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()
	catalogStore := pgstore.NewCatalogStore(pool)
	if err := catalogStore.ImportCatalog(ctx, importedCatalog()); err != nil {
		t.Fatalf("import catalog: %v", err)
	}

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	defer redisClient.Close()

	log := zaptest.NewLogger(t)
	loader := memory.FallbackLoader{memory.NewStaticCatalogLoader(catalog.Builtin()), catalogStore}
	catalogs := infraredis.NewCatalogRepository(redisClient, loader, 5*time.Minute, log)
	store := pgstore.NewSubmissionStore(db)
	submissions := app.NewSubmissionService(store, catalogs, catalog.TravelHealthID, log)
	attempts := infraredis.NewAttemptStore(redisClient, 5*time.Minute)
	service := app.NewQuizService(attempts, catalogs, submissions, quiz.Gate{}, catalog.TravelHealthID, log)

	view, err := service.Start(ctx, "imported")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := service.Begin(ctx, view.ID, domain.UserInfo{Name: "Alice"}); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := service.Answer(ctx, view.ID, 0, 0, "Yes"); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if _, err := service.Answer(ctx, view.ID, 0, 1, "Partial"); err != nil {
		t.Fatalf("answer: %v", err)
	}
	for i := 0; i < 2; i++ {
		if view, err = service.Advance(ctx, view.ID); err != nil {
			t.Fatalf("advance: %v", err)
		}
	}
	if view.Summary == nil || view.Summary.TotalScore != 4 {
		t.Fatalf("expected total 4 (2 + 55%% of 4 rounded), got %+v", view.Summary)
	}

	id, err := service.Submit(ctx, view.ID)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	rec, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.Name != "Alice" || rec.Email != domain.EmailNotProvided || rec.TotalScore != 4 {
		t.Fatalf("unexpected record %+v", rec)
	}

	list, err := store.List(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("list: %v %d", err, len(list))
	}
	if deleted, err := store.Delete(ctx, id); err != nil || !deleted {
		t.Fatalf("delete: %v %v", deleted, err)
	}
	if deleted, err := store.Delete(ctx, id); err != nil || deleted {
		t.Fatalf("second delete: %v %v", deleted, err)
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "quiz", "POSTGRES_PASSWORD": "quizpass", "POSTGRES_DB": "quizdb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://quiz:quizpass@%s:%s/quizdb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	url := fmt.Sprintf("redis://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

// postgres readiness can lag the listening port, so the first steps retry briefly.
func migrateDB(t *testing.T, ctx context.Context, dsn string) *bun.DB {
	t.Helper()
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	var err error
	for i := 0; i < 10; i++ {
		if err = migrator.Init(ctx); err == nil {
			break
		}
		time.Sleep(500 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("migrator init: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
