package persistence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/khoahotran/portfolio/internal/domain/contact"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

type StoreIntegrationTestSuite struct {
	suite.Suite
	dbPool         *pgxpool.Pool
	pgContainer    *postgres.PostgresContainer
	redisContainer testcontainers.Container
	rdb            *redis.Client
	testLogger     logger.Logger
	contactRepo    contact.Repository
}

func (s *StoreIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()
	s.testLogger = logger.NewNopLogger()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(1*time.Minute),
		),
	)
	if err != nil {
		s.T().Fatalf("Failed to start postgres container: %s", err)
	}
	s.pgContainer = pgContainer

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		s.T().Fatalf("Failed to get connection string: %s", err)
	}

	m, err := migrate.New("file://../../migrations", dsn)
	if err != nil {
		s.T().Fatalf("Failed to create migrate instance: %s", err)
	}
	if err := m.Up(); err != nil {
		s.T().Fatalf("Failed to run migrations: %s", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		s.T().Fatalf("Failed to create pgxpool: %s", err)
	}
	s.dbPool = pool
	s.contactRepo = NewPostgresContactRepo(s.dbPool, s.testLogger)

	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	if err != nil {
		s.T().Fatalf("Failed to start redis container: %s", err)
	}
	s.redisContainer = redisContainer

	endpoint, err := redisContainer.Endpoint(ctx, "")
	if err != nil {
		s.T().Fatalf("Failed to get redis endpoint: %s", err)
	}
	s.rdb = redis.NewClient(&redis.Options{Addr: endpoint})
}

func (s *StoreIntegrationTestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.rdb != nil {
		_ = s.rdb.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(context.Background()); err != nil {
			s.T().Fatalf("Failed to terminate postgres container: %s", err)
		}
	}
	if s.redisContainer != nil {
		if err := s.redisContainer.Terminate(context.Background()); err != nil {
			s.T().Fatalf("Failed to terminate redis container: %s", err)
		}
	}
}

func TestStoreIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode.")
	}
	suite.Run(t, new(StoreIntegrationTestSuite))
}

func (s *StoreIntegrationTestSuite) Test_Postgres_Append() {
	ctx := context.Background()
	sub := newSubmission(contact.NewUUIDv7Generator()())

	s.Require().NoError(s.contactRepo.Append(ctx, sub))

	var email string
	var createdAt time.Time
	err := s.dbPool.QueryRow(ctx, `SELECT email, created_at FROM contact_messages WHERE id = $1`, sub.ID).Scan(&email, &createdAt)
	s.Require().NoError(err)
	s.Equal(sub.Email, email)
	s.True(sub.Timestamp.Equal(createdAt))
}

func (s *StoreIntegrationTestSuite) Test_Postgres_DuplicateIDIsPersistenceError() {
	ctx := context.Background()
	sub := newSubmission(contact.NewUUIDv7Generator()())
	s.Require().NoError(s.contactRepo.Append(ctx, sub))

	err := s.contactRepo.Append(ctx, sub)

	s.ErrorIs(err, apperror.ErrPersistence)
	var appErr *apperror.AppError
	s.Require().ErrorAs(err, &appErr)
	s.ErrorIs(appErr.Cause(), contact.ErrDuplicateID)
}

func (s *StoreIntegrationTestSuite) Test_Postgres_ConcurrentAppends() {
	ctx := context.Background()
	gen := contact.NewUUIDv7Generator()

	const n = 20
	errs := make(chan error, n)
	for i := range n {
		go func() {
			errs <- s.contactRepo.Append(ctx, newSubmission(fmt.Sprintf("%s-%d", gen(), i)))
		}()
	}
	for range n {
		s.NoError(<-errs)
	}
}

func (s *StoreIntegrationTestSuite) Test_Redis_CachedResumeRepo() {
	ctx := context.Background()
	s.Require().NoError(s.rdb.Del(ctx, resumeCacheKey).Err())

	inner := &countingResumeRepo{inner: NewEmbeddedResumeRepo()}
	repo := NewCachedResumeRepo(inner, s.rdb, time.Minute, s.testLogger)

	first, err := repo.Load(ctx)
	s.Require().NoError(err)
	second, err := repo.Load(ctx)
	s.Require().NoError(err)

	s.Equal(1, inner.calls)
	s.Equal(first.Raw, second.Raw)

	ttl, err := s.rdb.TTL(ctx, resumeCacheKey).Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))
}

func (s *StoreIntegrationTestSuite) Test_Redis_CorruptEntryIsReloaded() {
	ctx := context.Background()
	s.Require().NoError(s.rdb.Set(ctx, resumeCacheKey, "not json", time.Minute).Err())

	inner := &countingResumeRepo{inner: NewEmbeddedResumeRepo()}
	repo := NewCachedResumeRepo(inner, s.rdb, time.Minute, s.testLogger)

	doc, err := repo.Load(ctx)
	s.Require().NoError(err)
	s.Equal("Purna Boyapati", doc.Basics.Name)
	s.Equal(1, inner.calls)

	cached, err := s.rdb.Get(ctx, resumeCacheKey).Bytes()
	s.Require().NoError(err)
	s.Equal(doc.Raw, cached)
}
