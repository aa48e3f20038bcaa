package testutil

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dom/taskchat-backend/internal/api"
	"github.com/dom/taskchat-backend/internal/config"
	"github.com/dom/taskchat-backend/internal/repository"
	"github.com/dom/taskchat-backend/internal/repository/gormstore"
	"github.com/dom/taskchat-backend/internal/responder"
	"github.com/dom/taskchat-backend/internal/service"
	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB is a migrated database for one test. Container is set only for
// the PostgreSQL variant.
type TestDB struct {
	Container testcontainers.Container
	DB        *gorm.DB
	DSN       string
}

// NewTestDB opens a private in-memory sqlite database with the full schema.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	// A named shared-cache memory database lives as long as one connection
	// is open; pinning the pool to a single connection keeps it alive.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.New().String())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(gormstore.Models()...); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		sqlDB.Close()
	})

	return &TestDB{DB: db, DSN: dsn}
}

// NewPostgresTestDB starts a PostgreSQL testcontainer and connects to it.
// Skipped under -short.
func NewPostgresTestDB(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}

	ctx := context.Background()

	container, err := tcPostgres.Run(ctx,
		"postgres:15-alpine",
		tcPostgres.WithDatabase("test_taskchat"),
		tcPostgres.WithUsername("test"),
		tcPostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	testDB := &TestDB{Container: container}
	t.Cleanup(func() {
		testDB.Cleanup()
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	db, err := gorm.Open(gormPostgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(gormstore.Models()...); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	testDB.DB = db
	testDB.DSN = dsn
	return testDB
}

// Cleanup terminates the container, if any
func (tdb *TestDB) Cleanup() {
	if tdb.Container != nil {
		ctx := context.Background()
		tdb.Container.Terminate(ctx)
	}
}

// Truncate clears all tables for test isolation
func (tdb *TestDB) Truncate(t *testing.T) {
	t.Helper()

	// Children first so foreign keys hold on sqlite, which has no CASCADE truncate.
	tables := []string{
		"messages",
		"conversations",
		"tasks",
		"users",
	}

	for _, table := range tables {
		if err := tdb.DB.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			t.Logf("warning: failed to truncate %s: %v", table, err)
		}
	}
}

// TestConfig returns a configuration suitable for testing
func TestConfig() *config.Config {
	return &config.Config{
		Port:              "0", // Random port
		Environment:       "test",
		AllowedOrigins:    []string{"*"},
		DatabaseURL:       "sqlite://:memory:",
		JWTSecret:         "test-jwt-secret-key-for-testing-only",
		AccessTokenExpiry: 30 * time.Minute,
		BcryptCost:        4, // bcrypt.MinCost keeps hashing fast
		Responder:         config.ResponderRules,
		LLMModel:          "gemini-2.5-flash",
		LLMMaxTokens:      500,
		LLMTemperature:    0.7,
	}
}

// TestServer holds all components for integration testing
type TestServer struct {
	Server   *httptest.Server
	DB       *TestDB
	Repos    *repository.Repositories
	Services *service.Services
	Config   *config.Config
}

// NewTestServer creates a complete test server backed by in-memory sqlite
// and the rule-based responder.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	return NewTestServerWithResponder(t, responder.NewRuleResponder())
}

func NewTestServerWithResponder(t *testing.T, r responder.Responder) *TestServer {
	t.Helper()

	testDB := NewTestDB(t)
	cfg := TestConfig()

	repos := gormstore.NewRepositories(testDB.DB)
	services := service.NewServices(repos, cfg, r)
	router := api.NewRouter(services, cfg)

	server := httptest.NewServer(router)

	ts := &TestServer{
		Server:   server,
		DB:       testDB,
		Repos:    repos,
		Services: services,
		Config:   cfg,
	}

	t.Cleanup(func() {
		server.Close()
	})

	return ts
}

// BaseURL returns the test server's base URL
func (ts *TestServer) BaseURL() string {
	return ts.Server.URL
}

// APIURL returns the full API URL for a given path
func (ts *TestServer) APIURL(path string) string {
	return fmt.Sprintf("%s/api%s", ts.Server.URL, path)
}

// UserURL returns the API URL for a path under /api/{user_id}
func (ts *TestServer) UserURL(userID uuid.UUID, path string) string {
	return ts.APIURL("/" + userID.String() + path)
}

// WebSocketURL returns the chat WebSocket URL for userID with token
func (ts *TestServer) WebSocketURL(userID uuid.UUID, token string) string {
	wsURL := "ws" + strings.TrimPrefix(ts.Server.URL, "http")
	return fmt.Sprintf("%s/api/%s/chat/ws?token=%s", wsURL, userID, token)
}
