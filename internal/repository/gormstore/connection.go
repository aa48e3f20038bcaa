package gormstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/dom/taskchat-backend/internal/domain"
	"github.com/dom/taskchat-backend/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models lists every table owned by the service, in dependency order.
func Models() []interface{} {
	return []interface{}{
		&domain.User{},
		&domain.Task{},
		&domain.Conversation{},
		&domain.Message{},
	}
}

// NewConnection opens the store named by databaseURL and creates missing
// tables. postgres:// and postgresql:// URLs (or key=value DSNs) use the
// postgres driver; sqlite:// URLs and file: DSNs use sqlite.
func NewConnection(databaseURL string, verbose bool) (*gorm.DB, error) {
	dialector, isSQLite, err := dialectorFor(databaseURL)
	if err != nil {
		return nil, err
	}

	logLevel := logger.Warn
	if verbose {
		logLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if isSQLite {
		// sqlite allows a single writer; serialize through one connection.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(Models()...); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	return db, nil
}

func dialectorFor(databaseURL string) (gorm.Dialector, bool, error) {
	switch {
	case databaseURL == "":
		return nil, false, fmt.Errorf("database url is empty")
	case strings.HasPrefix(databaseURL, "postgres://"),
		strings.HasPrefix(databaseURL, "postgresql://"),
		strings.Contains(databaseURL, "host="):
		return postgres.Open(databaseURL), false, nil
	case strings.HasPrefix(databaseURL, "sqlite:///"):
		return sqlite.Open(sqliteDSN(strings.TrimPrefix(databaseURL, "sqlite:///"))), true, nil
	case strings.HasPrefix(databaseURL, "sqlite://"):
		return sqlite.Open(sqliteDSN(strings.TrimPrefix(databaseURL, "sqlite://"))), true, nil
	case strings.HasPrefix(databaseURL, "file:"):
		return sqlite.Open(sqliteDSN(databaseURL)), true, nil
	default:
		return nil, false, fmt.Errorf("unsupported database url %q", databaseURL)
	}
}

func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:         NewUserRepository(db),
		Task:         NewTaskRepository(db),
		Conversation: NewConversationRepository(db),
		Message:      NewMessageRepository(db),
		Tx:           &transactor{db: db},
	}
}

type transactor struct {
	db *gorm.DB
}

func (t *transactor) WithinTransaction(ctx context.Context, fn func(repos *repository.Repositories) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
