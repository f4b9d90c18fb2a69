package core

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type LogLevel int

const (
	LogLevelSilent LogLevel = iota + 1
	LogLevelError
	LogLevelWarn
	LogLevelInfo
)

// DatabaseManager owns the shared MySQL pool for a multi-tenant
// deployment. Each tenant lives in its own schema on the same server;
// GetDB checks a connection out of the pool and pins it to one schema
// for the duration of a request.
type DatabaseManager struct {
	SqlDB    *sql.DB
	LogLevel LogLevel
}

// New opens the shared pool. The DSN must carry host and credentials
// only, no schema: the schema is chosen per request.
func New(dsn string, maxConnection int) (*DatabaseManager, error) {
	sqlDB, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open pool: %w", err)
	}

	sqlDB.SetMaxOpenConns(maxConnection)
	sqlDB.SetMaxIdleConns(maxConnection)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping pool: %w", err)
	}

	return &DatabaseManager{SqlDB: sqlDB}, nil
}

// resolveSchema maps a request hostname to its tenant schema. The
// first hostname label is the tenant ("matriz.frigotec.com.br" ->
// "matriz"). Local development has no tenant hostname, so "localhost"
// falls back to the schema named in the DSN env var.
func resolveSchema(hostname, dsn string) string {
	if hostname != "localhost" {
		label, _, _ := strings.Cut(hostname, ".")
		return label
	}

	withoutQuery, _, _ := strings.Cut(dsn, "?")
	segments := strings.Split(withoutQuery, "/")
	return segments[len(segments)-1]
}

func (dm *DatabaseManager) gormLogLevel() logger.LogLevel {
	switch dm.LogLevel {
	case LogLevelSilent:
		return logger.Silent
	case LogLevelError:
		return logger.Error
	case LogLevelWarn:
		return logger.Warn
	case LogLevelInfo:
		return logger.Info
	default:
		// The zero value means nobody configured a level. Be loud
		// rather than silently silent.
		return logger.Info
	}
}

// GetDB returns a *gorm.DB pinned to a single pooled connection with
// `USE schema` already applied. GORM must not wander back to the pool:
// another pooled connection would still be on whatever schema it used
// last. The caller owns the returned conn and must Close it.
func (dm *DatabaseManager) GetDB(ctx context.Context, schema string) (*gorm.DB, *sql.Conn, error) {
	schema = resolveSchema(schema, os.Getenv("DSN"))

	conn, err := dm.SqlDB.Conn(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get conn: %w", err)
	}
	ok := false
	defer func() {
		if !ok {
			conn.Close()
		}
	}()

	if _, err := conn.ExecContext(ctx, "USE `"+schema+"`"); err != nil {
		return nil, nil, fmt.Errorf("failed to use schema %s: %w", schema, err)
	}

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: conn}), &gorm.Config{
		Logger: logger.Default.LogMode(dm.gormLogLevel()),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open gorm: %w", err)
	}

	ok = true
	return db, conn, nil
}

// Exec runs fn against one tenant schema and releases the connection
// afterwards. Batch jobs that visit every tenant use this instead of
// juggling conns themselves.
func (dm *DatabaseManager) Exec(ctx context.Context, schema string, fn func(db *gorm.DB) error) error {
	db, conn, err := dm.GetDB(ctx, schema)
	if err != nil {
		return err
	}
	defer conn.Close()

	return fn(db)
}

// GetAllDatabases lists the tenant schemas on the server, skipping the
// MySQL system databases.
func (dm *DatabaseManager) GetAllDatabases(ctx context.Context) ([]string, error) {
	rows, err := dm.SqlDB.QueryContext(ctx, "SHOW DATABASES")
	if err != nil {
		return nil, fmt.Errorf("failed to query databases: %w", err)
	}
	defer rows.Close()

	var databases []string
	for rows.Next() {
		var db string
		if err := rows.Scan(&db); err != nil {
			return nil, fmt.Errorf("failed to scan database name: %w", err)
		}

		switch db {
		case "information_schema", "mysql", "performance_schema", "sys":
			continue
		}
		databases = append(databases, db)
	}

	return databases, nil
}

func (dm *DatabaseManager) Close() error {
	return dm.SqlDB.Close()
}
