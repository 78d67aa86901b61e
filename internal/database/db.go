package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/iliyamo/task-tracker/internal/config"
)

// Open connects to MySQL using the configured coordinates, applies the pool
// limits from the config and verifies the connection with a bounded ping.
func Open(cfg config.Config) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn(cfg))
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// dsn builds the driver DSN. parseTime maps DATETIME columns onto time.Time
// and loc=UTC matches the UTC timestamps the services write.
func dsn(cfg config.Config) string {
	cred := cfg.DBUser
	if cfg.DBPass != "" {
		cred += ":" + cfg.DBPass
	}
	return fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		cred, cfg.DBHost, cfg.DBPort, cfg.DBName)
}
