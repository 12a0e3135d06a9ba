// Package db はGORMによるデータベース接続を提供します（PostgreSQL / SQLite）。
package db

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	watchlistadapters "stock_watchlist/internal/feature/watchlist/adapters"
)

const (
	// DriverPostgres はPostgreSQLを使用します。
	DriverPostgres = "postgres"
	// DriverSQLite はSQLiteを使用します（ローカル開発・単一ノード向け）。
	DriverSQLite = "sqlite"

	defaultSQLitePath = "watchlist.db"
	connectTimeout    = 60 * time.Second
)

// retryInterval は接続リトライの間隔です。
var retryInterval = 3 * time.Second

// Config はデータベース接続設定です。
type Config struct {
	Driver     string
	User       string
	Password   string
	Name       string
	Host       string
	Port       string
	SSLMode    string
	SQLitePath string
}

// LoadConfigFromEnv は環境変数からデータベース設定を読み込みます。
func LoadConfigFromEnv() Config {
	cfg := Config{
		Driver:     os.Getenv("DB_DRIVER"),
		User:       os.Getenv("DB_USER"),
		Password:   os.Getenv("DB_PASSWORD"),
		Name:       os.Getenv("DB_NAME"),
		Host:       os.Getenv("DB_HOST"),
		Port:       os.Getenv("DB_PORT"),
		SSLMode:    os.Getenv("DB_SSLMODE"),
		SQLitePath: os.Getenv("SQLITE_PATH"),
	}
	if cfg.Driver == "" {
		cfg.Driver = DriverSQLite
	}
	if cfg.Port == "" {
		cfg.Port = "5432"
	}
	if cfg.SSLMode == "" {
		cfg.SSLMode = "disable"
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = defaultSQLitePath
	}
	return cfg
}

// BuildDSN はドライバに応じたDSN文字列を生成します。
func BuildDSN(cfg Config) string {
	if cfg.Driver == DriverSQLite {
		return cfg.SQLitePath
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
}

// ValidateDSN は接続前にPostgreSQLのDSNを検証します。
func ValidateDSN(dsn string) error {
	if _, err := pgx.ParseConfig(dsn); err != nil {
		return fmt.Errorf("invalid postgres dsn: %w", err)
	}
	return nil
}

// ConnectWithRetry は timeout に達するまで opener による接続を繰り返します。
func ConnectWithRetry(dsn string, timeout time.Duration, opener func(string) (*gorm.DB, error)) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err, "interval", retryInterval)
		time.Sleep(retryInterval)
	}
}

// OpenDB は設定に従ってデータベースに接続し、マイグレーションを実行します。
func OpenDB(cfg Config) (*gorm.DB, error) {
	var opener func(string) (*gorm.DB, error)
	switch cfg.Driver {
	case DriverPostgres:
		opener = func(dsn string) (*gorm.DB, error) {
			return gorm.Open(postgres.Open(dsn), &gorm.Config{})
		}
	case DriverSQLite:
		opener = func(dsn string) (*gorm.DB, error) {
			return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
		}
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}

	dsn := BuildDSN(cfg)
	if cfg.Driver == DriverPostgres {
		if err := ValidateDSN(dsn); err != nil {
			return nil, err
		}
	}

	db, err := ConnectWithRetry(dsn, connectTimeout, opener)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	slog.Info("DB connection successful", "driver", cfg.Driver)
	return db, nil
}

// Migrate はウォッチリスト関連のテーブルを作成・更新します。
func Migrate(db *gorm.DB) error {
	if db == nil {
		return errors.New("nil db")
	}
	if err := db.AutoMigrate(&watchlistadapters.SelectionModel{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
