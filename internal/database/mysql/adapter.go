package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/go-sql-driver/mysql"
	"github.com/xo/dburl"
)

type Adapter struct {
	db        *sql.DB
	conn      *sql.Conn
	qb        squirrel.StatementBuilderType
	currentDB string
}

// URL style ssl parameters mapped onto the driver's tls parameter.
var sslParams = strings.NewReplacer(
	"ssl-mode=REQUIRED", "tls=skip-verify",
	"ssl-mode=DISABLED", "tls=false",
	"ssl-mode=VERIFY_CA", "tls=true",
	"ssl-mode=VERIFY_IDENTITY", "tls=true",
	"sslmode=require", "tls=skip-verify",
	"sslmode=disable", "tls=false",
	"sslmode=verify-ca", "tls=true",
	"sslmode=verify-full", "tls=true",
)

func New() *Adapter {
	return &Adapter{
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

// ToDSN accepts either a mysql:// URL or a driver DSN and returns a driver DSN.
func ToDSN(url string) (string, error) {
	if !strings.Contains(url, "://") {
		return url, nil
	}

	u, err := dburl.Parse(sslParams.Replace(url))
	if err != nil {
		return "", fmt.Errorf("failed to parse connection URL: %w", err)
	}
	if u.Driver != "mysql" {
		return "", fmt.Errorf("not a MySQL URL: %s", u.Scheme)
	}
	return u.DSN, nil
}

func (m *Adapter) Connect(ctx context.Context, url string) error {
	dsn, err := ToDSN(url)
	if err != nil {
		return err
	}

	if idx := strings.Index(dsn, "/"); idx > 0 {
		dbPart := dsn[idx+1:]
		if qIdx := strings.Index(dbPart, "?"); qIdx >= 0 {
			dbPart = dbPart[:qIdx]
		}
		m.currentDB = dbPart
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return fmt.Errorf("failed to open MySQL connection: %w", err)
	}
	db.SetMaxOpenConns(2)
	db.SetConnMaxLifetime(15 * time.Minute)

	// FOREIGN_KEY_CHECKS is a session variable
	conn, err := db.Conn(ctx)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to open MySQL session: %w", err)
	}

	m.db = db
	m.conn = conn
	return nil
}

func (m *Adapter) Close() error {
	if m.conn != nil {
		m.conn.Close()
		m.conn = nil
	}
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

func (m *Adapter) Ping(ctx context.Context) error {
	if m.conn == nil {
		return fmt.Errorf("not connected")
	}
	return m.conn.PingContext(ctx)
}

func (m *Adapter) CurrentDatabase() string {
	return m.currentDB
}
