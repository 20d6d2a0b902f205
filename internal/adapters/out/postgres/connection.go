// Package postgres opens the GORM connection used by the PostgreSQL adapters.
//
// The connection goes through database/sql with the lib/pq driver:
//
//	db, err := postgres.Open(postgres.DSN{Host: "localhost", Port: "5432", User: "checkout",
//	    Password: "secret", Name: "checkout", SSLMode: "disable"})
//	if err != nil {
//	    return err
//	}
//	if err = orderrepo.Migrate(db); err != nil {
//	    return err
//	}
//	repo := orderrepo.NewGormOrderRepository(db)
package postgres

import (
	"fmt"
	"net/url"

	_ "github.com/lib/pq"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// driverName is the database/sql name lib/pq registers itself under.
const driverName = "postgres"

// DSN holds the connection settings read from configuration.
type DSN struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// String renders a lib/pq URL. The password is escaped.
func (d DSN) String() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%s", d.Host, d.Port),
		Path:   d.Name,
	}
	if d.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": []string{d.SSLMode}}.Encode()
	}
	return u.String()
}

// Open connects with GORM's postgres dialect on top of lib/pq.
func Open(dsn DSN) (*gorm.DB, error) {
	return OpenURL(dsn.String())
}

// OpenURL is Open for an already rendered connection string.
func OpenURL(connString string) (*gorm.DB, error) {
	db, err := gorm.Open(pgdriver.New(pgdriver.Config{
		DriverName: driverName,
		DSN:        connString,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return db, nil
}
