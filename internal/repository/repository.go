// Package repository is the data access layer over gorm.
package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a lookup by id or name matches no row.
var ErrNotFound = errors.New("record not found")

// Store gives typed access to every table.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

// New wraps an open gorm connection.
func New(db *gorm.DB) *Store {
	return &Store{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// DB exposes the underlying connection for callers that manage their own transactions.
func (s *Store) DB() *gorm.DB {
	return s.db
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
