package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// GormRepo is the single data-access gate for the domain services. It is
// injected explicitly instead of living behind a package-level handle so
// tests can point it at an in-memory store.
type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}

var (
	// ErrInsufficientStock is returned when a guarded stock decrement
	// matches no row, i.e. another checkout got there first.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrStatusConflict is returned when a guarded status update matches no
	// row, i.e. the order moved concurrently.
	ErrStatusConflict = errors.New("order status changed concurrently")
)

// IsDuplicate detects unique-constraint violations across the postgres and
// sqlite drivers, with a string fallback for drivers that do not translate.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
