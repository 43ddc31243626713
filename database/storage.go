package database

import (
	"errors"

	"github.com/sahilchouksey/university-catalog/model"
)

// ErrNotFound is returned when a university id does not resolve.
var ErrNotFound = errors.New("record not found")

// Storage defines the interface that all database implementations must
// satisfy. Universities are handled as whole documents: reads return the
// full tree, writes replace it.
type Storage interface {
	// Lifecycle methods
	Init() error
	Close() error
	HealthCheck() error

	// University documents
	CreateUniversity(u *model.University) error
	GetUniversity(id string) (*model.University, error)
	ListUniversities(offset, limit int, search string) ([]model.University, int64, error)
	SearchUniversities(query string) ([]model.University, error)
	SaveUniversity(u *model.University) error
	DeleteUniversity(id string) error

	// Orphaned asset bookkeeping for the background sweeper
	AddOrphanAsset(o model.OrphanAsset) error
	ListOrphanAssets(limit int) ([]model.OrphanAsset, error)
	BumpOrphanAttempts(id uint) error
	RemoveOrphanAsset(id uint) error
}
