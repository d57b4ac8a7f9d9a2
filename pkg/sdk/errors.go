package campus

import (
	"github.com/enayetsyl/industry-grade-project-format/internal/db"
	"github.com/enayetsyl/industry-grade-project-format/internal/domain"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound      = domain.ErrNotFound
	ErrInvalidID     = domain.ErrInvalidID
	ErrUnknownEntity = domain.ErrUnknownEntity
	ErrUnsupported   = db.ErrUnsupported
	ErrNotConnected  = db.ErrNotConnected
)
