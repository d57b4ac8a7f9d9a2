package listing

import (
	"github.com/enayetsyl/industry-grade-project-format/internal/domain/query"
)

// Source executes list specs for one entity's rows.
type Source[T any] interface {
	query.Source[T]
}
