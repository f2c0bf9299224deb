package domain

import "errors"

// ErrEmptyInput is the only fatal condition in the engine: a table with
// no rows or no columns. Everything else degrades into warnings.
var ErrEmptyInput = errors.New("input table has no rows or columns")

// WarningKind classifies a recoverable analysis condition.
type WarningKind string

const (
	WarnSchemaAmbiguous      WarningKind = "schema_ambiguous"
	WarnUnmappableColumn     WarningKind = "unmappable_column"
	WarnMissingTimeDimension WarningKind = "missing_time_dimension"
	WarnDivisionUndefined    WarningKind = "division_undefined"
	WarnDriverOutOfBounds    WarningKind = "driver_out_of_bounds"
)

// Warning is a non-fatal diagnostic surfaced alongside results.
type Warning struct {
	Kind   WarningKind
	Column string // source column, when the warning is column-scoped
	Detail string
}
