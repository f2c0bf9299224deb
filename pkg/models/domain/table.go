package domain

// ColumnType is the semantic type assigned to an uploaded column.
type ColumnType string

const (
	ColumnTypeDate        ColumnType = "date"
	ColumnTypeCurrency    ColumnType = "currency"
	ColumnTypePercentage  ColumnType = "percentage"
	ColumnTypeCount       ColumnType = "count"
	ColumnTypeCategorical ColumnType = "categorical"
	ColumnTypeText        ColumnType = "text"
)

// RawTable is an uploaded table as handed over by the CSV collaborator.
// All rows share the same column set; cells are kept as raw strings.
type RawTable struct {
	Columns []string
	Rows    []map[string]string
}

// Empty reports whether the table is structurally unusable.
func (t RawTable) Empty() bool {
	return len(t.Columns) == 0 || len(t.Rows) == 0
}

// ColumnProfile describes one column after type inference.
// Immutable once produced; Confidence is the fraction of sampled
// cells that matched the chosen type.
type ColumnProfile struct {
	Name         string
	InferredType ColumnType
	Confidence   float64
	SampleValues []string
}
