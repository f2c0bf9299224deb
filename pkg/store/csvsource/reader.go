package csvsource

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/echolon-ai/echolon/pkg/models/domain"
)

// Read parses CSV data into a RawTable. The first record is the
// header; ragged rows are padded or truncated to the header width so
// the table invariant (all rows share the column set) holds. Returns
// domain.ErrEmptyInput when no header or no data rows exist.
func Read(r io.Reader) (domain.RawTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return domain.RawTable{}, domain.ErrEmptyInput
	}
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = strings.TrimSpace(name)
	}

	table := domain.RawTable{Columns: columns}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return domain.RawTable{}, fmt.Errorf("failed to read CSV row %d: %w", len(table.Rows)+2, err)
		}

		if allEmpty(record) {
			continue
		}

		row := make(map[string]string, len(columns))
		for i, column := range columns {
			if i < len(record) {
				row[column] = record[i]
			} else {
				row[column] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}

	if table.Empty() {
		return domain.RawTable{}, domain.ErrEmptyInput
	}

	return table, nil
}

func allEmpty(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
