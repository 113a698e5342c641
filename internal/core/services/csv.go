package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cadastral-labs/pointhist-cli/internal/core/domain"
)

// ObservationRow is one parsed row of a VRS observation export.
// Err carries domain.ErrMissingField when the row lacks a required value;
// such rows are skipped by the append pipeline, not processed.
type ObservationRow struct {
	// Line is the 1-based line number in the CSV, header included.
	Line int

	Observation domain.Observation

	Err error
}

// ReadObservations parses a VRS observation export. The reader is expected
// to be UTF-8; a leading byte order mark is tolerated. Header names and
// cell values are trimmed of surrounding whitespace. Entirely blank rows
// are dropped without a trace.
func ReadObservations(r io.Reader) ([]ObservationRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		columns[strings.TrimSpace(name)] = i
	}

	var rows []ObservationRow
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read CSV line %d: %w", line, err)
		}

		if isBlankRow(record) {
			continue
		}

		cell := func(column string) string {
			idx, ok := columns[column]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		obs := domain.Observation{
			PointNumber:   cell(domain.ColumnPointObserved),
			DocumentNum:   cell(domain.ColumnDocumentNum),
			WorkOrder:     cell(domain.ColumnWorkOrder),
			ControlUsed:   cell(domain.ColumnControlUsed),
			TownshipRange: cell(domain.ColumnTownshipRange),
			Section:       cell(domain.ColumnSection),
			DateObserved:  cell(domain.ColumnDateObserved),
		}
		rows = append(rows, ObservationRow{
			Line:        line,
			Observation: obs,
			Err:         obs.Validate(),
		})
	}

	return rows, nil
}

// ReadObservationsFile parses the CSV at path.
func ReadObservationsFile(path string) ([]ObservationRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open CSV file: %w", err)
	}
	defer f.Close()

	return ReadObservations(f)
}

func isBlankRow(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
