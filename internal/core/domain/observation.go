package domain

import "fmt"

// CSV column names required for every observation row.
// Rows missing a value for any of these are not processed.
const (
	ColumnDocumentNum   = "DOCUMENT_NUM"
	ColumnWorkOrder     = "WORK_ORDER"
	ColumnControlUsed   = "CONTROL_USED"
	ColumnPointObserved = "PNT_OBSERVED"
	ColumnTownshipRange = "Township_Range"
	ColumnSection       = "Section"
	ColumnDateObserved  = "Date_Observed"
)

// RequiredColumns lists the CSV columns an observation row must provide.
func RequiredColumns() []string {
	return []string{
		ColumnDocumentNum,
		ColumnWorkOrder,
		ColumnControlUsed,
		ColumnPointObserved,
		ColumnTownshipRange,
		ColumnSection,
		ColumnDateObserved,
	}
}

// Observation represents a single VRS field observation of a survey monument.
// It is built from one row of the observation export CSV.
type Observation struct {
	// PointNumber identifies the observed survey point.
	PointNumber string

	// DocumentNum is the VRS observation document number.
	DocumentNum string

	// WorkOrder is the work order the observation was performed under.
	WorkOrder string

	// ControlUsed names the control network used for the observation.
	ControlUsed string

	// TownshipRange is the township and range of the point, as exported.
	TownshipRange string

	// Section is the section number of the point.
	Section string

	// DateObserved is the field observation date, as exported.
	DateObserved string

	// MonumentType describes the physical monument, looked up from the
	// point metadata list. Empty when the lookup found nothing.
	MonumentType string
}

// Validate checks that all required fields carry a value.
// Returns ErrMissingField naming the first empty column.
func (o Observation) Validate() error {
	fields := map[string]string{
		ColumnDocumentNum:   o.DocumentNum,
		ColumnWorkOrder:     o.WorkOrder,
		ColumnControlUsed:   o.ControlUsed,
		ColumnPointObserved: o.PointNumber,
		ColumnTownshipRange: o.TownshipRange,
		ColumnSection:       o.Section,
		ColumnDateObserved:  o.DateObserved,
	}
	for _, col := range RequiredColumns() {
		if fields[col] == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, col)
		}
	}
	return nil
}
