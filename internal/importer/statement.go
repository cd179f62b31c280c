package importer

import (
	"encoding/csv"
	"fmt"
	"io"
)

// StatementParser parses the common European bank export: semicolon
// separated, header row, DD.MM.YYYY dates and 1.234,56 amounts.
type StatementParser struct{}

const (
	stmtNumFields = 4
	stmtColDate   = 0
	stmtColAmount = 1
	stmtColCparty = 2
	stmtColDesc   = 3
)

// Format returns the parser name.
func (p *StatementParser) Format() string { return "statement" }

// Parse reads a statement CSV and returns raw rows. Field values stay in
// display form; Convert normalizes them.
func (p *StatementParser) Parse(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = stmtNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading statement CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		rows = append(rows, Row{
			Date:         rec[stmtColDate],
			Amount:       rec[stmtColAmount],
			Counterparty: rec[stmtColCparty],
			Description:  rec[stmtColDesc],
		})
	}
	return rows, nil
}
