// Package importer is the CSV boundary for bank statements. Parsers produce
// raw rows of free-text fields; Convert runs them through the normalizer to
// build candidate processed transactions.
package importer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/yfndev/ybudget/internal/model"
	"github.com/yfndev/ybudget/internal/normalize"
)

// Row is one statement line before normalization: date and amount still in
// their locale display forms.
type Row struct {
	Date         string
	Amount       string
	Counterparty string
	Description  string
}

// Parser converts a bank CSV file into raw rows.
type Parser interface {
	Parse(r io.Reader) ([]Row, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&StatementParser{})
	return r
}

// Convert normalizes raw rows into processed, unassigned transactions for
// the organization. Rows with malformed dates or amounts are absorbed as
// warnings, never errors: the operator fixes the statement and re-imports.
func Convert(rows []Row, orgID uuid.UUID) ([]model.Transaction, []string) {
	var txns []model.Transaction
	var warnings []string

	for i, row := range rows {
		iso := normalize.DisplayToISO(row.Date)
		if iso == "" {
			warnings = append(warnings, fmt.Sprintf("row %d: unreadable date %q", i+1, row.Date))
			continue
		}
		date, _ := normalize.ParseISO(iso)

		amount, ok := normalize.ParseAmount(row.Amount)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("row %d: unreadable amount %q", i+1, row.Amount))
			continue
		}

		txns = append(txns, model.Transaction{
			ID:             uuid.New(),
			OrganizationID: orgID,
			Date:           date,
			Amount:         amount,
			Status:         model.StatusProcessed,
			Counterparty:   row.Counterparty,
			Description:    row.Description,
		})
	}
	return txns, warnings
}

// importDir is the subdirectory for statement CSVs awaiting import.
const importDir = "import"

// processedDir is the subdirectory for statements already imported.
const processedDir = "import/processed"

// FileInfo describes a CSV file in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// Scan returns CSV files in <dataDir>/import/.
func Scan(dataDir string) ([]FileInfo, error) {
	dir := filepath.Join(dataDir, importDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves a statement from import/ to import/processed/.
func MarkProcessed(dataDir, fileName string) error {
	src := filepath.Join(dataDir, importDir, fileName)
	dstDir := filepath.Join(dataDir, processedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}
