package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yfndev/ybudget/internal/model"
)

const sampleStatement = `date;amount;counterparty;description
24.03.2025;1.250,00;City Foundation;Q1 grant installment
25.03.2025;-89,90;Office Supplies GmbH;printer paper
26.03.2025;0,00;Bank;interest settlement
`

func TestStatementParser_Parse(t *testing.T) {
	p := &StatementParser{}
	rows, err := p.Parse(strings.NewReader(sampleStatement))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "24.03.2025", rows[0].Date)
	assert.Equal(t, "1.250,00", rows[0].Amount)
	assert.Equal(t, "City Foundation", rows[0].Counterparty)
	assert.Equal(t, "Q1 grant installment", rows[0].Description)
}

func TestStatementParser_HeaderOnly(t *testing.T) {
	p := &StatementParser{}
	rows, err := p.Parse(strings.NewReader("date;amount;counterparty;description\n"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestConvert(t *testing.T) {
	org := uuid.New()
	rows := []Row{
		{Date: "24.03.2025", Amount: "1.250,00", Counterparty: "City Foundation", Description: "grant"},
		{Date: "25.03.2025", Amount: "-89,90", Counterparty: "Office Supplies GmbH", Description: "paper"},
	}

	txns, warnings := Convert(rows, org)
	require.Empty(t, warnings)
	require.Len(t, txns, 2)

	want, _ := decimal.NewFromString("1250")
	assert.True(t, txns[0].Amount.Equal(want))
	assert.Equal(t, time.Date(2025, 3, 24, 0, 0, 0, 0, time.UTC), txns[0].Date)
	assert.Equal(t, model.StatusProcessed, txns[0].Status)
	assert.Equal(t, org, txns[0].OrganizationID)
	assert.Equal(t, uuid.Nil, txns[0].CategoryID, "imported transactions start unassigned")
	assert.True(t, txns[1].Amount.IsNegative())
}

func TestConvert_MalformedRowsBecomeWarnings(t *testing.T) {
	rows := []Row{
		{Date: "99.99.2025", Amount: "10,00"},
		{Date: "24.03.2025", Amount: "not-money"},
		{Date: "24.03.2025", Amount: "10,00"},
	}

	txns, warnings := Convert(rows, uuid.New())
	assert.Len(t, txns, 1)
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "row 1")
	assert.Contains(t, warnings[1], "row 2")
}

func TestScanAndMarkProcessed(t *testing.T) {
	dataDir := t.TempDir()
	importPath := filepath.Join(dataDir, "import")
	require.NoError(t, os.MkdirAll(importPath, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(importPath, "march.csv"), []byte(sampleStatement), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(importPath, "notes.txt"), []byte("ignore"), 0o644))

	files, err := Scan(dataDir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "march.csv", files[0].Name)

	require.NoError(t, MarkProcessed(dataDir, "march.csv"))

	files, err = Scan(dataDir)
	require.NoError(t, err)
	assert.Empty(t, files)

	_, err = os.Stat(filepath.Join(importPath, "processed", "march.csv"))
	assert.NoError(t, err)
}

func TestScan_MissingDirIsEmpty(t *testing.T) {
	files, err := Scan(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r.Get("statement"))
	assert.NotNil(t, r.Get("STATEMENT"))
	assert.Nil(t, r.Get("unknown"))

	assert.Panics(t, func() { r.Register(&StatementParser{}) })
}
