// Package books persists the organization's entity sets as CSV files in the
// data directory: transactions.csv, categories.csv, donors.csv,
// projects.csv.
package books

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yfndev/ybudget/internal/model"
)

const dateFormat = "2006-01-02"

// TransactionHeader is the CSV header for transactions.csv.
const TransactionHeader = "id,organization_id,date,amount,status,counterparty,description,project_id,category_id,donor_id,matched_transaction_id"

const (
	txNumFields = 11
	txColID     = 0
	txColOrg    = 1
	txColDate   = 2
	txColAmount = 3
	txColStatus = 4
	txColCparty = 5
	txColDesc   = 6
	txColProj   = 7
	txColCat    = 8
	txColDonor  = 9
	txColMatch  = 10
)

// MarshalTransaction converts a Transaction to a CSV row.
func MarshalTransaction(t model.Transaction) []string {
	row := make([]string, txNumFields)
	row[txColID] = t.ID.String()
	row[txColOrg] = t.OrganizationID.String()
	row[txColDate] = t.Date.Format(dateFormat)
	row[txColAmount] = t.Amount.String()
	row[txColStatus] = string(t.Status)
	row[txColCparty] = t.Counterparty
	row[txColDesc] = t.Description
	row[txColProj] = optionalID(t.ProjectID)
	row[txColCat] = optionalID(t.CategoryID)
	row[txColDonor] = optionalID(t.DonorID)
	row[txColMatch] = optionalID(t.MatchedTransactionID)
	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != txNumFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", txNumFields, len(record))
	}

	id, err := uuid.Parse(record[txColID])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing id %q: %w", record[txColID], err)
	}
	org, err := uuid.Parse(record[txColOrg])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing organization_id %q: %w", record[txColOrg], err)
	}
	date, err := time.Parse(dateFormat, record[txColDate])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", record[txColDate], err)
	}
	amount, err := decimal.NewFromString(record[txColAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", record[txColAmount], err)
	}
	status := model.TransactionStatus(record[txColStatus])
	if !status.Valid() {
		return model.Transaction{}, fmt.Errorf("unknown status %q", record[txColStatus])
	}

	project, err := parseOptionalID(record[txColProj])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing project_id: %w", err)
	}
	category, err := parseOptionalID(record[txColCat])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing category_id: %w", err)
	}
	donor, err := parseOptionalID(record[txColDonor])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing donor_id: %w", err)
	}
	match, err := parseOptionalID(record[txColMatch])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing matched_transaction_id: %w", err)
	}

	return model.Transaction{
		ID:                   id,
		OrganizationID:       org,
		Date:                 date,
		Amount:               amount,
		Status:               status,
		Counterparty:         record[txColCparty],
		Description:          record[txColDesc],
		ProjectID:            project,
		CategoryID:           category,
		DonorID:              donor,
		MatchedTransactionID: match,
	}, nil
}

// CategoryHeader is the CSV header for categories.csv.
const CategoryHeader = "id,organization_id,name,parent_id,taxsphere"

const (
	catNumFields = 5
	catColID     = 0
	catColOrg    = 1
	catColName   = 2
	catColParent = 3
	catColSphere = 4
)

// MarshalCategory converts a Category to a CSV row.
func MarshalCategory(c model.Category) []string {
	row := make([]string, catNumFields)
	row[catColID] = c.ID.String()
	row[catColOrg] = c.OrganizationID.String()
	row[catColName] = c.Name
	row[catColParent] = optionalID(c.ParentID)
	row[catColSphere] = string(c.TaxSphere)
	return row
}

// UnmarshalCategory converts a CSV row to a Category.
func UnmarshalCategory(record []string) (model.Category, error) {
	if len(record) != catNumFields {
		return model.Category{}, fmt.Errorf("expected %d fields, got %d", catNumFields, len(record))
	}

	id, err := uuid.Parse(record[catColID])
	if err != nil {
		return model.Category{}, fmt.Errorf("parsing id %q: %w", record[catColID], err)
	}
	org, err := uuid.Parse(record[catColOrg])
	if err != nil {
		return model.Category{}, fmt.Errorf("parsing organization_id %q: %w", record[catColOrg], err)
	}
	parent, err := parseOptionalID(record[catColParent])
	if err != nil {
		return model.Category{}, fmt.Errorf("parsing parent_id: %w", err)
	}
	sphere := model.TaxSphere(record[catColSphere])
	if !sphere.Valid() {
		return model.Category{}, fmt.Errorf("unknown taxsphere %q", record[catColSphere])
	}

	return model.Category{
		ID:             id,
		OrganizationID: org,
		Name:           record[catColName],
		ParentID:       parent,
		TaxSphere:      sphere,
	}, nil
}

// DonorHeader is the CSV header for donors.csv. Allowed tax spheres are
// semicolon-separated.
const DonorHeader = "id,organization_id,name,allowed_taxspheres"

const (
	donorNumFields  = 4
	donorColID      = 0
	donorColOrg     = 1
	donorColName    = 2
	donorColSpheres = 3
)

// MarshalDonor converts a Donor to a CSV row.
func MarshalDonor(d model.Donor) []string {
	row := make([]string, donorNumFields)
	row[donorColID] = d.ID.String()
	row[donorColOrg] = d.OrganizationID.String()
	row[donorColName] = d.Name

	spheres := make([]string, len(d.AllowedTaxSpheres))
	for i, s := range d.AllowedTaxSpheres {
		spheres[i] = string(s)
	}
	row[donorColSpheres] = strings.Join(spheres, ";")
	return row
}

// UnmarshalDonor converts a CSV row to a Donor.
func UnmarshalDonor(record []string) (model.Donor, error) {
	if len(record) != donorNumFields {
		return model.Donor{}, fmt.Errorf("expected %d fields, got %d", donorNumFields, len(record))
	}

	id, err := uuid.Parse(record[donorColID])
	if err != nil {
		return model.Donor{}, fmt.Errorf("parsing id %q: %w", record[donorColID], err)
	}
	org, err := uuid.Parse(record[donorColOrg])
	if err != nil {
		return model.Donor{}, fmt.Errorf("parsing organization_id %q: %w", record[donorColOrg], err)
	}

	var spheres []model.TaxSphere
	if record[donorColSpheres] != "" {
		for _, s := range strings.Split(record[donorColSpheres], ";") {
			sphere := model.TaxSphere(s)
			if !sphere.Valid() {
				return model.Donor{}, fmt.Errorf("unknown taxsphere %q", s)
			}
			spheres = append(spheres, sphere)
		}
	}

	return model.Donor{
		ID:                id,
		OrganizationID:    org,
		Name:              record[donorColName],
		AllowedTaxSpheres: spheres,
	}, nil
}

// ProjectHeader is the CSV header for projects.csv.
const ProjectHeader = "id,organization_id,name,parent_id"

const (
	projNumFields = 4
	projColID     = 0
	projColOrg    = 1
	projColName   = 2
	projColParent = 3
)

// MarshalProject converts a Project to a CSV row.
func MarshalProject(p model.Project) []string {
	row := make([]string, projNumFields)
	row[projColID] = p.ID.String()
	row[projColOrg] = p.OrganizationID.String()
	row[projColName] = p.Name
	row[projColParent] = optionalID(p.ParentID)
	return row
}

// UnmarshalProject converts a CSV row to a Project.
func UnmarshalProject(record []string) (model.Project, error) {
	if len(record) != projNumFields {
		return model.Project{}, fmt.Errorf("expected %d fields, got %d", projNumFields, len(record))
	}

	id, err := uuid.Parse(record[projColID])
	if err != nil {
		return model.Project{}, fmt.Errorf("parsing id %q: %w", record[projColID], err)
	}
	org, err := uuid.Parse(record[projColOrg])
	if err != nil {
		return model.Project{}, fmt.Errorf("parsing organization_id %q: %w", record[projColOrg], err)
	}
	parent, err := parseOptionalID(record[projColParent])
	if err != nil {
		return model.Project{}, fmt.Errorf("parsing parent_id: %w", err)
	}

	return model.Project{
		ID:             id,
		OrganizationID: org,
		Name:           record[projColName],
		ParentID:       parent,
	}, nil
}

func optionalID(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}
	return id.String()
}

func parseOptionalID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(s)
}

func readRows(r io.Reader, numFields int) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	// Skip header row.
	return records[1:], nil
}

func writeRows(w io.Writer, header string, rows [][]string) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}
