package books

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/yfndev/ybudget/internal/model"
	"github.com/yfndev/ybudget/internal/store"
)

const (
	transactionsFile = "transactions.csv"
	categoriesFile   = "categories.csv"
	donorsFile       = "donors.csv"
	projectsFile     = "projects.csv"
)

// Books holds one organization's entity sets as loaded from disk.
type Books struct {
	Transactions []model.Transaction
	Categories   []model.Category
	Donors       []model.Donor
	Projects     []model.Project
}

// Load reads all entity CSVs from the data directory. Missing files load as
// empty sets, so a freshly initialized directory works.
func Load(dataDir string) (*Books, error) {
	var b Books

	err := readFile(filepath.Join(dataDir, transactionsFile), txNumFields, func(rec []string) error {
		t, err := UnmarshalTransaction(rec)
		if err != nil {
			return err
		}
		b.Transactions = append(b.Transactions, t)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", transactionsFile, err)
	}

	err = readFile(filepath.Join(dataDir, categoriesFile), catNumFields, func(rec []string) error {
		c, err := UnmarshalCategory(rec)
		if err != nil {
			return err
		}
		b.Categories = append(b.Categories, c)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", categoriesFile, err)
	}

	err = readFile(filepath.Join(dataDir, donorsFile), donorNumFields, func(rec []string) error {
		d, err := UnmarshalDonor(rec)
		if err != nil {
			return err
		}
		b.Donors = append(b.Donors, d)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", donorsFile, err)
	}

	err = readFile(filepath.Join(dataDir, projectsFile), projNumFields, func(rec []string) error {
		p, err := UnmarshalProject(rec)
		if err != nil {
			return err
		}
		b.Projects = append(b.Projects, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", projectsFile, err)
	}

	return &b, nil
}

// Save writes all entity CSVs back to the data directory.
func Save(dataDir string, b *Books) error {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	txRows := make([][]string, len(b.Transactions))
	for i, t := range b.Transactions {
		txRows[i] = MarshalTransaction(t)
	}
	if err := writeFile(filepath.Join(dataDir, transactionsFile), TransactionHeader, txRows); err != nil {
		return err
	}

	catRows := make([][]string, len(b.Categories))
	for i, c := range b.Categories {
		catRows[i] = MarshalCategory(c)
	}
	if err := writeFile(filepath.Join(dataDir, categoriesFile), CategoryHeader, catRows); err != nil {
		return err
	}

	donorRows := make([][]string, len(b.Donors))
	for i, d := range b.Donors {
		donorRows[i] = MarshalDonor(d)
	}
	if err := writeFile(filepath.Join(dataDir, donorsFile), DonorHeader, donorRows); err != nil {
		return err
	}

	projRows := make([][]string, len(b.Projects))
	for i, p := range b.Projects {
		projRows[i] = MarshalProject(p)
	}
	return writeFile(filepath.Join(dataDir, projectsFile), ProjectHeader, projRows)
}

// Seed inserts the loaded books into a store.
func (b *Books) Seed(ctx context.Context, m *store.Memory) error {
	for _, t := range b.Transactions {
		if err := m.Transactions().Insert(ctx, t); err != nil {
			return err
		}
	}
	for _, c := range b.Categories {
		if err := m.Categories().Insert(ctx, c); err != nil {
			return err
		}
	}
	for _, d := range b.Donors {
		if err := m.Donors().Insert(ctx, d); err != nil {
			return err
		}
	}
	for _, p := range b.Projects {
		if err := m.Projects().Insert(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Snapshot reads an organization's current state out of a store into a
// Books value ready for Save.
func Snapshot(ctx context.Context, m *store.Memory, orgID uuid.UUID) (*Books, error) {
	txns, err := m.Transactions().List(ctx, orgID)
	if err != nil {
		return nil, err
	}
	cats, err := m.Categories().List(ctx, orgID)
	if err != nil {
		return nil, err
	}
	donors, err := m.Donors().List(ctx, orgID)
	if err != nil {
		return nil, err
	}
	projects, err := m.Projects().List(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return &Books{
		Transactions: txns,
		Categories:   cats,
		Donors:       donors,
		Projects:     projects,
	}, nil
}

func readFile(path string, numFields int, each func([]string) error) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := readRows(f, numFields)
	if err != nil {
		return err
	}
	for i, rec := range rows {
		if err := each(rec); err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
	}
	return nil
}

func writeFile(path, header string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := writeRows(f, header, rows); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
