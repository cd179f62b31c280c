package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/yfndev/ybudget/internal/errs"
	"github.com/yfndev/ybudget/internal/model"
)

// Memory is an in-memory document store: maps by id behind one mutex.
// Writes are serialized, reads hand out value copies, so callers always see
// a consistent snapshot and never alias store-internal state.
type Memory struct {
	mu           sync.RWMutex
	transactions map[uuid.UUID]model.Transaction
	categories   map[uuid.UUID]model.Category
	donors       map[uuid.UUID]model.Donor
	projects     map[uuid.UUID]model.Project
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		transactions: make(map[uuid.UUID]model.Transaction),
		categories:   make(map[uuid.UUID]model.Category),
		donors:       make(map[uuid.UUID]model.Donor),
		projects:     make(map[uuid.UUID]model.Project),
	}
}

// guard is the single tenant-isolation check. Every record leaving the
// store passes through it; an organization mismatch is AccessDenied, never
// silently filtered.
func guard(entity string, recordOrg, callerOrg, id uuid.UUID) error {
	if recordOrg != callerOrg {
		return &errs.AccessDeniedError{Entity: entity, ID: id}
	}
	return nil
}

// Transactions returns the transaction store view.
func (m *Memory) Transactions() Transactions { return &memTransactions{m} }

// Categories returns the category store view.
func (m *Memory) Categories() Categories { return &memCategories{m} }

// Donors returns the donor store view.
func (m *Memory) Donors() Donors { return &memDonors{m} }

// Projects returns the project store view.
func (m *Memory) Projects() Projects { return &memProjects{m} }

// ProjectNamer returns the batch name resolver over projects.
func (m *Memory) ProjectNamer() Namer { return &memProjects{m} }

// CategoryNamer returns the batch name resolver over categories.
func (m *Memory) CategoryNamer() Namer { return &memCategories{m} }

type memTransactions struct{ m *Memory }

func (s *memTransactions) Get(_ context.Context, orgID, id uuid.UUID) (model.Transaction, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	t, ok := s.m.transactions[id]
	if !ok {
		return model.Transaction{}, &errs.NotFoundError{Entity: "transaction", ID: id}
	}
	if err := guard("transaction", t.OrganizationID, orgID, id); err != nil {
		return model.Transaction{}, err
	}
	return t, nil
}

func (s *memTransactions) List(_ context.Context, orgID uuid.UUID) ([]model.Transaction, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	var out []model.Transaction
	for _, t := range s.m.transactions {
		if t.OrganizationID == orgID {
			out = append(out, t)
		}
	}
	sortTransactions(out)
	return out, nil
}

func (s *memTransactions) Insert(_ context.Context, t model.Transaction) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	s.m.transactions[t.ID] = t
	return nil
}

func (s *memTransactions) Patch(_ context.Context, orgID, id uuid.UUID, p TransactionPatch) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	t, ok := s.m.transactions[id]
	if !ok {
		return &errs.NotFoundError{Entity: "transaction", ID: id}
	}
	if err := guard("transaction", t.OrganizationID, orgID, id); err != nil {
		return err
	}

	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Counterparty != nil {
		t.Counterparty = *p.Counterparty
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.ProjectID != nil {
		t.ProjectID = *p.ProjectID
	}
	if p.CategoryID != nil {
		t.CategoryID = *p.CategoryID
	}
	if p.DonorID != nil {
		t.DonorID = *p.DonorID
	}
	if p.MatchedTransactionID != nil {
		t.MatchedTransactionID = *p.MatchedTransactionID
	}

	s.m.transactions[id] = t
	return nil
}

func (s *memTransactions) Delete(_ context.Context, orgID, id uuid.UUID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	t, ok := s.m.transactions[id]
	if !ok {
		return &errs.NotFoundError{Entity: "transaction", ID: id}
	}
	if err := guard("transaction", t.OrganizationID, orgID, id); err != nil {
		return err
	}
	delete(s.m.transactions, id)
	return nil
}

type memCategories struct{ m *Memory }

func (s *memCategories) Get(_ context.Context, orgID, id uuid.UUID) (model.Category, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	c, ok := s.m.categories[id]
	if !ok {
		return model.Category{}, &errs.NotFoundError{Entity: "category", ID: id}
	}
	if err := guard("category", c.OrganizationID, orgID, id); err != nil {
		return model.Category{}, err
	}
	return c, nil
}

func (s *memCategories) List(_ context.Context, orgID uuid.UUID) ([]model.Category, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	var out []model.Category
	for _, c := range s.m.categories {
		if c.OrganizationID == orgID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *memCategories) Insert(_ context.Context, c model.Category) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	s.m.categories[c.ID] = c
	return nil
}

// Names resolves a batch of category ids to display names in one call.
func (s *memCategories) Names(_ context.Context, orgID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	names := make(map[uuid.UUID]string, len(ids))
	for _, id := range ids {
		if c, ok := s.m.categories[id]; ok && c.OrganizationID == orgID {
			names[id] = c.Name
		}
	}
	return names, nil
}

type memDonors struct{ m *Memory }

func (s *memDonors) Get(_ context.Context, orgID, id uuid.UUID) (model.Donor, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	d, ok := s.m.donors[id]
	if !ok {
		return model.Donor{}, &errs.NotFoundError{Entity: "donor", ID: id}
	}
	if err := guard("donor", d.OrganizationID, orgID, id); err != nil {
		return model.Donor{}, err
	}
	return copyDonor(d), nil
}

func (s *memDonors) List(_ context.Context, orgID uuid.UUID) ([]model.Donor, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	var out []model.Donor
	for _, d := range s.m.donors {
		if d.OrganizationID == orgID {
			out = append(out, copyDonor(d))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *memDonors) Insert(_ context.Context, d model.Donor) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	s.m.donors[d.ID] = copyDonor(d)
	return nil
}

type memProjects struct{ m *Memory }

func (s *memProjects) Get(_ context.Context, orgID, id uuid.UUID) (model.Project, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	p, ok := s.m.projects[id]
	if !ok {
		return model.Project{}, &errs.NotFoundError{Entity: "project", ID: id}
	}
	if err := guard("project", p.OrganizationID, orgID, id); err != nil {
		return model.Project{}, err
	}
	return p, nil
}

func (s *memProjects) List(_ context.Context, orgID uuid.UUID) ([]model.Project, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	var out []model.Project
	for _, p := range s.m.projects {
		if p.OrganizationID == orgID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *memProjects) Insert(_ context.Context, p model.Project) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	s.m.projects[p.ID] = p
	return nil
}

// Names resolves a batch of project ids to display names in one call.
func (s *memProjects) Names(_ context.Context, orgID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	names := make(map[uuid.UUID]string, len(ids))
	for _, id := range ids {
		if p, ok := s.m.projects[id]; ok && p.OrganizationID == orgID {
			names[id] = p.Name
		}
	}
	return names, nil
}

func copyDonor(d model.Donor) model.Donor {
	spheres := make([]model.TaxSphere, len(d.AllowedTaxSpheres))
	copy(spheres, d.AllowedTaxSpheres)
	d.AllowedTaxSpheres = spheres
	return d
}

// sortTransactions orders by date, then id, so snapshots are deterministic.
func sortTransactions(txns []model.Transaction) {
	sort.Slice(txns, func(i, j int) bool {
		if !txns[i].Date.Equal(txns[j].Date) {
			return txns[i].Date.Before(txns[j].Date)
		}
		return txns[i].ID.String() < txns[j].ID.String()
	})
}
