package store

import (
	"sort"
	"strings"

	"medbill/m/domain"
	"medbill/m/internal/query"
)

func validateMedicine(m domain.Medicine) error {
	switch {
	case m.Price < 0:
		return invalid("Price cannot be negative")
	case m.Stock < 0:
		return invalid("Stock cannot be negative")
	case m.MinStock < 0:
		return invalid("Minimum stock cannot be negative")
	}
	return nil
}

// CreateMedicine stores m with a fresh id and timestamps. IsActive is taken as
// given.
func (s *Store) CreateMedicine(m domain.Medicine) (domain.Medicine, error) {
	if err := validateMedicine(m); err != nil {
		return domain.Medicine{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.timestamp()
	m.ID = s.medicines.newID()
	m.CreatedAt = now
	m.UpdatedAt = now
	s.medicines.insert(&m)
	return m, nil
}

func (s *Store) MedicineByID(id string) (domain.Medicine, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.medicines.get(id)
	if !ok {
		return domain.Medicine{}, false
	}
	return *m, true
}

func (s *Store) FindMedicines(f query.Filter[domain.Medicine], page query.Page) []domain.Medicine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.medicines.find(f, page)
}

// MedicinePage returns one page of matches and the total match count, read
// together.
func (s *Store) MedicinePage(f query.Filter[domain.Medicine], page query.Page) ([]domain.Medicine, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.medicines.findWithTotal(f, page)
}

func (s *Store) CountMedicines(f query.Filter[domain.Medicine]) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.medicines.count(f)
}

// UpdateMedicine merges the non-nil fields of p into the medicine and
// refreshes UpdatedAt. The record is left unchanged when the result would be
// invalid.
func (s *Store) UpdateMedicine(id string, p domain.MedicinePatch) (domain.Medicine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.medicines.get(id)
	if !ok {
		return domain.Medicine{}, ErrNotFound
	}
	next := *cur
	applyMedicinePatch(&next, p)
	if err := validateMedicine(next); err != nil {
		return domain.Medicine{}, err
	}
	next.UpdatedAt = s.timestamp()
	*cur = next
	return next, nil
}

// DeactivateMedicine is the soft delete: the record stays retrievable by id
// but drops out of default listings.
func (s *Store) DeactivateMedicine(id string) (domain.Medicine, error) {
	inactive := false
	return s.UpdateMedicine(id, domain.MedicinePatch{IsActive: &inactive})
}

// MedicineCategories lists the distinct categories of active medicines,
// sorted.
func (s *Store) MedicineCategories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	out := []string{}
	for _, m := range s.medicines.all(MedicineQuery{}.Filter()) {
		key := strings.ToLower(m.Category)
		if _, dup := seen[key]; dup || m.Category == "" {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, m.Category)
	}
	sort.Strings(out)
	return out
}

func applyMedicinePatch(m *domain.Medicine, p domain.MedicinePatch) {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Description != nil {
		m.Description = *p.Description
	}
	if p.Category != nil {
		m.Category = *p.Category
	}
	if p.Price != nil {
		m.Price = *p.Price
	}
	if p.Stock != nil {
		m.Stock = *p.Stock
	}
	if p.MinStock != nil {
		m.MinStock = *p.MinStock
	}
	if p.Manufacturer != nil {
		m.Manufacturer = *p.Manufacturer
	}
	if p.ExpiryDate != nil {
		m.ExpiryDate = *p.ExpiryDate
	}
	if p.BatchNumber != nil {
		m.BatchNumber = *p.BatchNumber
	}
	if p.IsActive != nil {
		m.IsActive = *p.IsActive
	}
}
