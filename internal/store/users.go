package store

import (
	"strings"

	"medbill/m/domain"
	"medbill/m/internal/query"
)

// CreateUser stores u with a fresh id and timestamps. The email is normalised
// to lower case and must not belong to another user.
func (s *Store) CreateUser(u domain.User) (domain.User, error) {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.Name == "" || u.Email == "" || u.Password == "" {
		return domain.User{}, invalid("Name, email, and password are required")
	}
	if u.Role == "" {
		u.Role = domain.RoleStaff
	}
	if !u.Role.Valid() {
		return domain.User{}, invalid("role must be admin or staff")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.userByEmail(u.Email); taken {
		return domain.User{}, ErrDuplicateEmail
	}
	now := s.timestamp()
	u.ID = s.users.newID()
	u.CreatedAt = now
	u.UpdatedAt = now
	s.users.insert(&u)
	return u, nil
}

func (s *Store) UserByID(id string) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users.get(id)
	if !ok {
		return domain.User{}, false
	}
	return *u, true
}

// UserByEmail looks the address up case-insensitively.
func (s *Store) UserByEmail(email string) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userByEmail(strings.ToLower(strings.TrimSpace(email)))
}

func (s *Store) userByEmail(email string) (domain.User, bool) {
	f := query.Filter[domain.User]{query.Equal[domain.User, string]{Field: UserEmail, Value: email}}
	found := s.users.find(f, query.NewPage(1, 1))
	if len(found) == 0 {
		return domain.User{}, false
	}
	return found[0], true
}

func (s *Store) FindUsers(f query.Filter[domain.User], page query.Page) []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users.find(f, page)
}

func (s *Store) CountUsers(f query.Filter[domain.User]) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users.count(f)
}
