package store

import (
	"time"

	"medbill/m/domain"
	"medbill/m/internal/query"
)

var (
	MedicineActive      = query.Field[domain.Medicine, bool]{Name: "isActive", Get: func(m domain.Medicine) bool { return m.IsActive }}
	MedicineName        = query.Field[domain.Medicine, string]{Name: "name", Get: func(m domain.Medicine) string { return m.Name }}
	MedicineDescription = query.Field[domain.Medicine, string]{Name: "description", Get: func(m domain.Medicine) string { return m.Description }}
	MedicineCategory    = query.Field[domain.Medicine, string]{Name: "category", Get: func(m domain.Medicine) string { return m.Category }}
	MedicinePrice       = query.Field[domain.Medicine, float64]{Name: "price", Get: func(m domain.Medicine) float64 { return m.Price }}
	MedicineStock       = query.Field[domain.Medicine, float64]{Name: "stock", Get: func(m domain.Medicine) float64 { return float64(m.Stock) }}

	BillStatus    = query.Field[domain.Bill, domain.BillStatus]{Name: "status", Get: func(b domain.Bill) domain.BillStatus { return b.Status }}
	BillCreatedAt = query.Field[domain.Bill, time.Time]{Name: "createdAt", Get: func(b domain.Bill) time.Time { return b.CreatedAt }}
	BillCreatedBy = query.Field[domain.Bill, string]{Name: "createdBy", Get: func(b domain.Bill) string { return b.CreatedBy }}

	UserEmail = query.Field[domain.User, string]{Name: "email", Get: func(u domain.User) string { return u.Email }}
	UserRole  = query.Field[domain.User, domain.Role]{Name: "role", Get: func(u domain.User) domain.Role { return u.Role }}
)

// MedicineSearchFields are the fields a free-text medicine search looks at.
var MedicineSearchFields = []query.Field[domain.Medicine, string]{MedicineName, MedicineDescription}

// MedicineQuery is the listing filter the medicines endpoint accepts.
type MedicineQuery struct {
	Search   string
	Category string
	MinPrice *float64
	MaxPrice *float64
	InStock  bool
	// IncludeInactive drops the default isActive=true condition.
	IncludeInactive bool
}

func (q MedicineQuery) Filter() query.Filter[domain.Medicine] {
	var f query.Filter[domain.Medicine]
	if !q.IncludeInactive {
		f = append(f, query.Equal[domain.Medicine, bool]{Field: MedicineActive, Value: true})
	}
	if q.Search != "" {
		f = append(f, query.TextSearch[domain.Medicine]{Fields: MedicineSearchFields, Term: q.Search})
	}
	if q.Category != "" {
		f = append(f, query.Contains[domain.Medicine]{Field: MedicineCategory, Substr: q.Category})
	}
	if q.MinPrice != nil || q.MaxPrice != nil {
		f = append(f, query.Between[domain.Medicine]{Field: MedicinePrice, Min: q.MinPrice, Max: q.MaxPrice})
	}
	if q.InStock {
		f = append(f, query.GreaterThan[domain.Medicine]{Field: MedicineStock, Bound: 0})
	}
	return f
}

// BillQuery is the listing filter the bills endpoint accepts.
type BillQuery struct {
	Status domain.BillStatus
	From   *time.Time
	To     *time.Time
}

func (q BillQuery) Filter() query.Filter[domain.Bill] {
	var f query.Filter[domain.Bill]
	if q.Status != "" {
		f = append(f, query.Equal[domain.Bill, domain.BillStatus]{Field: BillStatus, Value: q.Status})
	}
	if q.From != nil || q.To != nil {
		f = append(f, query.TimeBetween[domain.Bill]{Field: BillCreatedAt, From: q.From, To: q.To})
	}
	return f
}
