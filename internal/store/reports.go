package store

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"medbill/m/domain"
	"medbill/m/internal/query"
)

// UnknownCreatorName is shown for bills whose creator is not a known user.
const UnknownCreatorName = "System User"

type SalesTotals struct {
	TotalSales float64 `json:"totalSales"`
	TotalBills int     `json:"totalBills"`
}

type DashboardSummary struct {
	TotalMedicines    int         `json:"totalMedicines"`
	LowStockMedicines int         `json:"lowStockMedicines"`
	TodaysSales       SalesTotals `json:"todaysSales"`
	MonthlySales      SalesTotals `json:"monthlySales"`
}

type Creator struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// RecentBill is a bill with its creator resolved for display. The outer
// CreatedBy shadows the bill's plain user id in JSON.
type RecentBill struct {
	domain.Bill
	CreatedBy Creator `json:"createdBy"`
}

type MedicineSales struct {
	MedicineID    string  `json:"_id"`
	MedicineName  string  `json:"medicineName"`
	TotalQuantity int64   `json:"totalQuantity"`
	TotalRevenue  float64 `json:"totalRevenue"`
}

// DashboardSummary reports paid sales for the current day and month in the
// store's zone, and active / low-stock medicine counts.
func (s *Store) DashboardSummary() DashboardSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.timestamp()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.loc)

	paid := query.Filter[domain.Bill]{query.Equal[domain.Bill, domain.BillStatus]{Field: BillStatus, Value: domain.BillPaid}}
	today := s.salesSince(paid, startOfDay)
	month := s.salesSince(paid, startOfMonth)

	active := MedicineQuery{}.Filter()
	var low int
	for _, m := range s.medicines.all(active) {
		if m.LowStock() {
			low++
		}
	}

	return DashboardSummary{
		TotalMedicines:    s.medicines.count(active),
		LowStockMedicines: low,
		TodaysSales:       today,
		MonthlySales:      month,
	}
}

func (s *Store) salesSince(f query.Filter[domain.Bill], from time.Time) SalesTotals {
	f = f.And(query.TimeBetween[domain.Bill]{Field: BillCreatedAt, From: &from})
	sum := decimal.Zero
	var n int
	for _, b := range s.bills.matching(f) {
		sum = sum.Add(decimal.NewFromFloat(b.Total))
		n++
	}
	return SalesTotals{TotalSales: sum.InexactFloat64(), TotalBills: n}
}

// RecentBills returns the limit newest bills with their creator's name.
func (s *Store) RecentBills(limit int) []RecentBill {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bills := s.bills.find(nil, query.NewPage(1, limit))
	out := make([]RecentBill, len(bills))
	for i, b := range bills {
		creator := Creator{Name: UnknownCreatorName}
		if u, ok := s.users.get(b.CreatedBy); ok {
			creator = Creator{ID: u.ID, Name: u.Name, Email: u.Email}
		}
		out[i] = RecentBill{Bill: b, CreatedBy: creator}
	}
	return out
}

// TopSellingMedicines totals quantity and revenue per medicine across paid
// bills and returns the limit best sellers by quantity. Ties keep the order
// in which medicines were first seen.
func (s *Store) TopSellingMedicines(limit int) []MedicineSales {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type tally struct {
		sales   MedicineSales
		revenue decimal.Decimal
	}
	var order []*tally
	byID := make(map[string]*tally)

	for _, b := range s.bills.docs {
		if b.Status != domain.BillPaid {
			continue
		}
		for _, item := range b.Items {
			t, ok := byID[item.MedicineID]
			if !ok {
				t = &tally{sales: MedicineSales{MedicineID: item.MedicineID, MedicineName: item.MedicineName}}
				byID[item.MedicineID] = t
				order = append(order, t)
			}
			t.sales.TotalQuantity += item.Quantity
			t.revenue = t.revenue.Add(decimal.NewFromFloat(item.TotalPrice))
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return order[i].sales.TotalQuantity > order[j].sales.TotalQuantity
	})
	if limit < 1 {
		limit = query.DefaultLimit
	}
	if len(order) > limit {
		order = order[:limit]
	}

	out := make([]MedicineSales, len(order))
	for i, t := range order {
		t.sales.TotalRevenue = t.revenue.InexactFloat64()
		out[i] = t.sales
	}
	return out
}
