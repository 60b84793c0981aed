package store

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"medbill/m/domain"
	"medbill/m/internal/query"
)

type BillItemInput struct {
	MedicineID string
	Quantity   int64
}

// BillInput is what a caller supplies to create a bill; prices, totals and
// the bill number are filled in by the store.
type BillInput struct {
	PatientName   string
	PatientPhone  string
	Items         []BillItemInput
	Discount      float64
	PaymentMethod domain.PaymentMethod
	CreatedBy     string
}

func (in BillInput) validate() error {
	if strings.TrimSpace(in.PatientName) == "" || len(in.Items) == 0 {
		return invalid("Patient name and items are required")
	}
	for _, item := range in.Items {
		if item.MedicineID == "" {
			return invalid("Each item needs a medicineId")
		}
		if item.Quantity < 1 {
			return invalid("Quantity must be at least 1")
		}
	}
	if in.Discount < 0 {
		return invalid("Discount cannot be negative")
	}
	if in.PaymentMethod != "" && !in.PaymentMethod.Valid() {
		return invalid("paymentMethod must be cash, card or insurance")
	}
	return nil
}

// CreateBill prices each item from the current medicine record, decrements
// that medicine's stock, and stores a pending bill.
//
// Stock is decremented item by item as the bill is built. If a later item
// fails (unknown medicine or insufficient stock) the decrements already
// applied for earlier items stay in place.
func (s *Store) CreateBill(in BillInput) (domain.Bill, error) {
	if err := in.validate(); err != nil {
		return domain.Bill{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.timestamp()
	subtotal := decimal.Zero
	items := make([]domain.BillItem, 0, len(in.Items))

	for _, req := range in.Items {
		med, ok := s.medicines.get(req.MedicineID)
		if !ok {
			return domain.Bill{}, invalid("Medicine with ID %s not found", req.MedicineID)
		}
		if med.Stock < req.Quantity {
			return domain.Bill{}, invalid("Insufficient stock for %s. Available: %d", med.Name, med.Stock)
		}

		unit := decimal.NewFromFloat(med.Price)
		line := unit.Mul(decimal.NewFromInt(req.Quantity))
		subtotal = subtotal.Add(line)

		items = append(items, domain.BillItem{
			MedicineID:   med.ID,
			MedicineName: med.Name,
			Quantity:     req.Quantity,
			UnitPrice:    med.Price,
			TotalPrice:   line.InexactFloat64(),
		})

		med.Stock -= req.Quantity
		med.UpdatedAt = now
	}

	rate := decimal.NewFromFloat(s.taxRate)
	tax := subtotal.Mul(rate)
	discount := decimal.NewFromFloat(in.Discount)
	total := subtotal.Add(tax).Sub(discount)

	method := in.PaymentMethod
	if method == "" {
		method = domain.PaymentCash
	}

	bill := domain.Bill{
		ID:            s.bills.newID(),
		BillNumber:    s.nextBillNumber(),
		PatientName:   strings.TrimSpace(in.PatientName),
		PatientPhone:  strings.TrimSpace(in.PatientPhone),
		Items:         items,
		Subtotal:      subtotal.InexactFloat64(),
		TaxRate:       s.taxRate,
		TaxAmount:     tax.InexactFloat64(),
		Discount:      in.Discount,
		Total:         total.InexactFloat64(),
		PaymentMethod: method,
		Status:        domain.BillPending,
		CreatedBy:     in.CreatedBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.bills.insert(&bill)
	s.billNumbers[bill.BillNumber] = struct{}{}
	return cloneBill(bill), nil
}

// nextBillNumber returns BILL-<yyyymmdd>-<seq>, skipping any number already
// issued.
func (s *Store) nextBillNumber() string {
	day := s.timestamp().Format("20060102")
	for {
		s.billSeq++
		n := fmt.Sprintf("BILL-%s-%05d", day, s.billSeq)
		if _, taken := s.billNumbers[n]; !taken {
			return n
		}
	}
}

func (s *Store) BillByID(id string) (domain.Bill, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bills.get(id)
	if !ok {
		return domain.Bill{}, false
	}
	return cloneBill(*b), true
}

// FindBills returns matching bills newest first.
func (s *Store) FindBills(f query.Filter[domain.Bill], page query.Page) []domain.Bill {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bills.find(f, page)
}

// BillPage is FindBills plus the total match count, read together.
func (s *Store) BillPage(f query.Filter[domain.Bill], page query.Page) ([]domain.Bill, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bills.findWithTotal(f, page)
}

func (s *Store) CountBills(f query.Filter[domain.Bill]) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bills.count(f)
}

// UpdateBill applies p and refreshes UpdatedAt. Items and amounts are fixed
// once the bill exists.
func (s *Store) UpdateBill(id string, p domain.BillPatch) (domain.Bill, error) {
	if p.Status != nil && !p.Status.Valid() {
		return domain.Bill{}, invalid("status must be pending, paid or cancelled")
	}
	if p.PaymentMethod != nil && !p.PaymentMethod.Valid() {
		return domain.Bill{}, invalid("paymentMethod must be cash, card or insurance")
	}
	if p.PatientName != nil && strings.TrimSpace(*p.PatientName) == "" {
		return domain.Bill{}, invalid("Patient name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bills.get(id)
	if !ok {
		return domain.Bill{}, ErrNotFound
	}
	if p.PatientName != nil {
		b.PatientName = strings.TrimSpace(*p.PatientName)
	}
	if p.PatientPhone != nil {
		b.PatientPhone = strings.TrimSpace(*p.PatientPhone)
	}
	if p.PaymentMethod != nil {
		b.PaymentMethod = *p.PaymentMethod
	}
	if p.Status != nil {
		b.Status = *p.Status
	}
	b.UpdatedAt = s.timestamp()
	return cloneBill(*b), nil
}
