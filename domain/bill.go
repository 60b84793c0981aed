package domain

import "time"

// DefaultTaxRate is applied to every bill subtotal.
const DefaultTaxRate = 0.10

type PaymentMethod string

const (
	PaymentCash      PaymentMethod = "cash"
	PaymentCard      PaymentMethod = "card"
	PaymentInsurance PaymentMethod = "insurance"
)

func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentCash, PaymentCard, PaymentInsurance:
		return true
	}
	return false
}

type BillStatus string

const (
	BillPending   BillStatus = "pending"
	BillPaid      BillStatus = "paid"
	BillCancelled BillStatus = "cancelled"
)

func (s BillStatus) Valid() bool {
	switch s {
	case BillPending, BillPaid, BillCancelled:
		return true
	}
	return false
}

// BillItem is a line of a bill. MedicineName and UnitPrice are snapshots taken
// when the bill was created.
type BillItem struct {
	MedicineID   string  `json:"medicineId"`
	MedicineName string  `json:"medicineName"`
	Quantity     int64   `json:"quantity"`
	UnitPrice    float64 `json:"unitPrice"`
	TotalPrice   float64 `json:"totalPrice"`
}

type Bill struct {
	ID            string        `json:"_id"`
	BillNumber    string        `json:"billNumber"`
	PatientName   string        `json:"patientName"`
	PatientPhone  string        `json:"patientPhone,omitempty"`
	Items         []BillItem    `json:"items"`
	Subtotal      float64       `json:"subtotal"`
	TaxRate       float64       `json:"taxRate"`
	TaxAmount     float64       `json:"taxAmount"`
	Discount      float64       `json:"discount"`
	Total         float64       `json:"total"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Status        BillStatus    `json:"status"`
	CreatedBy     string        `json:"createdBy"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// BillPatch carries the mutable fields of a bill; nil fields are left untouched.
type BillPatch struct {
	PatientName   *string
	PatientPhone  *string
	PaymentMethod *PaymentMethod
	Status        *BillStatus
}
