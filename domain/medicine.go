package domain

import "time"

// DefaultMinStock is the reorder threshold used when none is given.
const DefaultMinStock int64 = 10

type Medicine struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Price        float64   `json:"price"`
	Stock        int64     `json:"stock"`
	MinStock     int64     `json:"minStock"`
	Manufacturer string    `json:"manufacturer"`
	ExpiryDate   time.Time `json:"expiryDate"`
	BatchNumber  string    `json:"batchNumber"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// LowStock reports whether an active medicine is at or below its reorder threshold.
func (m Medicine) LowStock() bool {
	return m.IsActive && m.Stock <= m.MinStock
}

// MedicinePatch carries a partial update; nil fields are left untouched.
type MedicinePatch struct {
	Name         *string
	Description  *string
	Category     *string
	Price        *float64
	Stock        *int64
	MinStock     *int64
	Manufacturer *string
	ExpiryDate   *time.Time
	BatchNumber  *string
	IsActive     *bool
}
