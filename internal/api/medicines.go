package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"medbill/m/domain"
	"medbill/m/internal/query"
	"medbill/m/internal/store"
)

const medicineNotFound = "Medicine not found"

type medicineListResponse struct {
	Medicines  []domain.Medicine `json:"medicines"`
	Pagination query.Pagination  `json:"pagination"`
}

// listMedicines only ever returns active medicines.
func (h *Handler) listMedicines(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := pageParams(q)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	minPrice, err := floatParam(q, "minPrice")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	maxPrice, err := floatParam(q, "maxPrice")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	filter := store.MedicineQuery{
		Search:   strings.TrimSpace(q.Get("search")),
		Category: strings.TrimSpace(q.Get("category")),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		InStock:  q.Get("inStock") == "true",
	}.Filter()

	medicines, total := h.store.MedicinePage(filter, page)
	respondJSON(w, http.StatusOK, medicineListResponse{
		Medicines:  medicines,
		Pagination: page.Summary(total),
	})
}

func (h *Handler) medicineCategories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string][]string{"categories": h.store.MedicineCategories()})
}

func (h *Handler) getMedicine(w http.ResponseWriter, r *http.Request) {
	m, ok := h.store.MedicineByID(chi.URLParam(r, "id"))
	if !ok {
		respondError(w, http.StatusNotFound, medicineNotFound)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"medicine": m})
}

type medicineRequest struct {
	Name         string   `json:"name" validate:"required"`
	Description  string   `json:"description" validate:"required"`
	Category     string   `json:"category" validate:"required"`
	Price        *float64 `json:"price" validate:"required,gte=0"`
	Stock        *int64   `json:"stock" validate:"omitempty,gte=0"`
	MinStock     *int64   `json:"minStock" validate:"omitempty,gte=0"`
	Manufacturer string   `json:"manufacturer" validate:"required"`
	ExpiryDate   string   `json:"expiryDate" validate:"required"`
	BatchNumber  string   `json:"batchNumber" validate:"required"`
}

func (h *Handler) createMedicine(w http.ResponseWriter, r *http.Request) {
	var req medicineRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := h.check(req); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}
	expiry, err := parseTime(req.ExpiryDate, h.loc)
	if err != nil {
		respondError(w, http.StatusBadRequest, "expiryDate must be a date (YYYY-MM-DD) or RFC 3339 time")
		return
	}

	m := domain.Medicine{
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		Price:        *req.Price,
		MinStock:     domain.DefaultMinStock,
		Manufacturer: req.Manufacturer,
		ExpiryDate:   expiry,
		BatchNumber:  req.BatchNumber,
		IsActive:     true,
	}
	if req.Stock != nil {
		m.Stock = *req.Stock
	}
	if req.MinStock != nil {
		m.MinStock = *req.MinStock
	}

	created, err := h.store.CreateMedicine(m)
	if err != nil {
		writeStoreError(w, r, err, medicineNotFound)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{
		"message":  "Medicine created successfully",
		"medicine": created,
	})
}

type medicineUpdateRequest struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	Category     *string  `json:"category"`
	Price        *float64 `json:"price" validate:"omitempty,gte=0"`
	Stock        *int64   `json:"stock" validate:"omitempty,gte=0"`
	MinStock     *int64   `json:"minStock" validate:"omitempty,gte=0"`
	Manufacturer *string  `json:"manufacturer"`
	ExpiryDate   *string  `json:"expiryDate"`
	BatchNumber  *string  `json:"batchNumber"`
	IsActive     *bool    `json:"isActive"`
}

// updateMedicine is open to any signed-in user, except that changing isActive
// is an admin action like deleteMedicine.
func (h *Handler) updateMedicine(w http.ResponseWriter, r *http.Request) {
	var req medicineUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.IsActive != nil && !h.requireRole(w, r, domain.RoleAdmin) {
		return
	}
	if msg := h.check(req); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}
	for _, f := range []struct {
		name  string
		value *string
	}{
		{"name", req.Name},
		{"description", req.Description},
		{"category", req.Category},
		{"manufacturer", req.Manufacturer},
		{"batchNumber", req.BatchNumber},
	} {
		if f.value != nil && strings.TrimSpace(*f.value) == "" {
			respondError(w, http.StatusBadRequest, f.name+" cannot be empty")
			return
		}
	}

	patch := domain.MedicinePatch{
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		Price:        req.Price,
		Stock:        req.Stock,
		MinStock:     req.MinStock,
		Manufacturer: req.Manufacturer,
		BatchNumber:  req.BatchNumber,
		IsActive:     req.IsActive,
	}
	if req.ExpiryDate != nil {
		expiry, err := parseTime(*req.ExpiryDate, h.loc)
		if err != nil {
			respondError(w, http.StatusBadRequest, "expiryDate must be a date (YYYY-MM-DD) or RFC 3339 time")
			return
		}
		patch.ExpiryDate = &expiry
	}

	updated, err := h.store.UpdateMedicine(chi.URLParam(r, "id"), patch)
	if err != nil {
		writeStoreError(w, r, err, medicineNotFound)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message":  "Medicine updated successfully",
		"medicine": updated,
	})
}

// deleteMedicine is a soft delete: the record stays, flagged inactive.
func (h *Handler) deleteMedicine(w http.ResponseWriter, r *http.Request) {
	if !h.requireRole(w, r, domain.RoleAdmin) {
		return
	}
	if _, err := h.store.DeactivateMedicine(chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, r, err, medicineNotFound)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Medicine deleted successfully"})
}
