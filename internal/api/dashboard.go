package api

import (
	"net/http"

	"medbill/m/internal/store"
)

const dashboardListSize = 5

type dashboardResponse struct {
	Overview            store.DashboardSummary `json:"overview"`
	RecentBills         []store.RecentBill     `json:"recentBills"`
	TopSellingMedicines []store.MedicineSales  `json:"topSellingMedicines"`
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, dashboardResponse{
		Overview:            h.store.DashboardSummary(),
		RecentBills:         h.store.RecentBills(dashboardListSize),
		TopSellingMedicines: h.store.TopSellingMedicines(dashboardListSize),
	})
}
