package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"

	"medbill/m/domain"
	"medbill/m/internal/config"
	"medbill/m/internal/notes"
	"medbill/m/internal/query"
	"medbill/m/internal/store"
)

// BillingStore is the document store the billing handlers run against.
type BillingStore interface {
	CreateUser(u domain.User) (domain.User, error)
	UserByEmail(email string) (domain.User, bool)

	CreateMedicine(m domain.Medicine) (domain.Medicine, error)
	MedicineByID(id string) (domain.Medicine, bool)
	MedicinePage(f query.Filter[domain.Medicine], page query.Page) ([]domain.Medicine, int)
	UpdateMedicine(id string, p domain.MedicinePatch) (domain.Medicine, error)
	DeactivateMedicine(id string) (domain.Medicine, error)
	MedicineCategories() []string

	CreateBill(in store.BillInput) (domain.Bill, error)
	BillByID(id string) (domain.Bill, bool)
	BillPage(f query.Filter[domain.Bill], page query.Page) ([]domain.Bill, int)
	UpdateBill(id string, p domain.BillPatch) (domain.Bill, error)

	DashboardSummary() store.DashboardSummary
	RecentBills(limit int) []store.RecentBill
	TopSellingMedicines(limit int) []store.MedicineSales
}

// Handler bundles dependencies for HTTP handlers.
type Handler struct {
	store    BillingStore
	notes    notes.Repository
	secret   string
	tokenTTL time.Duration
	origins  []string
	loc      *time.Location
	validate *validator.Validate
}

// New constructs a Handler.
func New(st BillingStore, notesRepo notes.Repository, cfg config.Config) *Handler {
	h := &Handler{
		store:    st,
		notes:    notesRepo,
		secret:   cfg.Secret,
		tokenTTL: cfg.TokenTTL,
		origins:  cfg.AllowedOrigins,
		loc:      cfg.Location,
		validate: newValidator(),
	}
	if h.tokenTTL <= 0 {
		h.tokenTTL = 24 * time.Hour
	}
	if len(h.origins) == 0 {
		h.origins = []string{"*"}
	}
	if h.loc == nil {
		h.loc = time.Local
	}
	return h
}

// Router wires up the HTTP API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", h.signup)
			r.Post("/signin", h.signin)
		})

		r.Route("/medicines", func(r chi.Router) {
			r.Get("/", h.listMedicines)
			r.Get("/categories", h.medicineCategories)
			r.Get("/{id}", h.getMedicine)
			r.Group(func(pr chi.Router) {
				pr.Use(h.authMiddleware)
				pr.Post("/", h.createMedicine)
				pr.Put("/{id}", h.updateMedicine)
				pr.Delete("/{id}", h.deleteMedicine)
			})
		})

		r.Group(func(pr chi.Router) {
			pr.Use(h.authMiddleware)

			pr.Route("/bills", func(r chi.Router) {
				r.Get("/", h.listBills)
				r.Post("/", h.createBill)
				r.Get("/{id}", h.getBill)
				r.Patch("/{id}", h.updateBill)
			})

			pr.Get("/dashboard", h.dashboard)
		})

		r.Route("/notes", func(r chi.Router) {
			r.Use(middleware.Throttle(notesConcurrency))
			r.Get("/", h.listNotes)
			r.Post("/", h.createNote)
			r.Get("/{id}", h.getNote)
			r.Put("/{id}", h.updateNote)
			r.Delete("/{id}", h.deleteNote)
		})
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Helpers

func decodeJSON(r *http.Request, dest interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
