package api

import (
	"errors"
	"log"
	"net/http"

	"medbill/m/internal/store"
)

// writeStoreError maps store outcomes onto status codes. notFound is the
// message used for a missing record.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	var verr *store.ValidationError
	switch {
	case errors.As(err, &verr):
		respondError(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, notFound)
	case errors.Is(err, store.ErrDuplicateEmail):
		respondError(w, http.StatusConflict, err.Error())
	default:
		internalError(w, r, err)
	}
}

func internalError(w http.ResponseWriter, r *http.Request, err error) {
	log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
	respondError(w, http.StatusInternalServerError, "internal server error")
}
