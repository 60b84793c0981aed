package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"medbill/m/internal/notes"
)

// notesConcurrency caps in-flight notes requests; the rest queue or get 429.
const notesConcurrency = 20

type noteRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

func (h *Handler) listNotes(w http.ResponseWriter, r *http.Request) {
	list, err := h.notes.List(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (h *Handler) getNote(w http.ResponseWriter, r *http.Request) {
	n, err := h.notes.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.noteError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, n)
}

func (h *Handler) createNote(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeNote(w, r)
	if !ok {
		return
	}
	n, err := h.notes.Create(r.Context(), req.Title, req.Content)
	if err != nil {
		internalError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"message": "Note created successfully", "note": n})
}

func (h *Handler) updateNote(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeNote(w, r)
	if !ok {
		return
	}
	n, err := h.notes.Update(r.Context(), chi.URLParam(r, "id"), req.Title, req.Content)
	if err != nil {
		h.noteError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, n)
}

func (h *Handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	if err := h.notes.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.noteError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Note deleted successfully"})
}

func (h *Handler) decodeNote(w http.ResponseWriter, r *http.Request) (noteRequest, bool) {
	var req noteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return req, false
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)
	if msg := h.check(req); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return req, false
	}
	return req, true
}

func (h *Handler) noteError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, notes.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Note not found")
		return
	}
	internalError(w, r, err)
}
