package admin

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/studiofront/internal/cards"
)

// RegisterRoutes mounts admin card endpoints on the given router.
func RegisterRoutes(r chi.Router, editor *Editor) {
	r.Route("/api/admin/cards", func(r chi.Router) {
		r.Get("/", listCardsHandler(editor))
		r.Post("/", createCardHandler(editor))
		r.Put("/{id}", updateCardHandler(editor))
		r.Delete("/{id}", deleteCardHandler(editor))
		r.Post("/{id}/photos", addPhotoHandler(editor))
		r.Delete("/{id}/photos", removePhotoHandler(editor))
	})
}

func listCardsHandler(editor *Editor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cs, err := editor.List(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, cs)
	}
}

func createCardHandler(editor *Editor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c cards.Card
		if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if c.Area == "" || c.ImageURL == "" {
			http.Error(w, "area and imageUrl are required", http.StatusBadRequest)
			return
		}
		created, err := editor.Create(r.Context(), c)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func updateCardHandler(editor *Editor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c cards.Card
		if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		c.ID = chi.URLParam(r, "id")
		updated, err := editor.Update(r.Context(), c)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func deleteCardHandler(editor *Editor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := editor.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func addPhotoHandler(editor *Editor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p cards.Photo
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p.URL == "" {
			http.Error(w, "photo url is required", http.StatusBadRequest)
			return
		}
		if err := editor.AddPhoto(r.Context(), chi.URLParam(r, "id"), p); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, p)
	}
}

func removePhotoHandler(editor *Editor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		url := r.URL.Query().Get("url")
		if url == "" {
			http.Error(w, "url query parameter is required", http.StatusBadRequest)
			return
		}
		if err := editor.RemovePhoto(r.Context(), chi.URLParam(r, "id"), url); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrCardNotFound), errors.Is(err, ErrPhotoNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrDuplicateID):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
