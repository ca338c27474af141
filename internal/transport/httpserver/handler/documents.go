package handler

import (
	"errors"
	"net/http"

	documentsdomain "club-app-go/internal/domain/documents"
	"github.com/go-chi/chi/v5"
)

type createDocumentRequest struct {
	Title    string `json:"title"`
	Category string `json:"category"`
}

type documentListResponse struct {
	Items []documentsdomain.Document `json:"items"`
	Total int64                      `json:"total"`
}

func (h *Handlers) ListDocuments(w http.ResponseWriter, r *http.Request) {
	if _, ok := caller(w, r); !ok {
		return
	}

	query := r.URL.Query()
	limit, err := parseIntParam(query.Get("limit"), 100)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid limit")
		return
	}
	offset, err := parseIntParam(query.Get("offset"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid offset")
		return
	}

	items, total, err := h.Documents.ListDocuments(r.Context(), limit, offset)
	if err != nil {
		h.log.InternalError("documents: list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, documentListResponse{Items: items, Total: total})
}

func (h *Handlers) GetDocument(w http.ResponseWriter, r *http.Request) {
	if _, ok := caller(w, r); !ok {
		return
	}

	documentID, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	document, err := h.Documents.GetDocument(r.Context(), documentID)
	if err != nil {
		if errors.Is(err, documentsdomain.ErrDocumentNotFound) {
			writeError(w, http.StatusNotFound, "document_not_found", "document not found")
			return
		}
		h.log.InternalError("documents: get failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, document)
}

func (h *Handlers) CreateDocument(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireAdmin(w, r)
	if !ok {
		return
	}

	var req createDocumentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	document, err := h.Documents.CreateDocument(r.Context(), documentsdomain.CreateDocumentInput{
		Title:      req.Title,
		Category:   req.Category,
		UploadedBy: actor.ID,
	})
	if err != nil {
		if errors.Is(err, documentsdomain.ErrTitleRequired) {
			writeError(w, http.StatusBadRequest, "invalid_request", "title is required")
			return
		}
		h.log.InternalError("documents: create failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, document)
}

func (h *Handlers) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	documentID, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if err := h.Documents.DeleteDocument(r.Context(), documentID); err != nil {
		if errors.Is(err, documentsdomain.ErrDocumentNotFound) {
			writeError(w, http.StatusNotFound, "document_not_found", "document not found")
			return
		}
		h.log.InternalError("documents: delete failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
