package httpapi

import (
	"io"
	"net/http"
	"strings"
)

type AttachmentsHandler struct {
	Deps
}

// Upload enforces the CV policy the data layer deliberately does not: size
// cap and PDF/DOC/DOCX only. The response carries the key the interview
// form stores as cvReference.
func (h AttachmentsHandler) Upload(w http.ResponseWriter, r *http.Request) {
	cfg := h.cfg()

	ct := r.Header.Get("Content-Type")
	allowed := false
	for _, t := range cfg.Attachments.AllowedTypes {
		if ct == t {
			allowed = true
			break
		}
	}
	if !allowed {
		WriteError(w, r, http.StatusUnsupportedMediaType, "unsupported_type",
			"content type must be one of: "+strings.Join(cfg.Attachments.AllowedTypes, ", "))
		return
	}

	max := int64(cfg.Attachments.MaxUploadMB) << 20
	data, err := io.ReadAll(io.LimitReader(r.Body, max+1))
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "read_failed", err.Error())
		return
	}
	if int64(len(data)) > max {
		WriteError(w, r, http.StatusRequestEntityTooLarge, "too_large",
			"attachment exceeds the upload limit")
		return
	}

	key, err := h.DB.PutAttachment(r.Context(), ct, data)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]any{"key": key, "size": len(data)})
}

func (h AttachmentsHandler) GetByPath(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(r.URL.Path, "/attachments/")
	if key == "" {
		WriteError(w, r, http.StatusBadRequest, "invalid_key", "missing attachment key")
		return
	}
	ct, data, err := h.DB.GetAttachment(r.Context(), key)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("Cache-Control", "private, max-age=86400")
	_, _ = w.Write(data)
}
