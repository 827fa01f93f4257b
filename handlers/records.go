// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"path"

	"github.com/danielhkuo/request-desk/attachment"
	"github.com/danielhkuo/request-desk/auth"
	"github.com/danielhkuo/request-desk/cliparse"
	"github.com/danielhkuo/request-desk/middleware"
	"github.com/danielhkuo/request-desk/models"
	"github.com/danielhkuo/request-desk/store"
	"github.com/danielhkuo/request-desk/validation"
	"github.com/danielhkuo/request-desk/workflow"
)

type RecordHandler struct {
	svc      *workflow.Service
	sessions *auth.SessionStore
	cfg      cliparse.Config
}

func NewRecordHandler(svc *workflow.Service, sessions *auth.SessionStore, cfg cliparse.Config) *RecordHandler {
	return &RecordHandler{svc: svc, sessions: sessions, cfg: cfg}
}

// Home handles GET /
func (h *RecordHandler) Home(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.FormResponse{
		Form:            "request",
		Fields:          models.FormFields,
		AttachmentField: models.FieldAttachment,
	})
}

// SubmitForm handles POST /book-form
func (h *RecordHandler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	fields, up, cleanup, err := h.parseSubmission(w, r)
	if err != nil {
		writeParseError(w, err)
		return
	}
	defer cleanup()

	rec, err := h.svc.Submit(r.Context(), fields, up)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.ThanksResponse{
		ID:    rec.ID,
		Name:  rec.Name,
		Email: rec.Email,
	})
}

// AdminHome handles GET /admin-home
func (h *RecordHandler) AdminHome(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.List(r.Context(), h.sessions.Load(r))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if records == nil {
		records = []models.Record{}
	}
	middleware.JSONResponse(w, http.StatusOK, models.RecordListResponse{Records: records})
}

// Details handles GET /details/{id}
func (h *RecordHandler) Details(w http.ResponseWriter, r *http.Request) {
	h.showRecord(w, r)
}

// EditForm handles GET /edit/{id}
func (h *RecordHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	h.showRecord(w, r)
}

func (h *RecordHandler) showRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.Get(r.Context(), h.sessions.Load(r), r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.RecordResponse{Record: rec})
}

// ApplyEdit handles POST /edit/{id}
func (h *RecordHandler) ApplyEdit(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	// Reject before reading a potentially large body
	if err := h.svc.Gate().RequireAdmin(sess); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	fields, up, cleanup, err := h.parseSubmission(w, r)
	if err != nil {
		writeParseError(w, err)
		return
	}
	defer cleanup()

	rec, err := h.svc.Update(r.Context(), sess, r.PathValue("id"), fields, up)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ThanksResponse{
		ID:    rec.ID,
		Name:  rec.Name,
		Email: rec.Email,
	})
}

// Delete handles GET /delete/{id}
func (h *RecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.svc.Delete(r.Context(), h.sessions.Load(r), id); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.DeleteResponse{
		ID:      id,
		Message: "Record deleted",
	})
}

// Attachment handles GET /uploads/{name}
func (h *RecordHandler) Attachment(w http.ResponseWriter, r *http.Request) {
	name, err := attachment.CleanName(r.PathValue("name"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "Attachment not found")
		return
	}

	rc, err := h.svc.Attachments().Store().Open(r.Context(), name)
	if errors.Is(err, attachment.ErrNotFound) || errors.Is(err, attachment.ErrInvalidName) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Attachment not found")
		return
	}
	if err != nil {
		slog.Error("failed to open attachment", "name", name, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to read attachment")
		return
	}
	defer rc.Close()

	ct := mime.TypeByExtension(path.Ext(name))
	if ct == "" {
		ct = "application/octet-stream"
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		slog.Error("failed to stream attachment", "name", name, "error", err)
	}
}

// parseSubmission reads the record fields and the optional photo upload
// from a urlencoded or multipart body. cleanup must be called once the
// upload has been consumed.
func (h *RecordHandler) parseSubmission(w http.ResponseWriter, r *http.Request) (models.RecordFields, *attachment.Upload, func(), error) {
	noop := func() {}
	limit := h.cfg.MaxUploadBytes()
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	err := r.ParseMultipartForm(limit)
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return models.RecordFields{}, nil, noop, err
	}

	fields := models.RecordFields{
		Name:       r.PostFormValue(models.FieldName),
		Email:      r.PostFormValue(models.FieldEmail),
		Phone:      r.PostFormValue(models.FieldPhone),
		Department: r.PostFormValue(models.FieldDepartment),
		Date:       r.PostFormValue(models.FieldDate),
		Query:      r.PostFormValue(models.FieldQuery),
		SMS:        r.PostFormValue(models.FieldSMS),
	}

	if r.MultipartForm == nil {
		return fields, nil, noop, nil
	}
	form := r.MultipartForm
	removeAll := func() {
		if err := form.RemoveAll(); err != nil {
			slog.Warn("failed to remove multipart temp files", "error", err)
		}
	}

	file, header, err := r.FormFile(models.FieldAttachment)
	if errors.Is(err, http.ErrMissingFile) {
		return fields, nil, removeAll, nil
	}
	if err != nil {
		removeAll()
		return models.RecordFields{}, nil, noop, err
	}

	up := &attachment.Upload{
		Name:        header.Filename,
		ContentType: contentType(header),
		Body:        file,
	}
	cleanup := func() {
		file.Close()
		removeAll()
	}
	return fields, up, cleanup, nil
}

func contentType(fh *multipart.FileHeader) string {
	if ct := fh.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func writeParseError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, "Upload too large")
		return
	}
	slog.Warn("failed to parse form", "error", err)
	middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid form")
}

// writeServiceError maps workflow errors onto HTTP responses
func (h *RecordHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validation.Errors
	var swe *attachment.StorageWriteError

	switch {
	case errors.As(err, &verrs):
		middleware.JSONResponse(w, http.StatusUnprocessableEntity, models.FieldErrorsResponse{
			Errors: []models.FieldError(verrs),
		})
	case errors.Is(err, auth.ErrUnauthorized):
		middleware.SeeOther(w, r, "/login")
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Record not found")
	case errors.Is(err, attachment.ErrInvalidName):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid attachment name")
	case errors.As(err, &swe):
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store attachment")
	default:
		slog.Error("request failed", "path", r.URL.Path, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
	}
}
