// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package workflow

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/danielhkuo/request-desk/attachment"
	"github.com/danielhkuo/request-desk/auth"
	"github.com/danielhkuo/request-desk/models"
	"github.com/danielhkuo/request-desk/store"
	"github.com/danielhkuo/request-desk/validation"
)

// Options tune the service policies
type Options struct {
	// TolerateUploadErrors saves the record with its attachment reference
	// even when the file write failed. Otherwise the write error is returned
	// and nothing is stored.
	TolerateUploadErrors bool
}

// Service composes validation, attachments, the record store and the
// admin gate into the request workflow.
type Service struct {
	records     store.RecordStore
	attachments *attachment.Handler
	gate        *auth.Gate
	opts        Options
}

func NewService(records store.RecordStore, attachments *attachment.Handler, gate *auth.Gate, opts Options) *Service {
	return &Service{records: records, attachments: attachments, gate: gate, opts: opts}
}

// Gate returns the admin gate
func (s *Service) Gate() *auth.Gate { return s.gate }

// Attachments returns the attachment handler
func (s *Service) Attachments() *attachment.Handler { return s.attachments }

// Submit validates a public submission, stores its attachment and creates
// the record. Validation failures return validation.Errors and store nothing.
func (s *Service) Submit(ctx context.Context, fields models.RecordFields, up *attachment.Upload) (models.Record, error) {
	draft, err := validation.Validate(fields)
	if err != nil {
		recordOps.WithLabelValues("submit", outcomeInvalid).Inc()
		return models.Record{}, err
	}

	ref, err := s.resolveAttachment(ctx, "", up)
	if err != nil {
		recordOps.WithLabelValues("submit", outcomeError).Inc()
		return models.Record{}, err
	}

	id, err := s.records.Create(ctx, draft, ref)
	if err != nil {
		recordOps.WithLabelValues("submit", outcomeError).Inc()
		s.logUnsavedAttachment("submit", ref, up, err)
		return models.Record{}, err
	}

	slog.Info("record created", "record_id", id, "attachment", ref)
	recordOps.WithLabelValues("submit", outcomeOK).Inc()

	return s.records.GetByID(ctx, id)
}

// List returns every record for an authenticated admin
func (s *Service) List(ctx context.Context, sess *auth.Session) ([]models.Record, error) {
	if err := s.authorize("list", sess); err != nil {
		return nil, err
	}
	records, err := s.records.ListAll(ctx)
	if err != nil {
		recordOps.WithLabelValues("list", outcomeError).Inc()
		return nil, err
	}
	recordOps.WithLabelValues("list", outcomeOK).Inc()
	return records, nil
}

// Get returns one record for an authenticated admin
func (s *Service) Get(ctx context.Context, sess *auth.Session, id string) (models.Record, error) {
	if err := s.authorize("get", sess); err != nil {
		return models.Record{}, err
	}
	r, err := s.records.GetByID(ctx, id)
	if err != nil {
		recordOps.WithLabelValues("get", outcome(err)).Inc()
		return models.Record{}, err
	}
	recordOps.WithLabelValues("get", outcomeOK).Inc()
	return r, nil
}

// Update replaces every field of an existing record. Without a new upload
// the previous attachment reference is kept.
func (s *Service) Update(ctx context.Context, sess *auth.Session, id string, fields models.RecordFields, up *attachment.Upload) (models.Record, error) {
	if err := s.authorize("update", sess); err != nil {
		return models.Record{}, err
	}

	existing, err := s.records.GetByID(ctx, id)
	if err != nil {
		recordOps.WithLabelValues("update", outcome(err)).Inc()
		return models.Record{}, err
	}

	draft, err := validation.Validate(fields)
	if err != nil {
		recordOps.WithLabelValues("update", outcomeInvalid).Inc()
		return models.Record{}, err
	}

	ref, err := s.resolveAttachment(ctx, existing.Attachment, up)
	if err != nil {
		recordOps.WithLabelValues("update", outcomeError).Inc()
		return models.Record{}, err
	}

	updated, err := s.records.UpdateByID(ctx, id, draft, ref)
	if err != nil {
		recordOps.WithLabelValues("update", outcome(err)).Inc()
		s.logUnsavedAttachment("update", ref, up, err)
		return models.Record{}, err
	}

	slog.Info("record updated", "record_id", id, "attachment", ref, "admin", sess.Username)
	recordOps.WithLabelValues("update", outcomeOK).Inc()
	return updated, nil
}

// Delete removes a record. A second delete of the same id reports
// store.ErrNotFound.
func (s *Service) Delete(ctx context.Context, sess *auth.Session, id string) error {
	if err := s.authorize("delete", sess); err != nil {
		return err
	}
	if err := s.records.DeleteByID(ctx, id); err != nil {
		recordOps.WithLabelValues("delete", outcome(err)).Inc()
		return err
	}
	slog.Info("record deleted", "record_id", id, "admin", sess.Username)
	recordOps.WithLabelValues("delete", outcomeOK).Inc()
	return nil
}

func (s *Service) authorize(op string, sess *auth.Session) error {
	if err := s.gate.RequireAdmin(sess); err != nil {
		recordOps.WithLabelValues(op, outcomeUnauthorized).Inc()
		return err
	}
	return nil
}

// resolveAttachment applies the storage-write policy to the handler result
func (s *Service) resolveAttachment(ctx context.Context, existing string, up *attachment.Upload) (string, error) {
	ref, err := s.attachments.Resolve(ctx, existing, up)
	if err == nil {
		return ref, nil
	}

	var swe *attachment.StorageWriteError
	if !errors.As(err, &swe) {
		return "", err
	}

	attachmentWriteFailures.WithLabelValues(strconv.FormatBool(s.opts.TolerateUploadErrors)).Inc()
	if !s.opts.TolerateUploadErrors {
		return "", err
	}
	slog.Warn("attachment write failed, keeping reference", "name", swe.Name, "error", swe.Err)
	return ref, nil
}

func outcome(err error) string {
	if errors.Is(err, store.ErrNotFound) {
		return outcomeNotFound
	}
	return outcomeError
}

// logUnsavedAttachment records an upload that reached the file store while
// the record write failed. The file is left in place: names are shared
// across records and the last write wins, so removing it could drop a file
// another record still references.
func (s *Service) logUnsavedAttachment(op, ref string, up *attachment.Upload, err error) {
	if up == nil || ref == models.NoAttachment {
		return
	}
	slog.Warn("record not saved, attachment left in place", "op", op, "attachment", ref, "error", err)
}
