// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// NoAttachment is stored as the attachment reference when no file was uploaded.
const NoAttachment = "Empty"

// Form field names as posted by the request form
const (
	FieldName       = "name"
	FieldEmail      = "email"
	FieldPhone      = "phone"
	FieldDepartment = "dept"
	FieldDate       = "date"
	FieldQuery      = "query"
	FieldSMS        = "sms"

	// FieldAttachment is the multipart file field
	FieldAttachment = "photo"
)

// FormFields lists the text fields in declaration order.
var FormFields = []string{
	FieldName, FieldEmail, FieldPhone, FieldDepartment, FieldDate, FieldQuery, FieldSMS,
}

// Field error codes
const (
	CodeEmptyField    = "empty_field"
	CodeInvalidFormat = "invalid_format"
)

// Domain types

// RecordFields holds the user-editable values of a record.
// Validation rules are registered by package validation.
type RecordFields struct {
	Name       string `json:"name" validate:"notblank"`
	Email      string `json:"email" validate:"email,maildomain"`
	Phone      string `json:"phone" validate:"phone"`
	Department string `json:"dept" validate:"notblank"`
	Date       string `json:"date" validate:"notblank"`
	Query      string `json:"query"`
	SMS        string `json:"sms" validate:"notblank"`
}

type Record struct {
	ID string `json:"id"`
	RecordFields
	Attachment string    `json:"attachment"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// HasAttachment reports whether the record references a stored file.
func (r Record) HasAttachment() bool {
	return r.Attachment != "" && r.Attachment != NoAttachment
}

type Admin struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
}

type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Response types

type FormResponse struct {
	Form            string   `json:"form"`
	Fields          []string `json:"fields,omitempty"`
	AttachmentField string   `json:"attachment_field,omitempty"`
}

type ThanksResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type FieldErrorsResponse struct {
	Errors []FieldError `json:"errors"`
}

type RecordResponse struct {
	Record Record `json:"record"`
}

type RecordListResponse struct {
	Records []Record `json:"records"`
}

type DeleteResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
