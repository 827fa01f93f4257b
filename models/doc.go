// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the domain and response types for the request desk.

# Records

A Record is one submitted request. Its editable values live in RecordFields
and are embedded so they serialize flat:

	{"id":"…","name":"Ada","email":"ada@example.com","phone":"555-123-4567",
	 "dept":"Science","date":"2025-03-01","query":"","sms":"yes",
	 "attachment":"scan.pdf","created_at":"…","updated_at":"…"}

The attachment reference is either the stored file name or NoAttachment
("Empty") when the submission carried no file.

# Form Fields

Field names match the posted form: name, email, phone, dept, date, query,
sms, plus the multipart file field photo. FormFields lists the text fields
in declaration order; validation errors are reported in the same order.

# Field Errors

	FieldError{Field: "phone", Code: CodeInvalidFormat, Message: "Phone should be in format xxx-xxx-xxxx"}

Codes are CodeEmptyField and CodeInvalidFormat.

# Admin

Admin is the single administrative account. Only a bcrypt hash of its
password is stored; PasswordHash is never serialized.

# Response Types

Handlers answer with ThanksResponse, FieldErrorsResponse, RecordResponse,
RecordListResponse, DeleteResponse, FormResponse, or ErrorResponse.
*/
package models
