// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package workflow implements the record lifecycle.

	svc := workflow.NewService(records, attachment.NewHandler(files), gate, workflow.Options{})

# Lifecycle

	NonExistent --Submit--> Stored --Update--> Stored --Delete--> NonExistent
	                          |  ^
	                          Get

Submit is public. List, Get, Update and Delete call Gate.RequireAdmin first
and return auth.ErrUnauthorized without touching the store.

Each write validates and resolves the attachment before the store is
mutated, so a rejected call leaves no partial record:

  - validation.Errors: field errors, nothing stored
  - store.ErrNotFound: unknown id on Get, Update or Delete
  - *attachment.StorageWriteError: the upload could not be written

# Storage-Write Policy

By default a failed attachment write aborts the submit or update. With
Options.TolerateUploadErrors the record is saved with the attachment
reference anyway and the failure is logged and counted.

# Metrics

  - requestdesk_record_operations_total{op,outcome}
  - requestdesk_attachment_write_failures_total{tolerated}
*/
package workflow
