// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package workflow

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// recordOps counts record lifecycle operations by outcome
	recordOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "requestdesk_record_operations_total",
			Help: "Record lifecycle operations by operation and outcome",
		},
		[]string{"op", "outcome"},
	)

	// attachmentWriteFailures counts uploads that could not be stored
	attachmentWriteFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "requestdesk_attachment_write_failures_total",
			Help: "Attachment writes that failed, by whether the record was still saved",
		},
		[]string{"tolerated"},
	)
)

// Outcome labels
const (
	outcomeOK           = "ok"
	outcomeInvalid      = "invalid"
	outcomeNotFound     = "not_found"
	outcomeUnauthorized = "unauthorized"
	outcomeError        = "error"
)
