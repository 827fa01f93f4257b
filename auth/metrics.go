// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// loginAttempts counts admin logins by outcome (ok, rejected, error)
var loginAttempts = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "requestdesk_login_attempts_total",
		Help: "Admin login attempts by outcome",
	},
	[]string{"outcome"},
)
