// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package validation checks submitted request fields.

Validate is pure: it never touches storage and never panics.

	draft, err := validation.Validate(fields)
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		// re-render the form with verrs
	}

# Rules

Rules are validator struct tags on models.RecordFields. This package
registers the custom tags notblank, phone and maildomain.

  - name, dept, date, sms: must not be blank (CodeEmptyField)
  - email: a bare address whose domain is a dotted host name with an
    alphabetic or punycode top-level label (CodeInvalidFormat)
  - phone: exactly xxx-xxx-xxxx, digits only (CodeInvalidFormat)
  - query: not validated

All rules run on every call; errors accumulate in field declaration order.
*/
package validation
