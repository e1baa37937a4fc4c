// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks request payloads before they reach the services.
//
// A Validator accepts any supported value and an optional list of field names
// that restricts validation to those parts. Validators are injected into the
// service decorators; transport and storage layers stay unaware of the rules.
package validators

import "context"

// Validator validates arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
