// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators provides input validation and enforcement of field-level
// business rules for users, tasks and task listing queries.
//
// Core concepts:
//   - Validator: generic interface to validate arbitrary values or structures.
//     Supports optional field-level scoping for targeted validation.
//   - ValidationError: collects every offending field with a message, so a
//     client learns about all problems in one round trip.
//
// Entity validation is strict (unknown fields and wrongly typed values are
// rejected); sort parsing for task listing is deliberately lenient.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
