// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides outbound integrations of the task manager.
//
// The primary abstraction is [Notifier], which decouples the service layer
// from the way account notifications are delivered. The package ships an
// HTTP mail API implementation ([NewHTTPMailNotifier]) and a log-only
// implementation ([NewLogNotifier]) used when no mail API is configured.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] (e.g. [ErrUnauthorized]
// for 401, [ErrRejected] for other 4xx).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-task-manager/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/notifier_mock.go -package=mock

// Notifier delivers a rendered notification to its recipient.
type Notifier interface {
	Notify(ctx context.Context, notification models.Notification) error
}
