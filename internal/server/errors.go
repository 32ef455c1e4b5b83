// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// errNoServersAreCreated means the HTTP handler or its listen address is missing.
var errNoServersAreCreated = errors.New("no servers are created: http handler and address are required")
