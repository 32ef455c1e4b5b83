// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

const (
	defaultHTTPAddress           = ":8080"
	defaultRequestTimeout        = 30 * time.Second
	defaultTokenIssuer           = "go-task-manager"
	defaultArgon2Time            = 1
	defaultArgon2MemoryKiB       = 64 * 1024
	defaultArgon2Threads         = 4
	defaultAvatarMaxBytes        = 1 << 20
	defaultTasksMaxPageSize      = 100
	defaultCacheTTL              = 24 * time.Hour
	defaultMailTimeout           = 10 * time.Second
	defaultNotificationWorkers   = 2
	defaultNotificationQueueSize = 100
)

// setDefaults fills every still-zero field that has a sensible default.
// Secrets and the DSN have none.
func (cfg *StructuredConfig) setDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = defaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = defaultRequestTimeout
	}

	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = defaultTokenIssuer
	}
	if cfg.App.Argon2.Time == 0 {
		cfg.App.Argon2.Time = defaultArgon2Time
	}
	if cfg.App.Argon2.MemoryKiB == 0 {
		cfg.App.Argon2.MemoryKiB = defaultArgon2MemoryKiB
	}
	if cfg.App.Argon2.Threads == 0 {
		cfg.App.Argon2.Threads = defaultArgon2Threads
	}
	if cfg.App.AvatarMaxBytes == 0 {
		cfg.App.AvatarMaxBytes = defaultAvatarMaxBytes
	}
	if cfg.App.TasksMaxPageSize == 0 {
		cfg.App.TasksMaxPageSize = defaultTasksMaxPageSize
	}

	if cfg.Storage.Cache.TTL == 0 {
		cfg.Storage.Cache.TTL = defaultCacheTTL
	}

	if cfg.Adapter.Mail.Timeout == 0 {
		cfg.Adapter.Mail.Timeout = defaultMailTimeout
	}

	if cfg.Workers.NotificationWorkers == 0 {
		cfg.Workers.NotificationWorkers = defaultNotificationWorkers
	}
	if cfg.Workers.NotificationQueueSize == 0 {
		cfg.Workers.NotificationQueueSize = defaultNotificationQueueSize
	}
}

// validate checks that the merged [StructuredConfig] is usable at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty database DSN", ErrInvalidStorageConfigs)
	}

	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: empty token sign key", ErrInvalidAppConfigs)
	}
	if cfg.App.TokenTTL < 0 {
		return fmt.Errorf("%w: negative token TTL", ErrInvalidAppConfigs)
	}
	if cfg.App.AvatarMaxBytes < 0 {
		return fmt.Errorf("%w: negative avatar size limit", ErrInvalidAppConfigs)
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.Workers.NotificationWorkers < 0 || cfg.Workers.NotificationQueueSize < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
