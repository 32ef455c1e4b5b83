package service

import (
	"github.com/MKhiriev/go-task-manager/internal/config"
	"github.com/MKhiriev/go-task-manager/internal/crypto"
	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/internal/store"
)

type Services struct {
	SessionService SessionService
	UserService    UserService
	TaskService    TaskService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, hasher crypto.PasswordHasher, notifications NotificationQueue, logger *logger.Logger) *Services {
	sessions := NewSessionService(storages.TokenRepository, storages.SessionCache, cfg.App, logger)

	return &Services{
		SessionService: sessions,
		UserService:    NewUserService(storages.UserRepository, sessions, hasher, notifications, cfg.App, logger),
		TaskService:    NewTaskService(storages.TaskRepository, cfg.App, logger),
	}
}
