package http

import (
	"github.com/MKhiriev/go-task-manager/internal/config"
	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/internal/service"
	"github.com/MKhiriev/go-task-manager/models"
)

// multipartOverhead is allowed on top of the avatar limit for the multipart
// envelope around the file.
const multipartOverhead = 64 << 10

type Handler struct {
	services  *service.Services
	buildInfo models.AppBuildInfo

	// maxAvatarBody caps the request body of an avatar upload.
	maxAvatarBody int64

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.App, buildInfo models.AppBuildInfo, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:      services,
		buildInfo:     buildInfo,
		maxAvatarBody: cfg.AvatarMaxBytes + multipartOverhead,
		logger:        logger,
	}
}
