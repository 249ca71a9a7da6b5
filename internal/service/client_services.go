package service

import (
	"github.com/MKhiriev/go-progress-tracker/internal/adapter"
	"github.com/MKhiriev/go-progress-tracker/internal/logger"
)

type ClientServices struct {
	AuthService     ClientAuthService
	ProgressService ClientProgressService
}

func NewClientServices(sessions SessionHolder, serverAdapter adapter.ServerAdapter, logger *logger.Logger) *ClientServices {
	return &ClientServices{
		AuthService:     NewClientAuthService(sessions, serverAdapter, logger),
		ProgressService: NewClientProgressService(sessions, serverAdapter, logger),
	}
}
