package app

import (
	"github.com/eddydauphin/etmanager-portal-sub001/internal/logger"
	"github.com/eddydauphin/etmanager-portal-sub001/internal/middleware"
)

type Middleware struct {
	Auth *middleware.AuthMiddleware
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: middleware.NewAuthMiddleware(log, services.Auth),
	}
}
