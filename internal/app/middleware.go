package app

import (
	httpMW "github.com/yungbote/mindwell-backend/internal/http/middleware"
	"github.com/yungbote/mindwell-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

func wireMiddleware(log *logger.Logger, s Services) (Middleware, error) {
	log.Info("Wiring middleware...")
	if err := httpMW.RegisterValidators(); err != nil {
		return Middleware{}, err
	}
	return Middleware{Auth: httpMW.NewAuthMiddleware(log, s.Auth)}, nil
}
