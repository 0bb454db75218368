package api

import (
	"github.com/envirobot/envirobot/internal/pkg/logger"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestIDMiddleware tags every request with an id carried through the
// context into log lines and the response headers.
func (svc *APIService) RequestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		requestID := uuid.NewString()

		req := ctx.Request()
		ctx.SetRequest(req.WithContext(logger.WithRequestID(req.Context(), requestID)))
		ctx.Response().Header().Set("X-Request-Id", requestID)

		return next(ctx)
	}
}
