package controller

import (
	"net/http"

	"github.com/envirobot/envirobot/internal/domain"
	"github.com/labstack/echo/v4"
)

func (c *Controller) Home(ctx echo.Context) error {
	return ctx.String(http.StatusOK,
		"🌍 Welcome to the environmental chatbot! POST JSON {\"question\": ...} or {\"message\": ...} to /api/v1/chat")
}

func (c *Controller) ListProvinces(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, domain.Provinces)
}
