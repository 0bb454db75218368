package controller

import (
	"net/http"

	"github.com/envirobot/envirobot/internal/domain/dto"
	"github.com/labstack/echo/v4"
)

// Backfill rebuilds both normalized relations from their raw sources.
func (c *Controller) Backfill(ctx echo.Context) error {
	ghgRows, covidRows, err := c.etlService.Run(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, dto.BackfillResponse{
		GHGRows:   ghgRows,
		CovidRows: covidRows,
	})
}
