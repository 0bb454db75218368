package controller

import (
	"net/http"

	"github.com/envirobot/envirobot/internal/domain/dto"
	"github.com/envirobot/envirobot/internal/pkg/constants"
	"github.com/labstack/echo/v4"
)

func (c *Controller) Chat(ctx echo.Context) error {
	var req dto.ChatRequest
	if err := ctx.Bind(&req); err != nil {
		return constants.ErrInvalidBody
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	text := req.Text()
	if text == "" {
		return constants.ErrEmptyQuery
	}

	answer := c.chatService.Answer(ctx.Request().Context(), text)

	return ctx.JSON(http.StatusOK, dto.ChatResponse{Answer: answer})
}
