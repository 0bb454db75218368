package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/envirobot/envirobot/internal/domain"
	"github.com/envirobot/envirobot/internal/pkg/constants"
	"github.com/envirobot/envirobot/internal/pkg/logger"
	"github.com/labstack/echo/v4"
)

// httpErrorHandler walks the unwrap chain looking for a CodedError. Raw
// internal error text never reaches the client on 5xx responses; it is
// logged instead.
func httpErrorHandler(err error, c echo.Context) {
	msg := err.Error()
	code := http.StatusInternalServerError

	for unwrapped := err; unwrapped != nil; unwrapped = errors.Unwrap(unwrapped) {
		if ce, ok := unwrapped.(*constants.CodedError); ok {
			code = ce.Code()
			msg = ce.Error()
			break
		}
		if he, ok := unwrapped.(*echo.HTTPError); ok {
			code = he.Code
			msg = fmt.Sprintf("%v", he.Message)
			break
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Errorf(c.Request().Context(), "request failed: %s", err.Error())
		msg = "internal error"
	}

	_ = c.JSON(code, domain.ErrorResponse{
		Message: msg,
		Code:    code,
	})
}
