package handlers

import (
	"log"
	"net/http"

	"craftfolio/internal/common"

	"github.com/labstack/echo/v4"
)

// respondError maps a service error onto the stable code/message envelope.
// Unclassified errors are logged and reported generically.
func respondError(c echo.Context, err error) error {
	code := common.ErrorCode(err)
	status := common.HTTPStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request().Method, c.Request().URL.Path, err)
		message = "operation could not be completed"
	}
	return c.JSON(status, common.CreateErrorResponse(code, message, nil))
}
