package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// DataResponse writes the JSON envelope. The HTTP status and the envelope
// status are always equal.
func DataResponse(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, APIResponse{
		Status:  status,
		Message: http.StatusText(status),
		Data:    data,
	})
}

// SuccessResponse writes a 200 envelope.
func SuccessResponse(c echo.Context, data interface{}) error {
	return DataResponse(c, http.StatusOK, data)
}

// ValidationErrorResponse writes a 400 envelope listing field errors.
func ValidationErrorResponse(c echo.Context, errs []ValidationError) error {
	return DataResponse(c, http.StatusBadRequest, errs)
}

// ErrorResponse writes err as an AppError envelope. Errors without an
// AppError in their chain become a generic 500.
func ErrorResponse(c echo.Context, err error) error {
	appErr := AsAppError(err)
	return DataResponse(c, appErr.Status, []*AppError{appErr})
}

// AttachmentResponse writes body as a download named filename.
func AttachmentResponse(c echo.Context, contentType, filename string, body []byte) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, contentType, body)
}
