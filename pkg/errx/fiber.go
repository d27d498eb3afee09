package errx

import (
	"github.com/gofiber/fiber/v2"
)

// HTTPErrorResponse represents a standard HTTP error response
type HTTPErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Type    string                 `json:"type"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ToHTTPResponse converts an Error to an HTTPErrorResponse
func (e *Error) ToHTTPResponse() HTTPErrorResponse {
	return HTTPErrorResponse{
		Code:    e.Code,
		Message: e.Message,
		Type:    string(e.Type),
		Details: e.Details,
	}
}

// FiberErrorHandler maps errors to JSON responses for a Fiber app
func FiberErrorHandler(c *fiber.Ctx, err error) error {
	var customErr *Error
	if As(err, &customErr) {
		return c.Status(customErr.HTTPStatus).JSON(customErr.ToHTTPResponse())
	}

	var fiberErr *fiber.Error
	if As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(HTTPErrorResponse{
			Code:    string(TypeInternal),
			Message: fiberErr.Message,
			Type:    string(TypeInternal),
		})
	}

	internal := New(err.Error(), TypeInternal)
	return c.Status(internal.HTTPStatus).JSON(internal.ToHTTPResponse())
}
