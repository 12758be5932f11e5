package presenters

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tanmald/plate-check-mvp/internal/utils"
)

type Response struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data interface{}, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse writes a failed response. Validation failures are reported
// per field, anything else by its message.
func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	res := Response{Status: false, Message: message}
	if fields := utils.ValidationErrors(err); len(fields) > 0 {
		res.Error = fields
	} else if err != nil {
		res.Error = err.Error()
	}
	return c.Status(statusCode).JSON(res)
}
