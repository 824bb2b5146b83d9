package response

import "github.com/gin-gonic/gin"

// Response is the envelope every JSON endpoint answers with.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{Success: true, Data: data})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, Response{Error: &ErrorBody{Code: code, Message: message}})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, Response{Error: &ErrorBody{Code: code, Message: message, Details: details}})
}
