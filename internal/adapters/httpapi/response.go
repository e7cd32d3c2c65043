package httpapi

import "github.com/gin-gonic/gin"

// Response is the envelope for every JSON reply
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo carries a failed request's status and message
type ErrorInfo struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// SuccessResponse writes a 200 reply
func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(200, Response{Success: true, Data: data})
}

// ErrorResponse writes an error reply with the given status
func ErrorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, Response{
		Success: false,
		Error:   &ErrorInfo{Code: status, Message: message},
	})
}
