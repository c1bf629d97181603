package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes carried in Resp.ErrorCode.
const (
	CodeOK           = 0
	CodeBadRequest   = 1
	CodeNotFound     = 404
	CodeConflict     = 409
	CodeRateLimited  = 429
	CodeInternal     = 500
	MessageSuccess   = "Success"
	MessageInternal  = "Something went wrong"
	MessageRateLimit = "Too many requests, slow down a little"
)

// Resp is the JSON body of every response.
type Resp struct {
	ErrorCode int    `json:"error_code"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
}

func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Resp{ErrorCode: CodeOK, Message: MessageSuccess, Data: data})
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, Resp{ErrorCode: CodeBadRequest, Message: err.Error()})
}

func notFound(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusNotFound, Resp{ErrorCode: CodeNotFound, Message: msg})
}

func conflict(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusConflict, Resp{ErrorCode: CodeConflict, Message: msg})
}

func internalError(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, Resp{ErrorCode: CodeInternal, Message: MessageInternal})
}

func tooManyRequests(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, Resp{ErrorCode: CodeRateLimited, Message: MessageRateLimit})
}
