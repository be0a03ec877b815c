package response

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the single response shape of every endpoint.
type Envelope struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
}

// Detail describes what was wrong with a request, validator style.
type Detail struct {
	Path     string `json:"path,omitempty"`
	Msg      string `json:"msg"`
	Value    any    `json:"value,omitempty"`
	Location string `json:"location,omitempty"`
}

// Success writes a successful envelope.
func Success(c *gin.Context, code int, status string, data any) {
	c.JSON(code, Envelope{Success: true, Code: code, Status: status, Data: data})
}

// Fail writes an error envelope carrying d.
func Fail(c *gin.Context, code int, d Detail) {
	c.JSON(code, Envelope{Success: false, Code: code, Status: "error", Data: d})
}

// AbortFail is Fail for middleware: it also stops the handler chain.
func AbortFail(c *gin.Context, code int, d Detail) {
	c.AbortWithStatusJSON(code, Envelope{Success: false, Code: code, Status: "error", Data: d})
}

// Internal logs err and answers 500 without leaking it.
func Internal(c *gin.Context, err error) {
	log.Printf("❌ %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	Fail(c, http.StatusInternalServerError, Detail{Msg: "Internal server error"})
}

// Invalid answers 422 for a binding or validation failure.
func Invalid(c *gin.Context, err error, location string) {
	Fail(c, http.StatusUnprocessableEntity, Detail{Msg: err.Error(), Location: location})
}
