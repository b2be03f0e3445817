package router

import (
	"io"

	"github.com/akeren/bizguard-leads/pkg/ratelimit"
	"github.com/gin-gonic/gin"
)

type RequestContext = gin.Context

type MiddlewareFunc = gin.HandlerFunc

// ServiceResult is what every handler returns. The zero Body, HTML and
// Location fields mean the {code,data,message} envelope.
type ServiceResult struct {
	StatusCode int    `json:"code"`
	Data       any    `json:"data"`
	Message    string `json:"message"`

	// Body, when set, is written as-is instead of the {code,data,message}
	// envelope. Used by endpoints with a fixed external wire format.
	Body any `json:"-"`
	// HTML, when set, is rendered as text/html.
	HTML Renderer `json:"-"`
	// Location, when set, turns the result into a redirect.
	Location string `json:"-"`
}

// Renderer is satisfied by gomponents nodes.
type Renderer interface {
	Render(w io.Writer) error
}

// RateLimitResponse is the data of a 429 envelope.
type RateLimitResponse struct {
	Limit      int    `json:"limit"`
	Window     string `json:"window"`
	RetryAfter string `json:"retry_after"`
}

type HandlerFunction func(*RequestContext) *ServiceResult

type RESTController struct {
	name         string
	mountPoint   string
	version      string
	handlerCount int
	limiter      ratelimit.RateLimiter
	reject       func(rejected *ServiceResult) *ServiceResult
	prepare      func(*RouterService, *RESTController)
}

func (result *ServiceResult) ToJSON() gin.H {
	return gin.H{
		"code":    result.StatusCode,
		"data":    result.Data,
		"message": result.Message,
	}
}
