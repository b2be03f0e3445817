package router

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/akeren/bizguard-leads/internal/log"
	apperrors "github.com/akeren/bizguard-leads/pkg/errors"
	"github.com/akeren/bizguard-leads/pkg/ratelimit"
	"github.com/akeren/bizguard-leads/pkg/utils"
	"github.com/gin-gonic/gin"
)

// Lead forms and submit payloads are a few KiB at most.
const defaultMaxBodyBytes = 64 << 10

// The pages are plain server-rendered forms posting back to this origin.
const contentSecurityPolicy = "default-src 'self'; form-action 'self'; frame-ancestors 'none'; base-uri 'none'"

// httpSettings is read from the environment once, when the router is built.
type httpSettings struct {
	requestTimeout time.Duration
	maxBodyBytes   int64
	trustedProxies []string
	corsOrigins    []string
	hsts           string // empty disables the header
}

func loadHTTPSettings(requestTimeout time.Duration) *httpSettings {
	return &httpSettings{
		requestTimeout: requestTimeout,
		maxBodyBytes:   int64(utils.GetEnvIntOrDefault("MAX_REQUEST_BODY_BYTES", defaultMaxBodyBytes)),
		trustedProxies: parseTrustedProxiesEnv(utils.GetEnvTrimmed("TRUSTED_PROXIES")),
		corsOrigins:    splitList(utils.GetEnvTrimmed("CORS_ALLOWED_ORIGIN")),
		hsts:           hstsValueFromEnv(),
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseTrustedProxiesEnv(v string) []string {
	s := strings.TrimSpace(v)
	if s == "*" {
		return []string{"0.0.0.0/0", "::/0"}
	}
	// nil makes ClientIP() use RemoteAddr.
	return splitList(s)
}

func hstsValueFromEnv() string {
	enabled := false
	if raw := utils.GetEnvTrimmed("HSTS_ENABLED"); raw != "" {
		enabled, _ = strconv.ParseBool(raw)
	} else {
		appEnv := strings.ToLower(utils.GetEnvTrimmed("APP_ENV"))
		enabled = appEnv == "production" || appEnv == "prod"
	}
	if !enabled {
		return ""
	}

	value := fmt.Sprintf("max-age=%d", utils.GetEnvIntOrDefault("HSTS_MAX_AGE", 31536000))
	if includeSubdomains, err := strconv.ParseBool(utils.GetEnvTrimmedOrDefault("HSTS_INCLUDE_SUBDOMAINS", "true")); err != nil || includeSubdomains {
		value += "; includeSubDomains"
	}
	return value
}

func (routerService *RouterService) correlationIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Correlation-ID")
		if id == "" {
			id = log.GenerateCorrelationID()
		}
		ctx := context.WithValue(c.Request.Context(), log.CorrelatedIDKey, id)
		c.Request = c.Request.WithContext(ctx)
		c.Header("X-Correlation-ID", id)
		c.Next()
	}
}

func (routerService *RouterService) loggerInjectionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		correlatedLogger := routerService.logger.WithCorrelationID(c.Request.Context())
		ctx := context.WithValue(c.Request.Context(), log.LoggerKeyForContext, correlatedLogger)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func (routerService *RouterService) requestLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		GetLogger(c).Info("HTTP request",
			"method", c.Request.Method,
			"route", c.FullPath(),
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"remote_addr", c.ClientIP(),
		)
	}
}

func (routerService *RouterService) securityHeadersMiddleware() gin.HandlerFunc {
	hsts := routerService.settings.hsts

	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Content-Security-Policy", contentSecurityPolicy)

		// Only over HTTPS, directly or behind a TLS-terminating proxy.
		if hsts != "" && (c.Request.TLS != nil || strings.EqualFold(strings.TrimSpace(c.GetHeader("X-Forwarded-Proto")), "https")) {
			h.Set("Strict-Transport-Security", hsts)
		}
		c.Next()
	}
}

func (routerService *RouterService) maxBodySizeMiddleware() gin.HandlerFunc {
	maxBytes := routerService.settings.maxBodyBytes

	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			routerService.abortWith(c, ErrorResult(
				http.StatusRequestEntityTooLarge,
				"Request payload too large",
				nil,
			))
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

// corsMiddleware lets a landing page hosted on another origin post to the
// submit endpoint. Without CORS_ALLOWED_ORIGIN only same-origin use works.
func (routerService *RouterService) corsMiddleware() gin.HandlerFunc {
	allowed := routerService.settings.corsOrigins
	allowAny := slices.Contains(allowed, "*")

	if len(allowed) == 0 {
		routerService.logger.Info("CORS_ALLOWED_ORIGIN not set; cross-origin requests get no CORS headers")
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" || !(allowAny || slices.Contains(allowed, origin)) {
			if origin != "" {
				GetLogger(c).Debug("CORS origin not allowed", "origin", origin)
			}
			c.Next()
			return
		}

		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", origin)
		// Credentials only for explicitly listed origins.
		if !allowAny {
			h.Set("Access-Control-Allow-Credentials", "true")
		}
		h.Set("Access-Control-Allow-Headers", "Content-Type, Accept, Authorization, X-Correlation-ID")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Add("Vary", "Origin")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(apperrors.StatusNoContent)
			return
		}

		c.Next()
	}
}

func (routerService *RouterService) timeoutMiddleware() gin.HandlerFunc {
	timeout := routerService.settings.requestTimeout

	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		// gin.Context is not safe for concurrent use, so the chain runs inline
		// and the deadline only reaches handlers through ctx.
		c.Next()

		if ctx.Err() == context.DeadlineExceeded && !c.Writer.Written() {
			GetLogger(c).Warn("Request timeout detected")
			routerService.abortWith(c, ErrorResult(
				apperrors.StatusRequestTimeout,
				"Request timeout",
				nil,
			))
		}
	}
}

// limiterFor picks the handler override, then the controller override, then
// the default. Override limiters are keyed per client and route.
func (routerService *RouterService) limiterFor(c *gin.Context) (ratelimit.RateLimiter, string) {
	handlerKey := routerService.keyForPathAndMethod(c.FullPath(), c.Request.Method)
	clientKey := "ratelimit:" + c.ClientIP()

	if limiter, ok := routerService.rateLimitOverrides[handlerKey]; ok {
		return limiter, clientKey + ":" + handlerKey
	}

	if controller, ok := routerService.handlerToControllerMap[handlerKey]; ok && controller.limiter != nil {
		return controller.limiter, clientKey + ":" + controller.name
	}

	return routerService.rateLimiter, clientKey
}

func (routerService *RouterService) rateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Unmatched routes fall through to NoRoute/NoMethod.
		if c.FullPath() == "" {
			c.Next()
			return
		}

		limiter, key := routerService.limiterFor(c)
		if limiter == nil {
			c.Next()
			return
		}

		limit, window := limiter.GetLimitDetails()
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Window", window.String())

		limited, err := limiter.IsLimited(key)
		if err != nil {
			// Fail open.
			routerService.logger.Error("Rate limiter error", "error", err, "client_ip", c.ClientIP())
			c.Next()
			return
		}

		if limited {
			routerService.logger.Warn("Rate limit exceeded", "client_ip", c.ClientIP(), "route", c.FullPath())
			retryAfter := strconv.Itoa(max(1, int(math.Ceil(window.Seconds()))))
			c.Header("Retry-After", retryAfter)
			routerService.abortWith(c, TooManyRequestsResult(RateLimitResponse{
				Limit:      limit,
				Window:     window.String(),
				RetryAfter: retryAfter,
			}))
			return
		}

		c.Next()
	}
}
