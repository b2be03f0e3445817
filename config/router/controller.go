package router

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/akeren/bizguard-leads/pkg/ratelimit"
)

func NewRESTController(name, mountPoint string, prepare func(*RouterService, *RESTController)) *RESTController {
	return &RESTController{
		name:       name,
		mountPoint: cleanPath(mountPoint),
		prepare:    prepare,
	}
}

// NewVersionedRESTController mounts under /<version>/<mountPoint>.
func NewVersionedRESTController(name, version, mountPoint string, prepare func(*RouterService, *RESTController)) *RESTController {
	return &RESTController{
		name:       name,
		mountPoint: cleanPath(version + "/" + mountPoint),
		version:    version,
		prepare:    prepare,
	}
}

// RateLimitWith applies limiter to every handler of the controller that has
// no limiter of its own. Controllers sharing a mount point keep separate limits.
func (controller *RESTController) RateLimitWith(limiter ratelimit.RateLimiter) *RESTController {
	controller.limiter = limiter
	return controller
}

// RejectWith replaces the envelope the router middleware answers with when it
// refuses a request for one of the controller's routes (body too large, rate
// limited, timed out). reject receives the envelope it would have written.
func (controller *RESTController) RejectWith(reject func(rejected *ServiceResult) *ServiceResult) *RESTController {
	controller.reject = reject
	return controller
}

func (routerService *RouterService) AddGetHandler(controller *RESTController, limiter ratelimit.RateLimiter, path string, handler HandlerFunction, middlewares ...MiddlewareFunc) {
	routerService.addHandler(http.MethodGet, controller, limiter, path, handler, middlewares)
}

func (routerService *RouterService) AddPostHandler(controller *RESTController, limiter ratelimit.RateLimiter, path string, handler HandlerFunction, middlewares ...MiddlewareFunc) {
	routerService.addHandler(http.MethodPost, controller, limiter, path, handler, middlewares)
}

func (routerService *RouterService) addHandler(
	method string,
	controller *RESTController,
	limiter ratelimit.RateLimiter,
	path string,
	handler HandlerFunction,
	middlewares []MiddlewareFunc,
) {
	fullPath := cleanPath(controller.mountPoint + "/" + path)
	key := routerService.keyForPathAndMethod(fullPath, method)

	if other, found := routerService.handlerToControllerMap[key]; found {
		panic(fmt.Sprintf("%s %s is already registered by controller %q", method, fullPath, other.name))
	}
	routerService.handlerToControllerMap[key] = controller
	routerService.bindOverrideRateLimiter(key, limiter)

	controller.handlerCount++
	routerService.engine.Handle(method, fullPath, append(middlewares, createHandler(handler))...)
	routerService.logger.Debug("Handler registered", "method", method, "path", fullPath, "controller", controller.name)
}

// cleanPath yields a rooted path without duplicate or trailing slashes.
func cleanPath(path string) string {
	parts := strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
	return "/" + strings.Join(parts, "/")
}

func (routerService *RouterService) keyForPathAndMethod(path, method string) string {
	return method + " " + path
}

func (routerService *RouterService) bindOverrideRateLimiter(key string, limiter ratelimit.RateLimiter) {
	if limiter == nil {
		return
	}

	if _, found := routerService.rateLimitOverrides[key]; found {
		panic(fmt.Sprintf("a rate limiter is already registered for %q", key))
	}

	routerService.rateLimitOverrides[key] = limiter
}

// createHandler writes a ServiceResult in the form it asks for: redirect,
// HTML page, fixed JSON body or the {code,data,message} envelope.
func createHandler(handler HandlerFunction) MiddlewareFunc {
	return func(c *RequestContext) {
		result := handler(c)

		if result == nil {
			GetLogger(c).Error("Handler returned no result", "route", c.FullPath())
			c.JSON(http.StatusInternalServerError, InternalServerErrorResult("Internal server error").ToJSON())
			return
		}

		writeResult(c, result)
	}
}

// abortWith stops the chain and writes result, or the matched controller's
// rejection of it.
func (routerService *RouterService) abortWith(c *RequestContext, result *ServiceResult) {
	key := routerService.keyForPathAndMethod(c.FullPath(), c.Request.Method)
	if controller, ok := routerService.handlerToControllerMap[key]; ok && controller.reject != nil {
		if replaced := controller.reject(result); replaced != nil {
			result = replaced
		}
	}

	c.Abort()
	writeResult(c, result)
}

func writeResult(c *RequestContext, result *ServiceResult) {
	switch {
	case result.Location != "":
		c.Redirect(result.StatusCode, result.Location)
	case result.HTML != nil:
		c.Status(result.StatusCode)
		c.Header("Content-Type", "text/html; charset=utf-8")
		if err := result.HTML.Render(c.Writer); err != nil {
			GetLogger(c).Error("Failed to render HTML response", "error", err)
		}
	case result.Body != nil:
		c.JSON(result.StatusCode, result.Body)
	default:
		c.JSON(result.StatusCode, result.ToJSON())
	}
}
