package submission

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/akeren/bizguard-leads/config/router"
	"github.com/akeren/bizguard-leads/internal/log"
	apperrors "github.com/akeren/bizguard-leads/pkg/errors"
	"github.com/akeren/bizguard-leads/pkg/ratelimit"
)

type ControllerConfig struct {
	// SubmitLimiter overrides the router's default limiter on POST /api/submit.
	SubmitLimiter ratelimit.RateLimiter
	// ReadToken guards the read endpoints. Empty disables them.
	ReadToken string
}

// NewSubmitController mounts the public sink at POST /api/submit.
func NewSubmitController(service SubmissionService, cfg *ControllerConfig) *router.RESTController {
	if cfg == nil {
		cfg = &ControllerConfig{}
	}

	return router.NewRESTController(
		"SubmitController",
		"/api",
		func(rs *router.RouterService, c *router.RESTController) {
			rs.AddPostHandler(c, cfg.SubmitLimiter, "submit", submitHandler(service))
		},
	).RejectWith(rejectSubmission)
}

// rejectSubmission keeps the submit wire contract when the router refuses a
// request before the handler runs.
func rejectSubmission(*router.ServiceResult) *router.ServiceResult {
	return submitFailure()
}

func submitFailure() *router.ServiceResult {
	return router.RawResult(http.StatusInternalServerError, SubmitErrorResponse{Error: submitFailureMessage})
}

// NewSubmissionsController mounts the token-guarded read path under /v1/submissions.
func NewSubmissionsController(service SubmissionService, logger *log.Logger, cfg *ControllerConfig) *router.RESTController {
	if cfg == nil {
		cfg = &ControllerConfig{}
	}

	return router.NewVersionedRESTController(
		"SubmissionsController",
		"v1",
		"/submissions",
		func(rs *router.RouterService, c *router.RESTController) {
			if cfg.ReadToken == "" {
				logger.Info("SUBMISSIONS_READ_TOKEN not set; submission read endpoints will answer 404")
			}

			guard := requireReadToken(cfg.ReadToken)

			rs.AddGetHandler(c, nil, "", listSubmissionsHandler(service), guard)
			rs.AddGetHandler(c, nil, "/stats", submissionStatsHandler(service), guard)
		},
	)
}

func submitHandler(service SubmissionService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		payload, err := DecodePayload(ctx.Request.Body)
		if err != nil {
			logger.Error("Submission error", "error", err)
			return submitFailure()
		}

		if _, err := service.Submit(ctx.Request.Context(), payload); err != nil {
			logger.Error("Submission error", "error", err)
			return submitFailure()
		}

		return router.RawResult(http.StatusOK, SubmitSuccessResponse{
			Success: true,
			Message: submitSuccessMessage,
		})
	}
}

func listSubmissionsHandler(service SubmissionService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		category, ok := ParseCategory(ctx.Query("category"))
		if !ok {
			return router.BadRequestResult("Query parameter category must be waitlist or subscription", nil)
		}

		records, err := service.List(ctx.Request.Context(), category)
		if err != nil {
			return router.ErrorResult(
				apperrors.HTTPStatusCode(err),
				apperrors.GetHumanReadableMessage(err),
				nil,
			)
		}

		return router.OKResult(ToListResponse(category, records), "Submissions retrieved successfully")
	}
}

func submissionStatsHandler(service SubmissionService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		stats, err := service.Stats(ctx.Request.Context())
		if err != nil {
			return router.ErrorResult(
				apperrors.HTTPStatusCode(err),
				apperrors.GetHumanReadableMessage(err),
				nil,
			)
		}

		return router.OKResult(stats, "Submission stats retrieved successfully")
	}
}

func requireReadToken(token string) router.MiddlewareFunc {
	return func(c *router.RequestContext) {
		if token == "" {
			c.AbortWithStatusJSON(http.StatusNotFound, router.NotFoundResult("Route not found").ToJSON())
			return
		}

		provided, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found || subtle.ConstantTimeCompare([]byte(strings.TrimSpace(provided)), []byte(token)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, router.UnauthorizedResult("Invalid or missing read token").ToJSON())
			return
		}

		c.Next()
	}
}
