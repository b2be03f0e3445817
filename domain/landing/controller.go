package landing

import (
	"net/http"

	"github.com/akeren/bizguard-leads/config/router"
)

// NewLandingController serves the marketing page at GET /.
func NewLandingController(content *Content) *router.RESTController {
	if content == nil {
		content = DefaultContent()
	}

	return router.NewRESTController(
		"LandingController",
		"/",
		func(rs *router.RouterService, c *router.RESTController) {
			rs.AddGetHandler(c, nil, "", func(ctx *router.RequestContext) *router.ServiceResult {
				return router.HTMLResult(http.StatusOK, Page(content))
			})
		},
	)
}
