package leadform

import (
	"errors"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/akeren/bizguard-leads/config/router"
	"github.com/akeren/bizguard-leads/pkg/constants"
	apperrors "github.com/akeren/bizguard-leads/pkg/errors"
	"github.com/google/uuid"
)

const (
	submitFailedNotice      = "Something went wrong sending your application. Please try again."
	submitNotSavedNotice    = "We couldn't save your application. Please try again."
	submitUnavailableNotice = "Applications are paused for a moment. Please try again shortly."
)

type ControllerConfig struct {
	Sessions   SessionStore
	Submitter  Submitter
	SessionTTL time.Duration
}

// NewLeadFormController serves the server-rendered waitlist wizard and
// subscribe form.
func NewLeadFormController(cfg *ControllerConfig) *router.RESTController {
	return router.NewRESTController(
		"LeadFormController",
		"/",
		func(rs *router.RouterService, c *router.RESTController) {
			h := &handlers{
				sessions:  cfg.Sessions,
				submitter: cfg.Submitter,
				ttl:       cfg.SessionTTL,
			}

			rs.AddGetHandler(c, nil, "waitlist", h.showWizard)
			rs.AddPostHandler(c, nil, "waitlist/next", h.nextStep)
			rs.AddPostHandler(c, nil, "waitlist/back", h.prevStep)
			rs.AddPostHandler(c, nil, "waitlist/submit", h.submitWizard)
			rs.AddPostHandler(c, nil, "waitlist/close", h.closeWizard)
			rs.AddGetHandler(c, nil, "subscribe", h.showSubscribe)
			rs.AddPostHandler(c, nil, "subscribe", h.subscribe)
		},
	)
}

type handlers struct {
	sessions  SessionStore
	submitter Submitter
	ttl       time.Duration
}

func (h *handlers) showWizard(ctx *router.RequestContext) *router.ServiceResult {
	id, wizard := h.loadWizard(ctx)
	if err := h.saveWizard(ctx, id, wizard); err != nil {
		return h.sessionFailure(ctx, err)
	}

	return router.HTMLResult(http.StatusOK, wizardPage(wizardView{Wizard: wizard}))
}

func (h *handlers) nextStep(ctx *router.RequestContext) *router.ServiceResult {
	id, wizard := h.loadWizard(ctx)
	wizard.UpdateFormData(draftUpdateFromForm(ctx))

	status := http.StatusOK
	view := wizardView{Wizard: wizard}

	if err := wizard.Advance(); err != nil {
		var incomplete *StepIncompleteError
		switch {
		case errors.As(err, &incomplete):
			status = http.StatusUnprocessableEntity
			view.Missing = incomplete.Fields
		case errors.Is(err, ErrNoNextStep), errors.Is(err, ErrWizardClosed):
			status = http.StatusConflict
		}
	}

	if err := h.saveWizard(ctx, id, wizard); err != nil {
		return h.sessionFailure(ctx, err)
	}

	return router.HTMLResult(status, wizardPage(view))
}

func (h *handlers) prevStep(ctx *router.RequestContext) *router.ServiceResult {
	id, wizard := h.loadWizard(ctx)
	wizard.UpdateFormData(draftUpdateFromForm(ctx))

	status := http.StatusOK
	if err := wizard.PrevStep(); err != nil {
		status = http.StatusConflict
	}

	if err := h.saveWizard(ctx, id, wizard); err != nil {
		return h.sessionFailure(ctx, err)
	}

	return router.HTMLResult(status, wizardPage(wizardView{Wizard: wizard}))
}

func (h *handlers) submitWizard(ctx *router.RequestContext) *router.ServiceResult {
	logger := router.GetLogger(ctx)

	id, wizard := h.loadWizard(ctx)
	wizard.UpdateFormData(draftUpdateFromForm(ctx))

	err := wizard.Submit(ctx.Request.Context(), h.submitter)
	if err == nil {
		if err := h.sessions.Delete(ctx.Request.Context(), id); err != nil {
			logger.Error("Failed to discard wizard session", "error", err)
		}
		h.clearSessionCookie(ctx)
		return router.HTMLResult(http.StatusOK, wizardPage(wizardView{Wizard: wizard}))
	}

	status := http.StatusInternalServerError
	view := wizardView{Wizard: wizard}

	var incomplete *StepIncompleteError
	switch {
	case errors.As(err, &incomplete):
		status = http.StatusUnprocessableEntity
		view.Missing = incomplete.Fields
	case errors.Is(err, ErrNotOnFinalStep), errors.Is(err, ErrWizardClosed):
		status = http.StatusConflict
	default:
		logger.Error("Waitlist submission failed", "error", err)
		status = apperrors.HTTPStatusCode(err)
		view.Notice = submitFailureNotice(err)
	}

	if err := h.saveWizard(ctx, id, wizard); err != nil {
		return h.sessionFailure(ctx, err)
	}

	return router.HTMLResult(status, wizardPage(view))
}

func submitFailureNotice(err error) string {
	switch {
	case apperrors.IsPersistenceError(err):
		return submitNotSavedNotice
	case apperrors.GetErrorType(err) == apperrors.ErrorTypeSinkUnavailable:
		return submitUnavailableNotice
	default:
		return submitFailedNotice
	}
}

func (h *handlers) closeWizard(ctx *router.RequestContext) *router.ServiceResult {
	if id, ok := h.sessionID(ctx); ok {
		if err := h.sessions.Delete(ctx.Request.Context(), id); err != nil {
			router.GetLogger(ctx).Error("Failed to discard wizard session", "error", err)
		}
	}
	h.clearSessionCookie(ctx)

	return router.SeeOtherResult("/")
}

func (h *handlers) showSubscribe(ctx *router.RequestContext) *router.ServiceResult {
	return router.HTMLResult(http.StatusOK, subscribePage(subscribeView{Status: StatusIdle}))
}

func (h *handlers) subscribe(ctx *router.RequestContext) *router.ServiceResult {
	logger := router.GetLogger(ctx)

	var req SubscribeRequest
	if err := ctx.ShouldBind(&req); err != nil {
		logger.Error("Failed to bind subscribe request", "error", err)
		return router.HTMLResult(http.StatusBadRequest, subscribePage(subscribeView{
			Status: StatusIdle,
			Email:  req.Email,
			Errors: apperrors.FormatValidationErrors(err, &req),
		}))
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if err := h.submitter.Submit(ctx.Request.Context(), req.Payload()); err != nil {
		logger.Error("Subscription failed", "error", err)
		return router.HTMLResult(apperrors.HTTPStatusCode(err), subscribePage(subscribeView{
			Status: StatusError,
			Email:  req.Email,
		}))
	}

	return router.HTMLResult(http.StatusOK, subscribePage(subscribeView{Status: StatusSuccess}))
}

// loadWizard returns the visitor's wizard, starting a new one when the
// cookie is missing, the session expired or it was already submitted.
func (h *handlers) loadWizard(ctx *router.RequestContext) (string, *Wizard) {
	if id, ok := h.sessionID(ctx); ok {
		wizard, err := h.sessions.Load(ctx.Request.Context(), id)
		if err == nil && !wizard.Submitted() {
			return id, wizard
		}
		if err != nil && !errors.Is(err, ErrSessionNotFound) {
			router.GetLogger(ctx).Error("Failed to load wizard session; starting over", "error", err)
		}
	}

	id := uuid.NewString()
	h.setSessionCookie(ctx, id)

	return id, NewWizard()
}

func (h *handlers) saveWizard(ctx *router.RequestContext, id string, wizard *Wizard) error {
	return h.sessions.Save(ctx.Request.Context(), id, wizard)
}

func (h *handlers) sessionFailure(ctx *router.RequestContext, err error) *router.ServiceResult {
	router.GetLogger(ctx).Error("Failed to save wizard session", "error", err)
	return router.HTMLResult(http.StatusInternalServerError, wizardPage(wizardView{
		Wizard: NewWizard(),
		Notice: "Something went wrong. Please try again.",
	}))
}

func (h *handlers) sessionID(ctx *router.RequestContext) (string, bool) {
	id, err := ctx.Cookie(constants.WizardSessionCookieName)
	if err != nil {
		return "", false
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

func (h *handlers) setSessionCookie(ctx *router.RequestContext, id string) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(constants.WizardSessionCookieName, id, int(h.ttl.Seconds()), "/", "", ctx.Request.TLS != nil, true)
}

func (h *handlers) clearSessionCookie(ctx *router.RequestContext) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(constants.WizardSessionCookieName, "", -1, "/", "", ctx.Request.TLS != nil, true)
}

// draftUpdateFromForm maps posted form fields onto a DraftUpdate. Only keys
// present in the request are set, so each step's form updates its own fields.
func draftUpdateFromForm(ctx *router.RequestContext) DraftUpdate {
	var u DraftUpdate

	u.Name = formString(ctx, "name")
	u.AgeGroup = formOption(ctx, "ageGroup", AgeGroups)
	u.Profession = formOption(ctx, "profession", ProfessionCategories)
	u.CustomProfession = formString(ctx, "customProfession")
	u.IsBusinessOwner = formBool(ctx, "isBusinessOwner")
	u.Phone = formString(ctx, "phone")
	u.BusinessName = formString(ctx, "businessName")
	u.BusinessDescription = formString(ctx, "businessDescription")
	u.EmployeeRange = formOption(ctx, "employeeRange", EmployeeRanges)
	u.InterestedInCustomization = formBool(ctx, "interestedInCustomization")
	u.CustomSoftware = formString(ctx, "customSoftware")
	u.Email = formString(ctx, "email")
	u.Company = formString(ctx, "company")

	if values, ok := ctx.GetPostFormArray("currentAccounting"); ok {
		selected := make([]string, 0, len(values))
		for _, value := range values {
			if hasOption(AccountingSoftware, value) && !slices.Contains(selected, value) {
				selected = append(selected, value)
			}
		}
		u.CurrentAccounting = &selected
	}

	return u
}

func formString(ctx *router.RequestContext, name string) *string {
	value, ok := ctx.GetPostForm(name)
	if !ok {
		return nil
	}
	value = strings.TrimSpace(value)
	return &value
}

func formOption(ctx *router.RequestContext, name string, options []Option) *string {
	value := formString(ctx, name)
	if value == nil || (*value != "" && !hasOption(options, *value)) {
		return nil
	}
	return value
}

func formBool(ctx *router.RequestContext, name string) *bool {
	values, ok := ctx.GetPostFormArray(name)
	if !ok || len(values) == 0 {
		return nil
	}
	checked := values[len(values)-1] == "true"
	return &checked
}
