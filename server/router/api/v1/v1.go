package v1

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Shirel25/NutriSnap-HAI/internal/profile"
	errs "github.com/Shirel25/NutriSnap-HAI/server/internal/errors"
	"github.com/Shirel25/NutriSnap-HAI/server/middleware"
	"github.com/Shirel25/NutriSnap-HAI/store"
)

// APIV1Service exposes the participant and wizard event surfaces. Handlers
// only translate between JSON and state machine events; all trial semantics
// live in server/service/trial.
type APIV1Service struct {
	Profile *profile.Profile
	Store   *store.Store

	registry *Registry
	limiter  *middleware.RateLimiter
}

func NewAPIV1Service(profile *profile.Profile, store *store.Store) *APIV1Service {
	return &APIV1Service{
		Profile:  profile,
		Store:    store,
		registry: NewRegistry(store),
		// Human button presses; anything faster is a client bug.
		limiter: middleware.NewRateLimiter(100*time.Millisecond, 20),
	}
}

// Register mounts all routes on the given Echo instance.
func (s *APIV1Service) Register(echoServer *echo.Echo) {
	g := echoServer.Group("/api/v1", s.limiter.Middleware())

	// Participant-facing events.
	g.POST("/sessions", s.CreateSession)
	g.GET("/sessions/:id", s.GetSession)
	g.POST("/sessions/:id/consent", s.GiveConsent)
	g.POST("/sessions/:id/photo", s.SupplyPhoto)
	g.POST("/sessions/:id/decision", s.Decide)
	g.POST("/sessions/:id/retake", s.Retake)
	g.POST("/sessions/:id/manual", s.ChooseManual)
	g.POST("/sessions/:id/manual/submit", s.SubmitManual)

	// Wizard-only events.
	g.POST("/sessions/:id/condition", s.SelectCondition)
	g.POST("/sessions/:id/condition/confirm", s.ConfirmCondition)
	g.POST("/sessions/:id/ready", s.Ready)
	g.GET("/records", s.ListRecords)
}

// statusOf maps study error codes to HTTP statuses. Unknown errors are
// internal.
func statusOf(err error) int {
	code, ok := errs.GetCodeFromError(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch code {
	case errs.ErrCodeInvalidAssessment:
		return http.StatusBadRequest
	case errs.ErrCodeConsentRequired:
		return http.StatusForbidden
	case errs.ErrCodeSessionNotFound:
		return http.StatusNotFound
	case errs.ErrCodeAlreadyConfirmed,
		errs.ErrCodeNoConditionSelected,
		errs.ErrCodeConditionNotConfirmed,
		errs.ErrCodeInvalidEvent,
		errs.ErrCodeAbstained:
		return http.StatusConflict
	case errs.ErrCodeLogWriteFailed:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// fail renders a study error as JSON. Log failures and other internals are
// surfaced, never swallowed: the wizard must know a record did not land.
func fail(c echo.Context, err error) error {
	code, ok := errs.GetCodeFromError(err)
	if !ok {
		return c.JSON(http.StatusInternalServerError, errorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(statusOf(err), errorResponse{Code: string(code), Message: err.Error()})
}
