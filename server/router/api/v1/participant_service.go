package v1

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Shirel25/NutriSnap-HAI/server/service/trial"
)

type sessionResponse struct {
	SessionID          string `json:"session_id"`
	View               string `json:"view"`
	TrialID            int    `json:"trial_id"`
	ConsentGiven       bool   `json:"consent_given"`
	Condition          string `json:"condition,omitempty"`
	ConditionConfirmed bool   `json:"condition_confirmed"`
	HasPhoto           bool   `json:"has_photo"`
	PrefillText        string `json:"prefill_text,omitempty"`
	Abstained          bool   `json:"abstained"`
}

func toSessionResponse(state trial.State) sessionResponse {
	return sessionResponse{
		SessionID:          state.SessionID,
		View:               string(state.View),
		TrialID:            state.TrialID,
		ConsentGiven:       state.ConsentGiven,
		Condition:          string(state.Condition),
		ConditionConfirmed: state.ConditionConfirmed,
		HasPhoto:           state.HasPhoto,
		PrefillText:        state.PrefillText,
		Abstained:          state.Abstained,
	}
}

// CreateSession starts a new participant run.
func (s *APIV1Service) CreateSession(c echo.Context) error {
	machine := s.registry.Create()
	state := machine.Snapshot()
	slog.Info("session created", slog.String("session", state.SessionID))
	return c.JSON(http.StatusCreated, toSessionResponse(state))
}

// GetSession returns the session state for the presentation layer.
func (s *APIV1Service) GetSession(c echo.Context) error {
	machine, err := s.registry.Get(c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, toSessionResponse(machine.Snapshot()))
}

// GiveConsent records participant consent.
func (s *APIV1Service) GiveConsent(c echo.Context) error {
	machine, err := s.registry.Get(c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	if _, err := machine.GiveConsent(); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, toSessionResponse(machine.Snapshot()))
}

// SupplyPhoto registers that a photo exists for the current trial.
func (s *APIV1Service) SupplyPhoto(c echo.Context) error {
	machine, err := s.registry.Get(c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	view, err := machine.SupplyPhoto()
	if err != nil {
		return fail(c, err)
	}
	slog.Info("photo supplied", slog.String("session", c.Param("id")), slog.String("view", string(view)))
	return c.JSON(http.StatusOK, toSessionResponse(machine.Snapshot()))
}

type decisionRequest struct {
	Action string `json:"action"`
}

// Decide applies an accept/override/reject decision.
func (s *APIV1Service) Decide(c echo.Context) error {
	machine, err := s.registry.Get(c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	req := &decisionRequest{}
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed decision").SetInternal(err)
	}
	view, err := machine.Decide(c.Request().Context(), trial.Action(req.Action))
	if err != nil {
		return fail(c, err)
	}
	slog.Info("decision applied",
		slog.String("session", c.Param("id")),
		slog.String("action", req.Action),
		slog.String("view", string(view)))
	return c.JSON(http.StatusOK, toSessionResponse(machine.Snapshot()))
}

// Retake returns to the upload screen after an abstention.
func (s *APIV1Service) Retake(c echo.Context) error {
	machine, err := s.registry.Get(c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	if _, err := machine.Retake(); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, toSessionResponse(machine.Snapshot()))
}

// ChooseManual switches to manual entry after an abstention.
func (s *APIV1Service) ChooseManual(c echo.Context) error {
	machine, err := s.registry.Get(c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	if _, err := machine.ChooseManual(); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, toSessionResponse(machine.Snapshot()))
}

type manualSubmitRequest struct {
	Entry string `json:"entry"`
}

// SubmitManual logs the manual entry and completes the trial.
func (s *APIV1Service) SubmitManual(c echo.Context) error {
	machine, err := s.registry.Get(c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	req := &manualSubmitRequest{}
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed manual entry").SetInternal(err)
	}
	if _, err := machine.SubmitManual(c.Request().Context(), req.Entry); err != nil {
		return fail(c, err)
	}
	slog.Info("manual entry saved", slog.String("session", c.Param("id")))
	return c.JSON(http.StatusOK, toSessionResponse(machine.Snapshot()))
}
