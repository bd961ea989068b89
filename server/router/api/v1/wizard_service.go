package v1

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Shirel25/NutriSnap-HAI/server/service/trial"
	"github.com/Shirel25/NutriSnap-HAI/store"
)

type conditionRequest struct {
	Condition string `json:"condition"`
}

// SelectCondition stages the experimental condition for a session.
func (s *APIV1Service) SelectCondition(c echo.Context) error {
	machine, err := s.registry.Get(c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	req := &conditionRequest{}
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed condition").SetInternal(err)
	}
	if err := machine.SelectCondition(trial.Condition(req.Condition)); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, toSessionResponse(machine.Snapshot()))
}

// ConfirmCondition locks the staged condition for the session's lifetime.
func (s *APIV1Service) ConfirmCondition(c echo.Context) error {
	machine, err := s.registry.Get(c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	if err := machine.ConfirmCondition(); err != nil {
		return fail(c, err)
	}
	state := machine.Snapshot()
	slog.Info("condition locked",
		slog.String("session", state.SessionID),
		slog.String("condition", string(state.Condition)))
	return c.JSON(http.StatusOK, toSessionResponse(state))
}

type readyRequest struct {
	Category      string `json:"category"`
	DisplayedText string `json:"displayed_text"`
	Calories      int    `json:"calories"`
	Uncertainty   string `json:"uncertainty"`
	Macros        string `json:"macros"`
	Explanation   string `json:"explanation"`
	JudgedCorrect string `json:"judged_correct"`
}

// Ready reveals the wizard's assessment to the participant.
func (s *APIV1Service) Ready(c echo.Context) error {
	machine, err := s.registry.Get(c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	req := &readyRequest{}
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed assessment").SetInternal(err)
	}
	view, err := machine.Ready(trial.Assessment{
		Category:      req.Category,
		DisplayedText: req.DisplayedText,
		Calories:      req.Calories,
		Uncertainty:   trial.Uncertainty(req.Uncertainty),
		Macros:        req.Macros,
		Explanation:   req.Explanation,
		JudgedCorrect: req.JudgedCorrect,
	})
	if err != nil {
		return fail(c, err)
	}
	slog.Info("assessment revealed",
		slog.String("session", c.Param("id")),
		slog.String("uncertainty", req.Uncertainty),
		slog.String("view", string(view)))
	return c.JSON(http.StatusOK, toSessionResponse(machine.Snapshot()))
}

// ListRecords returns logged interactions for mid-study monitoring.
func (s *APIV1Service) ListRecords(c echo.Context) error {
	find := &store.FindInteraction{}
	if v := c.QueryParam("session_id"); v != "" {
		find.SessionID = &v
	}
	if v := c.QueryParam("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "malformed limit")
		}
		find.Limit = &limit
	}
	records, err := s.Store.ListInteractions(c.Request().Context(), find)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, records)
}
