// Package api exposes the recall engine over HTTP as a small JSON API.
package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/abhisek/hanzimem/internal/session"
)

// Service hosts the HTTP handlers over a session controller.
type Service struct {
	controller *session.Controller
	log        *slog.Logger
}

// New creates a Service.
func New(controller *session.Controller, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{controller: controller, log: log}
}

// Router builds the configured echo instance.
func (s *Service) Router() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(s.requestLogger)

	e.GET("/api/health", s.health)
	e.POST("/api/recall/session", s.startSession)
	e.POST("/api/recall/session/:id/batch", s.nextBatch)
	e.POST("/api/recall/session/:id/answer", s.submitAnswer)
	e.POST("/api/recall/session/:id/end", s.endSession)
	e.GET("/api/recall/session/:id/trace", s.trace)
	return e
}

type startRequest struct {
	Learner string `json:"learner"`
}

type startResponse struct {
	SessionID string         `json:"session_id"`
	Items     []session.Item `json:"items"`
}

type batchResponse struct {
	Items []session.Item `json:"items"`
	Done  bool           `json:"done"`
}

type answerRequest struct {
	Character      string `json:"character"`
	SelectedChoice string `json:"selected_choice"`
	IDontKnow      bool   `json:"i_dont_know"`
	LatencyMS      int    `json:"latency_ms"`
	// Optional: the server resolves the correct reading itself when absent.
	CorrectReading string `json:"correct_reading,omitempty"`
}

type answerResponse struct {
	Correct     bool                `json:"correct"`
	IDontKnow   bool                `json:"i_dont_know"`
	ScoreBefore int                 `json:"score_before"`
	ScoreAfter  int                 `json:"score_after"`
	Missed      *session.MissedItem `json:"missed,omitempty"`
}

type endResponse struct {
	Missed []session.MissedItem `json:"missed"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Service) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Service) startSession(c echo.Context) error {
	var req startRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "malformed request body"})
	}
	res, err := s.controller.Start(c.Request().Context(), req.Learner)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, startResponse{SessionID: res.SessionID, Items: res.Items})
}

func (s *Service) nextBatch(c echo.Context) error {
	items, err := s.controller.NextBatch(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, batchResponse{Items: items, Done: len(items) == 0})
}

func (s *Service) submitAnswer(c echo.Context) error {
	var req answerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "malformed request body"})
	}
	out, err := s.controller.SubmitAnswer(c.Request().Context(), session.AnswerRequest{
		SessionID:      c.Param("id"),
		Character:      req.Character,
		SelectedChoice: req.SelectedChoice,
		IDontKnow:      req.IDontKnow,
		LatencyMS:      req.LatencyMS,
		CorrectReading: req.CorrectReading,
	})
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, answerResponse{
		Correct:     out.Correct,
		IDontKnow:   out.IDontKnow,
		ScoreBefore: out.ScoreBefore,
		ScoreAfter:  out.ScoreAfter,
		Missed:      out.Missed,
	})
}

func (s *Service) endSession(c echo.Context) error {
	missed, err := s.controller.End(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}
	if missed == nil {
		missed = []session.MissedItem{}
	}
	return c.JSON(http.StatusOK, endResponse{Missed: missed})
}

func (s *Service) trace(c echo.Context) error {
	entries, err := s.controller.Trace(c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string][]session.TraceEntry{"trace": entries})
}

// fail maps domain errors onto HTTP status codes.
func (s *Service) fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, session.ErrValidation):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, session.ErrSessionNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		s.log.Error("request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func (s *Service) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := next(c)
		s.log.Info("http request",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"status", c.Response().Status)
		return err
	}
}
