package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"FOMCPulse/internal/game"
	"FOMCPulse/internal/model"
	"FOMCPulse/internal/survey"
)

const (
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 100
)

type predictionRequest struct {
	UserID         string `json:"user_id"`
	DisplayName    string `json:"display_name"`
	Direction      string `json:"direction"`
	YieldChangeBps int    `json:"yield_change_bps"`
	Confidence     *int   `json:"confidence"`
}

// prediction converts the request body. An empty direction stays unset.
func (req predictionRequest) prediction() (model.Prediction, error) {
	p := model.NewPrediction()
	if strings.TrimSpace(req.Direction) != "" {
		d, err := model.ParseDirection(req.Direction)
		if err != nil {
			return p, err
		}
		p.GuessedDirection = &d
	}
	p.GuessedYieldChangeBps = req.YieldChangeBps
	if req.Confidence != nil {
		if *req.Confidence < 0 || *req.Confidence > 100 {
			return p, fmt.Errorf("confidence must be between 0 and 100")
		}
		p.ConfidencePercent = *req.Confidence
	}
	return p, nil
}

type scoreResponse struct {
	Scenario model.Scenario    `json:"scenario"`
	Result   model.ScoreResult `json:"result"`
}

type surveyRequest struct {
	UserID      string                `json:"user_id"`
	Kind        string                `json:"kind"`
	Outlook     string                `json:"outlook"`
	Projections []model.DotProjection `json:"projections"`
	Comment     string                `json:"comment"`
}

func (s *Server) getScenario(w http.ResponseWriter, r *http.Request) {
	sc, err := s.Game.Scenarios.FetchScenario(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("fetch scenario")
		writeError(w, http.StatusBadGateway, "scenario source unavailable")
		return
	}
	writeJSON(w, http.StatusOK, sc.Card())
}

func (s *Server) listScenarios(w http.ResponseWriter, r *http.Request) {
	list, err := s.Game.Scenarios.ListScenarios(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("list scenarios")
		writeError(w, http.StatusBadGateway, "scenario source unavailable")
		return
	}
	cards := make([]model.ScenarioCard, 0, len(list))
	for _, sc := range list {
		cards = append(cards, sc.Card())
	}
	writeJSON(w, http.StatusOK, cards)
}

func (s *Server) postPrediction(w http.ResponseWriter, r *http.Request) {
	var req predictionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	p, err := req.prediction()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	out, err := s.Game.Play(r.Context(), model.Player{UserID: req.UserID, DisplayName: req.DisplayName}, p)
	switch {
	case errors.Is(err, game.ErrMissingPlayer):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		log.Error().Err(err).Msg("play")
		writeError(w, http.StatusBadGateway, "scenario source unavailable")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) postScore(w http.ResponseWriter, r *http.Request) {
	var req predictionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	p, err := req.prediction()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sc, res, err := s.Game.Preview(r.Context(), p)
	if err != nil {
		log.Error().Err(err).Msg("preview")
		writeError(w, http.StatusBadGateway, "scenario source unavailable")
		return
	}
	writeJSON(w, http.StatusOK, scoreResponse{Scenario: *sc, Result: res})
}

func (s *Server) getLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := defaultLeaderboardLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxLeaderboardLimit)
	}
	entries, err := s.Game.Board.Top(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("leaderboard top")
		writeError(w, http.StatusInternalServerError, "leaderboard unavailable")
		return
	}
	if entries == nil {
		entries = []model.LeaderboardEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.Game.Profile(r.Context(), chi.URLParam(r, "userID"))
	switch {
	case errors.Is(err, game.ErrMissingPlayer):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		log.Error().Err(err).Msg("profile")
		writeError(w, http.StatusInternalServerError, "profile unavailable")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) postSurvey(w http.ResponseWriter, r *http.Request) {
	var req surveyRequest
	if !decodeBody(w, r, &req) {
		return
	}
	kind := survey.KindOutlook
	switch req.Kind {
	case "", "outlook":
	case "comment":
		kind = survey.KindComment
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown survey kind %q", req.Kind))
		return
	}

	sub := model.SurveySubmission{UserID: req.UserID, Projections: req.Projections, Comment: req.Comment}
	// An unrecognised outlook is left unset so validation reports it.
	if d, err := model.ParseDirection(req.Outlook); err == nil {
		sub.Outlook = &d
	}

	saved, err := s.Survey.Submit(r.Context(), kind, sub)
	var verr *survey.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": verr.Message, "field": verr.Field})
		return
	case err != nil:
		log.Error().Err(err).Msg("survey submit")
		writeError(w, http.StatusInternalServerError, "could not save submission")
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) getResults(w http.ResponseWriter, r *http.Request) {
	agg, err := s.Results.FetchAggregates(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("fetch aggregates")
		writeError(w, http.StatusInternalServerError, "results unavailable")
		return
	}
	writeJSON(w, http.StatusOK, agg)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
