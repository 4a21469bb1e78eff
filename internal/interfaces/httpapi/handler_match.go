package httpapi

import (
	"net/http"
	"time"

	"github.com/V1TECKOR/interclub/internal/domain/availability"
	"github.com/V1TECKOR/interclub/internal/domain/match"
	"github.com/V1TECKOR/interclub/internal/usecase"
)

type createMatchRequest struct {
	TeamID        string      `json:"team_id" validate:"required"`
	Opponent      string      `json:"opponent" validate:"required,max=200"`
	Location      string      `json:"location" validate:"required,oneof=Home Away Other"`
	ProposedDates []time.Time `json:"proposed_dates" validate:"omitempty,dive,required"`
}

type matchDTO struct {
	ID          string     `json:"id"`
	TeamID      string     `json:"team_id"`
	Opponent    string     `json:"opponent"`
	Location    string     `json:"location"`
	Status      string     `json:"status"`
	FinalDate   *time.Time `json:"final_date,omitempty"`
	FinalDateID string     `json:"final_date_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func matchToDTO(item match.Match) matchDTO {
	return matchDTO{
		ID:          item.ID,
		TeamID:      item.TeamID,
		Opponent:    item.Opponent,
		Location:    string(item.Location),
		Status:      string(item.Status),
		FinalDate:   item.FinalDate,
		FinalDateID: item.FinalDateID,
		CreatedAt:   item.CreatedAt,
	}
}

type matchDateDTO struct {
	ID         string    `json:"id"`
	MatchID    string    `json:"match_id"`
	ProposedAt time.Time `json:"proposed_datetime"`
}

func matchDateToDTO(item match.Date) matchDateDTO {
	return matchDateDTO{ID: item.ID, MatchID: item.MatchID, ProposedAt: item.ProposedAt}
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatch")
	defer span.End()

	caller, err := callerID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createMatchRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.matchService.CreateMatch(ctx, usecase.CreateMatchInput{
		CaptainID:     caller,
		TeamID:        req.TeamID,
		Opponent:      req.Opponent,
		Location:      req.Location,
		ProposedDates: req.ProposedDates,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create match failed", "team_id", req.TeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(created))
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	caller, err := callerID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.matchService.GetMatch(ctx, caller, r.PathValue("matchID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) ListTeamMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamMatches")
	defer span.End()

	caller, err := callerID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matches, err := h.matchService.ListTeamMatches(ctx, caller, r.PathValue("teamID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(matches))
	for _, item := range matches {
		items = append(items, matchToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type proposeDateRequest struct {
	ProposedAt time.Time `json:"proposed_datetime" validate:"required"`
}

func (h *Handler) ProposeDate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ProposeDate")
	defer span.End()

	caller, err := callerID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req proposeDateRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.scheduleService.ProposeDate(ctx, caller, r.PathValue("matchID"), req.ProposedAt)
	if err != nil {
		h.logger.WarnContext(ctx, "propose date failed", "match_id", r.PathValue("matchID"), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchDateToDTO(created))
}

func (h *Handler) ListDates(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListDates")
	defer span.End()

	caller, err := callerID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	dates, err := h.scheduleService.ListDates(ctx, caller, r.PathValue("matchID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDateDTO, 0, len(dates))
	for _, item := range dates {
		items = append(items, matchDateToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type setAvailabilityRequest struct {
	Available *bool `json:"available" validate:"required"`
}

func (h *Handler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetAvailability")
	defer span.End()

	caller, err := callerID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req setAvailabilityRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.scheduleService.SetAvailability(ctx, caller, r.PathValue("dateID"), *req.Available); err != nil {
		h.logger.WarnContext(ctx, "set availability failed", "date_id", r.PathValue("dateID"), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"available": *req.Available})
}

type tallyDTO struct {
	MatchDateID string    `json:"match_date_id"`
	ProposedAt  time.Time `json:"proposed_datetime"`
	Available   int       `json:"available"`
	Unavailable int       `json:"unavailable"`
	NoResponse  int       `json:"no_response"`
}

func tallyToDTO(item availability.Tally) tallyDTO {
	return tallyDTO{
		MatchDateID: item.MatchDateID,
		ProposedAt:  item.ProposedAt,
		Available:   item.Available,
		Unavailable: item.Unavailable,
		NoResponse:  item.NoResponse,
	}
}

func (h *Handler) TallyAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TallyAvailability")
	defer span.End()

	caller, err := callerID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	tallies, err := h.scheduleService.TallyAvailability(ctx, caller, r.PathValue("matchID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]tallyDTO, 0, len(tallies))
	for _, item := range tallies {
		items = append(items, tallyToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type finalizeDateRequest struct {
	MatchDateID string `json:"match_date_id" validate:"required"`
}

func (h *Handler) FinalizeDate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FinalizeDate")
	defer span.End()

	caller, err := callerID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req finalizeDateRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	confirmed, err := h.scheduleService.FinalizeDate(ctx, caller, r.PathValue("matchID"), req.MatchDateID)
	if err != nil {
		h.logger.WarnContext(ctx, "finalize date failed", "match_id", r.PathValue("matchID"), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(confirmed))
}
