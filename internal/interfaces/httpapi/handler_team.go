package httpapi

import (
	"net/http"
	"time"

	"github.com/V1TECKOR/interclub/internal/domain/membership"
	"github.com/V1TECKOR/interclub/internal/domain/team"
	"github.com/V1TECKOR/interclub/internal/usecase"
)

type createTeamRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type teamDTO struct {
	ID        string    `json:"id"`
	ClubID    string    `json:"club_id"`
	Name      string    `json:"name"`
	CaptainID string    `json:"captain_id"`
	CreatedAt time.Time `json:"created_at"`
}

func teamToDTO(item team.Team) teamDTO {
	return teamDTO{
		ID:        item.ID,
		ClubID:    item.ClubID,
		Name:      item.Name,
		CaptainID: item.CaptainID,
		CreatedAt: item.CreatedAt,
	}
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeam")
	defer span.End()

	caller, err := callerID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createTeamRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.teamService.CreateTeam(ctx, usecase.CreateTeamInput{
		CreatorID: caller,
		Name:      req.Name,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create team failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, teamToDTO(created))
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	item, err := h.teamService.GetTeam(ctx, r.PathValue("teamID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(item))
}

func (h *Handler) ListClubTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListClubTeams")
	defer span.End()

	caller, err := callerID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	teams, err := h.teamService.ListClubTeams(ctx, caller, r.PathValue("clubID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, item := range teams {
		items = append(items, teamToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type membershipDTO struct {
	UserID      string     `json:"user_id"`
	TeamID      string     `json:"team_id"`
	Approved    bool       `json:"approved"`
	RequestedAt time.Time  `json:"requested_at"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
}

func membershipToDTO(item membership.Membership) membershipDTO {
	return membershipDTO{
		UserID:      item.UserID,
		TeamID:      item.TeamID,
		Approved:    item.Approved,
		RequestedAt: item.RequestedAt,
		ApprovedAt:  item.ApprovedAt,
	}
}

func (h *Handler) ListRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRoster")
	defer span.End()

	caller, err := callerID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	approvedOnly := r.URL.Query().Get("approved") == "true"
	roster, err := h.membershipService.ListRoster(ctx, caller, r.PathValue("teamID"), approvedOnly)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]membershipDTO, 0, len(roster))
	for _, item := range roster {
		items = append(items, membershipToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) RequestMembership(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RequestMembership")
	defer span.End()

	caller, err := callerID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.membershipService.RequestMembership(ctx, caller, r.PathValue("teamID"))
	if err != nil {
		h.logger.WarnContext(ctx, "request membership failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, membershipToDTO(created))
}

func (h *Handler) ApproveMembership(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ApproveMembership")
	defer span.End()

	caller, err := callerID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	err = h.membershipService.ApproveMembership(ctx, caller, r.PathValue("userID"), r.PathValue("teamID"))
	if err != nil {
		h.logger.WarnContext(ctx, "approve membership failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "approved"})
}

func (h *Handler) DenyMembership(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DenyMembership")
	defer span.End()

	caller, err := callerID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	err = h.membershipService.DenyMembership(ctx, caller, r.PathValue("userID"), r.PathValue("teamID"))
	if err != nil {
		h.logger.WarnContext(ctx, "deny membership failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "denied"})
}
