package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/V1TECKOR/interclub/internal/usecase"
)

type Handler struct {
	registrationService *usecase.RegistrationService
	teamService         *usecase.TeamService
	membershipService   *usecase.MembershipService
	matchService        *usecase.MatchService
	scheduleService     *usecase.ScheduleService
	lineupService       *usecase.LineupService
	taskService         *usecase.TaskService
	messageService      *usecase.MessageService
	dashboardService    *usecase.DashboardService
	logger              *slog.Logger
	validator           *validator.Validate
}

func NewHandler(
	registrationService *usecase.RegistrationService,
	teamService *usecase.TeamService,
	membershipService *usecase.MembershipService,
	matchService *usecase.MatchService,
	scheduleService *usecase.ScheduleService,
	lineupService *usecase.LineupService,
	taskService *usecase.TaskService,
	messageService *usecase.MessageService,
	dashboardService *usecase.DashboardService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		registrationService: registrationService,
		teamService:         teamService,
		membershipService:   membershipService,
		matchService:        matchService,
		scheduleService:     scheduleService,
		lineupService:       lineupService,
		taskService:         taskService,
		messageService:      messageService,
		dashboardService:    dashboardService,
		logger:              logger,
		validator:           validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decodeAndValidate(ctx context.Context, r *http.Request, payload any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	if err := decoder.Decode(payload); err != nil {
		return fmt.Errorf("%w: decode request body: %v", usecase.ErrInvalidInput, err)
	}
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// callerID resolves the authenticated user from the request context.
func callerID(ctx context.Context) (string, error) {
	principal, ok := principalFromContext(ctx)
	if !ok || principal.UserID == "" {
		return "", fmt.Errorf("%w: no authenticated principal", usecase.ErrUnauthorized)
	}

	return principal.UserID, nil
}

type registerUserRequest struct {
	FirstName     string `json:"first_name" validate:"omitempty,max=100"`
	LastName      string `json:"last_name" validate:"omitempty,max=100"`
	Email         string `json:"email" validate:"required,email"`
	LicenseNumber string `json:"license_number" validate:"required,max=64"`
	Password      string `json:"password" validate:"required,min=8,max=128"`
}

type userDTO struct {
	ID            string    `json:"id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Email         string    `json:"email"`
	LicenseNumber string    `json:"license_number"`
	Role          string    `json:"role"`
	ClubID        string    `json:"club_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RegisterUser")
	defer span.End()

	var req registerUserRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.registrationService.Register(ctx, usecase.RegisterUserInput{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		LicenseNumber: req.LicenseNumber,
		Password:      req.Password,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "register user failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, userDTO{
		ID:            created.ID,
		FirstName:     created.FirstName,
		LastName:      created.LastName,
		Email:         created.Email,
		LicenseNumber: created.LicenseNumber,
		Role:          string(created.Role),
		ClubID:        created.ClubID,
		CreatedAt:     created.CreatedAt,
	})
}

type dashboardTeamDTO struct {
	TeamID    string `json:"team_id"`
	Name      string `json:"name"`
	Approved  bool   `json:"approved"`
	IsCaptain bool   `json:"is_captain"`
}

type dashboardMatchDTO struct {
	MatchID   string     `json:"match_id"`
	TeamName  string     `json:"team_name"`
	Opponent  string     `json:"opponent"`
	Location  string     `json:"location"`
	Status    string     `json:"status"`
	FinalDate *time.Time `json:"final_date,omitempty"`
}

type dashboardDTO struct {
	ClubName        string              `json:"club_name,omitempty"`
	Teams           []dashboardTeamDTO  `json:"teams"`
	UpcomingMatches []dashboardMatchDTO `json:"upcoming_matches"`
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDashboard")
	defer span.End()

	caller, err := callerID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	dashboard, err := h.dashboardService.Get(ctx, caller)
	if err != nil {
		h.logger.ErrorContext(ctx, "get dashboard failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := dashboardDTO{
		ClubName:        dashboard.ClubName,
		Teams:           make([]dashboardTeamDTO, 0, len(dashboard.Teams)),
		UpcomingMatches: make([]dashboardMatchDTO, 0, len(dashboard.UpcomingMatches)),
	}
	for _, item := range dashboard.Teams {
		out.Teams = append(out.Teams, dashboardTeamDTO{
			TeamID:    item.TeamID,
			Name:      item.Name,
			Approved:  item.Approved,
			IsCaptain: item.IsCaptain,
		})
	}
	for _, item := range dashboard.UpcomingMatches {
		out.UpcomingMatches = append(out.UpcomingMatches, dashboardMatchDTO{
			MatchID:   item.Match.ID,
			TeamName:  item.TeamName,
			Opponent:  item.Match.Opponent,
			Location:  string(item.Match.Location),
			Status:    string(item.Match.Status),
			FinalDate: item.Match.FinalDate,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}
