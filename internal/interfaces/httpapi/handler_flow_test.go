package httpapi

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/V1TECKOR/interclub/internal/domain/user"
	"github.com/V1TECKOR/interclub/internal/infrastructure/repository/memory"
	"github.com/V1TECKOR/interclub/internal/platform/id"
	"github.com/V1TECKOR/interclub/internal/usecase"
)

// stubVerifier maps bearer tokens straight to seeded users.
type stubVerifier struct{}

func (stubVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	switch token {
	case "token-anna":
		return user.Principal{UserID: memory.UserIDAnna, Email: "anna@blauweiss.example"}, nil
	case "token-ben":
		return user.Principal{UserID: memory.UserIDBen, Email: "ben@blauweiss.example"}, nil
	case "token-frida":
		return user.Principal{UserID: memory.UserIDFrida, Email: "frida@rotgold.example"}, nil
	default:
		return user.Principal{}, fmt.Errorf("%w: unknown token", usecase.ErrUnauthorized)
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	store := memory.NewSeededStore()
	ids := id.NewRandomGenerator()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	notifier := usecase.NopNotifier{}

	handler := NewHandler(
		usecase.NewRegistrationService(store, ids),
		usecase.NewTeamService(store, ids, logger),
		usecase.NewMembershipService(store, notifier, logger),
		usecase.NewMatchService(store, ids, notifier, logger),
		usecase.NewScheduleService(store, ids, logger),
		usecase.NewLineupService(store, logger),
		usecase.NewTaskService(store),
		usecase.NewMessageService(store, ids),
		usecase.NewDashboardService(store),
		logger,
	)

	return NewRouter(handler, stubVerifier{}, logger, nil)
}

func doJSON(t *testing.T, router http.Handler, method, path, token, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope map[string]any
	if rec.Body.Len() > 0 {
		if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("unmarshal %s %s response: %v", method, path, err)
		}
	}

	return rec, envelope
}

func dataField(t *testing.T, envelope map[string]any) map[string]any {
	t.Helper()

	data, ok := envelope["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %v", envelope)
	}

	return data
}

func TestRouter_RejectsMissingToken(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doJSON(t, router, http.MethodGet, "/v1/dashboard", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRegisterUser_AssignsClubFromLicensePrefix(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doJSON(t, router, http.MethodPost, "/v1/users", "", `{
		"first_name": "Greta",
		"last_name": "Huber",
		"email": "greta@blauweiss.example",
		"license_number": "BW-1970-77",
		"password": "correct horse"
	}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}

	data := dataField(t, envelope)
	if data["club_id"] != memory.ClubIDBlauweiss {
		t.Fatalf("expected club from longest license prefix, got %v", data["club_id"])
	}
	if data["role"] != "player" {
		t.Fatalf("expected player role, got %v", data["role"])
	}
}

func TestMatchLifecycleOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	// Captain creates a match with two candidate dates.
	rec, envelope := doJSON(t, router, http.MethodPost, "/v1/matches", "token-anna", fmt.Sprintf(`{
		"team_id": %q,
		"opponent": "TC Gruenfeld",
		"location": "Home",
		"proposed_dates": ["2026-05-09T14:00:00Z", "2026-05-10T10:00:00Z"]
	}`, memory.TeamIDHerren1))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create match: expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	matchID := dataField(t, envelope)["id"].(string)

	// A non-member cannot vote.
	rec, envelope = doJSON(t, router, http.MethodGet, "/v1/matches/"+matchID+"/dates", "token-anna", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list dates: expected 200, got %d", rec.Code)
	}
	dates, ok := envelope["data"].([]any)
	if !ok || len(dates) != 2 {
		t.Fatalf("expected 2 candidate dates, got %v", envelope["data"])
	}
	firstDateID := dates[0].(map[string]any)["id"].(string)

	rec, _ = doJSON(t, router, http.MethodPut, "/v1/dates/"+firstDateID+"/availability", "token-frida", `{"available": true}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("outsider vote: expected 403, got %d", rec.Code)
	}

	// Approved members vote; the tally counts them.
	for _, token := range []string{"token-anna", "token-ben"} {
		rec, _ = doJSON(t, router, http.MethodPut, "/v1/dates/"+firstDateID+"/availability", token, `{"available": true}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("vote as %s: expected 200, got %d body=%s", token, rec.Code, rec.Body.String())
		}
	}

	rec, envelope = doJSON(t, router, http.MethodGet, "/v1/matches/"+matchID+"/availability", "token-anna", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("tally: expected 200, got %d", rec.Code)
	}
	tallies := envelope["data"].([]any)
	first := tallies[0].(map[string]any)
	if first["available"].(float64) != 2 {
		t.Fatalf("expected 2 available votes, got %v", first["available"])
	}
	if first["no_response"].(float64) != 1 {
		t.Fatalf("expected 1 silent roster member, got %v", first["no_response"])
	}

	// Finalize locks the date; a second finalize conflicts.
	body := fmt.Sprintf(`{"match_date_id": %q}`, firstDateID)
	rec, envelope = doJSON(t, router, http.MethodPost, "/v1/matches/"+matchID+"/finalize", "token-anna", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("finalize: expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if dataField(t, envelope)["status"] != "confirmed" {
		t.Fatalf("expected confirmed match, got %v", envelope)
	}

	rec, _ = doJSON(t, router, http.MethodPost, "/v1/matches/"+matchID+"/finalize", "token-anna", body)
	if rec.Code != http.StatusConflict {
		t.Fatalf("second finalize: expected 409, got %d", rec.Code)
	}

	// Votes are frozen after finalization.
	rec, _ = doJSON(t, router, http.MethodPut, "/v1/dates/"+firstDateID+"/availability", "token-ben", `{"available": false}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("post-finalize vote: expected 422, got %d", rec.Code)
	}

	// Lineup from availability, confirm one player, then complete.
	rec, envelope = doJSON(t, router, http.MethodPost, "/v1/matches/"+matchID+"/lineup", "token-anna", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("propose lineup: expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if entries := envelope["data"].([]any); len(entries) != 2 {
		t.Fatalf("expected 2 lineup candidates, got %d", len(entries))
	}

	rec, _ = doJSON(t, router, http.MethodPost, "/v1/matches/"+matchID+"/lineup/"+memory.UserIDBen+"/confirm", "token-anna", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("confirm entry: expected 200, got %d", rec.Code)
	}

	rec, _ = doJSON(t, router, http.MethodPut, "/v1/matches/"+matchID+"/tasks", "token-anna",
		fmt.Sprintf(`{"task_name": "Getraenke", "user_id": %q}`, memory.UserIDBen))
	if rec.Code != http.StatusOK {
		t.Fatalf("assign task: expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	rec, _ = doJSON(t, router, http.MethodPost, "/v1/matches/"+matchID+"/messages", "token-ben", `{"content": "Bringe die Baelle mit."}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("post message: expected 201, got %d", rec.Code)
	}

	rec, _ = doJSON(t, router, http.MethodPost, "/v1/matches/"+matchID+"/complete", "token-anna", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("complete: expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	// Completed matches are terminal.
	rec, _ = doJSON(t, router, http.MethodPost, "/v1/matches/"+matchID+"/complete", "token-anna", "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("double complete: expected 422, got %d", rec.Code)
	}

	rec, envelope = doJSON(t, router, http.MethodGet, "/v1/matches/"+matchID, "token-ben", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get match: expected 200, got %d", rec.Code)
	}
	data := dataField(t, envelope)
	if data["status"] != "completed" {
		t.Fatalf("expected completed status, got %v", data["status"])
	}
	if _, err := time.Parse(time.RFC3339, data["final_date"].(string)); err != nil {
		t.Fatalf("expected RFC3339 final date, got %v", data["final_date"])
	}
}

func TestDashboard_ShowsClubAndTeams(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doJSON(t, router, http.MethodGet, "/v1/dashboard", "token-ben", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard: expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	data := dataField(t, envelope)
	if data["club_name"] != "TC Blauweiss" {
		t.Fatalf("expected club name, got %v", data["club_name"])
	}
	teams, ok := data["teams"].([]any)
	if !ok || len(teams) != 1 {
		t.Fatalf("expected one team, got %v", data["teams"])
	}
}
