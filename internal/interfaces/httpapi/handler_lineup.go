package httpapi

import (
	"net/http"
	"time"

	"github.com/V1TECKOR/interclub/internal/domain/lineup"
	"github.com/V1TECKOR/interclub/internal/domain/task"
)

type lineupEntryDTO struct {
	MatchID   string    `json:"match_id"`
	UserID    string    `json:"user_id"`
	Confirmed bool      `json:"confirmed"`
	UpdatedAt time.Time `json:"updated_at"`
}

func lineupEntryToDTO(item lineup.Entry) lineupEntryDTO {
	return lineupEntryDTO{
		MatchID:   item.MatchID,
		UserID:    item.UserID,
		Confirmed: item.Confirmed,
		UpdatedAt: item.UpdatedAt,
	}
}

func lineupEntriesToDTO(entries []lineup.Entry) []lineupEntryDTO {
	items := make([]lineupEntryDTO, 0, len(entries))
	for _, item := range entries {
		items = append(items, lineupEntryToDTO(item))
	}

	return items
}

func (h *Handler) ProposeLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ProposeLineup")
	defer span.End()

	caller, err := callerID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	entries, err := h.lineupService.ProposeLineup(ctx, caller, r.PathValue("matchID"))
	if err != nil {
		h.logger.WarnContext(ctx, "propose lineup failed", "match_id", r.PathValue("matchID"), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lineupEntriesToDTO(entries))
}

func (h *Handler) ListLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLineup")
	defer span.End()

	caller, err := callerID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	entries, err := h.lineupService.ListLineup(ctx, caller, r.PathValue("matchID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lineupEntriesToDTO(entries))
}

func (h *Handler) ConfirmLineupEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ConfirmLineupEntry")
	defer span.End()

	caller, err := callerID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	err = h.lineupService.ConfirmEntry(ctx, caller, r.PathValue("matchID"), r.PathValue("userID"))
	if err != nil {
		h.logger.WarnContext(ctx, "confirm lineup entry failed", "match_id", r.PathValue("matchID"), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "confirmed"})
}

func (h *Handler) RemoveLineupEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveLineupEntry")
	defer span.End()

	caller, err := callerID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	err = h.lineupService.RemoveEntry(ctx, caller, r.PathValue("matchID"), r.PathValue("userID"))
	if err != nil {
		h.logger.WarnContext(ctx, "remove lineup entry failed", "match_id", r.PathValue("matchID"), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "removed"})
}

func (h *Handler) CompleteMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CompleteMatch")
	defer span.End()

	caller, err := callerID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.lineupService.MarkCompleted(ctx, caller, r.PathValue("matchID")); err != nil {
		h.logger.WarnContext(ctx, "complete match failed", "match_id", r.PathValue("matchID"), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "completed"})
}

type assignTaskRequest struct {
	TaskName string `json:"task_name" validate:"required,max=100"`
	UserID   string `json:"user_id" validate:"required"`
}

type taskDTO struct {
	MatchID   string    `json:"match_id"`
	TaskName  string    `json:"task_name"`
	UserID    string    `json:"user_id"`
	UpdatedAt time.Time `json:"updated_at"`
}

func taskToDTO(item task.Assignment) taskDTO {
	return taskDTO{
		MatchID:   item.MatchID,
		TaskName:  item.Name,
		UserID:    item.UserID,
		UpdatedAt: item.UpdatedAt,
	}
}

func (h *Handler) AssignTask(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AssignTask")
	defer span.End()

	caller, err := callerID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req assignTaskRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	assigned, err := h.taskService.AssignTask(ctx, caller, r.PathValue("matchID"), req.TaskName, req.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "assign task failed", "match_id", r.PathValue("matchID"), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, taskToDTO(assigned))
}

func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTasks")
	defer span.End()

	caller, err := callerID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	tasks, err := h.taskService.ListTasks(ctx, caller, r.PathValue("matchID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]taskDTO, 0, len(tasks))
	for _, item := range tasks {
		items = append(items, taskToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
