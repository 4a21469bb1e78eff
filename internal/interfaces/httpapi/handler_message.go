package httpapi

import (
	"net/http"
	"time"

	"github.com/V1TECKOR/interclub/internal/domain/message"
)

type postMessageRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

type messageDTO struct {
	ID        string    `json:"id"`
	MatchID   string    `json:"match_id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func messageToDTO(item message.Message) messageDTO {
	return messageDTO{
		ID:        item.ID,
		MatchID:   item.MatchID,
		UserID:    item.UserID,
		Content:   item.Content,
		CreatedAt: item.CreatedAt,
	}
}

func (h *Handler) PostMessage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PostMessage")
	defer span.End()

	caller, err := callerID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req postMessageRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.messageService.PostMessage(ctx, caller, r.PathValue("matchID"), req.Content)
	if err != nil {
		h.logger.WarnContext(ctx, "post message failed", "match_id", r.PathValue("matchID"), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, messageToDTO(created))
}

func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMessages")
	defer span.End()

	caller, err := callerID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	messages, err := h.messageService.ListMessages(ctx, caller, r.PathValue("matchID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]messageDTO, 0, len(messages))
	for _, item := range messages {
		items = append(items, messageToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
