package usecase

import (
	"context"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/V1TECKOR/interclub/internal/domain/message"
	"github.com/V1TECKOR/interclub/internal/domain/storage"
	"github.com/V1TECKOR/interclub/internal/platform/id"
)

const messagePageSize = 50

// MessageService maintains the append-only discussion thread of a match.
type MessageService struct {
	store storage.Store
	ids   id.Generator
	now   func() time.Time
}

func NewMessageService(store storage.Store, ids id.Generator) *MessageService {
	return &MessageService{
		store: store,
		ids:   ids,
		now:   time.Now,
	}
}

// PostMessage appends one immutable note to the match thread.
func (s *MessageService) PostMessage(ctx context.Context, userID, matchID, content string) (message.Message, error) {
	userID = strings.TrimSpace(userID)
	matchID = strings.TrimSpace(matchID)
	content = strings.TrimSpace(content)
	if userID == "" || matchID == "" {
		return message.Message{}, fmt.Errorf("%w: user id and match id are required", ErrInvalidInput)
	}
	if content == "" {
		return message.Message{}, fmt.Errorf("%w: message content is required", ErrInvalidInput)
	}

	messageID, err := s.ids.NewID()
	if err != nil {
		return message.Message{}, fmt.Errorf("generate message id: %w", err)
	}

	item := message.Message{
		ID:        messageID,
		MatchID:   matchID,
		UserID:    userID,
		Content:   content,
		CreatedAt: s.now().UTC(),
	}

	err = s.store.WithinTx(ctx, func(tx storage.Tx) error {
		// Posting is narrower than reading: club admins may follow the
		// thread but only approved members write into it.
		loaded, err := loadMatchWithTeam(ctx, tx, matchID)
		if err != nil {
			return err
		}
		approved, err := isApprovedMember(ctx, tx, userID, loaded.Team.ID)
		if err != nil {
			return err
		}
		if !approved {
			return fmt.Errorf("%w: only approved members may post on team %s", ErrForbidden, loaded.Team.ID)
		}

		if err := tx.Messages().Append(ctx, item); err != nil {
			return fmt.Errorf("append message: %w", err)
		}

		return nil
	})
	if err != nil {
		return message.Message{}, err
	}

	return item, nil
}

// ListMessages returns the whole thread, oldest first.
func (s *MessageService) ListMessages(ctx context.Context, callerID, matchID string) ([]message.Message, error) {
	callerID = strings.TrimSpace(callerID)
	matchID = strings.TrimSpace(matchID)
	if callerID == "" || matchID == "" {
		return nil, fmt.Errorf("%w: caller id and match id are required", ErrInvalidInput)
	}

	if _, err := requireMatchAccess(ctx, s.store, callerID, matchID); err != nil {
		return nil, err
	}

	var out []message.Message
	for offset := 0; ; offset += messagePageSize {
		page, err := s.store.Messages().List(ctx, matchID, offset, messagePageSize)
		if err != nil {
			return nil, fmt.Errorf("list messages: %w", err)
		}
		out = append(out, page...)
		if len(page) < messagePageSize {
			return out, nil
		}
	}
}

// Messages returns a lazy sequence over the thread in creation order.
// The sequence is finite and restartable: each range starts a fresh
// paged walk.
func (s *MessageService) Messages(ctx context.Context, callerID, matchID string) (iter.Seq2[message.Message, error], error) {
	callerID = strings.TrimSpace(callerID)
	matchID = strings.TrimSpace(matchID)
	if callerID == "" || matchID == "" {
		return nil, fmt.Errorf("%w: caller id and match id are required", ErrInvalidInput)
	}

	if _, err := requireMatchAccess(ctx, s.store, callerID, matchID); err != nil {
		return nil, err
	}

	return func(yield func(message.Message, error) bool) {
		for offset := 0; ; offset += messagePageSize {
			page, err := s.store.Messages().List(ctx, matchID, offset, messagePageSize)
			if err != nil {
				yield(message.Message{}, fmt.Errorf("list messages: %w", err))
				return
			}
			for _, item := range page {
				if !yield(item, nil) {
					return
				}
			}
			if len(page) < messagePageSize {
				return
			}
		}
	}, nil
}
