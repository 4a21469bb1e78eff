package usecase

import (
	"errors"
	"fmt"
	"testing"

	"github.com/V1TECKOR/interclub/internal/domain/message"
	"github.com/V1TECKOR/interclub/internal/infrastructure/repository/memory"
)

func TestMessageService_PostMessage_RequiresMembership(t *testing.T) {
	fx := newScheduleFixture(t)
	service := NewMessageService(fx.store, &seqIDGenerator{prefix: "msg"})

	_, err := service.PostMessage(t.Context(), memory.UserIDFrida, fx.matchID, "Hallo")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for outsider, got %v", err)
	}

	_, err = service.PostMessage(t.Context(), memory.UserIDDirk, fx.matchID, "Hallo")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for pending member, got %v", err)
	}
}

func TestMessageService_ClubAdminReadsButCannotPost(t *testing.T) {
	fx := newScheduleFixture(t)
	service := NewMessageService(fx.store, &seqIDGenerator{prefix: "msg"})

	_, err := service.PostMessage(t.Context(), memory.UserIDErik, fx.matchID, "Bitte Rueckmeldung")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-member club admin, got %v", err)
	}

	if _, err := service.ListMessages(t.Context(), memory.UserIDErik, fx.matchID); err != nil {
		t.Fatalf("club admin should read the thread: %v", err)
	}
}

func TestMessageService_ListMessages_KeepsPostingOrder(t *testing.T) {
	fx := newScheduleFixture(t)
	service := NewMessageService(fx.store, &seqIDGenerator{prefix: "msg"})

	for i := 0; i < 3; i++ {
		if _, err := service.PostMessage(t.Context(), memory.UserIDBen, fx.matchID, fmt.Sprintf("note %d", i)); err != nil {
			t.Fatalf("post message %d: %v", i, err)
		}
	}

	items, err := service.ListMessages(t.Context(), memory.UserIDAnna, fx.matchID)
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(items))
	}
	for i, item := range items {
		if want := fmt.Sprintf("note %d", i); item.Content != want {
			t.Fatalf("expected %q at position %d, got %q", want, i, item.Content)
		}
	}
}

func TestMessageService_ListMessages_WalksPastOnePage(t *testing.T) {
	fx := newScheduleFixture(t)
	service := NewMessageService(fx.store, &seqIDGenerator{prefix: "msg"})

	total := messagePageSize + 5
	for i := 0; i < total; i++ {
		if _, err := service.PostMessage(t.Context(), memory.UserIDBen, fx.matchID, fmt.Sprintf("note %03d", i)); err != nil {
			t.Fatalf("post message %d: %v", i, err)
		}
	}

	items, err := service.ListMessages(t.Context(), memory.UserIDBen, fx.matchID)
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	if len(items) != total {
		t.Fatalf("expected %d messages, got %d", total, len(items))
	}
	if items[total-1].Content != fmt.Sprintf("note %03d", total-1) {
		t.Fatalf("unexpected last message: %q", items[total-1].Content)
	}
}

func TestMessageService_Messages_SequenceIsRestartable(t *testing.T) {
	fx := newScheduleFixture(t)
	service := NewMessageService(fx.store, &seqIDGenerator{prefix: "msg"})

	for i := 0; i < 4; i++ {
		if _, err := service.PostMessage(t.Context(), memory.UserIDBen, fx.matchID, fmt.Sprintf("note %d", i)); err != nil {
			t.Fatalf("post message %d: %v", i, err)
		}
	}

	seq, err := service.Messages(t.Context(), memory.UserIDAnna, fx.matchID)
	if err != nil {
		t.Fatalf("messages: %v", err)
	}

	collect := func() []message.Message {
		var out []message.Message
		for item, err := range seq {
			if err != nil {
				t.Fatalf("iterate: %v", err)
			}
			out = append(out, item)
		}
		return out
	}

	first := collect()
	second := collect()
	if len(first) != 4 || len(second) != 4 {
		t.Fatalf("expected both passes to see 4 messages, got %d and %d", len(first), len(second))
	}

	// Early break must not poison later passes.
	for range seq {
		break
	}
	if got := collect(); len(got) != 4 {
		t.Fatalf("expected full walk after early break, got %d", len(got))
	}
}
