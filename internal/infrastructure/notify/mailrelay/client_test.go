package mailrelay

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"

	"github.com/V1TECKOR/interclub/internal/platform/resilience"
	"github.com/V1TECKOR/interclub/internal/usecase"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClientSend_PostsMailPayload(t *testing.T) {
	t.Parallel()

	var got sendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/mail/send", r.URL.Path)
		require.Equal(t, "Bearer relay-key", r.Header.Get("Authorization"))
		require.NoError(t, sonic.ConfigDefault.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	client, err := NewClient(Config{
		BaseURL: srv.URL,
		APIKey:  "relay-key",
		Sender:  "noreply@interclub.example",
	}, newTestLogger())
	require.NoError(t, err)

	err = client.Send(context.Background(), usecase.Notification{
		To:      "anna@blauweiss.example",
		Subject: "Match confirmed",
		Body:    "The date is locked in.",
	})
	require.NoError(t, err)

	require.Equal(t, "noreply@interclub.example", got.From)
	require.Equal(t, "anna@blauweiss.example", got.To)
	require.Equal(t, "Match confirmed", got.Subject)
}

func TestClientSend_OpensCircuitAfterServerErrors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client, err := NewClient(Config{
		BaseURL: srv.URL,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
		},
	}, newTestLogger())
	require.NoError(t, err)

	item := usecase.Notification{To: "anna@blauweiss.example", Subject: "s", Body: "b"}
	for range 2 {
		require.Error(t, client.Send(context.Background(), item))
	}

	err = client.Send(context.Background(), item)
	require.ErrorContains(t, err, "temporarily unavailable")
}

func TestClientSend_RejectsEmptyRecipient(t *testing.T) {
	t.Parallel()

	client, err := NewClient(Config{BaseURL: "http://relay.internal"}, newTestLogger())
	require.NoError(t, err)

	require.Error(t, client.Send(context.Background(), usecase.Notification{Subject: "s"}))
}
