// Package mailrelay delivers notification mail through the club's HTTP
// mail relay. Delivery is best effort: callers treat errors as
// log-and-continue.
package mailrelay

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	"github.com/V1TECKOR/interclub/internal/platform/resilience"
	"github.com/V1TECKOR/interclub/internal/usecase"
)

var errRelayTransient = crerr.New("mail relay transient failure")

type Config struct {
	BaseURL        string
	APIKey         string
	Sender         string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	client         *fasthttp.Client
	sendURL        string
	apiKey         string
	sender         string
	timeout        time.Duration
	logger         *slog.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	baseURL, err := validateHTTPBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, crerr.Wrap(err, "invalid MAIL_RELAY_BASE_URL")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		client:         &fasthttp.Client{},
		sendURL:        baseURL + "/v1/mail/send",
		apiKey:         strings.TrimSpace(cfg.APIKey),
		sender:         strings.TrimSpace(cfg.Sender),
		timeout:        timeout,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}, nil
}

type sendRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (c *Client) Send(ctx context.Context, item usecase.Notification) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "mail relay circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("mail relay is temporarily unavailable: %w", err)
		}
	}
	if strings.TrimSpace(item.To) == "" {
		return crerr.New("notification recipient is required")
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	encoded, err := sonic.Marshal(sendRequest{
		From:    c.sender,
		To:      item.To,
		Subject: item.Subject,
		Body:    item.Body,
	})
	if err != nil {
		return crerr.Wrap(err, "marshal mail payload")
	}
	_, _ = buf.Write(encoded)

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.sendURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.SetBody(buf.B)

	if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
		callErr := fmt.Errorf("%w: post %s: %v", errRelayTransient, c.sendURL, err)
		c.recordCircuitResult(callErr)
		return callErr
	}

	status := resp.StatusCode()
	if status/100 != 2 {
		body := strings.TrimSpace(string(resp.Body()))
		if len(body) > 4096 {
			body = body[:4096] + "...(truncated)"
		}
		callErr := fmt.Errorf("send mail status=%d body=%s", status, body)
		if isRetryableStatus(status) {
			callErr = fmt.Errorf("%w: send mail status=%d body=%s", errRelayTransient, status, body)
		}
		c.recordCircuitResult(callErr)
		return callErr
	}

	c.logger.DebugContext(ctx, "notification mail accepted", "to", item.To, "subject", item.Subject)
	c.recordCircuitResult(nil)
	return nil
}

func (c *Client) recordCircuitResult(err error) {
	if !c.circuitEnabled || c.breaker == nil {
		return
	}
	if stderrors.Is(err, errRelayTransient) {
		c.breaker.RecordFailure()
		return
	}
	c.breaker.RecordSuccess()
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == fasthttp.StatusRequestTimeout ||
		statusCode == fasthttp.StatusTooManyRequests ||
		statusCode >= fasthttp.StatusInternalServerError
}

func validateHTTPBaseURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}

	return strings.TrimRight(candidate, "/"), nil
}
