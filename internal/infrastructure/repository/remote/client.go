package remote

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/toto-league/internal/domain/entity"
	"github.com/riskibarqy/toto-league/internal/platform/logging"
	"github.com/riskibarqy/toto-league/internal/platform/resilience"
	"github.com/valyala/fasthttp"
)

var errRemoteTransient = crerr.New("entity api transient failure")

const maxErrorBody = 2048

type Config struct {
	BaseURL        string
	AppID          string
	Token          string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to a hosted entity API laid out as
// {base}/apps/{app}/entities/{Entity}[/{id}].
type Client struct {
	http    *fasthttp.Client
	baseURL string
	appID   string
	token   string
	timeout time.Duration
	breaker *resilience.CircuitBreaker
	logger  *logging.Logger
}

func NewClient(cfg Config, logger *logging.Logger) (*Client, error) {
	baseURL, err := validateBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, crerr.Wrap(err, "invalid REMOTE_BASE_URL")
	}
	appID := strings.TrimSpace(cfg.AppID)
	if appID == "" {
		return nil, crerr.New("REMOTE_APP_ID is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}

	breaker := cfg.CircuitBreaker.Build().OnStateChange(func(from, to resilience.CircuitState) {
		logger.Warn("entity api circuit breaker state changed", "from", from, "to", to, "app_id", appID)
	})

	return &Client{
		http: &fasthttp.Client{
			Name:                "toto-league",
			MaxIdleConnDuration: time.Minute,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
		},
		baseURL: baseURL,
		appID:   appID,
		token:   strings.TrimSpace(cfg.Token),
		timeout: timeout,
		breaker: breaker,
		logger:  logger,
	}, nil
}

type request struct {
	method string
	path   string
	query  map[string]string
	body   any
}

// do sends one request and decodes a 2xx body into out when out is non-nil.
func (c *Client) do(ctx context.Context, r request, out any) error {
	if err := ctx.Err(); err != nil {
		return crerr.Wrap(err, "entity api request cancelled")
	}

	err := c.breaker.Do(func() error {
		return c.send(ctx, r, out)
	}, func(err error) bool {
		return crerr.Is(err, errRemoteTransient)
	})
	if crerr.Is(err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "entity api circuit breaker rejected request", "path", r.path, "state", c.breaker.State())
	}
	return err
}

func (c *Client) send(ctx context.Context, r request, out any) error {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + "/apps/" + url.PathEscape(c.appID) + "/entities/" + r.path)
	req.Header.SetMethod(r.method)
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	args := req.URI().QueryArgs()
	for key, value := range r.query {
		if value != "" {
			args.Add(key, value)
		}
	}
	if r.body != nil {
		payload, err := sonic.Marshal(r.body)
		if err != nil {
			return crerr.Wrapf(err, "marshal %s %s body", r.method, r.path)
		}
		req.Header.SetContentType("application/json")
		req.SetBodyRaw(payload)
	}

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.http.DoDeadline(req, resp, deadline)
	} else {
		err = c.http.DoTimeout(req, resp, c.timeout)
	}
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", errRemoteTransient, r.method, r.path, err)
	}

	status := resp.StatusCode()
	body := resp.Body()
	switch {
	case status == fasthttp.StatusNotFound:
		return fmt.Errorf("%s %s: %w", r.method, r.path, entity.ErrNotFound)
	case status == fasthttp.StatusConflict:
		return fmt.Errorf("%s %s: %w", r.method, r.path, entity.ErrDuplicate)
	case status == fasthttp.StatusTooManyRequests || status >= 500:
		return fmt.Errorf("%w: %s %s status=%d body=%s", errRemoteTransient, r.method, r.path, status, truncate(body))
	case status/100 != 2:
		return crerr.Newf("%s %s status=%d body=%s", r.method, r.path, status, truncate(body))
	}

	if out == nil || len(body) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(body, out); err != nil {
		return crerr.Wrapf(err, "decode %s %s response", r.method, r.path)
	}
	return nil
}

func validateBaseURL(raw string) (string, error) {
	candidate := strings.TrimRight(strings.TrimSpace(raw), "/")
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
	if parsed.Host == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}
	return candidate, nil
}

func truncate(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= maxErrorBody {
		return text
	}
	return text[:maxErrorBody] + "..."
}
