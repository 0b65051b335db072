package management

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// DefaultPollInterval is the first delay between readiness polls.
const DefaultPollInterval = 200 * time.Millisecond

var errNotReady = errors.New("management: not ready")

// Client inspects and controls a bean served by NewHandler on a remote
// process.
type Client struct {
	baseURL      string
	name         ObjectName
	httpClient   *http.Client
	pollInterval time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) { cl.httpClient = c }
}

// WithPollInterval sets the initial WaitReady poll interval.
func WithPollInterval(d time.Duration) ClientOption {
	return func(cl *Client) { cl.pollInterval = d }
}

// NewClient creates a client for the bean name served at baseURL, e.g.
// "http://127.0.0.1:9090".
func NewClient(baseURL string, name ObjectName, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		name:         name,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		pollInterval: DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Beans lists the names registered on the remote facility.
func (c *Client) Beans(ctx context.Context) ([]string, error) {
	var names []string
	if err := c.do(ctx, http.MethodGet, "/beans", &names); err != nil {
		return nil, err
	}
	return names, nil
}

// Status returns both lifecycle flags of the bean.
func (c *Client) Status(ctx context.Context) (BeanStatus, error) {
	var st BeanStatus
	err := c.do(ctx, http.MethodGet, c.beanPath(""), &st)
	return st, err
}

// Ready reports whether the remote application is ready.
func (c *Client) Ready(ctx context.Context) (bool, error) {
	st, err := c.Status(ctx)
	return st.Ready, err
}

// EmbeddedWebApplication reports whether the remote application runs an
// embedded web server.
func (c *Client) EmbeddedWebApplication(ctx context.Context) (bool, error) {
	st, err := c.Status(ctx)
	return st.EmbeddedWebApplication, err
}

// Property returns a remote property. ok is false when the key is unknown.
func (c *Client) Property(ctx context.Context, key string) (value string, ok bool, err error) {
	var pv PropertyValue
	err = c.do(ctx, http.MethodGet, c.beanPath("/properties/"+url.PathEscape(key)), &pv)
	if errors.Is(err, ErrPropertyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return pv.Value, true, nil
}

// Shutdown asks the remote application to shut down. It returns once the
// request is accepted, not when shutdown completes.
func (c *Client) Shutdown(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, c.beanPath("/shutdown"), nil)
}

// WaitReady polls until the bean reports ready, maxWait elapses or ctx is
// done. Connection errors and a missing bean are retried, since the remote
// application may still be starting. A name the endpoint rejects is not.
func (c *Client) WaitReady(ctx context.Context, maxWait time.Duration) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.pollInterval
	b.MaxInterval = 2 * time.Second
	b.MaxElapsedTime = maxWait
	b.Reset()

	op := func() error {
		ready, err := c.Ready(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			if errors.Is(err, ErrMalformedObjectName) {
				return backoff.Permanent(err)
			}
			return err
		}
		if !ready {
			return errNotReady
		}
		return nil
	}

	if err := backoff.Retry(op, backoff.WithContext(b, ctx)); err != nil {
		return fmt.Errorf("wait for %s ready: %w", c.name, err)
	}
	return nil
}

func (c *Client) beanPath(suffix string) string {
	return "/beans/" + url.PathEscape(c.name.String()) + suffix
}

func (c *Client) do(ctx context.Context, method, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env Response
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode >= 300 {
		switch env.Code {
		case CodeInstanceNotFound:
			return fmt.Errorf("%w: %s", ErrInstanceNotFound, c.name)
		case CodePropertyNotFound:
			return ErrPropertyNotFound
		case CodeMalformedName:
			return fmt.Errorf("%w: %s", ErrMalformedObjectName, env.Error)
		case CodeInvalidKey:
			return fmt.Errorf("%w: %s", ErrInvalidPropertyKey, env.Error)
		}
		return fmt.Errorf("management: %s %s: status %d: %s", method, path, resp.StatusCode, env.Error)
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}
