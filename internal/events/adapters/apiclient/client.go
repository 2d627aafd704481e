// Package apiclient talks to the events REST resource. Each call issues one
// request and parses the whole response body as JSON; the status code is not
// inspected, so an error body from the server comes back as a value.
package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"event-manager/internal/events/core/domain"
	"event-manager/internal/events/core/ports"

	"github.com/gofiber/fiber/v2"
)

// DefaultBaseURL is where the events resource lives during development.
const DefaultBaseURL = "http://localhost:3000/events"

var (
	ErrRequest = errors.New("events api request failed")
	ErrDecode  = errors.New("events api returned invalid json")
)

type Client struct {
	baseURL string
	http    *fiber.Client
	timeout time.Duration
}

var _ ports.EventAPIPort = (*Client)(nil)

type Option func(*Client)

// WithTimeout bounds every request. Without it only a context deadline does.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.http.UserAgent = ua }
}

func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &fiber.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) List(ctx context.Context) ([]domain.Event, error) {
	var events []domain.Event
	if err := c.do(ctx, c.http.Get(c.baseURL), &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *Client) Get(ctx context.Context, id domain.EventID) (domain.Event, error) {
	var e domain.Event
	if err := c.do(ctx, c.http.Get(c.itemURL(id)), &e); err != nil {
		return domain.Event{}, err
	}
	return e, nil
}

func (c *Client) Create(ctx context.Context, draft domain.Event) (domain.Event, error) {
	draft.ID = ""
	var e domain.Event
	if err := c.do(ctx, c.http.Post(c.baseURL).JSON(draft), &e); err != nil {
		return domain.Event{}, err
	}
	return e, nil
}

func (c *Client) Update(ctx context.Context, e domain.Event) (domain.Event, error) {
	var out domain.Event
	if err := c.do(ctx, c.http.Patch(c.itemURL(e.ID)).JSON(e), &out); err != nil {
		return domain.Event{}, err
	}
	return out, nil
}

func (c *Client) Delete(ctx context.Context, id domain.EventID) (json.RawMessage, error) {
	var body json.RawMessage
	if err := c.do(ctx, c.http.Delete(c.itemURL(id)), &body); err != nil {
		return nil, err
	}
	return body, nil
}

func (c *Client) itemURL(id domain.EventID) string {
	return c.baseURL + "/" + url.PathEscape(id.String())
}

// do sends the request built on agent and decodes the body into dest.
// The agent is released by Bytes.
func (c *Client) do(ctx context.Context, agent *fiber.Agent, dest any) error {
	if err := ctx.Err(); err != nil {
		fiber.ReleaseAgent(agent)
		return fmt.Errorf("%w: %w", ErrRequest, err)
	}

	if timeout := c.requestTimeout(ctx); timeout > 0 {
		agent.Timeout(timeout)
	}

	_, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrRequest, errors.Join(errs...))
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return nil
}

// requestTimeout is the tighter of the configured timeout and the time left
// on ctx.
func (c *Client) requestTimeout(ctx context.Context) time.Duration {
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		left := time.Until(deadline)
		if left <= 0 {
			left = time.Millisecond
		}
		if timeout == 0 || left < timeout {
			timeout = left
		}
	}
	return timeout
}
