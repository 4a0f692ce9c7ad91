package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

var (
	ErrUnavailable = errors.New("catalog unavailable")
	ErrBadStatus   = errors.New("catalog bad status")
)

const maxResponseBody = 4 << 20

// BreakerSettings tunes the circuit breaker in front of the remote API.
type BreakerSettings struct {
	MaxRequests  uint32
	Interval     time.Duration
	OpenTimeout  time.Duration
	MinRequests  uint32
	FailureRatio float64
}

func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		MaxRequests:  1,
		Interval:     60 * time.Second,
		OpenTimeout:  30 * time.Second,
		MinRequests:  5,
		FailureRatio: 0.5,
	}
}

// Client reads the catalog from a remote fake-store style API.
type Client struct {
	BaseURL string
	Client  *http.Client
	Log     *zap.Logger

	breaker *gobreaker.CircuitBreaker[[]byte]
}

func NewClient(baseURL string, timeout time.Duration, bs BreakerSettings, log *zap.Logger) *Client {
	if u, err := url.Parse(baseURL); err == nil && u.Scheme != "" && u.Host != "" {
		baseURL = strings.TrimRight(baseURL, "/")
	}
	if log == nil {
		log = zap.NewNop()
	}

	c := &Client{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
		Log:     log,
	}

	c.breaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "catalog",
		MaxRequests: bs.MaxRequests,
		Interval:    bs.Interval,
		Timeout:     bs.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < bs.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= bs.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
		IsSuccessful: func(err error) bool {
			// Only transport failures and 5xx trip the breaker.
			var ce *callerError
			return err == nil || errors.As(err, &ce) ||
				errors.Is(err, errNotFound) || errors.Is(err, ErrBadStatus)
		},
	})

	return c
}

var errNotFound = errors.New("not found")

// callerError marks a failure caused by the caller's context ending, which
// says nothing about the upstream's health.
type callerError struct{ err error }

func (e *callerError) Error() string { return e.err.Error() }
func (e *callerError) Unwrap() error { return e.err }

func (c *Client) Ping(ctx context.Context) error {
	_, err := c.fetch(ctx, "/products?limit=1")
	return err
}

// List returns every valid product sorted by id. Products failing
// validation are logged and skipped.
func (c *Client) List(ctx context.Context) ([]Product, error) {
	body, err := c.fetch(ctx, "/products")
	if err != nil {
		return nil, err
	}

	var raw []Product
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}

	out := make([]Product, 0, len(raw))
	for _, p := range raw {
		if err := Validate(p); err != nil {
			c.Log.Warn("dropping catalog product", zap.Int("id", p.ID), zap.Error(err))
			continue
		}
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (c *Client) Get(ctx context.Context, id int) (Product, bool, error) {
	body, err := c.fetch(ctx, "/products/"+strconv.Itoa(id))
	if errors.Is(err, errNotFound) {
		return Product{}, false, nil
	}
	if err != nil {
		return Product{}, false, err
	}

	// The public API answers unknown ids with 200 and an empty body.
	if len(bytes.TrimSpace(body)) == 0 || bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		return Product{}, false, nil
	}

	var p Product
	if err := json.Unmarshal(body, &p); err != nil {
		return Product{}, false, fmt.Errorf("decode product %d: %w", id, err)
	}
	if err := Validate(p); err != nil {
		return Product{}, false, err
	}
	return p, true, nil
}

func (c *Client) fetch(ctx context.Context, path string) ([]byte, error) {
	body, err := c.breaker.Execute(func() ([]byte, error) {
		body, err := c.do(ctx, path)
		if err != nil && ctx.Err() != nil {
			return nil, &callerError{err: err}
		}
		return body, err
	})
	switch {
	case err == nil:
		return body, nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	default:
		return nil, err
	}
}

func (c *Client) do(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, errNotFound
	case resp.StatusCode >= 500:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: status=%d", ErrUnavailable, resp.StatusCode)
	default:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: status=%d", ErrBadStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrUnavailable, err)
	}
	return body, nil
}
