package productapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const (
	// The backend exposes its list route with a literal space in the path.
	listPath     = "/all products"
	productsPath = "/products"

	requestIDHeader = "X-Request-Id"
	maxErrorBody    = 1 << 16
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

type Option func(*Client)

// WithTimeout sets a per-request timeout. Zero keeps requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.HTTP.Timeout = d }
}

// WithTransport replaces the round tripper, e.g. with an instrumented one.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.HTTP.Transport = rt }
}

func NewClient(baseURL string, opts ...Option) *Client {
	if u, err := url.Parse(baseURL); err == nil && u.Scheme != "" && u.Host != "" {
		baseURL = strings.TrimRight(baseURL, "/")
	}
	c := &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ping checks that the backend answers at all.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "/", "", nil)
	if err != nil {
		return err
	}
	defer drain(resp)

	if resp.StatusCode >= http.StatusInternalServerError {
		return badStatus(resp.StatusCode)
	}
	return nil
}

func (c *Client) List(ctx context.Context) ([]Product, error) {
	resp, err := c.do(ctx, http.MethodGet, listPath, "", nil)
	if err != nil {
		return nil, err
	}
	defer drain(resp)

	if !isSuccess(resp.StatusCode) {
		return nil, badStatus(resp.StatusCode)
	}

	var out []Product
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if out == nil {
		out = []Product{}
	}
	return out, nil
}

func (c *Client) Create(ctx context.Context, p Product) error {
	resp, err := c.do(ctx, http.MethodPost, productsPath, "", p)
	if err != nil {
		return err
	}
	defer drain(resp)

	switch {
	case isSuccess(resp.StatusCode):
		return nil
	case resp.StatusCode == http.StatusConflict:
		if detail, ok := readDetail(resp.Body); ok {
			return &ConflictError{Detail: detail}
		}
		return badStatus(resp.StatusCode)
	default:
		return badStatus(resp.StatusCode)
	}
}

// Update replaces the product keyed by id. The id is sent as given so the
// backend decides what a malformed key means.
func (c *Client) Update(ctx context.Context, id string, p Product) error {
	resp, err := c.do(ctx, http.MethodPut, productsPath, idQuery(id), p)
	if err != nil {
		return err
	}
	defer drain(resp)

	if !isSuccess(resp.StatusCode) {
		return badStatus(resp.StatusCode)
	}
	return nil
}

// Delete returns the response status without judging it; callers that
// care about the outcome inspect it themselves.
func (c *Client) Delete(ctx context.Context, id int64) (int, error) {
	resp, err := c.do(ctx, http.MethodDelete, productsPath, idQuery(strconv.FormatInt(id, 10)), nil)
	if err != nil {
		return 0, err
	}
	defer drain(resp)

	return resp.StatusCode, nil
}

func (c *Client) do(ctx context.Context, method, path, rawQuery string, body any) (*http.Response, error) {
	u := c.BaseURL + (&url.URL{Path: path}).EscapedPath()
	if rawQuery != "" {
		u += "?" + rawQuery
	}

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID(ctx))

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp, nil
}

func idQuery(id string) string {
	return url.Values{"id": []string{id}}.Encode()
}

func requestID(ctx context.Context) string {
	if id := chimw.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}

// readDetail extracts a string "detail" field, the shape the backend uses
// for HTTPException bodies.
func readDetail(r io.Reader) (string, bool) {
	var body struct {
		Detail any `json:"detail"`
	}
	if err := json.NewDecoder(io.LimitReader(r, maxErrorBody)).Decode(&body); err != nil {
		return "", false
	}
	s, ok := body.Detail.(string)
	return s, ok
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
	_ = resp.Body.Close()
}
