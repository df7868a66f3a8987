// Package client talks to the transaction classification API on behalf of a session.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/SscSPs/tx_classify_app/internal/core/domain"
	"github.com/SscSPs/tx_classify_app/internal/dto"
)

// Client is a REST client bound to one session. Requests are never retried.
type Client struct {
	baseURL string
	session domain.Session
	http    *http.Client
	log     logrus.FieldLogger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the client whose transport carries the requests. Its transport is
// wrapped to add the bearer token.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Client) { c.log = l }
}

// New returns a client for the API rooted at baseURL, e.g. "https://host/api/v1".
func New(baseURL string, session domain.Session, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid api url %q: scheme and host are required", baseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		session: session,
		http:    &http.Client{},
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}

	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	authed := *c.http
	authed.Transport = &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: session.Token, TokenType: "Bearer"}),
		Base:   base,
	}
	c.http = &authed
	return c, nil
}

// Session returns the session the client acts for.
func (c *Client) Session() domain.Session {
	return c.session
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if !c.session.LoggedIn() {
		return ErrNotLoggedIn
	}

	endpoint := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := c.log.WithFields(logrus.Fields{"method": method, "path": path})
	resp, err := c.http.Do(req)
	if err != nil {
		log.WithError(err).Debug("request failed")
		return err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	log.WithField("status", resp.StatusCode).Debug("response received")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, payload)
	}
	if out == nil || len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// ListUnclassified fetches one page of the review listing.
func (c *Client) ListUnclassified(ctx context.Context, params dto.ListReviewParams) (*dto.ListReviewResponse, error) {
	var out dto.ListReviewResponse
	if err := c.do(ctx, http.MethodGet, "tx-classify/unclassified/", params.Query(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Classify(ctx context.Context, req dto.ClassifyRequest) (*dto.ClassificationCreatedResponse, error) {
	var out dto.ClassificationCreatedResponse
	if err := c.do(ctx, http.MethodPost, "tx-classify/classify/", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Split(ctx context.Context, req dto.SplitRequest) (*dto.ChildrenCreatedResponse, error) {
	var out dto.ChildrenCreatedResponse
	if err := c.do(ctx, http.MethodPost, "tx-classify/split/", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Reclassify(ctx context.Context, req dto.ReclassifyRequest) (*dto.ClassificationCreatedResponse, error) {
	var out dto.ClassificationCreatedResponse
	if err := c.do(ctx, http.MethodPost, "tx-classify/reclassify/", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Resplit(ctx context.Context, req dto.ResplitRequest) (*dto.ChildrenCreatedResponse, error) {
	var out dto.ChildrenCreatedResponse
	if err := c.do(ctx, http.MethodPost, "tx-classify/resplit/", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
