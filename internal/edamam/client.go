// Package edamam is a client for the Edamam Recipe Search API v2.
//
// The client issues exactly one request per call. It does not cache, retry or back off; the only
// coordination it offers is an optional token-bucket throttle shared by every call made through
// the same Client, which keeps a process under the account's request quota.
package edamam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/pageza/recipe-finder/backend/internal/notify"
)

const (
	// DefaultBaseURL is the recipe search endpoint
	DefaultBaseURL = "https://api.edamam.com/api/recipes/v2"

	// RecipeURIPrefix is the ontology prefix of every recipe URI
	RecipeURIPrefix = "http://www.edamam.com/ontologies/edamam.owl#recipe_"

	// AccountUserHeader identifies the account user on every request
	AccountUserHeader = "Edamam-Account-User"

	// DefaultAccountUser is sent when no account user is configured
	DefaultAccountUser = "default"

	// DefaultPageSize is the default upper bound of a page
	DefaultPageSize = 20

	recipeIDDelimiter = "#recipe_"

	searchFailedMessage = "Failed to search recipes: %s"
	// LookupFailedMessage is the notification emitted when a detail lookup fails
	LookupFailedMessage = "Failed to fetch recipe details. Please try again."
)

// Credentials authenticate requests against the API
type Credentials struct {
	AppID       string
	AppKey      string
	AccountUser string
}

func (c Credentials) validate() error {
	var missing []string
	if strings.TrimSpace(c.AppID) == "" {
		missing = append(missing, "app_id")
	}
	if strings.TrimSpace(c.AppKey) == "" {
		missing = append(missing, "app_key")
	}
	if len(missing) > 0 {
		return &ConfigError{Missing: missing}
	}
	return nil
}

func (c Credentials) accountUser() string {
	if c.AccountUser == "" {
		return DefaultAccountUser
	}
	return c.AccountUser
}

// Client talks to the recipe search endpoint
type Client struct {
	creds    Credentials
	baseURL  string
	http     *http.Client
	notifier notify.Notifier
	log      zerolog.Logger
	limiter  *rate.Limiter
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithBaseURL overrides the endpoint, mostly for tests
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) { c.baseURL = strings.TrimRight(baseURL, "?") }
}

// WithHTTPClient sets the transport client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// WithNotifier sets where user-facing failure notifications go
func WithNotifier(n notify.Notifier) ClientOption {
	return func(c *Client) { c.notifier = n }
}

// WithLogger sets the fallback logger used when the context carries none
func WithLogger(l zerolog.Logger) ClientOption {
	return func(c *Client) { c.log = l }
}

// WithLimiter throttles outbound requests
func WithLimiter(l *rate.Limiter) ClientOption {
	return func(c *Client) { c.limiter = l }
}

// NewClient creates a client. Credentials are checked on every call, not here.
func NewClient(creds Credentials, opts ...ClientOption) *Client {
	c := &Client{
		creds:   creds,
		baseURL: DefaultBaseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search fetches one page of recipe hits. On failure a notification is emitted and the error
// is returned as a *ConfigError or *RequestError.
func (c *Client) Search(ctx context.Context, query string, filters Filters, from, to int) (*SearchResponse, error) {
	resp, err := c.search(ctx, "search", query, filters, from, to)
	if err != nil {
		c.logger(ctx).Error().Err(err).Str("query", query).Msg("[EdamamClient] Error fetching recipes")
		notify.Error(ctx, c.notifier, fmt.Sprintf(searchFailedMessage, err))
		return nil, err
	}
	return resp, nil
}

// Lookup finds a recipe by its URI or derived identifier by re-running a search for the
// identifier and scanning the hits. Not-found and request failures are distinct errors.
func (c *Client) Lookup(ctx context.Context, id string) (*Recipe, error) {
	recipeID := strings.Replace(id, RecipeURIPrefix, "", 1)

	if err := c.creds.validate(); err != nil {
		return nil, err
	}
	if recipeID == "" {
		return nil, ErrRecipeNotFound
	}

	resp, err := c.search(ctx, "lookup", recipeID, nil, 0, DefaultPageSize)
	if err != nil {
		return nil, err
	}

	for i := range resp.Hits {
		if RecipeIDFromURI(resp.Hits[i].Recipe.URI) == recipeID {
			recipe := resp.Hits[i].Recipe
			return &recipe, nil
		}
	}
	return nil, ErrRecipeNotFound
}

// GetByID returns the recipe or nil. Nil means either "not found" or "the request failed";
// failures additionally emit a notification. Use Lookup to tell the two apart.
func (c *Client) GetByID(ctx context.Context, id string) *Recipe {
	recipe, err := c.Lookup(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrRecipeNotFound) {
			c.logger(ctx).Error().Err(err).Str("id", id).Msg("[EdamamClient] Error fetching recipe details")
			notify.Error(ctx, c.notifier, LookupFailedMessage)
		}
		return nil
	}
	return recipe
}

// RecipeIDFromURI returns the segment after "#recipe_", or "" when the URI has none
func RecipeIDFromURI(uri string) string {
	_, id, found := strings.Cut(uri, recipeIDDelimiter)
	if !found {
		return ""
	}
	// a second delimiter ends the identifier
	id, _, _ = strings.Cut(id, recipeIDDelimiter)
	return id
}

func (c *Client) search(ctx context.Context, operation, query string, filters Filters, from, to int) (*SearchResponse, error) {
	if err := c.creds.validate(); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("type", "public")
	params.Set("q", query)
	params.Set("app_id", c.creds.AppID)
	params.Set("app_key", c.creds.AppKey)
	params.Set("from", strconv.Itoa(from))
	params.Set("to", strconv.Itoa(to))
	filters.encode(params)

	log := c.logger(ctx)
	log.Debug().Str("operation", operation).Str("url", c.baseURL+"?"+redact(params)).Msg("[EdamamClient] Fetching recipes")

	if err := c.wait(ctx); err != nil {
		requestsTotal.WithLabelValues(operation, outcomeTransport).Inc()
		return nil, &RequestError{Err: fmt.Errorf("request throttled: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &RequestError{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(AccountUserHeader, c.creds.accountUser())

	start := time.Now()
	resp, err := c.http.Do(req)
	requestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		requestsTotal.WithLabelValues(operation, outcomeTransport).Inc()
		return nil, &RequestError{Err: fmt.Errorf("failed to send request: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		requestsTotal.WithLabelValues(operation, outcomeTransport).Inc()
		return nil, &RequestError{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		requestsTotal.WithLabelValues(operation, outcomeHTTPError).Inc()
		log.Error().Int("status", resp.StatusCode).Str("body", string(body)).Msg("[EdamamClient] API error response")
		return nil, &RequestError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var raw rawSearchResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		requestsTotal.WithLabelValues(operation, outcomeBadResponse).Inc()
		return nil, &RequestError{Err: fmt.Errorf("%w: %v", errInvalidResponse, err)}
	}
	if raw.Hits == nil {
		requestsTotal.WithLabelValues(operation, outcomeBadResponse).Inc()
		return nil, &RequestError{Err: errInvalidResponse}
	}

	requestsTotal.WithLabelValues(operation, outcomeOK).Inc()
	log.Debug().
		Str("operation", operation).
		Int("count", raw.Count).
		Int("from", raw.From).
		Int("to", raw.To).
		Bool("more", raw.More).
		Int("hits", len(*raw.Hits)).
		Msg("[EdamamClient] API response")

	return &SearchResponse{
		Hits:  *raw.Hits,
		Count: raw.Count,
		From:  raw.From,
		To:    raw.To,
		More:  raw.More,
		Q:     raw.Q,
	}, nil
}

func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	if c.limiter.Tokens() < 1 {
		throttleWaits.Inc()
	}
	return c.limiter.Wait(ctx)
}

func (c *Client) logger(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &c.log
}

func redact(params url.Values) string {
	copied := url.Values{}
	for k, v := range params {
		copied[k] = append([]string(nil), v...)
	}
	if copied.Has("app_key") {
		copied.Set("app_key", "REDACTED")
	}
	return copied.Encode()
}
