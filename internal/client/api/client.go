/*
Package api is the terminal client's connection to the Place Rank service.

Every call decodes the service's response envelope and turns a non-zero
business code into an *APIError, so callers branch on codes instead of
parsing message strings. The bearer token is read from a TokenSource on
each request; the session store is the usual source.
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"placerank/internal/app/account"
	"placerank/internal/app/place"
)

const defaultTimeout = 15 * time.Second

// TokenSource supplies the bearer token for authenticated calls.
// An empty token sends the request anonymously.
type TokenSource interface {
	Token() string
}

// APIError is a service response with a non-zero business code.
type APIError struct {
	Code    int
	Message string
	Status  int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("service error %d: %s", e.Code, e.Message)
}

// Client talks to the Place Rank HTTP API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenSource
}

// NewClient creates a Client for the service at baseURL. A nil httpClient
// gets a default with a request timeout.
func NewClient(baseURL string, tokens TokenSource, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		tokens:     tokens,
	}
}

// envelope mirrors the service's uniform response shape.
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// AuthResult is the payload of a successful sign-in or registration.
type AuthResult struct {
	Token string           `json:"token"`
	User  account.Identity `json:"user"`
}

// Login exchanges credentials for a token and identity.
func (c *Client) Login(ctx context.Context, email, password string) (AuthResult, error) {
	var out AuthResult
	err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	return out, err
}

// Register creates an account and signs it in.
func (c *Client) Register(ctx context.Context, name, email, password string, role account.Role) (AuthResult, error) {
	var out AuthResult
	err := c.do(ctx, http.MethodPost, "/api/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
		"role":     role.String(),
	}, &out)
	return out, err
}

// ProfileResult is the account profile with its role-dependent activity.
type ProfileResult struct {
	User     account.Identity `json:"user"`
	Places   []place.Place    `json:"places,omitempty"`
	Ratings  []place.Rating   `json:"ratings,omitempty"`
	Comments []place.Comment  `json:"comments,omitempty"`
}

// FetchProfile loads the signed-in account's profile and activity.
func (c *Client) FetchProfile(ctx context.Context) (ProfileResult, error) {
	var out ProfileResult
	err := c.do(ctx, http.MethodGet, "/api/account/profile", nil, &out)
	return out, err
}

// UpdateResult is the payload of a profile update. Token is empty when the
// service kept the previous one.
type UpdateResult struct {
	Token string           `json:"token"`
	User  account.Identity `json:"user"`
}

// UpdateProfile applies a partial profile update and returns the merged
// identity, with a refreshed token when the service issued one.
func (c *Client) UpdateProfile(ctx context.Context, update account.ProfileUpdate) (UpdateResult, error) {
	var out UpdateResult
	err := c.do(ctx, http.MethodPut, "/api/account/profile", update, &out)
	return out, err
}

// ListPlaces fetches places matching the filter. Zero-value filter fields
// are omitted from the query.
func (c *Client) ListPlaces(ctx context.Context, filter place.Filter) ([]place.Place, error) {
	q := url.Values{}
	if filter.Category != "" {
		q.Set("category", filter.Category)
	}
	if filter.Query != "" {
		q.Set("q", filter.Query)
	}
	if filter.MinRating > 0 {
		q.Set("min_rating", strconv.FormatFloat(filter.MinRating, 'f', -1, 64))
	}

	path := "/api/places"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var out struct {
		Places []place.Place `json:"places"`
	}
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out.Places, err
}

// PlaceDetail is a place together with its comment thread.
type PlaceDetail struct {
	Place    place.Place     `json:"place"`
	Comments []place.Comment `json:"comments"`
}

// GetPlace fetches one place with its comments.
func (c *Client) GetPlace(ctx context.Context, id string) (PlaceDetail, error) {
	var out PlaceDetail
	err := c.do(ctx, http.MethodGet, "/api/places/"+url.PathEscape(id), nil, &out)
	return out, err
}

// PlaceInput carries the fields for creating or updating a place.
type PlaceInput struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	Description string `json:"description"`
	PhotoURL    string `json:"photoUrl,omitempty"`
}

// CreatePlace registers a new place owned by the signed-in organization.
func (c *Client) CreatePlace(ctx context.Context, input PlaceInput) (place.Place, error) {
	var out struct {
		Place place.Place `json:"place"`
	}
	err := c.do(ctx, http.MethodPost, "/api/places", input, &out)
	return out.Place, err
}

// UpdatePlace replaces an owned place's editable fields.
func (c *Client) UpdatePlace(ctx context.Context, id string, input PlaceInput) (place.Place, error) {
	var out struct {
		Place place.Place `json:"place"`
	}
	err := c.do(ctx, http.MethodPut, "/api/places/"+url.PathEscape(id), input, &out)
	return out.Place, err
}

// DeletePlace removes an owned place.
func (c *Client) DeletePlace(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/places/"+url.PathEscape(id), nil, nil)
}

// AddRating records the signed-in account's star rating for a place and
// returns the place with its refreshed aggregate.
func (c *Client) AddRating(ctx context.Context, placeID string, stars int) (place.Place, error) {
	var out struct {
		Place place.Place `json:"place"`
	}
	err := c.do(ctx, http.MethodPost, "/api/places/"+url.PathEscape(placeID)+"/ratings", map[string]int{
		"stars": stars,
	}, &out)
	return out.Place, err
}

// AddComment posts a comment on a place.
func (c *Client) AddComment(ctx context.Context, placeID, text string) (place.Comment, error) {
	var out struct {
		Comment place.Comment `json:"comment"`
	}
	err := c.do(ctx, http.MethodPost, "/api/places/"+url.PathEscape(placeID)+"/comments", map[string]string{
		"text": text,
	}, &out)
	return out.Comment, err
}

// do runs one request against the service and decodes the envelope into out.
// A non-zero envelope code becomes an *APIError; transport failures pass
// through wrapped.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%s %s: decode response (status %d): %w", method, path, resp.StatusCode, err)
	}

	if env.Code != 0 {
		return &APIError{Code: env.Code, Message: env.Message, Status: resp.StatusCode}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%s %s: decode data: %w", method, path, err)
		}
	}
	return nil
}
