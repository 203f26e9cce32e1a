package api

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	// TokenHeader identifies the authenticated user on every request.
	TokenHeader = "X-User-Id"

	defaultTimeout = 2 * time.Minute
)

// Params configures a new API client.
type Params struct {
	BaseURL   string
	UserAgent string
	Debug     bool
}

// Client talks to the Media Cuts Studio HTTP API.
type Client struct {
	restClient *resty.Client
	userID     string
}

// NewClient creates a new API client for the given base URL.
func NewClient(p Params) *Client {
	rc := resty.New().
		SetBaseURL(p.BaseURL).
		SetTimeout(defaultTimeout).
		SetHeader("Accept", "application/json")
	if p.UserAgent != "" {
		rc.SetHeader("User-Agent", p.UserAgent)
	}
	if p.Debug {
		rc.SetDebug(true)
	}
	return &Client{restClient: rc}
}

// SetUserID sets the user identifier sent with every authenticated request.
func (c *Client) SetUserID(userID string) {
	c.userID = userID
	c.restClient.SetHeader(TokenHeader, userID)
}

// UserID returns the identifier currently attached to requests.
func (c *Client) UserID() string {
	return c.userID
}

// ApiError represents a non-2xx response from the server.
type ApiError struct {
	StatusCode int
	Message    string
}

func (e *ApiError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// IsApiError reports whether err is an ApiError with the given status code.
func IsApiError(err error, statusCode int) bool {
	apiErr, ok := err.(*ApiError)
	return ok && apiErr.StatusCode == statusCode
}

// serverMessage is the error envelope the server uses for failures.
type serverMessage struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// apiErrorFrom builds an ApiError from a failed resty response, preferring
// the server's message field over the raw body.
func apiErrorFrom(r *resty.Response) *ApiError {
	msg := r.String()
	if sm, ok := r.Error().(*serverMessage); ok && sm != nil {
		if sm.Message != "" {
			msg = sm.Message
		} else if sm.Error != "" {
			msg = sm.Error
		}
	}
	return &ApiError{
		StatusCode: r.StatusCode(),
		Message:    msg,
	}
}
