package siigo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/xelth-com/siigozoho/internal/apperrors"
	"github.com/xelth-com/siigozoho/internal/config"
)

const (
	// DefaultBaseURL is the Siigo public API host
	DefaultBaseURL = "https://api.siigo.com"

	// PageSize is the customers page size used for the full listing
	PageSize = 100

	// CountTimeout bounds the initial count probe
	CountTimeout = 30 * time.Second
)

// Client represents a Siigo REST client
type Client struct {
	AuthURL    string
	BaseURL    string
	Username   string
	AccessKey  string
	PartnerID  string
	HttpClient *http.Client
	log        zerolog.Logger
}

// Session is an authenticated Siigo session
type Session struct {
	Token     string
	PartnerID string
}

// NewClient creates a new Siigo client
func NewClient(cfg config.SiigoConfig, log zerolog.Logger) *Client {
	return &Client{
		AuthURL:    cfg.AuthURL,
		BaseURL:    DefaultBaseURL,
		Username:   cfg.Username,
		AccessKey:  cfg.AccessKey,
		PartnerID:  cfg.PartnerID,
		HttpClient: &http.Client{},
		log:        log.With().Str("component", "siigo").Logger(),
	}
}

// Authenticate exchanges the username/access key pair for a bearer token
func (c *Client) Authenticate(ctx context.Context) (*Session, error) {
	payload, err := json.Marshal(authRequest{Username: c.Username, AccessKey: c.AccessKey})
	if err != nil {
		return nil, &apperrors.AuthError{Op: "siigo", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.AuthURL, bytes.NewReader(payload))
	if err != nil {
		return nil, &apperrors.AuthError{Op: "siigo", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Partner-Id", c.PartnerID)

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, &apperrors.AuthError{Op: "siigo", Err: err}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &apperrors.AuthError{Op: "siigo", Err: fmt.Errorf("status %d: %s", resp.StatusCode, body)}
	}

	var out authResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &apperrors.AuthError{Op: "siigo", Err: fmt.Errorf("failed to decode token response: %w", err)}
	}
	if out.AccessToken == "" {
		return nil, &apperrors.AuthError{Op: "siigo", Err: errors.New("response has no access_token")}
	}

	c.log.Info().Msg("Siigo authentication succeeded")
	return &Session{Token: out.AccessToken, PartnerID: c.PartnerID}, nil
}

// CountCustomers asks for a single-record page to learn how many customers
// were created since the given date, and how many full pages that makes.
func (c *Client) CountCustomers(ctx context.Context, s *Session, since string) (int, int, error) {
	ctx, cancel := context.WithTimeout(ctx, CountTimeout)
	defer cancel()

	var page CustomerPage
	if err := c.getCustomers(ctx, s, since, 1, 1, &page); err != nil {
		return 0, 0, withOp(err, "siigo count")
	}

	total := page.Pagination.TotalResults
	pages := (total + PageSize - 1) / PageSize

	c.log.Info().Int("total", total).Int("pages", pages).Str("since", since).Msg("Siigo customers counted")
	return total, pages, nil
}

// FetchCustomers returns one page of customers created since the given date
func (c *Client) FetchCustomers(ctx context.Context, s *Session, since string, page int) ([]Customer, error) {
	var out CustomerPage
	if err := c.getCustomers(ctx, s, since, page, PageSize, &out); err != nil {
		return nil, withOp(err, "siigo customers page "+strconv.Itoa(page))
	}
	return out.Results, nil
}

func (c *Client) getCustomers(ctx context.Context, s *Session, since string, page, pageSize int, out *CustomerPage) error {
	query := url.Values{}
	query.Set("created_start", since)
	query.Set("page", strconv.Itoa(page))
	query.Set("page_size", strconv.Itoa(pageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/v1/customers?"+query.Encode(), nil)
	if err != nil {
		return &apperrors.UpstreamError{Err: err}
	}
	req.Header.Set("Authorization", s.Token)
	req.Header.Set("Partner-Id", s.PartnerID)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return &apperrors.UpstreamError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &apperrors.UpstreamError{Status: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &apperrors.UpstreamError{Status: resp.StatusCode, Err: fmt.Errorf("unexpected response: %s", body)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &apperrors.UpstreamError{Status: resp.StatusCode, Err: fmt.Errorf("failed to decode customers: %w", err)}
	}
	return nil
}

func withOp(err error, op string) error {
	var ue *apperrors.UpstreamError
	if errors.As(err, &ue) {
		ue.Op = op
	}
	return err
}
