package zoho

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
	"strings"

	"github.com/rs/zerolog"
	"github.com/xelth-com/siigozoho/internal/apperrors"
	"github.com/xelth-com/siigozoho/internal/config"
	"golang.org/x/oauth2"
)

const (
	// DefaultUsersURL returns the user bound to the OAuth token
	DefaultUsersURL = "https://www.zohoapis.com/crm/v2/users?type=CurrentUser"

	// PageSize is the largest page the Contacts list endpoint serves
	PageSize = 200
)

// Client represents a Zoho CRM REST client
type Client struct {
	ContactsURL string
	UsersURL    string
	OAuth       *oauth2.Config
	HttpClient  *http.Client
	log         zerolog.Logger
}

// NewClient creates a new Zoho CRM client
func NewClient(cfg config.ZohoConfig, log zerolog.Logger) *Client {
	return &Client{
		ContactsURL: strings.TrimRight(cfg.ContactsURL, "/"),
		UsersURL:    DefaultUsersURL,
		OAuth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       cfg.Scopes,
			Endpoint: oauth2.Endpoint{
				TokenURL:  cfg.TokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		HttpClient: &http.Client{},
		log:        log.With().Str("component", "zoho").Logger(),
	}
}

// ExchangeCode trades a one-time authorization code for an access token
func (c *Client) ExchangeCode(ctx context.Context, code string) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.HttpClient)

	token, err := c.OAuth.Exchange(ctx, code,
		oauth2.SetAuthURLParam("scope", strings.Join(c.OAuth.Scopes, ",")))
	if err != nil {
		return "", &apperrors.AuthError{Op: "zoho", Err: err}
	}
	if token.AccessToken == "" {
		return "", &apperrors.AuthError{Op: "zoho", Err: errors.New("response has no access_token")}
	}

	c.log.Info().Msg("Zoho authorization code exchanged")
	return token.AccessToken, nil
}

// CurrentUser returns the CRM user the token belongs to, or nil when the
// response lists no user.
func (c *Client) CurrentUser(ctx context.Context, token string) (*User, error) {
	resp, err := c.do(ctx, token, http.MethodGet, c.UsersURL, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read current user: %w", err)
	}
	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("current user request failed: status %d: %s", resp.StatusCode, body)
	}

	var out usersEnvelope
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode current user: %w", err)
	}
	if len(out.Users) == 0 {
		return nil, nil
	}
	return &out.Users[0], nil
}

// ListContacts pages through the whole Contacts module. Pagination stops
// when the CRM reports no more records, on a short or empty page, or on 204.
// A failing page ends the listing early: the contacts gathered so far are
// returned together with the error.
func (c *Client) ListContacts(ctx context.Context, token string) ([]ContactRef, error) {
	var all []ContactRef

	for page := 1; ; page++ {
		query := url.Values{}
		query.Set("page", strconv.Itoa(page))
		query.Set("per_page", strconv.Itoa(PageSize))

		batch, more, err := c.listPage(ctx, token, c.ContactsURL+"?"+query.Encode())
		if err != nil {
			c.log.Warn().Err(err).Int("page", page).Int("fetched", len(all)).Msg("Zoho contact listing stopped early")
			return all, err
		}

		all = append(all, batch...)
		if !more {
			break
		}
	}

	c.log.Info().Int("total", len(all)).Msg("Zoho contacts fetched")
	return all, nil
}

// listPage returns the page's contacts and whether another page follows
func (c *Client) listPage(ctx context.Context, token, pageURL string) ([]ContactRef, bool, error) {
	resp, err := c.do(ctx, token, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, false, &apperrors.UpstreamError{Op: "zoho contacts", Err: err}
	}
	defer resp.Body.Close()

	// 204 means the module has no (more) records
	if resp.StatusCode == http.StatusNoContent {
		return nil, false, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, &apperrors.UpstreamError{Op: "zoho contacts", Status: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, false, &apperrors.UpstreamError{Op: "zoho contacts", Status: resp.StatusCode, Err: fmt.Errorf("unexpected response: %s", body)}
	}

	var out listEnvelope
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, false, &apperrors.UpstreamError{Op: "zoho contacts", Status: resp.StatusCode, Err: fmt.Errorf("failed to decode contacts: %w", err)}
	}

	refs := make([]ContactRef, 0, len(out.Data))
	for i, raw := range out.Data {
		var ref ContactRef
		if err := json.Unmarshal(raw, &ref); err != nil {
			c.log.Warn().Err(err).Int("record", i).Msg("Skipping unreadable Zoho contact")
			continue
		}
		refs = append(refs, ref)
	}

	more := len(out.Data) == PageSize
	if out.Info != nil {
		more = out.Info.MoreRecords && len(out.Data) > 0
	}
	return refs, more, nil
}

// CreateContact inserts a contact. A response with status >= 400 is not an
// error here; callers inspect the WriteResult.
func (c *Client) CreateContact(ctx context.Context, token string, contact Contact) (*WriteResult, error) {
	return c.write(ctx, token, http.MethodPost, c.ContactsURL, contact)
}

// UpdateContact overwrites the contact with the given CRM id
func (c *Client) UpdateContact(ctx context.Context, token, id string, contact Contact) (*WriteResult, error) {
	return c.write(ctx, token, http.MethodPut, c.ContactsURL+"/"+url.PathEscape(id), contact)
}

func (c *Client) write(ctx context.Context, token, method, target string, contact Contact) (*WriteResult, error) {
	payload, err := json.Marshal(recordsEnvelope{Data: []Contact{contact}})
	if err != nil {
		return nil, fmt.Errorf("failed to encode contact: %w", err)
	}

	resp, err := c.do(ctx, token, method, target, payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read write response: %w", err)
	}

	result := &WriteResult{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}

	var parsed APIResponse
	if json.Unmarshal(body, &parsed) == nil && len(parsed.Data) > 0 {
		result.Code = parsed.Data[0].Code
		result.Status = parsed.Data[0].Status
	}
	return result, nil
}

func (c *Client) do(ctx context.Context, token, method, target string, payload []byte) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Zoho-oauthtoken "+token)
	req.Header.Set("Content-Type", "application/json")

	return c.HttpClient.Do(req)
}
