package siigo

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xelth-com/siigozoho/internal/apperrors"
	"github.com/xelth-com/siigozoho/internal/config"
)

func newTestClient(srv *httptest.Server) *Client {
	c := NewClient(config.SiigoConfig{
		AuthURL:   srv.URL + "/auth",
		Username:  "api@example.com",
		AccessKey: "secret-key",
		PartnerID: "partner-1",
	}, zerolog.Nop())
	c.BaseURL = srv.URL
	return c
}

func TestAuthenticate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "partner-1", r.Header.Get("Partner-Id"))

		var body authRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "api@example.com", body.Username)
		assert.Equal(t, "secret-key", body.AccessKey)

		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "tok-123", "expires_in": 86400})
	}))
	defer srv.Close()

	session, err := newTestClient(srv).Authenticate(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "tok-123", session.Token)
	assert.Equal(t, "partner-1", session.PartnerID)
}

func TestAuthenticateFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"Errors":[{"Code":"invalid_credentials"}]}`},
		{"no token", http.StatusOK, `{"token_type":"Bearer"}`},
		{"garbage", http.StatusOK, `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestClient(srv).Authenticate(t.Context())
			require.Error(t, err)
			assert.True(t, apperrors.IsAuth(err))
		})
	}
}

func TestCountCustomers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/customers", r.URL.Path)
		assert.Equal(t, "2024-01-01", r.URL.Query().Get("created_start"))
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "1", r.URL.Query().Get("page_size"))
		assert.Equal(t, "tok", r.Header.Get("Authorization"))
		assert.Equal(t, "partner-1", r.Header.Get("Partner-Id"))

		_, _ = w.Write([]byte(`{"pagination":{"page":1,"page_size":1,"total_results":245},"results":[{"id":"x"}]}`))
	}))
	defer srv.Close()

	total, pages, err := newTestClient(srv).CountCustomers(t.Context(), &Session{Token: "tok", PartnerID: "partner-1"}, "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, 245, total)
	assert.Equal(t, 3, pages)
}

func TestCountCustomersPageMath(t *testing.T) {
	for total, want := range map[int]int{0: 0, 1: 1, 100: 1, 101: 2, 200: 2} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(CustomerPage{Pagination: Pagination{TotalResults: total}})
		}))

		_, pages, err := newTestClient(srv).CountCustomers(t.Context(), &Session{}, "2024-01-01")
		srv.Close()

		require.NoError(t, err)
		assert.Equal(t, want, pages, "total %d", total)
	}
}

func TestCountCustomersUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, _, err := newTestClient(srv).CountCustomers(t.Context(), &Session{}, "2024-01-01")
	require.Error(t, err)

	var ue *apperrors.UpstreamError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, http.StatusBadGateway, ue.Status)
	assert.Equal(t, "siigo count", ue.Op)
}

func TestCountCustomersUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := newTestClient(srv)
	srv.Close()

	_, _, err := c.CountCustomers(t.Context(), &Session{}, "2024-01-01")
	require.Error(t, err)
	assert.True(t, apperrors.IsUpstream(err))
}

func TestFetchCustomers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "100", r.URL.Query().Get("page_size"))

		_, _ = w.Write([]byte(`{
			"pagination": {"page": 2, "page_size": 100, "total_results": 101},
			"results": [{
				"id": "abc",
				"type": "Customer",
				"person_type": "Person",
				"id_type": {"code": "13", "name": "CC"},
				"identification": "123",
				"active": true,
				"address": {"address": "Calle 1", "city": {"city_name": "Bogota", "state_name": "Bogota", "city_code": "110111", "country_name": "Colombia"}},
				"contacts": [{"first_name": "Ana", "last_name": "", "email": "a@x.com", "phone": {"indicative": "+57", "number": "3001234567"}}]
			}]
		}`))
	}))
	defer srv.Close()

	customers, err := newTestClient(srv).FetchCustomers(t.Context(), &Session{}, "2024-01-01", 2)
	require.NoError(t, err)
	require.Len(t, customers, 1)

	c := customers[0]
	assert.Equal(t, "abc", c.ID)
	assert.Equal(t, "CC", c.IDType.Name)
	assert.Equal(t, "Bogota", c.Address.City.CityName)
	assert.Equal(t, "3001234567", c.Contacts[0].Phone.Number)
}

func TestFetchCustomersNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"Errors":[]}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).FetchCustomers(t.Context(), &Session{}, "2024-01-01", 1)

	var ue *apperrors.UpstreamError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, http.StatusTooManyRequests, ue.Status)
	assert.Equal(t, "siigo customers page 1", ue.Op)
}
