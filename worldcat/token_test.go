package worldcat

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"

	"github.com/ArchivoVenezuela/avocado-web/config"
)

func testClient(transport *httpmock.MockTransport) *Client {
	cfg := config.DefaultConfig()
	cfg.WSKey = "test-key"
	cfg.WSSecret = "test-secret"
	cfg.StrategyPause = 0
	cfg.RequestPause = 0
	c := NewClient(cfg)
	c.HTTPClient = &http.Client{Transport: transport}
	return c
}

func TestTokenSuccess(t *testing.T) {
	transport := httpmock.NewMockTransport()
	transport.RegisterResponder("POST", "https://oauth.oclc.org/token",
		func(req *http.Request) (*http.Response, error) {
			user, pass, ok := req.BasicAuth()
			if !ok || user != "test-key" || pass != "test-secret" {
				t.Errorf("basic auth = (%q, %q, %v)", user, pass, ok)
			}
			body, _ := io.ReadAll(req.Body)
			if got := string(body); got != "grant_type=client_credentials&scope=wcapi%3Aview_bib" {
				t.Errorf("token request body = %q", got)
			}
			return httpmock.NewStringResponse(http.StatusOK, `{"access_token": "tk-abc"}`), nil
		})

	c := testClient(transport)
	token, err := c.Token(context.Background())
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if token != "tk-abc" {
		t.Fatalf("token = %q, want tk-abc", token)
	}
}

func TestTokenFailures(t *testing.T) {
	tests := []struct {
		name      string
		responder httpmock.Responder
	}{
		{
			name:      "non-200 status",
			responder: httpmock.NewStringResponder(http.StatusUnauthorized, `{"message": "bad credentials"}`),
		},
		{
			name:      "malformed body",
			responder: httpmock.NewStringResponder(http.StatusOK, `{not json`),
		},
		{
			name:      "missing access_token",
			responder: httpmock.NewStringResponder(http.StatusOK, `{"token_type": "bearer"}`),
		},
		{
			name:      "transport error",
			responder: httpmock.NewErrorResponder(errors.New("connection refused")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := httpmock.NewMockTransport()
			transport.RegisterResponder("POST", "https://oauth.oclc.org/token", tt.responder)

			c := testClient(transport)
			_, err := c.Token(context.Background())
			var authErr AuthError
			if !errors.As(err, &authErr) {
				t.Fatalf("expected AuthError, got %v", err)
			}
		})
	}
}
