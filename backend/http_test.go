package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginWireShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/user/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.Empty(t, r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ana@example.com", body["email"])
		assert.Equal(t, "secret", body["senha"])

		json.NewEncoder(w).Encode(map[string]string{
			"tokenAcesso":  "access-abc",
			"refreshToken": "refresh-xyz",
		})
	}))
	defer server.Close()

	client := NewHTTPClient(HTTPOptions{BaseURL: server.URL})
	creds, err := client.Login(context.Background(), "ana@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "access-abc", creds.AccessToken)
	assert.Equal(t, "refresh-xyz", creds.RefreshToken)
}

func TestProfileUnwrapsEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/user/profile", r.URL.Path)
		require.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))

		io.WriteString(w, `{
			"status": 200,
			"mensagemSucesso": {
				"id": "u-1",
				"email": "ana@example.com",
				"nome": "Ana",
				"funcao": "Premium"
			}
		}`)
	}))
	defer server.Close()

	client := NewHTTPClient(HTTPOptions{BaseURL: server.URL})
	profile, err := client.Profile(context.Background(), "token-123")
	require.NoError(t, err)
	assert.Equal(t, Profile{ID: "u-1", Email: "ana@example.com", Name: "Ana", Role: RolePremium}, profile)
}

func TestRegisterWireShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/user/register", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Ana", body["nome"])
		assert.Equal(t, "secret", body["senha"])
		assert.Equal(t, "secret", body["senhaConfirmacao"])

		io.WriteString(w, `{"status": 201, "mensagemSucesso": "verifique seu e-mail"}`)
	}))
	defer server.Close()

	client := NewHTTPClient(HTTPOptions{BaseURL: server.URL})
	msg, err := client.Register(context.Background(), "Ana", "ana@example.com", "secret", "secret")
	require.NoError(t, err)
	assert.Equal(t, "verifique seu e-mail", msg)
}

func TestValidateCodeWireShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/user/validate", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "123456", body["codigo"])

		io.WriteString(w, `{"status": 200, "mensagemSucesso": "ok"}`)
	}))
	defer server.Close()

	client := NewHTTPClient(HTTPOptions{BaseURL: server.URL})
	require.NoError(t, client.ValidateCode(context.Background(), "ana@example.com", "123456"))
}

func TestStartSubscriptionReturnsCheckoutURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/user/checkout/subscribe", r.URL.Path)
		require.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))

		io.WriteString(w, `{"status": 200, "urlStripe": "https://checkout.stripe.com/c/pay/cs_123"}`)
	}))
	defer server.Close()

	client := NewHTTPClient(HTTPOptions{BaseURL: server.URL})
	url, err := client.StartSubscription(context.Background(), "token-123")
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_123", url)
}

func TestCancelSubscriptionUsesDelete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/user/cancel-subscription", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewHTTPClient(HTTPOptions{BaseURL: server.URL})
	require.NoError(t, client.CancelSubscription(context.Background(), "token-123"))
}

func TestPluginDownloadLinksFiltersNonStrings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/plugin/download-links", r.URL.Path)

		io.WriteString(w, `{
			"status": 200,
			"Plugin2026": "https://cdn.example.com/Plugin2026.zip",
			"Plugin2025": "https://cdn.example.com/Plugin2025.zip",
			"Plugin2024": null,
			"Plugin2023": ""
		}`)
	}))
	defer server.Close()

	client := NewHTTPClient(HTTPOptions{BaseURL: server.URL})
	links, err := client.PluginDownloadLinks(context.Background(), "token-123")
	require.NoError(t, err)

	// The status field, nulls, and empty strings are dropped.
	assert.Equal(t, map[string]string{
		"Plugin2026": "https://cdn.example.com/Plugin2026.zip",
		"Plugin2025": "https://cdn.example.com/Plugin2025.zip",
	}, links)
}

func TestDownloadProductStreamsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/produto/file", r.URL.Path)
		assert.Equal(t, "catalogo", r.URL.Query().Get("material"))
		assert.Equal(t, "revit.pdf", r.URL.Query().Get("name"))

		io.WriteString(w, "file-bytes")
	}))
	defer server.Close()

	client := NewHTTPClient(HTTPOptions{BaseURL: server.URL})
	body, err := client.DownloadProduct(context.Background(), "token-123", "catalogo", "revit.pdf")
	require.NoError(t, err)
	defer body.Close()

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "file-bytes", string(data))
}

func TestErrorEnvelopeExtraction(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"errors field", 400, `{"errors": "senha incorreta"}`, "senha incorreta"},
		{"mensagem field", 401, `{"mensagem": "token expirado"}`, "token expirado"},
		{"errors wins over mensagem", 400, `{"errors": "a", "mensagem": "b"}`, "a"},
		{"structured errors kept raw", 422, `{"errors": {"email": "inválido"}}`, `{"email": "inválido"}`},
		{"empty body falls back to status text", 500, ``, "500 Internal Server Error"},
		{"non-json body falls back to status text", 502, `<html>bad gateway</html>`, "502 Bad Gateway"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				io.WriteString(w, tc.body)
			}))
			defer server.Close()

			client := NewHTTPClient(HTTPOptions{BaseURL: server.URL})
			_, err := client.Login(context.Background(), "ana@example.com", "x")
			require.Error(t, err)

			var backendErr *Error
			require.ErrorAs(t, err, &backendErr)
			assert.Equal(t, tc.status, backendErr.StatusCode)
			assert.Equal(t, tc.message, backendErr.Message)
		})
	}
}

func TestUserAgentHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "rgbim-go/1.0", r.Header.Get("User-Agent"))
		io.WriteString(w, `{}`)
	}))
	defer server.Close()

	client := NewHTTPClient(HTTPOptions{BaseURL: server.URL})
	_, err := client.Login(context.Background(), "ana@example.com", "x")
	require.NoError(t, err)
}
