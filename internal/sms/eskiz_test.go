package sms

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edu-backend/internal/cache"
	"edu-backend/internal/config"
)

type gatewayStub struct {
	mux *http.ServeMux

	loginCalls int
	sendCalls  int

	token string
	// sendResponses is consumed one per send call; a nil entry means success.
	sendResponses []func(w http.ResponseWriter)
}

func newGatewayStub(t *testing.T) (*gatewayStub, *httptest.Server) {
	t.Helper()

	g := &gatewayStub{mux: http.NewServeMux(), token: "tok-1"}

	g.mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		g.loginCalls++
		require.NoError(t, r.ParseForm())
		require.Equal(t, "acct@example.com", r.PostForm.Get("email"))
		require.Equal(t, "s3cret", r.PostForm.Get("password"))
		w.Write([]byte(`{"message":"token_generated","data":{"token":"` + g.token + `"}}`))
	})

	g.mux.HandleFunc("/message/sms/send", func(w http.ResponseWriter, r *http.Request) {
		idx := g.sendCalls
		g.sendCalls++
		if idx < len(g.sendResponses) && g.sendResponses[idx] != nil {
			g.sendResponses[idx](w)
			return
		}
		w.Write([]byte(`{"id":"msg-1","status":"waiting","message":"Waiting for SMS provider"}`))
	})

	srv := httptest.NewServer(g.mux)
	t.Cleanup(srv.Close)
	return g, srv
}

func newTestClient(baseURL string, kv cache.KV) *Eskiz {
	cfg := &config.Config{}
	cfg.Eskiz.BaseURL = baseURL
	cfg.Eskiz.Email = "acct@example.com"
	cfg.Eskiz.Password = "s3cret"
	cfg.Eskiz.From = "4546"
	cfg.Eskiz.Template = "Sizning tasdiqlash kodingiz: {{code}}"
	return NewEskiz(cfg, kv)
}

func reject(status int, body string) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}
}

func TestSendWithCachedToken(t *testing.T) {
	g, srv := newGatewayStub(t)
	kv := cache.NewMemory()
	require.NoError(t, kv.Set(context.Background(), tokenKey, "cached-token", time.Hour))

	c := newTestClient(srv.URL, kv)
	resp, err := c.SendSMS(context.Background(), "998901234567", "hello")
	require.NoError(t, err)

	assert.Equal(t, "waiting", resp.Status)
	assert.Equal(t, 1, g.sendCalls, "cached token must mean exactly one HTTP call")
	assert.Equal(t, 0, g.loginCalls)
}

func TestSendLogsInWhenNoTokenCached(t *testing.T) {
	g, srv := newGatewayStub(t)
	kv := cache.NewMemory()

	c := newTestClient(srv.URL, kv)
	_, err := c.SendSMS(context.Background(), "998901234567", "hello")
	require.NoError(t, err)

	assert.Equal(t, 1, g.loginCalls)
	assert.Equal(t, 1, g.sendCalls)

	tok, err := kv.Get(context.Background(), tokenKey)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)
}

func TestSendRetriesOnceOnExpiredToken(t *testing.T) {
	g, srv := newGatewayStub(t)
	g.token = "tok-fresh"
	g.sendResponses = []func(w http.ResponseWriter){
		reject(http.StatusUnauthorized, `{"message":"Expired token"}`),
		nil, // retry succeeds
	}

	kv := cache.NewMemory()
	require.NoError(t, kv.Set(context.Background(), tokenKey, "stale-token", time.Hour))

	c := newTestClient(srv.URL, kv)
	resp, err := c.SendSMS(context.Background(), "998901234567", "hello")
	require.NoError(t, err)

	assert.Equal(t, "waiting", resp.Status)
	assert.Equal(t, 2, g.sendCalls, "expired token means original call plus one retry")
	assert.Equal(t, 1, g.loginCalls)

	tok, err := kv.Get(context.Background(), tokenKey)
	require.NoError(t, err)
	assert.Equal(t, "tok-fresh", tok, "fresh token must replace the stale one")
}

func TestSendGivesUpAfterSecondRejection(t *testing.T) {
	g, srv := newGatewayStub(t)
	g.sendResponses = []func(w http.ResponseWriter){
		reject(http.StatusUnauthorized, `{"message":"Expired token"}`),
		reject(http.StatusUnauthorized, `{"message":"Expired token"}`),
	}

	kv := cache.NewMemory()
	require.NoError(t, kv.Set(context.Background(), tokenKey, "stale-token", time.Hour))

	c := newTestClient(srv.URL, kv)
	_, err := c.SendSMS(context.Background(), "998901234567", "hello")
	require.Error(t, err)

	var ge *GatewayError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, http.StatusUnauthorized, ge.StatusCode)
	assert.Equal(t, 2, g.sendCalls, "no third attempt after the retry fails")
}

func TestExpiryDetectedByMessage(t *testing.T) {
	// Some gateway errors carry the expiry hint in the message instead of a
	// 401 status.
	g, srv := newGatewayStub(t)
	g.sendResponses = []func(w http.ResponseWriter){
		reject(http.StatusBadRequest, `{"message":"Auth token is expired, please refresh"}`),
		nil,
	}

	kv := cache.NewMemory()
	require.NoError(t, kv.Set(context.Background(), tokenKey, "stale-token", time.Hour))

	c := newTestClient(srv.URL, kv)
	_, err := c.SendSMS(context.Background(), "998901234567", "hello")
	require.NoError(t, err)
	assert.Equal(t, 2, g.sendCalls)
}

func TestGatewayErrorPropagatesPayload(t *testing.T) {
	g, srv := newGatewayStub(t)
	g.sendResponses = []func(w http.ResponseWriter){
		reject(http.StatusPaymentRequired, `{"message":"Insufficient balance"}`),
	}

	kv := cache.NewMemory()
	require.NoError(t, kv.Set(context.Background(), tokenKey, "good-token", time.Hour))

	c := newTestClient(srv.URL, kv)
	_, err := c.SendSMS(context.Background(), "998901234567", "hello")

	var ge *GatewayError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, http.StatusPaymentRequired, ge.StatusCode)
	assert.Equal(t, "Insufficient balance", ge.Message)
	assert.Contains(t, string(ge.Body), "Insufficient balance")
	assert.Equal(t, 1, g.sendCalls, "non-auth failures are never retried")
	assert.Equal(t, 0, g.loginCalls)
}

func TestSendOTPRendersTemplate(t *testing.T) {
	var gotMessage, gotPhone string
	mux := http.NewServeMux()
	mux.HandleFunc("/message/sms/send", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotMessage = r.PostForm.Get("message")
		gotPhone = r.PostForm.Get("mobile_phone")
		w.Write([]byte(`{"status":"waiting"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	kv := cache.NewMemory()
	require.NoError(t, kv.Set(context.Background(), tokenKey, "good-token", time.Hour))

	c := newTestClient(srv.URL, kv)
	_, err := c.SendOTP(context.Background(), "+998 90-123-45-67", "00042")
	require.NoError(t, err)

	assert.Equal(t, "Sizning tasdiqlash kodingiz: 00042", gotMessage)
	assert.Equal(t, "998901234567", gotPhone, "phone must be normalized to digits")
}

func TestMissingCredentials(t *testing.T) {
	cfg := &config.Config{}
	cfg.Eskiz.BaseURL = "http://localhost:0"
	c := NewEskiz(cfg, cache.NewMemory())

	_, err := c.SendSMS(context.Background(), "998901234567", "hello")
	assert.True(t, errors.Is(err, ErrNoCredentials))
}
