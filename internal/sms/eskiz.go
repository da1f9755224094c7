package sms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"edu-backend/internal/cache"
	"edu-backend/internal/config"
	"edu-backend/internal/otp"
)

const (
	tokenKey = "eskiz:token"
	tokenTTL = 24 * time.Hour

	requestTimeout = 15 * time.Second
)

// ErrNoCredentials is returned when the gateway account is not configured.
var ErrNoCredentials = errors.New("eskiz: ESKIZ_EMAIL / ESKIZ_SECRET not configured")

// GatewayError is a non-2xx response from the Eskiz API. The gateway's own
// payload is kept so callers can relay it upstream.
type GatewayError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("eskiz: gateway error %d: %s", e.StatusCode, e.Message)
}

// tokenExpired reports whether the gateway rejected our session token.
// A 401 is the structured signal; the message probe is a fallback for the
// gateway's free-text error payloads.
func tokenExpired(err error) bool {
	var ge *GatewayError
	if !errors.As(err, &ge) {
		return false
	}
	if ge.StatusCode == http.StatusUnauthorized {
		return true
	}
	msg := strings.ToLower(ge.Message)
	return strings.Contains(msg, "token") && strings.Contains(msg, "expired")
}

// Eskiz sends SMS through the Eskiz gateway. The gateway's session token is
// cached with a 24h TTL and refreshed transparently: a send rejected for an
// expired token triggers exactly one re-login and retry.
type Eskiz struct {
	baseURL  string
	email    string
	password string
	from     string
	template string

	kv   cache.KV
	http *http.Client
}

func NewEskiz(cfg *config.Config, kv cache.KV) *Eskiz {
	return &Eskiz{
		baseURL:  strings.TrimRight(cfg.Eskiz.BaseURL, "/"),
		email:    cfg.Eskiz.Email,
		password: cfg.Eskiz.Password,
		from:     cfg.Eskiz.From,
		template: cfg.Eskiz.Template,
		kv:       kv,
		http:     &http.Client{Timeout: requestTimeout},
	}
}

// login authenticates against the gateway and caches the issued token.
func (c *Eskiz) login(ctx context.Context) (string, error) {
	if c.email == "" || c.password == "" {
		return "", ErrNoCredentials
	}

	form := url.Values{}
	form.Set("email", c.email)
	form.Set("password", c.password)

	body, err := c.postForm(ctx, c.baseURL+"/auth/login", form, "")
	if err != nil {
		return "", fmt.Errorf("eskiz login: %w", err)
	}

	var payload struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("eskiz login: decode response: %w", err)
	}
	if payload.Data.Token == "" {
		return "", errors.New("eskiz login: token missing in response")
	}

	if err := c.kv.Set(ctx, tokenKey, payload.Data.Token, tokenTTL); err != nil {
		return "", fmt.Errorf("eskiz login: cache token: %w", err)
	}
	return payload.Data.Token, nil
}

// token returns the cached session token, logging in when none is cached.
// Concurrent callers may race to login; the overwrite is harmless.
func (c *Eskiz) token(ctx context.Context) (string, error) {
	cached, err := c.kv.Get(ctx, tokenKey)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		return "", fmt.Errorf("eskiz: read token: %w", err)
	}
	return c.login(ctx)
}

// SendSMS delivers a message to a phone number. On a token-expiry rejection
// the cached token is dropped, a fresh login is performed and the same send
// is retried once; any second failure propagates unchanged.
func (c *Eskiz) SendSMS(ctx context.Context, phone, message string) (*GatewayResponse, error) {
	to := otp.NormalizePhone(phone)

	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	for attempt := 0; ; attempt++ {
		resp, err := c.send(ctx, token, to, message)
		if err == nil {
			return resp, nil
		}
		if attempt > 0 || !tokenExpired(err) {
			return nil, err
		}

		if delErr := c.kv.Del(ctx, tokenKey); delErr != nil {
			return nil, fmt.Errorf("eskiz: drop stale token: %w", delErr)
		}
		token, err = c.login(ctx)
		if err != nil {
			return nil, err
		}
	}
}

// SendOTP substitutes the code into the configured message template and
// delegates to SendSMS. The template must be approved in the Eskiz cabinet.
func (c *Eskiz) SendOTP(ctx context.Context, phone, code string) (*GatewayResponse, error) {
	return c.SendSMS(ctx, phone, strings.Replace(c.template, "{{code}}", code, 1))
}

func (c *Eskiz) send(ctx context.Context, token, to, message string) (*GatewayResponse, error) {
	form := url.Values{}
	form.Set("mobile_phone", to)
	form.Set("message", message)
	form.Set("from", c.from)

	body, err := c.postForm(ctx, c.baseURL+"/message/sms/send", form, token)
	if err != nil {
		return nil, err
	}

	var resp GatewayResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("eskiz: decode send response: %w", err)
	}
	return &resp, nil
}

func (c *Eskiz) postForm(ctx context.Context, endpoint string, form url.Values, token string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("eskiz: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("eskiz: read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var payload struct {
			Message string `json:"message"`
		}
		json.Unmarshal(body, &payload)
		return nil, &GatewayError{
			StatusCode: resp.StatusCode,
			Message:    payload.Message,
			Body:       body,
		}
	}
	return body, nil
}
