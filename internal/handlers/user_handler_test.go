package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edu-backend/internal/cache"
	"edu-backend/internal/models"
	"edu-backend/internal/otp"
	"edu-backend/internal/services"
	"edu-backend/internal/sms"
)

// fakeUsers is an in-memory user store for the verification flows.
type fakeUsers struct {
	byPhone map[string]*models.User
	nextID  int
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byPhone: make(map[string]*models.User), nextID: 1}
}

func (f *fakeUsers) Create(ctx context.Context, u *models.User) error {
	u.ID = f.nextID
	f.nextID++
	f.byPhone[u.PhoneNumber] = u
	return nil
}

func (f *fakeUsers) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	if u, ok := f.byPhone[phone]; ok {
		return u, nil
	}
	return nil, errNoRows{}
}

func (f *fakeUsers) GetByEmailAndPhone(ctx context.Context, email, phone string) (*models.User, error) {
	if u, ok := f.byPhone[phone]; ok && u.Email == email {
		return u, nil
	}
	return nil, errNoRows{}
}

func (f *fakeUsers) ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error) {
	for _, u := range f.byPhone {
		if u.Email == email || u.PhoneNumber == phone {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUsers) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	_, ok := f.byPhone[phone]
	return ok, nil
}

type errNoRows struct{}

func (errNoRows) Error() string { return "no rows in result set" }

// capturingSender records the last code handed to the SMS provider.
type capturingSender struct {
	lastCode string
	fail     error
}

func (c *capturingSender) SendSMS(ctx context.Context, phone, message string) (*sms.GatewayResponse, error) {
	if c.fail != nil {
		return nil, c.fail
	}
	return &sms.GatewayResponse{Status: "waiting"}, nil
}

func (c *capturingSender) SendOTP(ctx context.Context, phone, code string) (*sms.GatewayResponse, error) {
	if c.fail != nil {
		return nil, c.fail
	}
	c.lastCode = code
	return &sms.GatewayResponse{Status: "waiting"}, nil
}

type fixedTokens struct{}

func (fixedTokens) GenerateToken(userID int, role string) (string, error) { return "jwt-token", nil }

func newVerificationHandler(users *fakeUsers, sender *capturingSender) *UserHandler {
	codes := otp.NewStore(cache.NewMemory(), time.Minute)
	svc := services.NewVerificationService(codes, users, sender, fixedTokens{})
	return NewUserHandler(svc, nil)
}

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestRequestRegisterCode(t *testing.T) {
	sender := &capturingSender{}
	h := newVerificationHandler(newFakeUsers(), sender)

	w := postJSON(t, h.RequestRegisterCode, `{"phone_number":"998901234567"}`)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeEnvelope(t, w)
	assert.Equal(t, true, resp["success"])
	assert.Len(t, sender.lastCode, 5)
}

func TestRequestRegisterCodeConflict(t *testing.T) {
	users := newFakeUsers()
	users.byPhone["998901234567"] = &models.User{ID: 1, PhoneNumber: "998901234567"}
	h := newVerificationHandler(users, &capturingSender{})

	w := postJSON(t, h.RequestRegisterCode, `{"phone_number":"998901234567"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, false, decodeEnvelope(t, w)["success"])
}

func TestRegisterVerifyCreatesAccount(t *testing.T) {
	sender := &capturingSender{}
	users := newFakeUsers()
	h := newVerificationHandler(users, sender)

	w := postJSON(t, h.RequestRegisterCode, `{"phone_number":"998901234567"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, h.RegisterVerify,
		`{"phone_number":"998901234567","code":"`+sender.lastCode+`","email":"a@b.uz","first_name":"Aziz","last_name":"Karimov"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	resp := decodeEnvelope(t, w)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "jwt-token", data["token"])
	assert.NotNil(t, users.byPhone["998901234567"])
}

func TestRegisterVerifyWrongCodeRejected(t *testing.T) {
	sender := &capturingSender{}
	h := newVerificationHandler(newFakeUsers(), sender)

	postJSON(t, h.RequestRegisterCode, `{"phone_number":"998901234567"}`)

	wrong := "00000"
	if sender.lastCode == wrong {
		wrong = "00001"
	}
	w := postJSON(t, h.RegisterVerify,
		`{"phone_number":"998901234567","code":"`+wrong+`","email":"a@b.uz"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGatewayFailureRelayed(t *testing.T) {
	sender := &capturingSender{fail: &sms.GatewayError{StatusCode: 402, Message: "Insufficient balance"}}
	h := newVerificationHandler(newFakeUsers(), sender)

	w := postJSON(t, h.RequestRegisterCode, `{"phone_number":"998901234567"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "Insufficient balance", decodeEnvelope(t, w)["message"])
}
