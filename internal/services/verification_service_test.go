package services

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"edu-backend/internal/cache"
	"edu-backend/internal/models"
	"edu-backend/internal/otp"
	"edu-backend/internal/sms"
)

type mockUsers struct {
	mock.Mock
}

func (m *mockUsers) Create(ctx context.Context, u *models.User) error {
	args := m.Called(ctx, u)
	if args.Error(0) == nil {
		u.ID = 7
	}
	return args.Error(0)
}

func (m *mockUsers) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUsers) GetByEmailAndPhone(ctx context.Context, email, phone string) (*models.User, error) {
	args := m.Called(ctx, email, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUsers) ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error) {
	args := m.Called(ctx, email, phone)
	return args.Bool(0), args.Error(1)
}

func (m *mockUsers) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	args := m.Called(ctx, phone)
	return args.Bool(0), args.Error(1)
}

type mockSender struct {
	mock.Mock
}

func (m *mockSender) SendSMS(ctx context.Context, phone, message string) (*sms.GatewayResponse, error) {
	args := m.Called(ctx, phone, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sms.GatewayResponse), args.Error(1)
}

func (m *mockSender) SendOTP(ctx context.Context, phone, code string) (*sms.GatewayResponse, error) {
	args := m.Called(ctx, phone, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sms.GatewayResponse), args.Error(1)
}

type staticTokens struct{}

func (staticTokens) GenerateToken(userID int, role string) (string, error) {
	return "signed-token", nil
}

func newTestService(users *mockUsers, sender *mockSender) *VerificationService {
	codes := otp.NewStore(cache.NewMemory(), 5*time.Minute)
	return NewVerificationService(codes, users, sender, staticTokens{})
}

func TestRegisterRequestCodeSendsSMS(t *testing.T) {
	users := new(mockUsers)
	sender := new(mockSender)
	svc := newTestService(users, sender)

	users.On("ExistsByPhone", mock.Anything, "+998901234567").Return(false, nil)
	sender.On("SendOTP", mock.Anything, "+998901234567", mock.MatchedBy(func(code string) bool {
		return len(code) == 5
	})).Return(&sms.GatewayResponse{Status: "waiting"}, nil)

	err := svc.RegisterRequestCode(context.Background(), "+998901234567")
	require.NoError(t, err)
	sender.AssertNumberOfCalls(t, "SendOTP", 1)
}

func TestRegisterRequestCodeRejectsTakenPhone(t *testing.T) {
	users := new(mockUsers)
	sender := new(mockSender)
	svc := newTestService(users, sender)

	users.On("ExistsByPhone", mock.Anything, "998901234567").Return(true, nil)

	err := svc.RegisterRequestCode(context.Background(), "998901234567")
	assert.ErrorIs(t, err, ErrUserExists)
	sender.AssertNotCalled(t, "SendOTP")
}

func TestRegisterFlow(t *testing.T) {
	users := new(mockUsers)
	sender := new(mockSender)

	var sentCode string
	users.On("ExistsByPhone", mock.Anything, mock.Anything).Return(false, nil)
	users.On("ExistsByEmailOrPhone", mock.Anything, "a@b.uz", "998901234567").Return(false, nil)
	users.On("Create", mock.Anything, mock.Anything).Return(nil)
	sender.On("SendOTP", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sentCode = args.String(2) }).
		Return(&sms.GatewayResponse{Status: "waiting"}, nil)

	svc := newTestService(users, sender)
	ctx := context.Background()

	require.NoError(t, svc.RegisterRequestCode(ctx, "998901234567"))
	require.NotEmpty(t, sentCode)

	// pre-check does not consume the code
	require.NoError(t, svc.CheckRegisterCode(ctx, "998901234567", sentCode))
	require.NoError(t, svc.CheckRegisterCode(ctx, "998901234567", sentCode))

	user, token, err := svc.RegisterVerify(ctx, &models.RegisterVerifyRequest{
		Code:        sentCode,
		Email:       "a@b.uz",
		FirstName:   "Aziz",
		LastName:    "Karimov",
		PhoneNumber: "998901234567",
	})
	require.NoError(t, err)
	assert.Equal(t, 7, user.ID)
	assert.Equal(t, models.UserStatusActive, user.Status)
	assert.Equal(t, "signed-token", token)

	// the code was consumed
	_, _, err = svc.RegisterVerify(ctx, &models.RegisterVerifyRequest{
		Code:        sentCode,
		Email:       "a@b.uz",
		PhoneNumber: "998901234567",
	})
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestRegisterVerifyWrongCode(t *testing.T) {
	users := new(mockUsers)
	sender := new(mockSender)
	svc := newTestService(users, sender)

	_, _, err := svc.RegisterVerify(context.Background(), &models.RegisterVerifyRequest{
		Code:        "00000",
		PhoneNumber: "998901234567",
	})
	assert.ErrorIs(t, err, ErrInvalidCode)
	users.AssertNotCalled(t, "Create")
}

func TestRegisterVerifyRaceWithExistingUser(t *testing.T) {
	users := new(mockUsers)
	sender := new(mockSender)

	var sentCode string
	users.On("ExistsByPhone", mock.Anything, mock.Anything).Return(false, nil)
	users.On("ExistsByEmailOrPhone", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	sender.On("SendOTP", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sentCode = args.String(2) }).
		Return(&sms.GatewayResponse{}, nil)

	svc := newTestService(users, sender)
	ctx := context.Background()
	require.NoError(t, svc.RegisterRequestCode(ctx, "998901234567"))

	_, _, err := svc.RegisterVerify(ctx, &models.RegisterVerifyRequest{
		Code:        sentCode,
		Email:       "a@b.uz",
		PhoneNumber: "998901234567",
	})
	assert.ErrorIs(t, err, ErrUserExists)
	users.AssertNotCalled(t, "Create")
}

func TestLoginFlow(t *testing.T) {
	users := new(mockUsers)
	sender := new(mockSender)

	existing := &models.User{ID: 3, Email: "a@b.uz", PhoneNumber: "998901234567", Role: "USER"}
	var sentCode string
	users.On("GetByEmailAndPhone", mock.Anything, "a@b.uz", "998901234567").Return(existing, nil)
	sender.On("SendOTP", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sentCode = args.String(2) }).
		Return(&sms.GatewayResponse{}, nil)

	svc := newTestService(users, sender)
	ctx := context.Background()

	require.NoError(t, svc.LoginRequestCode(ctx, "a@b.uz", "998901234567"))

	user, token, err := svc.LoginVerify(ctx, "a@b.uz", "998901234567", sentCode)
	require.NoError(t, err)
	assert.Equal(t, 3, user.ID)
	assert.Equal(t, "signed-token", token)

	// single use
	_, _, err = svc.LoginVerify(ctx, "a@b.uz", "998901234567", sentCode)
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestLoginRequestCodeUnknownUser(t *testing.T) {
	users := new(mockUsers)
	sender := new(mockSender)
	svc := newTestService(users, sender)

	users.On("GetByEmailAndPhone", mock.Anything, "x@y.uz", "998900000000").Return(nil, pgx.ErrNoRows)

	err := svc.LoginRequestCode(context.Background(), "x@y.uz", "998900000000")
	assert.ErrorIs(t, err, ErrUserNotFound)
	sender.AssertNotCalled(t, "SendOTP")
}

func TestLoginAndRegisterCodesAreIsolated(t *testing.T) {
	users := new(mockUsers)
	sender := new(mockSender)

	existing := &models.User{ID: 3, Email: "a@b.uz", PhoneNumber: "998901234567", Role: "USER"}
	var loginCode string
	users.On("GetByEmailAndPhone", mock.Anything, mock.Anything, mock.Anything).Return(existing, nil)
	sender.On("SendOTP", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { loginCode = args.String(2) }).
		Return(&sms.GatewayResponse{}, nil)

	svc := newTestService(users, sender)
	ctx := context.Background()
	require.NoError(t, svc.LoginRequestCode(ctx, "a@b.uz", "998901234567"))

	// a login code must not pass the registration check
	err := svc.CheckRegisterCode(ctx, "998901234567", loginCode)
	assert.ErrorIs(t, err, ErrInvalidCode)
}
