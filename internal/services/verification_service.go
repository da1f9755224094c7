package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"edu-backend/internal/auth"
	"edu-backend/internal/metrics"
	"edu-backend/internal/models"
	"edu-backend/internal/otp"
	"edu-backend/internal/repositories"
	"edu-backend/internal/sms"
)

var (
	ErrUserExists   = errors.New("user with this email or phone number already exists")
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidCode  = errors.New("invalid or expired verification code")
)

// codeStore covers the OTP operations the orchestrator needs.
type codeStore interface {
	Generate() string
	Issue(ctx context.Context, purpose otp.Purpose, phone, code string) error
	Check(ctx context.Context, purpose otp.Purpose, phone, code string) (bool, error)
	Verify(ctx context.Context, purpose otp.Purpose, phone, code string) (bool, error)
}

type userStore interface {
	Create(ctx context.Context, u *models.User) error
	GetByPhone(ctx context.Context, phone string) (*models.User, error)
	GetByEmailAndPhone(ctx context.Context, email, phone string) (*models.User, error)
	ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
}

type tokenIssuer interface {
	GenerateToken(userID int, role string) (string, error)
}

// VerificationService drives the register and login phone-verification
// flows: issue a code, deliver it over SMS, then confirm it.
type VerificationService struct {
	codes  codeStore
	users  userStore
	sender sms.Provider
	tokens tokenIssuer
}

func NewVerificationService(codes codeStore, users userStore, sender sms.Provider, tokens tokenIssuer) *VerificationService {
	return &VerificationService{codes: codes, users: users, sender: sender, tokens: tokens}
}

// RegisterRequestCode issues a registration code for a phone number that
// is not yet taken and sends it over SMS.
func (s *VerificationService) RegisterRequestCode(ctx context.Context, phone string) error {
	taken, err := s.users.ExistsByPhone(ctx, phone)
	if err != nil {
		return fmt.Errorf("check phone: %w", err)
	}
	if taken {
		return ErrUserExists
	}

	return s.sendCode(ctx, otp.PurposeRegister, phone)
}

// sendCode issues a fresh code for the purpose and delivers it over SMS.
// A reissue for the same phone and purpose replaces the previous code.
func (s *VerificationService) sendCode(ctx context.Context, purpose otp.Purpose, phone string) error {
	code := s.codes.Generate()
	if err := s.codes.Issue(ctx, purpose, phone, code); err != nil {
		return err
	}
	if _, err := s.sender.SendOTP(ctx, phone, code); err != nil {
		metrics.SMSSentTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.SMSSentTotal.WithLabelValues("ok").Inc()
	metrics.OTPIssuedTotal.WithLabelValues(string(purpose)).Inc()
	log.Printf("[Verification] %s code sent to %s", purpose, otp.NormalizePhone(phone))
	return nil
}

// CheckRegisterCode validates a registration code without consuming it,
// so the client can confirm the code before submitting profile data.
func (s *VerificationService) CheckRegisterCode(ctx context.Context, phone, code string) error {
	ok, err := s.codes.Check(ctx, otp.PurposeRegister, phone, code)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidCode
	}
	return nil
}

// RegisterVerify consumes the registration code, creates the account and
// returns the user with a signed token.
func (s *VerificationService) RegisterVerify(ctx context.Context, req *models.RegisterVerifyRequest) (*models.User, string, error) {
	ok, err := s.codes.Verify(ctx, otp.PurposeRegister, req.PhoneNumber, req.Code)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		metrics.OTPVerifiedTotal.WithLabelValues(string(otp.PurposeRegister), "rejected").Inc()
		return nil, "", ErrInvalidCode
	}
	metrics.OTPVerifiedTotal.WithLabelValues(string(otp.PurposeRegister), "ok").Inc()

	taken, err := s.users.ExistsByEmailOrPhone(ctx, req.Email, req.PhoneNumber)
	if err != nil {
		return nil, "", fmt.Errorf("check user: %w", err)
	}
	if taken {
		return nil, "", ErrUserExists
	}

	user := &models.User{
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		MiddleName:  req.MiddleName,
		PhoneNumber: req.PhoneNumber,
		Status:      models.UserStatusActive,
		Role:        auth.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}
	log.Printf("[Verification] User %d registered", user.ID)
	return user, token, nil
}

// LoginRequestCode issues a login code for an existing account matched by
// email and phone number.
func (s *VerificationService) LoginRequestCode(ctx context.Context, email, phone string) error {
	_, err := s.users.GetByEmailAndPhone(ctx, email, phone)
	if err != nil {
		if repositories.IsNotFound(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("lookup user: %w", err)
	}

	return s.sendCode(ctx, otp.PurposeLogin, phone)
}

// LoginVerify consumes the login code and returns the user with a signed
// token.
func (s *VerificationService) LoginVerify(ctx context.Context, email, phone, code string) (*models.User, string, error) {
	user, err := s.users.GetByEmailAndPhone(ctx, email, phone)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", fmt.Errorf("lookup user: %w", err)
	}

	ok, err := s.codes.Verify(ctx, otp.PurposeLogin, phone, code)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		metrics.OTPVerifiedTotal.WithLabelValues(string(otp.PurposeLogin), "rejected").Inc()
		return nil, "", ErrInvalidCode
	}
	metrics.OTPVerifiedTotal.WithLabelValues(string(otp.PurposeLogin), "ok").Inc()

	token, err := s.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}
	return user, token, nil
}
