package services

import (
	"context"
	"errors"
	"fmt"

	"edu-backend/internal/auth"
	"edu-backend/internal/models"
	"edu-backend/internal/repositories"
)

var ErrCourseNotFound = errors.New("course or direction not found")

type UserService struct {
	users      *repositories.UserRepository
	courses    *repositories.CourseRepository
	directions *repositories.DirectionRepository
}

func NewUserService(users *repositories.UserRepository, courses *repositories.CourseRepository, directions *repositories.DirectionRepository) *UserService {
	return &UserService{users: users, courses: courses, directions: directions}
}

func (s *UserService) GetProfile(ctx context.Context, userID int) (*models.User, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID int, req *models.UpdateProfileRequest) (*models.User, error) {
	if err := s.users.UpdateProfile(ctx, userID, req); err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return s.GetProfile(ctx, userID)
}

func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.users.List(ctx)
}

// CreateUser creates an account directly, bypassing phone verification.
func (s *UserService) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	taken, err := s.users.ExistsByEmailOrPhone(ctx, req.Email, req.PhoneNumber)
	if err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if taken {
		return nil, ErrUserExists
	}

	user := &models.User{
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		MiddleName:  req.MiddleName,
		PhoneNumber: req.PhoneNumber,
		Status:      req.Status,
		Role:        auth.RoleUser,
	}
	if user.Status == "" {
		user.Status = models.UserStatusActive
	}
	if req.CourseID != 0 || req.DirectionID != 0 {
		if err := s.checkCoursePair(ctx, req.CourseID, req.DirectionID); err != nil {
			return nil, err
		}
		user.CourseID = &req.CourseID
		user.DirectionID = &req.DirectionID
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// RegisterForCourse enrolls the user in a course and records the extra
// enrollment details.
func (s *UserService) RegisterForCourse(ctx context.Context, userID int, req *models.CourseRegistrationRequest) (*models.User, error) {
	if err := s.checkCoursePair(ctx, req.CourseID, req.DirectionID); err != nil {
		return nil, err
	}
	if err := s.users.RegisterForCourse(ctx, userID, req.CourseID, req.DirectionID, req.Address, req.Workplace, req.Position); err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("register for course: %w", err)
	}
	return s.GetProfile(ctx, userID)
}

func (s *UserService) SelectCourse(ctx context.Context, userID int, req *models.CourseSelectionRequest) (*models.User, error) {
	if err := s.checkCoursePair(ctx, req.CourseID, req.DirectionID); err != nil {
		return nil, err
	}
	if err := s.users.UpdateCourseSelection(ctx, userID, req.CourseID, req.DirectionID); err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("select course: %w", err)
	}
	return s.GetProfile(ctx, userID)
}

func (s *UserService) checkCoursePair(ctx context.Context, courseID, directionID int) error {
	ok, err := s.courses.Exists(ctx, courseID)
	if err != nil {
		return fmt.Errorf("check course: %w", err)
	}
	if !ok {
		return ErrCourseNotFound
	}
	ok, err = s.directions.Exists(ctx, directionID)
	if err != nil {
		return fmt.Errorf("check direction: %w", err)
	}
	if !ok {
		return ErrCourseNotFound
	}
	return nil
}
