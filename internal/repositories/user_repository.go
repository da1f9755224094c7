package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"edu-backend/internal/models"
)

type UserRepository struct {
	DB *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

const userColumns = `id, email, first_name, last_name, COALESCE(middle_name, '') as middle_name,
         phone_number, status, role, address, workplace, position, course_id, direction_id,
         created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.MiddleName,
		&u.PhoneNumber, &u.Status, &u.Role, &u.Address, &u.Workplace, &u.Position,
		&u.CourseID, &u.DirectionID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO users(email, first_name, last_name, middle_name, phone_number, status, role, course_id, direction_id)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)
         RETURNING id, created_at, updated_at`,
		u.Email, u.FirstName, u.LastName, u.MiddleName, u.PhoneNumber, u.Status, u.Role, u.CourseID, u.DirectionID,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

func (r *UserRepository) Get(ctx context.Context, id int) (*models.User, error) {
	return scanUser(r.DB.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id=$1`, id))
}

// GetByPhone finds a user by phone number. Returns pgx.ErrNoRows when absent.
func (r *UserRepository) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	return scanUser(r.DB.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE phone_number=$1`, phone))
}

// GetByEmailAndPhone matches the login identity pair.
func (r *UserRepository) GetByEmailAndPhone(ctx context.Context, email, phone string) (*models.User, error) {
	return scanUser(r.DB.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email=$1 AND phone_number=$2`, email, phone))
}

// ExistsByEmailOrPhone reports whether any account already claims either
// identifier.
func (r *UserRepository) ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email=$1 OR phone_number=$2)`, email, phone,
	).Scan(&exists)
	return exists, err
}

// ExistsByPhone reports whether any account already claims the phone number.
func (r *UserRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE phone_number=$1)`, phone).Scan(&exists)
	return exists, err
}

func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id int, req *models.UpdateProfileRequest) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE users SET email=$1, first_name=$2, last_name=$3, middle_name=$4, phone_number=$5,
             updated_at=CURRENT_TIMESTAMP
         WHERE id=$6`,
		req.Email, req.FirstName, req.LastName, req.MiddleName, req.PhoneNumber, id)
	return err
}

// RegisterForCourse records a course enrollment with contact details and
// flips the status to ENROLLED.
func (r *UserRepository) RegisterForCourse(ctx context.Context, id, courseID, directionID int, address, workplace, position string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE users SET course_id=$1, direction_id=$2,
             address=NULLIF($3, ''), workplace=NULLIF($4, ''), position=NULLIF($5, ''),
             status=$6, updated_at=CURRENT_TIMESTAMP
         WHERE id=$7`,
		courseID, directionID, address, workplace, position, models.UserStatusEnrolled, id)
	return err
}

func (r *UserRepository) UpdateCourseSelection(ctx context.Context, id, courseID, directionID int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE users SET course_id=$1, direction_id=$2, updated_at=CURRENT_TIMESTAMP WHERE id=$3`,
		courseID, directionID, id)
	return err
}

// IsNotFound reports whether the error is the driver's no-rows marker.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
