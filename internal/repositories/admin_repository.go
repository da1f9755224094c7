package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"edu-backend/internal/models"
)

type AdminRepository struct {
	DB *pgxpool.Pool
}

func NewAdminRepository(db *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{DB: db}
}

func (r *AdminRepository) Create(ctx context.Context, a *models.Admin) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO admins(username, password, role)
         VALUES($1, $2, $3)
         RETURNING id, created_at`,
		a.Username, a.Password, a.Role,
	).Scan(&a.ID, &a.CreatedAt)
}

func (r *AdminRepository) Get(ctx context.Context, id int) (*models.Admin, error) {
	var a models.Admin
	err := r.DB.QueryRow(ctx,
		`SELECT id, username, password, role, created_at FROM admins WHERE id=$1`, id,
	).Scan(&a.ID, &a.Username, &a.Password, &a.Role, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	var a models.Admin
	err := r.DB.QueryRow(ctx,
		`SELECT id, username, password, role, created_at FROM admins WHERE username=$1`, username,
	).Scan(&a.ID, &a.Username, &a.Password, &a.Role, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AdminRepository) Update(ctx context.Context, a *models.Admin) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE admins SET username=$1, password=$2 WHERE id=$3`,
		a.Username, a.Password, a.ID)
	return err
}
