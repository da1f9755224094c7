package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"edu-backend/internal/models"
)

type FeedbackRepository struct {
	DB *pgxpool.Pool
}

func NewFeedbackRepository(db *pgxpool.Pool) *FeedbackRepository {
	return &FeedbackRepository{DB: db}
}

func (r *FeedbackRepository) Create(ctx context.Context, f *models.Feedback) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO feedback(full_name, workplace, phone_number, email, rating, message)
         VALUES($1, $2, $3, $4, $5, $6)
         RETURNING id, is_approved, created_at`,
		f.FullName, f.Workplace, f.PhoneNumber, f.Email, f.Rating, f.Message,
	).Scan(&f.ID, &f.IsApproved, &f.CreatedAt)
}

func (r *FeedbackRepository) Get(ctx context.Context, id int) (*models.Feedback, error) {
	var f models.Feedback
	err := r.DB.QueryRow(ctx,
		`SELECT id, full_name, workplace, phone_number, email, rating, message, is_approved, created_at
         FROM feedback WHERE id=$1`, id,
	).Scan(&f.ID, &f.FullName, &f.Workplace, &f.PhoneNumber, &f.Email, &f.Rating, &f.Message, &f.IsApproved, &f.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FeedbackRepository) List(ctx context.Context, page, limit int) ([]*models.Feedback, int, error) {
	offset := (page - 1) * limit

	var total int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM feedback`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.Query(ctx,
		`SELECT id, full_name, workplace, phone_number, email, rating, message, is_approved, created_at
         FROM feedback ORDER BY created_at DESC
         LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*models.Feedback
	for rows.Next() {
		var f models.Feedback
		err := rows.Scan(&f.ID, &f.FullName, &f.Workplace, &f.PhoneNumber, &f.Email, &f.Rating, &f.Message, &f.IsApproved, &f.CreatedAt)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, &f)
	}
	return items, total, rows.Err()
}

// ListApproved returns feedback cleared for public display.
func (r *FeedbackRepository) ListApproved(ctx context.Context) ([]*models.Feedback, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, full_name, workplace, phone_number, email, rating, message, is_approved, created_at
         FROM feedback WHERE is_approved = TRUE ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.Feedback
	for rows.Next() {
		var f models.Feedback
		err := rows.Scan(&f.ID, &f.FullName, &f.Workplace, &f.PhoneNumber, &f.Email, &f.Rating, &f.Message, &f.IsApproved, &f.CreatedAt)
		if err != nil {
			return nil, err
		}
		items = append(items, &f)
	}
	return items, rows.Err()
}

func (r *FeedbackRepository) Approve(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `UPDATE feedback SET is_approved = TRUE WHERE id=$1`, id)
	return err
}

func (r *FeedbackRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM feedback WHERE id=$1`, id)
	return err
}
