package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"edu-backend/internal/models"
)

type DirectionRepository struct {
	DB *pgxpool.Pool
}

func NewDirectionRepository(db *pgxpool.Pool) *DirectionRepository {
	return &DirectionRepository{DB: db}
}

func (r *DirectionRepository) Create(ctx context.Context, d *models.Direction) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO directions(title_en, title_ru, title_uz, description_en, description_ru, description_uz)
         VALUES($1, $2, $3, $4, $5, $6)
         RETURNING id, created_at`,
		d.TitleEn, d.TitleRu, d.TitleUz, d.DescriptionEn, d.DescriptionRu, d.DescriptionUz,
	).Scan(&d.ID, &d.CreatedAt)
}

func (r *DirectionRepository) Get(ctx context.Context, id int) (*models.Direction, error) {
	var d models.Direction
	err := r.DB.QueryRow(ctx,
		`SELECT id, title_en, title_ru, title_uz, description_en, description_ru, description_uz, created_at
         FROM directions WHERE id=$1`, id,
	).Scan(&d.ID, &d.TitleEn, &d.TitleRu, &d.TitleUz, &d.DescriptionEn, &d.DescriptionRu, &d.DescriptionUz, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DirectionRepository) List(ctx context.Context) ([]*models.Direction, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, title_en, title_ru, title_uz, description_en, description_ru, description_uz, created_at
         FROM directions ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var directions []*models.Direction
	for rows.Next() {
		var d models.Direction
		err := rows.Scan(&d.ID, &d.TitleEn, &d.TitleRu, &d.TitleUz, &d.DescriptionEn, &d.DescriptionRu, &d.DescriptionUz, &d.CreatedAt)
		if err != nil {
			return nil, err
		}
		directions = append(directions, &d)
	}
	return directions, rows.Err()
}

func (r *DirectionRepository) Update(ctx context.Context, d *models.Direction) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE directions SET title_en=$1, title_ru=$2, title_uz=$3,
             description_en=$4, description_ru=$5, description_uz=$6
         WHERE id=$7`,
		d.TitleEn, d.TitleRu, d.TitleUz, d.DescriptionEn, d.DescriptionRu, d.DescriptionUz, d.ID)
	return err
}

func (r *DirectionRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM directions WHERE id=$1`, id)
	return err
}

// Exists reports whether a direction with the id exists.
func (r *DirectionRepository) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM directions WHERE id=$1)`, id).Scan(&exists)
	return exists, err
}
