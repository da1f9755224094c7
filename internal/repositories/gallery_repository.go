package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"edu-backend/internal/models"
)

type GalleryRepository struct {
	DB *pgxpool.Pool
}

func NewGalleryRepository(db *pgxpool.Pool) *GalleryRepository {
	return &GalleryRepository{DB: db}
}

func (r *GalleryRepository) Create(ctx context.Context, g *models.GalleryItem) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO gallery(title, media_url, media_type)
         VALUES($1, $2, $3)
         RETURNING id, created_at`,
		g.Title, g.MediaURL, g.MediaType,
	).Scan(&g.ID, &g.CreatedAt)
}

func (r *GalleryRepository) Get(ctx context.Context, id int) (*models.GalleryItem, error) {
	var g models.GalleryItem
	err := r.DB.QueryRow(ctx,
		`SELECT id, title, media_url, media_type, created_at FROM gallery WHERE id=$1`, id,
	).Scan(&g.ID, &g.Title, &g.MediaURL, &g.MediaType, &g.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GalleryRepository) List(ctx context.Context, page, limit int) ([]*models.GalleryItem, int, error) {
	offset := (page - 1) * limit

	var total int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM gallery`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.Query(ctx,
		`SELECT id, title, media_url, media_type, created_at
         FROM gallery ORDER BY created_at DESC
         LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*models.GalleryItem
	for rows.Next() {
		var g models.GalleryItem
		if err := rows.Scan(&g.ID, &g.Title, &g.MediaURL, &g.MediaType, &g.CreatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, &g)
	}
	return items, total, rows.Err()
}

func (r *GalleryRepository) Update(ctx context.Context, g *models.GalleryItem) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE gallery SET title=$1, media_url=$2, media_type=$3 WHERE id=$4`,
		g.Title, g.MediaURL, g.MediaType, g.ID)
	return err
}

func (r *GalleryRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM gallery WHERE id=$1`, id)
	return err
}
