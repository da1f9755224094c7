package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"edu-backend/internal/models"
)

type NewsRepository struct {
	DB *pgxpool.Pool
}

func NewNewsRepository(db *pgxpool.Pool) *NewsRepository {
	return &NewsRepository{DB: db}
}

// Create inserts the news row and its media rows in one transaction.
func (r *NewsRepository) Create(ctx context.Context, n *models.News) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO news(title_en, title_ru, title_uz, content_en, content_ru, content_uz)
         VALUES($1, $2, $3, $4, $5, $6)
         RETURNING id, published_at`,
		n.TitleEn, n.TitleRu, n.TitleUz, n.ContentEn, n.ContentRu, n.ContentUz,
	).Scan(&n.ID, &n.PublishedAt)
	if err != nil {
		return err
	}

	for i := range n.Medias {
		err = tx.QueryRow(ctx,
			`INSERT INTO news_media(news_id, url, type) VALUES($1, $2, $3) RETURNING id`,
			n.ID, n.Medias[i].URL, n.Medias[i].Type,
		).Scan(&n.Medias[i].ID)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *NewsRepository) Get(ctx context.Context, id int) (*models.News, error) {
	var n models.News
	err := r.DB.QueryRow(ctx,
		`SELECT id, title_en, title_ru, title_uz, content_en, content_ru, content_uz, published_at
         FROM news WHERE id=$1`, id,
	).Scan(&n.ID, &n.TitleEn, &n.TitleRu, &n.TitleUz, &n.ContentEn, &n.ContentRu, &n.ContentUz, &n.PublishedAt)
	if err != nil {
		return nil, err
	}

	if err := r.loadMedias(ctx, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NewsRepository) List(ctx context.Context, page, limit int) ([]*models.News, int, error) {
	offset := (page - 1) * limit

	var total int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM news`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.Query(ctx,
		`SELECT id, title_en, title_ru, title_uz, content_en, content_ru, content_uz, published_at
         FROM news ORDER BY published_at DESC
         LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*models.News
	for rows.Next() {
		var n models.News
		err := rows.Scan(&n.ID, &n.TitleEn, &n.TitleRu, &n.TitleUz, &n.ContentEn, &n.ContentRu, &n.ContentUz, &n.PublishedAt)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for _, n := range items {
		if err := r.loadMedias(ctx, n); err != nil {
			return nil, 0, err
		}
	}
	return items, total, nil
}

// Update rewrites the news fields; newly uploaded medias are appended.
func (r *NewsRepository) Update(ctx context.Context, n *models.News) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`UPDATE news SET title_en=$1, title_ru=$2, title_uz=$3,
             content_en=$4, content_ru=$5, content_uz=$6
         WHERE id=$7`,
		n.TitleEn, n.TitleRu, n.TitleUz, n.ContentEn, n.ContentRu, n.ContentUz, n.ID)
	if err != nil {
		return err
	}

	for i := range n.Medias {
		if n.Medias[i].ID != 0 {
			continue
		}
		err = tx.QueryRow(ctx,
			`INSERT INTO news_media(news_id, url, type) VALUES($1, $2, $3) RETURNING id`,
			n.ID, n.Medias[i].URL, n.Medias[i].Type,
		).Scan(&n.Medias[i].ID)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Delete removes the news row; media rows go with it via ON DELETE CASCADE.
func (r *NewsRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM news WHERE id=$1`, id)
	return err
}

func (r *NewsRepository) loadMedias(ctx context.Context, n *models.News) error {
	rows, err := r.DB.Query(ctx,
		`SELECT id, url, type FROM news_media WHERE news_id=$1 ORDER BY id`, n.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	n.Medias = []models.Media{}
	for rows.Next() {
		var m models.Media
		if err := rows.Scan(&m.ID, &m.URL, &m.Type); err != nil {
			return err
		}
		n.Medias = append(n.Medias, m)
	}
	return rows.Err()
}
