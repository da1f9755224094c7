package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"edu-backend/internal/models"
)

type ElonRepository struct {
	DB *pgxpool.Pool
}

func NewElonRepository(db *pgxpool.Pool) *ElonRepository {
	return &ElonRepository{DB: db}
}

func (r *ElonRepository) Create(ctx context.Context, e *models.Elon) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO elons(title_en, title_ru, title_uz, content_en, content_ru, content_uz, ends_at)
         VALUES($1, $2, $3, $4, $5, $6, $7)
         RETURNING id, published_at`,
		e.TitleEn, e.TitleRu, e.TitleUz, e.ContentEn, e.ContentRu, e.ContentUz, e.EndsAt,
	).Scan(&e.ID, &e.PublishedAt)
	if err != nil {
		return err
	}

	for i := range e.Medias {
		err = tx.QueryRow(ctx,
			`INSERT INTO elon_media(elon_id, url, type) VALUES($1, $2, $3) RETURNING id`,
			e.ID, e.Medias[i].URL, e.Medias[i].Type,
		).Scan(&e.Medias[i].ID)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *ElonRepository) Get(ctx context.Context, id int) (*models.Elon, error) {
	var e models.Elon
	err := r.DB.QueryRow(ctx,
		`SELECT id, title_en, title_ru, title_uz, content_en, content_ru, content_uz, ends_at, published_at
         FROM elons WHERE id=$1`, id,
	).Scan(&e.ID, &e.TitleEn, &e.TitleRu, &e.TitleUz, &e.ContentEn, &e.ContentRu, &e.ContentUz, &e.EndsAt, &e.PublishedAt)
	if err != nil {
		return nil, err
	}

	if err := r.loadMedias(ctx, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *ElonRepository) List(ctx context.Context, page, limit int) ([]*models.Elon, int, error) {
	offset := (page - 1) * limit

	var total int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM elons`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.Query(ctx,
		`SELECT id, title_en, title_ru, title_uz, content_en, content_ru, content_uz, ends_at, published_at
         FROM elons ORDER BY published_at DESC
         LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*models.Elon
	for rows.Next() {
		var e models.Elon
		err := rows.Scan(&e.ID, &e.TitleEn, &e.TitleRu, &e.TitleUz, &e.ContentEn, &e.ContentRu, &e.ContentUz, &e.EndsAt, &e.PublishedAt)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for _, e := range items {
		if err := r.loadMedias(ctx, e); err != nil {
			return nil, 0, err
		}
	}
	return items, total, nil
}

func (r *ElonRepository) Update(ctx context.Context, e *models.Elon) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`UPDATE elons SET title_en=$1, title_ru=$2, title_uz=$3,
             content_en=$4, content_ru=$5, content_uz=$6, ends_at=$7
         WHERE id=$8`,
		e.TitleEn, e.TitleRu, e.TitleUz, e.ContentEn, e.ContentRu, e.ContentUz, e.EndsAt, e.ID)
	if err != nil {
		return err
	}

	for i := range e.Medias {
		if e.Medias[i].ID != 0 {
			continue
		}
		err = tx.QueryRow(ctx,
			`INSERT INTO elon_media(elon_id, url, type) VALUES($1, $2, $3) RETURNING id`,
			e.ID, e.Medias[i].URL, e.Medias[i].Type,
		).Scan(&e.Medias[i].ID)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *ElonRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM elons WHERE id=$1`, id)
	return err
}

func (r *ElonRepository) loadMedias(ctx context.Context, e *models.Elon) error {
	rows, err := r.DB.Query(ctx,
		`SELECT id, url, type FROM elon_media WHERE elon_id=$1 ORDER BY id`, e.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	e.Medias = []models.Media{}
	for rows.Next() {
		var m models.Media
		if err := rows.Scan(&m.ID, &m.URL, &m.Type); err != nil {
			return err
		}
		e.Medias = append(e.Medias, m)
	}
	return rows.Err()
}
