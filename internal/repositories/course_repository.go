package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"edu-backend/internal/models"
)

type CourseRepository struct {
	DB *pgxpool.Pool
}

func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(ctx context.Context, c *models.Course) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO courses(title_en, title_ru, title_uz, description_en, description_ru, description_uz,
                             start_date, ends_at, direction_id)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)
         RETURNING id, published_at`,
		c.TitleEn, c.TitleRu, c.TitleUz, c.DescriptionEn, c.DescriptionRu, c.DescriptionUz,
		c.StartDate, c.EndsAt, c.DirectionID,
	).Scan(&c.ID, &c.PublishedAt)
}

func (r *CourseRepository) Get(ctx context.Context, id int) (*models.Course, error) {
	var c models.Course
	var d models.Direction
	err := r.DB.QueryRow(ctx,
		`SELECT c.id, c.title_en, c.title_ru, c.title_uz, c.description_en, c.description_ru, c.description_uz,
                c.start_date, c.ends_at, c.direction_id, c.published_at,
                d.id, d.title_en, d.title_ru, d.title_uz, d.description_en, d.description_ru, d.description_uz, d.created_at
         FROM courses c JOIN directions d ON d.id = c.direction_id
         WHERE c.id=$1`, id,
	).Scan(&c.ID, &c.TitleEn, &c.TitleRu, &c.TitleUz, &c.DescriptionEn, &c.DescriptionRu, &c.DescriptionUz,
		&c.StartDate, &c.EndsAt, &c.DirectionID, &c.PublishedAt,
		&d.ID, &d.TitleEn, &d.TitleRu, &d.TitleUz, &d.DescriptionEn, &d.DescriptionRu, &d.DescriptionUz, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	c.Direction = &d
	return &c, nil
}

// List returns a page of courses ordered by published_at desc, optionally
// filtered by direction. directionID 0 means no filter.
func (r *CourseRepository) List(ctx context.Context, directionID, page, limit int) ([]*models.Course, int, error) {
	offset := (page - 1) * limit

	var total int
	if directionID > 0 {
		if err := r.DB.QueryRow(ctx,
			`SELECT COUNT(*) FROM courses WHERE direction_id=$1`, directionID).Scan(&total); err != nil {
			return nil, 0, err
		}
	} else {
		if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM courses`).Scan(&total); err != nil {
			return nil, 0, err
		}
	}

	rows, err := r.DB.Query(ctx,
		`SELECT c.id, c.title_en, c.title_ru, c.title_uz, c.description_en, c.description_ru, c.description_uz,
                c.start_date, c.ends_at, c.direction_id, c.published_at,
                d.id, d.title_en, d.title_ru, d.title_uz, d.description_en, d.description_ru, d.description_uz, d.created_at
         FROM courses c JOIN directions d ON d.id = c.direction_id
         WHERE ($1 = 0 OR c.direction_id = $1)
         ORDER BY c.published_at DESC
         LIMIT $2 OFFSET $3`, directionID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		var c models.Course
		var d models.Direction
		err := rows.Scan(&c.ID, &c.TitleEn, &c.TitleRu, &c.TitleUz, &c.DescriptionEn, &c.DescriptionRu, &c.DescriptionUz,
			&c.StartDate, &c.EndsAt, &c.DirectionID, &c.PublishedAt,
			&d.ID, &d.TitleEn, &d.TitleRu, &d.TitleUz, &d.DescriptionEn, &d.DescriptionRu, &d.DescriptionUz, &d.CreatedAt)
		if err != nil {
			return nil, 0, err
		}
		c.Direction = &d
		courses = append(courses, &c)
	}
	return courses, total, rows.Err()
}

func (r *CourseRepository) Update(ctx context.Context, c *models.Course) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE courses SET title_en=$1, title_ru=$2, title_uz=$3,
             description_en=$4, description_ru=$5, description_uz=$6,
             start_date=$7, ends_at=$8, direction_id=$9
         WHERE id=$10`,
		c.TitleEn, c.TitleRu, c.TitleUz, c.DescriptionEn, c.DescriptionRu, c.DescriptionUz,
		c.StartDate, c.EndsAt, c.DirectionID, c.ID)
	return err
}

func (r *CourseRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM courses WHERE id=$1`, id)
	return err
}

// Exists reports whether a course with the id exists.
func (r *CourseRepository) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM courses WHERE id=$1)`, id).Scan(&exists)
	return exists, err
}
