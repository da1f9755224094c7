package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"edu-backend/internal/models"
)

type PartnerRepository struct {
	DB *pgxpool.Pool
}

func NewPartnerRepository(db *pgxpool.Pool) *PartnerRepository {
	return &PartnerRepository{DB: db}
}

func (r *PartnerRepository) Create(ctx context.Context, p *models.Partner) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO partners(name, logo_url, website_url)
         VALUES($1, $2, $3)
         RETURNING id, created_at`,
		p.Name, p.LogoURL, p.WebsiteURL,
	).Scan(&p.ID, &p.CreatedAt)
}

func (r *PartnerRepository) Get(ctx context.Context, id int) (*models.Partner, error) {
	var p models.Partner
	err := r.DB.QueryRow(ctx,
		`SELECT id, name, logo_url, COALESCE(website_url, '') as website_url, created_at
         FROM partners WHERE id=$1`, id,
	).Scan(&p.ID, &p.Name, &p.LogoURL, &p.WebsiteURL, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PartnerRepository) List(ctx context.Context) ([]*models.Partner, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, logo_url, COALESCE(website_url, '') as website_url, created_at
         FROM partners ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var partners []*models.Partner
	for rows.Next() {
		var p models.Partner
		if err := rows.Scan(&p.ID, &p.Name, &p.LogoURL, &p.WebsiteURL, &p.CreatedAt); err != nil {
			return nil, err
		}
		partners = append(partners, &p)
	}
	return partners, rows.Err()
}

func (r *PartnerRepository) Update(ctx context.Context, p *models.Partner) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE partners SET name=$1, logo_url=$2, website_url=$3 WHERE id=$4`,
		p.Name, p.LogoURL, p.WebsiteURL, p.ID)
	return err
}

func (r *PartnerRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM partners WHERE id=$1`, id)
	return err
}
