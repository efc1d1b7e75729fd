package repositories

import (
	"context"
	"database/sql"

	"github.com/HariSeldon343/NexioSolution-sub000/internal/models"
)

type CompanyRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Company, error)
	List(ctx context.Context) ([]models.Company, error)
}

type companyRepository struct {
	db *sql.DB
}

func NewCompanyRepository(db *sql.DB) CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) FindByID(ctx context.Context, id int64) (*models.Company, error) {
	c := &models.Company{}
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM companies WHERE id=$1`, id).Scan(&c.ID, &c.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func (r *companyRepository) List(ctx context.Context) ([]models.Company, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM companies ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Company
	for rows.Next() {
		var c models.Company
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
