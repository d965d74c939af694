package repositories

import (
	"context"
	"fmt"

	"servicefinder/internal/models"
)

// ServiceFilter narrows List results; nil fields match everything.
type ServiceFilter struct {
	Category  *string
	Available *bool
}

type ServiceRepository interface {
	Create(ctx context.Context, service *models.Service) error
	List(ctx context.Context, filter ServiceFilter) ([]*models.Service, error)
	Count(ctx context.Context) (int, error)
}

type serviceRepo struct {
	db Database
}

func NewServiceRepo(db Database) ServiceRepository {
	return &serviceRepo{db: db}
}

func (r *serviceRepo) Create(ctx context.Context, service *models.Service) error {
	query := `
		INSERT INTO services (id, name, category, description, available, rating, reviews_count, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, service.ID, service.Name, service.Category, service.Description,
		service.Available, service.Rating, service.ReviewsCount, service.Price)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

func (r *serviceRepo) List(ctx context.Context, filter ServiceFilter) ([]*models.Service, error) {
	query := `
		SELECT id, name, category, description, available, rating, reviews_count, price, created_at, updated_at
		FROM services
		WHERE 1=1
	`
	args := []any{}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.Available != nil {
		args = append(args, *filter.Available)
		query += fmt.Sprintf(" AND available = $%d", len(args))
	}
	query += " ORDER BY created_at ASC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []*models.Service
	for rows.Next() {
		service := &models.Service{}
		if err := rows.Scan(&service.ID, &service.Name, &service.Category, &service.Description,
			&service.Available, &service.Rating, &service.ReviewsCount, &service.Price,
			&service.CreatedAt, &service.UpdatedAt); err != nil {
			return nil, err
		}
		services = append(services, service)
	}
	return services, rows.Err()
}

func (r *serviceRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM services`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
