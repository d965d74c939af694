package seed

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"servicefinder/internal/models"
	"servicefinder/internal/repositories"
	"servicefinder/internal/services"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

// Run inserts sample catalog rows and a test user when the corresponding
// tables are empty. Idempotence rests on the empty-table check only.
func Run(ctx context.Context, userRepo repositories.UserRepository, serviceRepo repositories.ServiceRepository, hasher *services.PasswordHasher) error {
	count, err := serviceRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count services: %w", err)
	}
	if count == 0 {
		samples := []*models.Service{
			{
				ID:          uuid.New(),
				Name:        "Plumbing Services",
				Category:    "plumbing",
				Description: strPtr("24/7 emergency plumbing"),
				Available:   true,
				Rating:      4.5,
				Price:       floatPtr(75.0),
			},
			{
				ID:        uuid.New(),
				Name:      "Electrical Repairs",
				Category:  "electrical",
				Available: false,
				Rating:    4.8,
				Price:     floatPtr(65.0),
			},
		}
		for _, s := range samples {
			if err := serviceRepo.Create(ctx, s); err != nil {
				return fmt.Errorf("failed to seed service %s: %w", s.Name, err)
			}
		}
		log.Printf("Seeded %d sample services", len(samples))
	}

	count, err = userRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count == 0 {
		hash, err := hasher.Hash("password123")
		if err != nil {
			return fmt.Errorf("failed to hash test user password: %w", err)
		}
		user := &models.User{
			ID:           uuid.New(),
			Email:        "test@example.com",
			PasswordHash: hash,
			FullName:     "Test User",
			Phone:        "+1234567890",
			Active:       true,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return fmt.Errorf("failed to seed test user: %w", err)
		}
		log.Printf("Seeded test user %s", user.Email)
	}

	return nil
}
