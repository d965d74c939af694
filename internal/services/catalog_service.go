package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"servicefinder/internal/caching"
	"servicefinder/internal/models"
	"servicefinder/internal/repositories"
)

// ErrInvalidService marks a create payload rejected by validation, as opposed
// to a persistence failure.
var ErrInvalidService = errors.New("invalid service")

// CreateServiceRequest is the payload for adding a catalog entry.
type CreateServiceRequest struct {
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Description  *string  `json:"description"`
	Available    *bool    `json:"available"`
	Rating       float64  `json:"rating"`
	ReviewsCount int      `json:"reviews_count"`
	Price        *float64 `json:"price"`
}

// CatalogService is the pass-through CRUD layer over the service catalog, with
// a read-through cache on listings.
type CatalogService interface {
	List(ctx context.Context, filter repositories.ServiceFilter) ([]*models.Service, error)
	Create(ctx context.Context, req *CreateServiceRequest) (*models.Service, error)
	Categories() []string
}

type catalogService struct {
	serviceRepo repositories.ServiceRepository
	cacheSvc    caching.CacheService
}

func NewCatalogService(serviceRepo repositories.ServiceRepository, cacheSvc caching.CacheService) CatalogService {
	return &catalogService{
		serviceRepo: serviceRepo,
		cacheSvc:    cacheSvc,
	}
}

// List returns catalog entries matching filter, serving from the cache when a
// fresh listing is present. Cache failures degrade to a database read.
func (s *catalogService) List(ctx context.Context, filter repositories.ServiceFilter) ([]*models.Service, error) {
	key := caching.ListKey(filter.Category, filter.Available)

	cached, err := s.cacheSvc.GetServiceList(ctx, key)
	if err != nil {
		log.Printf("Service list cache read failed: %v", err)
	} else if cached != nil {
		return cached, nil
	}

	services, err := s.serviceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if err := s.cacheSvc.SetServiceList(ctx, key, services, caching.DefaultListTTL); err != nil {
		log.Printf("Service list cache write failed: %v", err)
	}
	return services, nil
}

// Create validates and persists a new catalog entry, then invalidates cached
// listings.
func (s *catalogService) Create(ctx context.Context, req *CreateServiceRequest) (*models.Service, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidService)
	}
	if !models.ValidServiceCategory(req.Category) {
		return nil, fmt.Errorf("%w: category must be one of: %s", ErrInvalidService, strings.Join(models.ServiceCategories, ", "))
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	service := &models.Service{
		ID:           uuid.New(),
		Name:         req.Name,
		Category:     req.Category,
		Description:  req.Description,
		Available:    available,
		Rating:       req.Rating,
		ReviewsCount: req.ReviewsCount,
		Price:        req.Price,
	}

	if err := s.serviceRepo.Create(ctx, service); err != nil {
		return nil, err
	}

	if err := s.cacheSvc.InvalidateServiceLists(ctx); err != nil {
		log.Printf("Service list cache invalidation failed: %v", err)
	}
	return service, nil
}

// Categories returns the fixed category enumeration.
func (s *catalogService) Categories() []string {
	return models.ServiceCategories
}
