package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"servicefinder/internal/models"
)

type ServiceRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    ServiceRepository
	context context.Context
}

func (suite *ServiceRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewServiceRepo(mock)
	suite.context = context.Background()
}

func (suite *ServiceRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestServiceRepoTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceRepoTestSuite))
}

func strPtr(s string) *string     { return &s }
func boolPtr(b bool) *bool        { return &b }
func floatPtr(f float64) *float64 { return &f }

func serviceRows(services ...*models.Service) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{"id", "name", "category", "description", "available", "rating", "reviews_count", "price", "created_at", "updated_at"})
	for _, s := range services {
		rows.AddRow(s.ID, s.Name, s.Category, s.Description, s.Available, s.Rating, s.ReviewsCount, s.Price, s.CreatedAt, s.UpdatedAt)
	}
	return rows
}

func (suite *ServiceRepoTestSuite) TestCreate_Success() {
	service := &models.Service{
		ID:          uuid.New(),
		Name:        "Plumbing Services",
		Category:    "plumbing",
		Description: strPtr("24/7 emergency plumbing"),
		Available:   true,
		Rating:      4.5,
		Price:       floatPtr(75.0),
	}

	suite.mock.ExpectExec(`INSERT INTO services`).
		WithArgs(service.ID, service.Name, service.Category, service.Description,
			service.Available, service.Rating, service.ReviewsCount, service.Price).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, service)
	assert.NoError(suite.T(), err)
}

func (suite *ServiceRepoTestSuite) TestList_NoFilter() {
	now := time.Now()
	stored := &models.Service{ID: uuid.New(), Name: "Plumbing Services", Category: "plumbing", Available: true, Rating: 4.5, CreatedAt: now, UpdatedAt: now}

	suite.mock.ExpectQuery(`SELECT id, name, category, description, available, rating, reviews_count, price`).
		WillReturnRows(serviceRows(stored))

	services, err := suite.repo.List(suite.context, ServiceFilter{})
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), services, 1)
	assert.Equal(suite.T(), "Plumbing Services", services[0].Name)
}

func (suite *ServiceRepoTestSuite) TestList_WithFilters() {
	now := time.Now()
	stored := &models.Service{ID: uuid.New(), Name: "Electrical Repairs", Category: "electrical", Available: false, Rating: 4.8, CreatedAt: now, UpdatedAt: now}

	suite.mock.ExpectQuery(`AND category = \$1 AND available = \$2`).
		WithArgs("electrical", false).
		WillReturnRows(serviceRows(stored))

	services, err := suite.repo.List(suite.context, ServiceFilter{Category: strPtr("electrical"), Available: boolPtr(false)})
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), services, 1)
	assert.Equal(suite.T(), "electrical", services[0].Category)
	assert.False(suite.T(), services[0].Available)
}

func (suite *ServiceRepoTestSuite) TestList_Empty() {
	suite.mock.ExpectQuery(`SELECT id, name, category, description, available, rating, reviews_count, price`).
		WillReturnRows(serviceRows())

	services, err := suite.repo.List(suite.context, ServiceFilter{})
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), services)
}

func (suite *ServiceRepoTestSuite) TestCount() {
	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM services`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))

	count, err := suite.repo.Count(suite.context)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2, count)
}
