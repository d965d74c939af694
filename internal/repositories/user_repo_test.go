package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"servicefinder/internal/models"
)

type UserRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    UserRepository
	context context.Context
}

func (suite *UserRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewUserRepo(mock)
	suite.context = context.Background()
}

func (suite *UserRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestUserRepoTestSuite(t *testing.T) {
	suite.Run(t, new(UserRepoTestSuite))
}

func (suite *UserRepoTestSuite) TestCreate_Success() {
	user := &models.User{
		ID:           uuid.New(),
		Email:        "a@x.com",
		PasswordHash: "$2a$12$hash",
		FullName:     "A",
		Phone:        "+1",
		Active:       true,
	}

	suite.mock.ExpectExec(`INSERT INTO users`).
		WithArgs(user.ID, user.Email, user.PasswordHash, user.FullName, user.Phone, user.Active).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, user)
	assert.NoError(suite.T(), err)
}

func (suite *UserRepoTestSuite) TestCreate_UniqueViolation() {
	user := &models.User{
		ID:           uuid.New(),
		Email:        "a@x.com",
		PasswordHash: "$2a$12$hash",
		FullName:     "A",
		Phone:        "+1",
		Active:       true,
	}

	suite.mock.ExpectExec(`INSERT INTO users`).
		WithArgs(user.ID, user.Email, user.PasswordHash, user.FullName, user.Phone, user.Active).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err := suite.repo.Create(suite.context, user)
	assert.ErrorIs(suite.T(), err, ErrDuplicateUser)
}

func (suite *UserRepoTestSuite) TestGetByEmail_Found() {
	id := uuid.New()
	now := time.Now()

	rows := pgxmock.NewRows([]string{"id", "email", "password_hash", "full_name", "phone", "active", "created_at", "updated_at"}).
		AddRow(id, "a@x.com", "$2a$12$hash", "A", "+1", true, now, now)

	suite.mock.ExpectQuery(`SELECT id, email, password_hash, full_name, phone, active, created_at, updated_at`).
		WithArgs("a@x.com").
		WillReturnRows(rows)

	user, err := suite.repo.GetByEmail(suite.context, "a@x.com")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), id, user.ID)
	assert.Equal(suite.T(), "a@x.com", user.Email)
	assert.Equal(suite.T(), "$2a$12$hash", user.PasswordHash)
	assert.True(suite.T(), user.Active)
}

func (suite *UserRepoTestSuite) TestGetByEmail_NotFound() {
	suite.mock.ExpectQuery(`SELECT id, email, password_hash, full_name, phone, active, created_at, updated_at`).
		WithArgs("absent@x.com").
		WillReturnError(pgx.ErrNoRows)

	user, err := suite.repo.GetByEmail(suite.context, "absent@x.com")
	assert.ErrorIs(suite.T(), err, ErrUserNotFound)
	assert.Nil(suite.T(), user)
}

func (suite *UserRepoTestSuite) TestCount() {
	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))

	count, err := suite.repo.Count(suite.context)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 3, count)
}
