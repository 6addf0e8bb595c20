package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/agniveshadhikari/slinky/internal/redirect/domain/model"
	"github.com/agniveshadhikari/slinky/internal/redirect/usecase"
	"github.com/agniveshadhikari/slinky/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// Mock repository
type mockRedirectRepository struct {
	mock.Mock
}

func (m *mockRedirectRepository) Create(ctx context.Context, redirect *model.Redirect) error {
	args := m.Called(ctx, redirect)
	return args.Error(0)
}

func (m *mockRedirectRepository) GetByPath(ctx context.Context, path string) (*model.Redirect, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Redirect), args.Error(1)
}

func (m *mockRedirectRepository) Delete(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

func (m *mockRedirectRepository) ListByOwner(ctx context.Context, ownerID string) ([]*model.Redirect, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Redirect), args.Error(1)
}

type RedirectUsecaseTestSuite struct {
	suite.Suite
	mockRepo *mockRedirectRepository
	usecase  *usecase.RedirectUsecase
}

func (suite *RedirectUsecaseTestSuite) SetupTest() {
	suite.mockRepo = &mockRedirectRepository{}
	suite.usecase = usecase.NewRedirectUsecase(suite.mockRepo, logger.NewLogger())
}

func (suite *RedirectUsecaseTestSuite) TestResolveActive_Hit() {
	ctx := context.Background()
	suite.mockRepo.On("GetByPath", ctx, "docs").Return(&model.Redirect{
		Path:      "docs",
		TargetURL: "https://docs.example.com",
		Active:    true,
	}, nil)

	target, err := suite.usecase.ResolveActive(ctx, "docs")

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "https://docs.example.com", target)
}

func (suite *RedirectUsecaseTestSuite) TestResolveActive_UnknownPath() {
	ctx := context.Background()
	suite.mockRepo.On("GetByPath", ctx, "nope").Return(nil, usecase.ErrRedirectNotFound)

	target, err := suite.usecase.ResolveActive(ctx, "nope")

	// A miss is not an error; the handler renders a friendly page.
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), target)
}

func (suite *RedirectUsecaseTestSuite) TestResolveActive_InactiveRecord() {
	ctx := context.Background()
	suite.mockRepo.On("GetByPath", ctx, "paused").Return(&model.Redirect{
		Path:      "paused",
		TargetURL: "https://old.example.com",
		Active:    false,
	}, nil)

	target, err := suite.usecase.ResolveActive(ctx, "paused")

	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), target)
}

func (suite *RedirectUsecaseTestSuite) TestResolveActive_StorageErrorPropagates() {
	ctx := context.Background()
	suite.mockRepo.On("GetByPath", ctx, "docs").Return(nil, errors.New("connection reset"))

	target, err := suite.usecase.ResolveActive(ctx, "docs")

	assert.Error(suite.T(), err)
	assert.Empty(suite.T(), target)
}

func (suite *RedirectUsecaseTestSuite) TestCreate_Success() {
	ctx := context.Background()
	suite.mockRepo.On("Create", ctx, mock.MatchedBy(func(r *model.Redirect) bool {
		return r.Path == "docs" && r.TargetURL == "https://docs.example.com" &&
			r.OwnerID == "user-123" && r.Active
	})).Return(nil)

	redirect, err := suite.usecase.Create(ctx, "docs", "https://docs.example.com", "user-123")

	require.NoError(suite.T(), err)
	assert.True(suite.T(), redirect.Active)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RedirectUsecaseTestSuite) TestCreate_NormalizesPath() {
	ctx := context.Background()
	suite.mockRepo.On("Create", ctx, mock.MatchedBy(func(r *model.Redirect) bool {
		return r.Path == "docs"
	})).Return(nil)

	_, err := suite.usecase.Create(ctx, " /docs/ ", "https://docs.example.com", "user-123")

	require.NoError(suite.T(), err)
}

func (suite *RedirectUsecaseTestSuite) TestCreate_DuplicatePath() {
	ctx := context.Background()
	suite.mockRepo.On("Create", ctx, mock.Anything).Return(usecase.ErrDuplicatePath)

	redirect, err := suite.usecase.Create(ctx, "docs", "https://docs.example.com", "user-123")

	assert.ErrorIs(suite.T(), err, usecase.ErrDuplicatePath)
	assert.Nil(suite.T(), redirect)
}

func (suite *RedirectUsecaseTestSuite) TestCreate_ValidationErrors() {
	ctx := context.Background()

	_, err := suite.usecase.Create(ctx, "", "https://docs.example.com", "user-123")
	assert.ErrorIs(suite.T(), err, usecase.ErrPathRequired)

	_, err = suite.usecase.Create(ctx, "docs", "", "user-123")
	assert.ErrorIs(suite.T(), err, usecase.ErrTargetRequired)

	_, err = suite.usecase.Create(ctx, "docs", "not a url", "user-123")
	assert.ErrorIs(suite.T(), err, usecase.ErrInvalidTarget)

	suite.mockRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *RedirectUsecaseTestSuite) TestDelete_Idempotent() {
	ctx := context.Background()
	suite.mockRepo.On("Delete", ctx, "docs").Return(nil).Twice()

	require.NoError(suite.T(), suite.usecase.Delete(ctx, "docs"))
	require.NoError(suite.T(), suite.usecase.Delete(ctx, "docs"))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RedirectUsecaseTestSuite) TestDelete_EmptyPath() {
	err := suite.usecase.Delete(context.Background(), "")

	assert.ErrorIs(suite.T(), err, usecase.ErrPathRequired)
	suite.mockRepo.AssertNotCalled(suite.T(), "Delete", mock.Anything, mock.Anything)
}

func (suite *RedirectUsecaseTestSuite) TestListByOwner() {
	ctx := context.Background()
	redirects := []*model.Redirect{
		{Path: "docs", TargetURL: "https://docs.example.com", OwnerID: "user-123"},
		{Path: "blog", TargetURL: "https://blog.example.com", OwnerID: "user-123"},
	}
	suite.mockRepo.On("ListByOwner", ctx, "user-123").Return(redirects, nil)

	got, err := suite.usecase.ListByOwner(ctx, "user-123")

	require.NoError(suite.T(), err)
	assert.Len(suite.T(), got, 2)
}

func TestRedirectUsecaseTestSuite(t *testing.T) {
	suite.Run(t, new(RedirectUsecaseTestSuite))
}
