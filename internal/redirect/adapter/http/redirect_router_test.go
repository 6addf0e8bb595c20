package http_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	authhttp "github.com/agniveshadhikari/slinky/internal/auth/adapter/http"
	"github.com/agniveshadhikari/slinky/internal/auth/config"
	authmodel "github.com/agniveshadhikari/slinky/internal/auth/domain/model"
	authusecase "github.com/agniveshadhikari/slinky/internal/auth/usecase"
	redirecthttp "github.com/agniveshadhikari/slinky/internal/redirect/adapter/http"
	"github.com/agniveshadhikari/slinky/internal/redirect/domain/model"
	"github.com/agniveshadhikari/slinky/internal/redirect/usecase"
	"github.com/agniveshadhikari/slinky/internal/shared/logger"
	"github.com/agniveshadhikari/slinky/web"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// Mock redirect usecase
type mockRedirectUsecase struct {
	mock.Mock
}

func (m *mockRedirectUsecase) ResolveActive(ctx context.Context, path string) (string, error) {
	args := m.Called(ctx, path)
	return args.String(0), args.Error(1)
}

func (m *mockRedirectUsecase) Create(ctx context.Context, path, targetURL, ownerID string) (*model.Redirect, error) {
	args := m.Called(ctx, path, targetURL, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Redirect), args.Error(1)
}

func (m *mockRedirectUsecase) Delete(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

func (m *mockRedirectUsecase) ListByOwner(ctx context.Context, ownerID string) ([]*model.Redirect, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Redirect), args.Error(1)
}

var _ usecase.RedirectUsecaseInterface = (*mockRedirectUsecase)(nil)

// Minimal auth usecase stub: WithUser only needs ResolveSession.
type stubAuthUsecase struct {
	users map[string]*authmodel.User
}

func (s *stubAuthUsecase) Authenticate(ctx context.Context, username, password string) (*authmodel.User, error) {
	return nil, authusecase.ErrInvalidCredentials
}

func (s *stubAuthUsecase) CreateSession(ctx context.Context, userID string, persist bool) (string, time.Time, error) {
	return "", time.Time{}, nil
}

func (s *stubAuthUsecase) ResolveSession(ctx context.Context, token string) *authmodel.User {
	return s.users[token]
}

func (s *stubAuthUsecase) InvalidateSession(ctx context.Context, token string) error { return nil }

func (s *stubAuthUsecase) CreateUser(ctx context.Context, username, role string) (*authmodel.User, error) {
	return nil, authusecase.ErrUsernameTaken
}

func (s *stubAuthUsecase) UpdatePassword(ctx context.Context, userID, password string) error {
	return nil
}

func (s *stubAuthUsecase) GetUserByID(ctx context.Context, userID string) (*authmodel.User, error) {
	return nil, authusecase.ErrUserNotFound
}

var _ authusecase.AuthUsecaseInterface = (*stubAuthUsecase)(nil)

type RedirectHTTPTestSuite struct {
	suite.Suite
	app         *fiber.App
	mockUsecase *mockRedirectUsecase
	config      *config.Config
	user        *authmodel.User
}

func (suite *RedirectHTTPTestSuite) SetupTest() {
	suite.mockUsecase = &mockRedirectUsecase{}
	suite.config = &config.Config{
		BaseURL:        "links.example.com",
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	}
	suite.user = &authmodel.User{ID: "user-123", Username: "alice", Role: authmodel.RoleUser}

	auth := &stubAuthUsecase{users: map[string]*authmodel.User{"user-token": suite.user}}
	middleware := authhttp.NewAuthMiddleware(auth, suite.config.SessionCookieName())

	suite.app = fiber.New(fiber.Config{Views: web.NewEngine()})
	suite.app.Use(middleware.WithUser())

	handler := redirecthttp.NewRedirectHTTPHandler(suite.mockUsecase, suite.config, logger.NewLogger())
	handler.SetupManagementRoutes(suite.app, middleware)
	handler.SetupCatchAllRoute(suite.app)
}

func (suite *RedirectHTTPTestSuite) authenticatedForm(body string) *http.Request {
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: suite.config.SessionCookieName(), Value: "user-token"})
	return req
}

func (suite *RedirectHTTPTestSuite) TestFollow_ActivePathRedirects() {
	suite.mockUsecase.On("ResolveActive", mock.Anything, "docs").
		Return("https://docs.example.com", nil)

	resp, err := suite.app.Test(httptest.NewRequest("GET", "/docs", nil))

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusFound, resp.StatusCode)
	assert.Equal(suite.T(), "https://docs.example.com", resp.Header.Get("Location"))
}

func (suite *RedirectHTTPTestSuite) TestFollow_MissAnswersOops() {
	suite.mockUsecase.On("ResolveActive", mock.Anything, "nope").Return("", nil)

	resp, err := suite.app.Test(httptest.NewRequest("GET", "/nope", nil))

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Oops!", string(body))
}

func (suite *RedirectHTTPTestSuite) TestFollow_StorageErrorFallsBackToBaseURL() {
	suite.mockUsecase.On("ResolveActive", mock.Anything, "docs").
		Return("", assert.AnError)

	resp, err := suite.app.Test(httptest.NewRequest("GET", "/docs", nil))

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusFound, resp.StatusCode)
	assert.Equal(suite.T(), "https://links.example.com", resp.Header.Get("Location"))
}

func (suite *RedirectHTTPTestSuite) TestFavicon_EmptyBody() {
	resp, err := suite.app.Test(httptest.NewRequest("GET", "/favicon.ico", nil))

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), body)
	suite.mockUsecase.AssertNotCalled(suite.T(), "ResolveActive", mock.Anything, mock.Anything)
}

func (suite *RedirectHTTPTestSuite) TestManagePage_AnonymousRedirectsToLogin() {
	resp, err := suite.app.Test(httptest.NewRequest("GET", "/", nil))

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusFound, resp.StatusCode)
	assert.Equal(suite.T(), "/login", resp.Header.Get("Location"))
}

func (suite *RedirectHTTPTestSuite) TestManagePage_ListsOwnRedirects() {
	suite.mockUsecase.On("ListByOwner", mock.Anything, "user-123").Return([]*model.Redirect{
		{Path: "docs", TargetURL: "https://docs.example.com", OwnerID: "user-123", Active: true},
	}, nil)

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: suite.config.SessionCookieName(), Value: "user-token"})

	resp, err := suite.app.Test(req)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(suite.T(), err)
	assert.Contains(suite.T(), string(body), "docs")
}

func (suite *RedirectHTTPTestSuite) TestAction_Create() {
	suite.mockUsecase.On("Create", mock.Anything, "docs", "https://docs.example.com", "user-123").
		Return(&model.Redirect{Path: "docs", TargetURL: "https://docs.example.com"}, nil)
	suite.mockUsecase.On("ListByOwner", mock.Anything, "user-123").
		Return([]*model.Redirect{}, nil)

	resp, err := suite.app.Test(suite.authenticatedForm("action=create&path=docs&target=https%3A%2F%2Fdocs.example.com"))

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
	suite.mockUsecase.AssertExpectations(suite.T())
}

func (suite *RedirectHTTPTestSuite) TestAction_CreateDuplicatePath() {
	suite.mockUsecase.On("Create", mock.Anything, "docs", "https://docs.example.com", "user-123").
		Return(nil, usecase.ErrDuplicatePath)

	resp, err := suite.app.Test(suite.authenticatedForm("action=create&path=docs&target=https%3A%2F%2Fdocs.example.com"))

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusConflict, resp.StatusCode)
}

func (suite *RedirectHTTPTestSuite) TestAction_Delete() {
	suite.mockUsecase.On("Delete", mock.Anything, "docs").Return(nil)
	suite.mockUsecase.On("ListByOwner", mock.Anything, "user-123").
		Return([]*model.Redirect{}, nil)

	resp, err := suite.app.Test(suite.authenticatedForm("action=delete&path=docs"))

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
	suite.mockUsecase.AssertExpectations(suite.T())
}

func (suite *RedirectHTTPTestSuite) TestAction_DeleteEmptyPath() {
	resp, err := suite.app.Test(suite.authenticatedForm("action=delete&path="))

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusBadRequest, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Can't delete empty path", string(body))
	suite.mockUsecase.AssertNotCalled(suite.T(), "Delete", mock.Anything, mock.Anything)
}

func (suite *RedirectHTTPTestSuite) TestAction_InvalidAction() {
	resp, err := suite.app.Test(suite.authenticatedForm("action=bogus"))

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusBadRequest, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Invalid action bogus", string(body))
}

func (suite *RedirectHTTPTestSuite) TestAction_AnonymousRedirectsToLogin() {
	req := httptest.NewRequest("POST", "/", strings.NewReader("action=create&path=docs&target=https%3A%2F%2Fdocs.example.com"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := suite.app.Test(req)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusFound, resp.StatusCode)
	assert.Equal(suite.T(), "/login", resp.Header.Get("Location"))
	suite.mockUsecase.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRedirectHTTPTestSuite(t *testing.T) {
	suite.Run(t, new(RedirectHTTPTestSuite))
}
