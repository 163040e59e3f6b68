// Package integration provides integration testing for the caixa backend API.
// This file tests the full authentication flow against a real database.
package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	identityapp "github.com/caixa/backend/internal/application/identity"
	"github.com/caixa/backend/internal/infrastructure/auth"
	"github.com/caixa/backend/internal/infrastructure/config"
	"github.com/caixa/backend/internal/infrastructure/persistence"
	"github.com/caixa/backend/internal/interfaces/http/handler"
	"github.com/caixa/backend/internal/interfaces/http/middleware"
	"github.com/caixa/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// AuthTestServer wires the auth stack with a real database, real JWT
// signing and an in-memory token blacklist.
type AuthTestServer struct {
	DB        *TestDB
	Engine    *gin.Engine
	Blacklist auth.TokenBlacklist
}

func NewAuthTestServer(t *testing.T) *AuthTestServer {
	t.Helper()

	gin.SetMode(gin.TestMode)
	testDB := NewTestDB(t)

	userRepo := persistence.NewGormUserRepository(testDB.DB)
	storeRepo := persistence.NewGormStoreRepository(testDB.DB)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "integration-test-secret-key-0001",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "caixa-test",
	})
	blacklist := auth.NewInMemoryTokenBlacklist()

	authService := identityapp.NewAuthService(
		userRepo, storeRepo, jwtService, blacklist,
		identityapp.DefaultAuthServiceConfig(), zap.NewNop(),
	)
	authHandler := handler.NewAuthHandler(authService)

	engine := gin.New()
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths: []string{
			"/api/v1/auth/login",
			"/api/v1/auth/register",
			"/api/v1/auth/refresh",
		},
	}))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.RefreshToken)
	authRoutes.POST("/logout", authHandler.Logout)
	authRoutes.GET("/me", authHandler.GetCurrentUser)
	authRoutes.PUT("/password", authHandler.ChangePassword)
	r.Register(authRoutes)
	r.Setup()

	return &AuthTestServer{
		DB:        testDB,
		Engine:    engine,
		Blacklist: blacklist,
	}
}

// Request makes an HTTP request, optionally with a bearer token
func (ts *AuthTestServer) Request(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBody)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	ts.Engine.ServeHTTP(w, req)
	return w
}

func TestAuthFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ts := NewAuthTestServer(t)

	const email = "dona.maria@example.com"
	const password = "senha-forte-123"

	t.Run("Register creates store and first user", func(t *testing.T) {
		w := ts.Request(http.MethodPost, "/api/v1/auth/register", map[string]interface{}{
			"store_name": "Mercearia da Maria",
			"user_name":  "Maria",
			"email":      email,
			"password":   password,
		}, "")

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		resp := parseResponse(t, w)
		require.True(t, resp.Success)

		data := resp.Data.(map[string]interface{})
		assert.NotEmpty(t, data["store_id"])

		user := data["user"].(map[string]interface{})
		assert.Equal(t, email, user["email"])
		assert.Equal(t, "Maria", user["name"])
	})

	t.Run("Register rejects duplicate email", func(t *testing.T) {
		w := ts.Request(http.MethodPost, "/api/v1/auth/register", map[string]interface{}{
			"store_name": "Outra loja",
			"user_name":  "Maria",
			"email":      email,
			"password":   password,
		}, "")

		assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	var accessToken, refreshToken string

	t.Run("Login returns token pair", func(t *testing.T) {
		w := ts.Request(http.MethodPost, "/api/v1/auth/login", map[string]interface{}{
			"email":    email,
			"password": password,
		}, "")

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := parseResponse(t, w)
		require.True(t, resp.Success)

		data := resp.Data.(map[string]interface{})
		token := data["token"].(map[string]interface{})
		accessToken = token["access_token"].(string)
		refreshToken = token["refresh_token"].(string)
		assert.NotEmpty(t, accessToken)
		assert.NotEmpty(t, refreshToken)
		assert.Equal(t, "Bearer", token["token_type"])
	})

	t.Run("Login rejects wrong password", func(t *testing.T) {
		w := ts.Request(http.MethodPost, "/api/v1/auth/login", map[string]interface{}{
			"email":    email,
			"password": "senha-errada-999",
		}, "")

		assert.Equal(t, http.StatusUnauthorized, w.Code, w.Body.String())
	})

	t.Run("Me requires token", func(t *testing.T) {
		w := ts.Request(http.MethodGet, "/api/v1/auth/me", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Me returns current user", func(t *testing.T) {
		require.NotEmpty(t, accessToken)

		w := ts.Request(http.MethodGet, "/api/v1/auth/me", nil, accessToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := parseResponse(t, w)
		data := resp.Data.(map[string]interface{})
		user := data["user"].(map[string]interface{})
		assert.Equal(t, email, user["email"])
	})

	t.Run("Refresh issues a new token pair", func(t *testing.T) {
		require.NotEmpty(t, refreshToken)

		w := ts.Request(http.MethodPost, "/api/v1/auth/refresh", map[string]interface{}{
			"refresh_token": refreshToken,
		}, "")

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := parseResponse(t, w)
		data := resp.Data.(map[string]interface{})
		token := data["token"].(map[string]interface{})
		assert.NotEmpty(t, token["access_token"])
	})

	t.Run("Logout revokes the access token", func(t *testing.T) {
		require.NotEmpty(t, accessToken)

		w := ts.Request(http.MethodPost, "/api/v1/auth/logout", nil, accessToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		// The blacklisted token no longer works
		w = ts.Request(http.MethodGet, "/api/v1/auth/me", nil, accessToken)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Change password and login with new one", func(t *testing.T) {
		// Fresh login since the old token was revoked
		w := ts.Request(http.MethodPost, "/api/v1/auth/login", map[string]interface{}{
			"email":    email,
			"password": password,
		}, "")
		require.Equal(t, http.StatusOK, w.Code)
		data := parseResponse(t, w).Data.(map[string]interface{})
		token := data["token"].(map[string]interface{})["access_token"].(string)

		const newPassword = "senha-nova-456"
		w = ts.Request(http.MethodPut, "/api/v1/auth/password", map[string]interface{}{
			"old_password": password,
			"new_password": newPassword,
		}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		// Old password no longer works
		w = ts.Request(http.MethodPost, "/api/v1/auth/login", map[string]interface{}{
			"email":    email,
			"password": password,
		}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		// New password does
		w = ts.Request(http.MethodPost, "/api/v1/auth/login", map[string]interface{}{
			"email":    email,
			"password": newPassword,
		}, "")
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})
}

func TestAuthAccountLock(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ts := NewAuthTestServer(t)

	const email = "seu.jose@example.com"
	const password = "senha-forte-123"

	w := ts.Request(http.MethodPost, "/api/v1/auth/register", map[string]interface{}{
		"store_name": "Bar do Zé",
		"user_name":  "José",
		"email":      email,
		"password":   password,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Burn through the failed attempt budget
	for i := 0; i < 5; i++ {
		w = ts.Request(http.MethodPost, "/api/v1/auth/login", map[string]interface{}{
			"email":    email,
			"password": "senha-errada-000",
		}, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	}

	// Even the right password is refused while the account is locked
	w = ts.Request(http.MethodPost, "/api/v1/auth/login", map[string]interface{}{
		"email":    email,
		"password": password,
	}, "")
	assert.NotEqual(t, http.StatusOK, w.Code, w.Body.String())
}
