package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/vigiamar/operaciones-api/internal/constants"
	"github.com/vigiamar/operaciones-api/internal/dto"
	"github.com/vigiamar/operaciones-api/internal/repository"
	"github.com/vigiamar/operaciones-api/internal/services"
)

func setupAuthTest(t *testing.T) (*AuthHandler, *services.AuthService) {
	t.Helper()

	env := setupTestEnv(t)
	authService := services.NewAuthService(repository.NewUserRepository(env.db))
	return NewAuthHandler(authService), authService
}

func authRouter(handler *AuthHandler) *gin.Engine {
	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions("operaciones_session", store))
	r.POST("/api/auth/signup", handler.Signup)
	r.POST("/api/auth/login", handler.Login)
	return r
}

func TestAuthHandler_Signup(t *testing.T) {
	handler, _ := setupAuthTest(t)
	r := authRouter(handler)

	payload := map[string]string{
		"nombre":   "Maria Perez",
		"email":    "maria@vigiamar.test",
		"password": "supersecret",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, payload["nombre"], response.Nombre)
	require.Equal(t, "tecnico", response.Rol)
}

func TestAuthHandler_Signup_ShortPassword(t *testing.T) {
	handler, _ := setupAuthTest(t)
	r := authRouter(handler)

	body, err := json.Marshal(map[string]string{
		"nombre":   "Maria Perez",
		"email":    "maria@vigiamar.test",
		"password": "corta",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	handler, authService := setupAuthTest(t)

	_, err := authService.Signup(services.SignupInput{
		Name:     "Maria Perez",
		Email:    "maria@vigiamar.test",
		Password: "supersecret",
	})
	require.NoError(t, err)

	r := authRouter(handler)

	body, err := json.Marshal(map[string]string{
		"email":    "MARIA@vigiamar.test",
		"password": "supersecret",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "expected session cookie to be set")
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	handler, authService := setupAuthTest(t)

	_, err := authService.Signup(services.SignupInput{
		Name:     "Maria Perez",
		Email:    "maria@vigiamar.test",
		Password: "supersecret",
	})
	require.NoError(t, err)

	r := authRouter(handler)

	body, err := json.Marshal(map[string]string{
		"email":    "maria@vigiamar.test",
		"password": "otracosa",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_GetCurrentUser(t *testing.T) {
	handler, authService := setupAuthTest(t)

	user, err := authService.Signup(services.SignupInput{
		Name:     "Maria Perez",
		Email:    "maria@vigiamar.test",
		Password: "supersecret",
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(constants.ContextKeyUserID, user.ID)

	handler.GetCurrentUser(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, user.Name, response.Nombre)
}
