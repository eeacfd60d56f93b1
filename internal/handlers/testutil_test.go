package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"societyportal/internal/middleware"
	"societyportal/internal/models"
	"societyportal/internal/repositories"
	"societyportal/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeUserRepo is an in-memory repositories.UserRepository with the same
// uniqueness rules as the Postgres schema.
type fakeUserRepo struct {
	nextID int
	byID   map[int]*models.User
}

var _ repositories.UserRepository = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, byID: map[int]*models.User{}}
}

func (r *fakeUserRepo) Create(user *models.User) error {
	for _, u := range r.byID {
		if u.Username == user.Username {
			return repositories.ErrDuplicateUsername
		}
		if user.Email != nil && u.Email != nil && *u.Email == *user.Email {
			return repositories.ErrDuplicateEmail
		}
	}
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	r.byID[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id int) (*models.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByUsername(username string) (*models.User, error) {
	for _, u := range r.byID {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) UpdateEmail(id int, email string) (*models.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	for otherID, other := range r.byID {
		if otherID != id && other.Email != nil && *other.Email == email {
			return nil, repositories.ErrDuplicateEmail
		}
	}
	u.Email = &email
	u.UpdatedAt = time.Now()
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) List(limit, offset int) ([]*models.User, error) {
	var res []*models.User
	for id := 1; id < r.nextID && len(res) < limit; id++ {
		if u, ok := r.byID[id]; ok {
			cp := *u
			res = append(res, &cp)
		}
	}
	return res, nil
}

func (r *fakeUserRepo) GetCount() (int, error) { return len(r.byID), nil }

type fakeMailer struct {
	sendErr  error
	lastTo   string
	lastCode string
}

func (m *fakeMailer) SendOTPEmail(email, name, code string) error {
	m.lastTo = email
	m.lastCode = code
	return m.sendErr
}

// testServer wires real services over the in-memory repo, mirroring the
// production route table.
type testServer struct {
	router *gin.Engine
	repo   *fakeUserRepo
	mailer *fakeMailer
	auth   services.AuthService
	users  services.UserService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	repo := newFakeUserRepo()
	mailer := &fakeMailer{}
	auth := services.NewAuthService("test-secret", 15*time.Minute, 24*time.Hour)
	users := services.NewUserService(repo, auth, nil)
	otp := services.NewOTPService(services.NewMemoryPendingStore(), users, mailer, 15*time.Minute)

	authHandler := NewAuthHandler(users, auth)
	userHandler := NewUserHandler()
	verifyHandler := NewVerifyHandler(otp)

	router := gin.New()
	api := router.Group("/api/users")
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.GET("/refresh", authHandler.Refresh)
	api.POST("/logout", authHandler.Logout)

	protected := api.Group("", middleware.AuthMiddleware(auth, users))
	protected.POST("/sendmail", verifyHandler.SendMail)
	protected.POST("/verifyotp", verifyHandler.VerifyOTP)
	protected.GET("/getUser", userHandler.GetUser)

	return &testServer{router: router, repo: repo, mailer: mailer, auth: auth, users: users}
}

func (ts *testServer) do(t *testing.T, method, path string, body any, mutate ...func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, m := range mutate {
		m(req)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func withBearer(token string) func(*http.Request) {
	return func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func withCookie(name, value string) func(*http.Request) {
	return func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	return m
}

// register + login, returning the issued access token
func (ts *testServer) registerAndLogin(t *testing.T, name, username, password string) string {
	t.Helper()
	w := ts.do(t, http.MethodPost, "/api/users/register",
		gin.H{"name": name, "username": username, "password": password})
	require.Equal(t, http.StatusCreated, w.Code)

	w = ts.do(t, http.MethodPost, "/api/users/login",
		gin.H{"username": username, "password": password})
	require.Equal(t, http.StatusOK, w.Code)
	token, _ := decodeBody(t, w)["accessToken"].(string)
	require.NotEmpty(t, token)
	return token
}
