package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"societyportal/internal/authz"
	"societyportal/internal/middleware"
	"societyportal/internal/models"
	"societyportal/internal/pdf"
	"societyportal/internal/services"
)

func newReportRouter(t *testing.T) (*gin.Engine, *fakeUserRepo, services.AuthService) {
	t.Helper()

	repo := newFakeUserRepo()
	auth := services.NewAuthService("test-secret", 15*time.Minute, 24*time.Hour)
	users := services.NewUserService(repo, auth, nil)
	reports := services.NewReportService(users, pdf.NewRosterGenerator(t.TempDir()))

	router := gin.New()
	grp := router.Group("/reports",
		middleware.AuthMiddleware(auth, users),
		middleware.RequireRoles(authz.RoleAdmin),
	)
	grp.GET("/members.pdf", NewReportHandler(reports).MembersPDF)
	return router, repo, auth
}

func seedUser(t *testing.T, repo *fakeUserRepo, username, role string) *models.User {
	t.Helper()
	u := &models.User{Name: username, Username: username, PasswordHash: "x", Role: role}
	require.NoError(t, repo.Create(u))
	return u
}

func TestMembersPDFRequiresAdmin(t *testing.T) {
	router, repo, auth := newReportRouter(t)
	student := seedUser(t, repo, "alice1", authz.RoleStudent)

	token, err := auth.NewAccessToken(student)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/reports/members.pdf", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// no token at all
	req = httptest.NewRequest(http.MethodGet, "/reports/members.pdf", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMembersPDFGeneratesRoster(t *testing.T) {
	router, repo, auth := newReportRouter(t)
	seedUser(t, repo, "alice1", authz.RoleStudent)
	seedUser(t, repo, "bob1", authz.RoleCoreMember)
	admin := seedUser(t, repo, "root", authz.RoleAdmin)

	token, err := auth.NewAccessToken(admin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/reports/members.pdf", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".pdf")
	assert.True(t, len(w.Body.Bytes()) > 0)
	assert.Equal(t, "%PDF", string(w.Body.Bytes()[:4]))
}
