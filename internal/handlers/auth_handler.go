package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"societyportal/internal/models"
	"societyportal/internal/services"
)

type AuthHandler struct {
	userService services.UserService
	authService services.AuthService
}

func NewAuthHandler(userService services.UserService, authService services.AuthService) *AuthHandler {
	return &AuthHandler{userService: userService, authService: authService}
}

// @Summary      Register a new member
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        register  body      models.RegisterRequest  true  "Registration data"
// @Success      201       {object}  models.User
// @Failure      400       {object}  map[string]string
// @Failure      409       {object}  map[string]string
// @Router       /api/users/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}

	user, err := h.userService.Register(req.Name, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
			return
		}
		log.Printf("[auth][register] service error for %q: %v", req.Username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	log.Printf("[auth][register] created id=%d username=%q", user.ID, user.Username)
	c.JSON(http.StatusCreated, user)
}

// @Summary      Log in
// @Description  Authenticates a member and issues session tokens. The refresh
// @Description  token is set as an HTTP-only cookie; the access token comes
// @Description  back in the body (and is mirrored as a cookie for the SPA).
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      models.LoginRequest  true  "Credentials"
// @Success      200    {object}  map[string]string
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Router       /api/users/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}
		log.Printf("[auth][login] service error for %q: %v", req.Username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	accessToken, err := h.authService.NewAccessToken(user)
	if err != nil {
		log.Printf("[auth][login] sign access token failed for id=%d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate access token"})
		return
	}
	refreshToken, err := h.authService.NewRefreshToken(user)
	if err != nil {
		log.Printf("[auth][login] sign refresh token failed for id=%d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate refresh token"})
		return
	}

	h.setSessionCookies(c, accessToken, refreshToken)

	log.Printf("[auth][login] success id=%d role=%s", user.ID, user.Role)
	c.JSON(http.StatusOK, gin.H{"accessToken": accessToken})
}

// @Summary      Refresh the access token
// @Description  Mints a new access token from the refreshToken cookie. The
// @Description  refresh token itself is not rotated.
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/users/refresh [get]
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie("refreshToken")
	if err != nil || refreshToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token not found"})
		return
	}

	claims, err := h.authService.ParseToken(refreshToken, services.TokenUseRefresh)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token"})
		return
	}

	// re-read the user so a role change since login is reflected
	user, err := h.userService.GetUserByID(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	accessToken, err := h.authService.NewAccessToken(user)
	if err != nil {
		log.Printf("[auth][refresh] sign access token failed for id=%d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate access token"})
		return
	}

	h.setAccessCookie(c, accessToken)

	c.JSON(http.StatusOK, gin.H{
		"accessToken": accessToken,
		"name":        user.Name,
		"username":    user.Username,
		"role":        user.Role,
	})
}

// @Summary      Log out
// @Description  Clears the session cookies. Stateless and idempotent.
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/users/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("accessToken", "", -1, "/", "", false, true)
	c.SetCookie("refreshToken", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *AuthHandler) setSessionCookies(c *gin.Context, accessToken, refreshToken string) {
	h.setAccessCookie(c, accessToken)
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("refreshToken", refreshToken, int(h.authService.RefreshTTL().Seconds()), "/", "", false, true)
}

func (h *AuthHandler) setAccessCookie(c *gin.Context, accessToken string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("accessToken", accessToken, int(h.authService.AccessTTL().Seconds()), "/", "", false, true)
}
