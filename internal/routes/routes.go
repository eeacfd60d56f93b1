package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"societyportal/internal/authz"
	"societyportal/internal/handlers"
	"societyportal/internal/middleware"
	"societyportal/internal/services"
)

func SetupRoutes(
	r *gin.Engine,
	authService services.AuthService,
	userService services.UserService,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	verifyHandler *handlers.VerifyHandler,
	reportHandler *handlers.ReportHandler,
) *gin.Engine {

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "I am alive!")
	})

	api := r.Group("/api/users")
	{
		// ---- public
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.GET("/refresh", authHandler.Refresh)
		api.POST("/logout", authHandler.Logout)

		// ---- protected
		protected := api.Group("", middleware.AuthMiddleware(authService, userService))
		{
			protected.POST("/sendmail", verifyHandler.SendMail)
			protected.POST("/verifyotp", verifyHandler.VerifyOTP)
			protected.GET("/getUser", userHandler.GetUser)
		}
	}

	// REPORTS (admin only)
	reports := r.Group("/reports",
		middleware.AuthMiddleware(authService, userService),
		middleware.RequireRoles(authz.RoleAdmin),
	)
	{
		reports.GET("/members.pdf", reportHandler.MembersPDF)
	}

	return r
}
