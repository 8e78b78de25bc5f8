package routes

import (
	"letter-routing-api/controllers"
	"letter-routing-api/middleware"
	"letter-routing-api/models"
	"letter-routing-api/services"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			public.POST("/login", controllers.Login)
			public.POST("/password-reset/request", controllers.ForgotPassword)
			public.POST("/password-reset/confirm", controllers.ResetPassword)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Letter Routing API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.POST("/logout", controllers.Logout)
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Departments are readable by every authenticated role.
			protected.GET("/departments", controllers.GetDepartments)

			// User management (record office only)
			users := protected.Group("/users")
			users.Use(middleware.RequireRole(models.RoleRecordOffice))
			{
				users.GET("", controllers.GetUsers)
				users.POST("", controllers.CreateUser)
				users.GET("/:id", controllers.GetUser)
				users.PUT("/:id", controllers.UpdateUser)
				users.DELETE("/:id", controllers.DeleteUser)
				users.PATCH("/:id/suspend", controllers.SuspendUser)
				users.PATCH("/:id/activate", controllers.ActivateUser)
			}

			// Letters: the role gate for each action runs before the
			// handler so a wrong-role caller never observes letter state.
			letters := protected.Group("/letters")
			{
				letters.GET("/inbox", controllers.ListInbox)
				letters.GET("/sent", controllers.ListSent)
				letters.GET("/:id/document", controllers.DownloadDocument)

				// Role eligibility per action comes from the
				// authorization table, so routes and service agree.
				letters.POST("", middleware.RequireRole(services.AllowedRoles(services.ActionCreate)...), controllers.CreateLetter)
				letters.PATCH("/:id/admin-review", middleware.RequireRole(services.AllowedRoles(services.ActionAdminReview)...), controllers.AdminReview)
				letters.PATCH("/:id/minister-decision", middleware.RequireRole(services.AllowedRoles(services.ActionMinisterDecision)...), controllers.MinisterDecision)
				letters.PATCH("/:id/forward", middleware.RequireRole(services.AllowedRoles(services.ActionForward)...), controllers.ForwardLetter)
			}

			// Dashboard
			protected.GET("/dashboard/stats", controllers.GetDashboardStats)
		}
	}
}
