package routes

import (
	"messmate-api/handlers"
	"messmate-api/middleware"
	"messmate-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)

		// Menu catalogue
		public.GET("/menu/items", handlers.ListMenuItems)
		public.GET("/menu/items/:id", handlers.GetMenuItem)
		public.GET("/menu/items/meal-type/:mealType", handlers.GetMenuItemsByMealType)
		public.GET("/menu/items/category/:category", handlers.GetMenuItemsByCategory)
		public.GET("/menu/items/vegetarian", handlers.GetVegetarianMenuItems)
		public.GET("/menu/items/search", handlers.SearchMenuItems)

		// Daily menus
		public.GET("/menu/daily", handlers.ListDailyMenus)
		public.GET("/menu/daily/:id", handlers.GetDailyMenu)
		public.GET("/menu/daily/today", handlers.GetTodaysMenu)
		public.GET("/menu/daily/today/:mealType", handlers.GetTodaysMenuByMealType)
		public.GET("/menu/daily/date/:date", handlers.GetMenuByDate)
		public.GET("/menu/daily/weekly", handlers.GetWeeklyMenu)

		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)
		auth.POST("/auth/change-password", handlers.ChangePassword)

		auth.POST("/menu/book", handlers.BookMeal)

		auth.POST("/orders", handlers.PlaceOrder)
		auth.GET("/orders/my", handlers.GetMyOrders)
		auth.GET("/orders/:id", handlers.GetOrderDetail)
		auth.PUT("/orders/:id/cancel", handlers.CancelOrder)

		auth.POST("/feedback", handlers.SubmitFeedback)
		auth.GET("/feedback/my", handlers.GetMyFeedback)
	}

	// ── Staff routes (admins included) ─────────────────────────────
	staff := r.Group("/api")
	staff.Use(middleware.AuthRequired(), middleware.RoleRequired(models.UserStaff, models.UserAdmin))
	{
		// Menu management
		staff.POST("/menu/items", handlers.CreateMenuItem)
		staff.PUT("/menu/items/:id", handlers.UpdateMenuItem)
		staff.DELETE("/menu/items/:id", handlers.DeleteMenuItem)
		staff.POST("/menu/daily", handlers.CreateDailyMenu)
		staff.PUT("/menu/daily/:id", handlers.UpdateDailyMenu)
		staff.DELETE("/menu/daily/:id", handlers.DeleteDailyMenu)

		// Bookings
		staff.GET("/menu/bookings", handlers.ListBookings)
		staff.GET("/menu/bookings/stats", handlers.BookingStats)
		staff.GET("/menu/bookings/stats/:date", handlers.BookingStatsByDate)
		staff.PUT("/menu/bookings/:id/status", handlers.UpdateBookingStatus)

		// Orders
		staff.GET("/orders", handlers.ListOrders)
		staff.GET("/orders/today/:mealType", handlers.GetTodaysOrders)
		staff.PUT("/orders/:id/status", handlers.UpdateOrderStatus)

		// Feedback review
		staff.GET("/feedback", handlers.ListFeedback)
		staff.GET("/feedback/:id", handlers.GetFeedback)
		staff.POST("/feedback/:id/reply", handlers.ReplyToFeedback)
		staff.PUT("/feedback/:id/status", handlers.UpdateFeedbackStatus)
		staff.GET("/feedback/stats/pending-count", handlers.GetPendingFeedbackCount)
		staff.GET("/feedback/stats/recent/:days", handlers.GetRecentFeedback)
		staff.GET("/feedback/stats/ratings", handlers.GetRatingSummaries)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.UserAdmin))
	{
		admin.DELETE("/menu/bookings", handlers.ClearBookings)
		admin.DELETE("/feedback/:id", handlers.DeleteFeedback)

		admin.GET("/users", handlers.ListUsers)
		admin.GET("/users/stats", handlers.GetUserStats)
		admin.GET("/users/type/:userType", handlers.GetUsersByType)
		admin.GET("/users/search", handlers.SearchUsers)
		admin.GET("/users/:id", handlers.GetUser)
	}
}
