package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/restaurant-floor/internal/app"
	"github.com/BruksfildServices01/restaurant-floor/internal/config"
	"github.com/BruksfildServices01/restaurant-floor/internal/handlers"
	"github.com/BruksfildServices01/restaurant-floor/internal/middleware"
)

func RegisterRoutes(r *gin.Engine, a *app.App, cfg *config.Config) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.Logger(a.Log))
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigin))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"session": a.Session.State().String(),
		})
	})

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(a)
	meHandler := handlers.NewMeHandler(a)
	restaurantHandler := handlers.NewRestaurantHandler(a)
	floorHandler := handlers.NewFloorHandler(a)
	orderHandler := handlers.NewOrderHandler(a)
	reservationHandler := handlers.NewReservationHandler(a)
	waitlistHandler := handlers.NewWaitlistHandler(a)
	clientHandler := handlers.NewClientHandler(a)
	auditLogsHandler := handlers.NewAuditLogsHandler(a.AuditLog)

	loginLimiter := middleware.NewStrictRateLimiter()

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", loginLimiter.RateLimit(), authHandler.Register)
		api.POST("/auth/login", loginLimiter.RateLimit(), authHandler.Login)
		api.POST("/auth/logout", authHandler.Logout)

		// ------------------------------
		// SIGNED IN
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.RequireSession(a))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.PATCH("/me", meHandler.UpdateMe)
			secured.POST("/me/avatar", meHandler.UploadAvatar)

			secured.GET("/restaurant", restaurantHandler.Get)
			secured.PATCH("/restaurant", restaurantHandler.Update)
			secured.GET("/dashboard", restaurantHandler.Dashboard)

			// ------------------------------
			// FLOOR
			// ------------------------------
			secured.GET("/floor", floorHandler.Get)

			secured.GET("/tables", floorHandler.ListTables)
			secured.POST("/tables", floorHandler.CreateTable)
			secured.GET("/tables/:id", floorHandler.GetTable)
			secured.PATCH("/tables/:id", floorHandler.UpdateTable)
			secured.PATCH("/tables/:id/position", floorHandler.MoveTable)
			secured.PATCH("/tables/:id/status", floorHandler.ChangeTableStatus)
			secured.DELETE("/tables/:id", floorHandler.DeleteTable)

			secured.GET("/elements", floorHandler.ListElements)
			secured.POST("/elements", floorHandler.CreateElement)
			secured.PATCH("/elements/:id", floorHandler.UpdateElement)
			secured.PATCH("/elements/:id/position", floorHandler.MoveElement)
			secured.DELETE("/elements/:id", floorHandler.DeleteElement)

			// ------------------------------
			// ORDERS
			// ------------------------------
			secured.GET("/orders", orderHandler.List)
			secured.POST("/orders", orderHandler.Open)
			secured.GET("/orders/:id", orderHandler.Get)
			secured.POST("/orders/:id/items", orderHandler.AddItem)
			secured.PATCH("/orders/:id/items/:itemId", orderHandler.UpdateItemQuantity)
			secured.DELETE("/orders/:id/items/:itemId", orderHandler.RemoveItem)
			secured.PATCH("/orders/:id/tip", orderHandler.SetTip)
			secured.PATCH("/orders/:id/status", orderHandler.ChangeStatus)
			secured.POST("/orders/:id/checkout", orderHandler.Checkout)
			secured.POST("/orders/:id/refund", orderHandler.Refund)
			secured.DELETE("/orders/:id", orderHandler.Delete)

			// ------------------------------
			// RESERVATIONS
			// ------------------------------
			secured.GET("/reservations", reservationHandler.List)
			secured.POST("/reservations", reservationHandler.Create)
			secured.GET("/reservations/:id", reservationHandler.Get)
			secured.PATCH("/reservations/:id", reservationHandler.Update)
			secured.PATCH("/reservations/:id/status", reservationHandler.ChangeStatus)
			secured.POST("/reservations/:id/confirm", reservationHandler.Confirm)
			secured.POST("/reservations/:id/remind", reservationHandler.Remind)
			secured.POST("/reservations/:id/seat", reservationHandler.Seat)
			secured.DELETE("/reservations/:id", reservationHandler.Delete)

			// ------------------------------
			// WAITLIST
			// ------------------------------
			secured.GET("/waitlist", waitlistHandler.List)
			secured.POST("/waitlist", waitlistHandler.Join)
			secured.GET("/waitlist/:id", waitlistHandler.Get)
			secured.PATCH("/waitlist/:id/status", waitlistHandler.ChangeStatus)
			secured.POST("/waitlist/:id/notify", waitlistHandler.Notify)
			secured.POST("/waitlist/:id/seat", waitlistHandler.Seat)
			secured.DELETE("/waitlist/:id", waitlistHandler.Remove)

			// ------------------------------
			// CLIENTS
			// ------------------------------
			secured.GET("/clients", clientHandler.List)
			secured.POST("/clients", clientHandler.Create)
			secured.GET("/clients/:id", clientHandler.Get)
			secured.PATCH("/clients/:id", clientHandler.Update)
			secured.DELETE("/clients/:id", clientHandler.Delete)
			secured.POST("/clients/:id/tags", clientHandler.AddTag)
			secured.DELETE("/clients/:id/tags/:tag", clientHandler.RemoveTag)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
