package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"villa-backend/controllers"
	"villa-backend/middleware"
	"villa-backend/services"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires controllers onto the HTTP surface. Admin routes sit
// behind the session-token gate.
func SetupRouter(
	gc *controllers.GalleryController,
	arc *controllers.ArchiveController,
	pc *controllers.PricingController,
	ac *controllers.AuthController,
	authSvc *services.AuthService,
	uploadRoot string,
) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery())
	r.Static("/uploads/gallery", uploadRoot)

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "villa-backend"})
	})

	adminOnly := middleware.RequireAdmin(authSvc)

	api := r.Group("/api")
	{
		gallery := api.Group("/gallery")
		{
			gallery.GET("", gc.ListPublished)
			gallery.GET("/categories", gc.Categories)

			gallery.GET("/admin-list", adminOnly, gc.AdminList)
			gallery.POST("/upload", adminOnly, gc.Upload)

			gallery.GET("/archive", adminOnly, arc.ListArchived)
			gallery.POST("/archive", adminOnly, arc.BulkAction)
			gallery.DELETE("/archive", adminOnly, arc.ClearArchive)
		}

		api.POST("/booking", controllers.CreateBookingInquiry)
		api.POST("/contact", controllers.CreateContactMessage)
		api.POST("/newsletter", controllers.SubscribeNewsletter)
		api.DELETE("/newsletter", controllers.UnsubscribeNewsletter)
		api.GET("/rooms", controllers.GetRooms)
		api.GET("/testimonials", controllers.GetTestimonials)

		auth := api.Group("/auth")
		{
			auth.POST("/login", ac.Login)
			auth.POST("/logout", adminOnly, ac.Logout)
		}

		admin := api.Group("/admin", adminOnly)
		{
			admin.POST("/gallery", gc.CreateFromURL)
			admin.PATCH("/gallery/:id", gc.Edit)
			admin.DELETE("/gallery/:id", gc.Delete)

			admin.GET("/pricing", pc.GetRates)
			admin.POST("/pricing", pc.UpdateRate)
			admin.POST("/pricing/lookup", pc.Lookup)

			admin.GET("/bookings", controllers.GetBookingInquiries)
			admin.PATCH("/bookings/:id/processed", controllers.MarkInquiryProcessed)

			admin.GET("/messages", controllers.GetContactMessages)
			admin.PATCH("/messages/:id/read", controllers.MarkMessageRead)

			admin.POST("/rooms", controllers.CreateRoom)
			admin.PATCH("/rooms/:id", controllers.UpdateRoom)
			admin.PUT("/rooms/:id", controllers.UpdateRoom)
			admin.DELETE("/rooms/:id", controllers.DeleteRoom)
		}
	}

	return r
}
