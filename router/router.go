package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/service-booking/cache"
	"github.com/yeremiapane/service-booking/controllers"
	"github.com/yeremiapane/service-booking/middlewares"
	"github.com/yeremiapane/service-booking/services"
	"github.com/yeremiapane/service-booking/utils"
	"gorm.io/gorm"
)

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	DB       *gorm.DB
	Cache    cache.Store
	CacheTTL time.Duration
	Notifier services.Notifier
	Mailbox  string
	Tokens   *utils.TokenManager

	AppURL     string
	CORSOrigin string

	PublicRatePerMinute int
	AdminRatePerMinute  int
	LoginRatePerMinute  int
}

func SetupRouter(deps Dependencies) *gin.Engine {
	utils.RegisterValidators()

	r := gin.New()
	r.Use(gin.Recovery())

	// Apply security middlewares
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(deps.CORSOrigin))
	r.Use(middlewares.LoggerMiddleware())

	catalog := services.NewCatalogService(deps.DB, deps.Cache, deps.CacheTTL)
	bookings := services.NewBookingService(deps.DB, deps.Cache, deps.CacheTTL, deps.Notifier, deps.Mailbox)

	// Inisialisasi controller
	serviceCtrl := controllers.NewServiceController(catalog, deps.AppURL)
	bookingCtrl := controllers.NewBookingController(bookings)
	authCtrl := controllers.NewAdminAuthController(deps.DB, deps.Tokens)
	adminServiceCtrl := controllers.NewAdminServiceController(catalog, deps.AppURL)
	adminBookingCtrl := controllers.NewAdminBookingController(bookings, deps.AppURL)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	r.NoRoute(func(c *gin.Context) {
		utils.RespondError(c, utils.NotFound("Resource not found."))
	})

	api := r.Group("/api/v1")

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	public := api.Group("")
	public.Use(middlewares.NewThrottle("public-api", deps.PublicRatePerMinute).Middleware())
	{
		public.GET("/services", serviceCtrl.Index)
		public.POST("/bookings", bookingCtrl.Store)
		public.GET("/bookings/:booking_id", bookingCtrl.Show)
	}

	// Rate limiter khusus login
	login := api.Group("/admin")
	login.Use(middlewares.NewThrottle("admin-login", deps.LoginRatePerMinute).Middleware())
	{
		login.POST("/login", authCtrl.Login)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	admin := api.Group("/admin")
	admin.Use(
		middlewares.NewThrottle("admin-api", deps.AdminRatePerMinute).Middleware(),
		middlewares.AdminAuthMiddleware(deps.Tokens),
		middlewares.NoStore(),
	)
	{
		admin.POST("/logout", authCtrl.Logout)

		// SERVICES
		admin.GET("/services", adminServiceCtrl.Index)
		admin.POST("/services", adminServiceCtrl.Store)
		admin.GET("/services/:service_id", adminServiceCtrl.Show)
		admin.PUT("/services/:service_id", adminServiceCtrl.Update)
		admin.DELETE("/services/:service_id", adminServiceCtrl.Destroy)
		admin.POST("/services/:service_id/restore", adminServiceCtrl.Restore)

		// BOOKINGS
		admin.GET("/bookings", adminBookingCtrl.Index)
		admin.GET("/bookings/:booking_id", adminBookingCtrl.Show)
	}

	return r
}
