package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/blessing250/New-Chogmo/internal/appointment"
	"github.com/blessing250/New-Chogmo/internal/auth"
	"github.com/blessing250/New-Chogmo/internal/catalog"
	"github.com/blessing250/New-Chogmo/internal/checkin"
	"github.com/blessing250/New-Chogmo/internal/config"
	"github.com/blessing250/New-Chogmo/internal/email"
	"github.com/blessing250/New-Chogmo/internal/member"
	"github.com/blessing250/New-Chogmo/internal/payment"
	"github.com/blessing250/New-Chogmo/internal/reports"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
	email  *email.Service
}

func New(db *sqlx.DB, cfg *config.Config, emailService *email.Service) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(corsMiddleware())

	memberRepo := member.NewRepository(db)
	paymentRepo := payment.NewRepository(db)
	catalogRepo := catalog.NewRepository(db)
	checkinRepo := checkin.NewRepository(db)
	appointmentRepo := appointment.NewRepository(db)
	reportsRepo := reports.NewRepository(db)

	gateway := payment.NewStripeGateway(cfg.StripeAPIKey)

	memberHandler := member.NewHandler(member.NewService(memberRepo, paymentRepo, gateway, emailService, cfg.JWTSecret))
	paymentHandler := payment.NewHandler(paymentRepo)
	catalogHandler := catalog.NewHandler(catalog.NewService(catalogRepo))
	checkinHandler := checkin.NewHandler(checkin.NewService(checkinRepo, memberRepo, catalogRepo))
	appointmentHandler := appointment.NewHandler(appointment.NewService(appointmentRepo, catalogRepo, memberRepo, emailService))
	reportsHandler := reports.NewHandler(reportsRepo)

	public := router.Group("/auth")
	public.Use(RateLimitMiddleware(5, 10))
	{
		public.POST("/register", memberHandler.Register)
		public.POST("/login", memberHandler.Login)
		public.POST("/refresh", memberHandler.RefreshToken)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", memberHandler.GetMe)
		protected.PATCH("/auth/profile", memberHandler.UpdateProfile)
		protected.POST("/auth/reset-password", memberHandler.ResetPassword)
		protected.GET("/plans", memberHandler.ListPlans)
		protected.GET("/members/:id", memberHandler.GetByID)
		protected.POST("/members/:id/upgrade", memberHandler.Upgrade)

		protected.GET("/packages", catalogHandler.ListPackages)
		protected.POST("/packages/:id/purchase", catalogHandler.Purchase)
		protected.GET("/packages/me/active", catalogHandler.ListMyActive)

		protected.GET("/payments/me", paymentHandler.ListMine)

		protected.POST("/appointments/book", appointmentHandler.Book)
		protected.GET("/appointments/me/upcoming", appointmentHandler.ListMineUpcoming)

		protected.GET("/attendance/me", checkinHandler.ListMine)
	}

	adminMiddleware := auth.RequireRole("admin")
	admin := router.Group("/admin")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.GET("/members", memberHandler.ListAll)
		admin.POST("/notify", memberHandler.Notify)

		admin.POST("/packages", catalogHandler.CreatePackage)
		admin.PUT("/packages/:id", catalogHandler.UpdatePackage)
		admin.DELETE("/packages/:id", catalogHandler.DeletePackage)

		admin.GET("/payments", paymentHandler.ListAll)

		admin.GET("/appointments", appointmentHandler.ListAll)
		admin.GET("/appointments/today", appointmentHandler.ListToday)
		admin.PATCH("/appointments/:id/status", appointmentHandler.SetStatus)

		admin.POST("/checkin", checkinHandler.CheckIn)
		admin.GET("/attendance", checkinHandler.ListAll)

		admin.GET("/stats", reportsHandler.GetStats)
		admin.GET("/revenue", reportsHandler.GetRevenue)
		admin.GET("/reports/download", reportsHandler.Download)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	router.GET("/test-email", TestEmail(emailService))

	return &Server{
		router: router,
		db:     db,
		config: cfg,
		email:  emailService,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:         ":" + port,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
