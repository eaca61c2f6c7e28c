package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/skprofiling/members-api/internal/api/handler"
	"github.com/skprofiling/members-api/internal/api/middleware"
	"github.com/skprofiling/members-api/internal/core/domain"
	"github.com/skprofiling/members-api/internal/core/service"
	"github.com/skprofiling/members-api/internal/infrastructure/config"
	mongostore "github.com/skprofiling/members-api/internal/infrastructure/db/mongo"
	redisstore "github.com/skprofiling/members-api/internal/infrastructure/db/redis"
	"github.com/skprofiling/members-api/internal/pkg/token"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil, in which case announcement caching is disabled.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("members"))

	// --- Dependencies ---
	tokens := token.NewManager(cfg.JWTSecret, cfg.TokenTTL)

	userRepo := mongostore.NewUserRepository(db)
	profileRepo := mongostore.NewProfileRepository(db)
	announcementRepo := mongostore.NewAnnouncementRepository(db)

	var cache service.AnnouncementCache
	if rdb != nil {
		cache = redisstore.NewAnnouncementCache(rdb)
	}

	authService := service.NewAuthService(userRepo, tokens, log)
	profileService := service.NewProfileService(profileRepo, log)
	directoryService := service.NewDirectoryService(profileRepo, log)
	announcementService := service.NewAnnouncementService(announcementRepo, cache, log)

	authHandler := handler.NewAuthHandler(authService)
	memberHandler := handler.NewMemberHandler(profileService)
	adminHandler := handler.NewAdminHandler(directoryService)
	announcementHandler := handler.NewAnnouncementHandler(announcementService)
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	authRequired := middleware.Auth(tokens)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Routes ---
	e.GET("/metrics", echoprometheus.NewHandler())

	root := e.Group("/api")

	root.POST("/auth/register", authHandler.Register)
	root.POST("/auth/login", authHandler.Login)

	members := root.Group("/members")
	members.GET("/profile", memberHandler.GetProfile, authRequired)
	members.POST("/profile", memberHandler.UpsertProfile, authRequired)
	members.GET("/profile/image/:userId", memberHandler.GetImage)

	// Admin surface, mounted exactly once.
	admin := root.Group("/admin", authRequired, adminOnly)
	admin.GET("/members/search", adminHandler.Search)
	admin.GET("/members/filter/:letter", adminHandler.FilterByLetter)
	admin.GET("/members/profile/:id", adminHandler.FetchProfile)
	admin.POST("/announcement", announcementHandler.Create)
	admin.DELETE("/announcement/:id", announcementHandler.Delete)

	// Historically served without the admin guard; registered outside the
	// admin group so the exemption is visible in the route table.
	root.GET("/admin/announcement/all", announcementHandler.ListAll)

	root.GET("/announcements", announcementHandler.ListRecent)
	root.POST("/announcements", announcementHandler.Create, authRequired, adminOnly)

	root.GET("/health", healthHandler.Liveness)
	root.GET("/health/ready", readinessHandler.Readiness)

	return e
}
