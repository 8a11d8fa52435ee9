package bootstrap

import (
	"database/sql"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/lifelink-health/donation-backend/config"
	httpapi "github.com/lifelink-health/donation-backend/internal/api/http"
	apimw "github.com/lifelink-health/donation-backend/internal/api/http/middleware"
	"github.com/lifelink-health/donation-backend/internal/auth"
	authmw "github.com/lifelink-health/donation-backend/internal/auth/middleware"
	centershttp "github.com/lifelink-health/donation-backend/internal/centers/http"
	centersrepo "github.com/lifelink-health/donation-backend/internal/centers/repository"
	centerssvc "github.com/lifelink-health/donation-backend/internal/centers/service"
	slotshttp "github.com/lifelink-health/donation-backend/internal/slots/http"
	slotsrepo "github.com/lifelink-health/donation-backend/internal/slots/repository"
	slotssvc "github.com/lifelink-health/donation-backend/internal/slots/service"
	usershttp "github.com/lifelink-health/donation-backend/internal/users/http"
	usersrepo "github.com/lifelink-health/donation-backend/internal/users/repository"
	userssvc "github.com/lifelink-health/donation-backend/internal/users/service"
)

type RouterDeps struct {
	Config *config.Config
	Pool   *pgxpool.Pool
	SQLDB  *sql.DB
	Redis  *redis.Client
}

// BuildRouter wires every component explicitly: repositories get their
// database handles, services get repositories and the token codec, handlers
// get services. No hidden registry.
func BuildRouter(dep RouterDeps) (*gin.Engine, *slotssvc.SlotService) {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.Config.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-Id"},
		AllowCredentials: true,
	}))
	r.Use(apimw.RequestIDMiddleware())

	healthHandler := httpapi.NewHealthHandler("donation-backend", dep.Config.App.Version, dep.Pool, dep.Redis)
	healthHandler.RegisterRoutes(r)

	codec := auth.NewTokenCodec(dep.Config.Auth.JWTSecret, "donation-backend")

	userRepo := usersrepo.NewUserRepository(dep.SQLDB)
	centerRepo := centersrepo.NewCenterRepository(dep.Pool)
	slotRepo := slotsrepo.NewSlotRepository(dep.Pool)

	var centerCache centerssvc.Cache
	if dep.Redis != nil {
		centerCache = centersrepo.NewCenterCache(dep.Redis)
	}

	userSvc := userssvc.NewUserService(userRepo, codec)
	centerSvc := centerssvc.NewCenterService(centerRepo, centerCache, userRepo)
	slotSvc := slotssvc.NewSlotService(slotRepo)

	api := r.Group("/api/v1")
	api.Use(authmw.JWTCookie(codec))

	signinLimiter := apimw.RateLimit(rate.Every(time.Second), 5)

	usersGroup := api.Group("/users")
	usershttp.New(userSvc, dep.Config.IsProduction(), dep.Config.Auth.CookieTTL).
		Register(usersGroup, signinLimiter)

	centersGroup := api.Group("/donation-centers")
	centershttp.New(centerSvc).Register(centersGroup)
	slotshttp.New(slotSvc).RegisterCenterSubroutes(centersGroup)

	return r, slotSvc
}
