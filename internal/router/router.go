package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/sword9322/bezer-sub000/internal/config"
	"github.com/sword9322/bezer-sub000/internal/handler"
	"github.com/sword9322/bezer-sub000/internal/infra"
	"github.com/sword9322/bezer-sub000/internal/middleware"
	"github.com/sword9322/bezer-sub000/internal/repository"
	"github.com/sword9322/bezer-sub000/internal/service"
	"github.com/sword9322/bezer-sub000/internal/sheet"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← RowStore
//
// The audit sink is injected rather than built here: depending on AUDIT_SYNC
// it is either the redis dispatcher (drained by the worker pool) or the
// synchronous direct sink.
func New(
	cfg *config.Config,
	store sheet.RowStore,
	locks *sheet.Locker,
	rdb *redis.Client,
	audit service.AuditSink,
	pinger handler.Pinger,
	cb *infra.CircuitBreaker,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	productRepo := repository.NewProducts(store, locks)
	campaignRepo := repository.NewCampaigns(store, locks)
	brandsRepo := repository.NewReferenceSet(store, locks, sheet.Brands)
	typologiesRepo := repository.NewReferenceSet(store, locks, sheet.Typologies)
	racksRepo := repository.NewReferenceSet(store, locks, sheet.Racks)
	activityRepo := repository.NewActivity(store, locks)

	// ── Services ─────────────────────────────────────────────────────────────
	productSvc := service.NewProductService(productRepo, audit)
	referenceSvc := service.NewReferenceService(brandsRepo, typologiesRepo, racksRepo, audit)
	campaignSvc := service.NewCampaignService(campaignRepo, audit)
	activitySvc := service.NewActivityService(activityRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	productsH := handler.NewProductsHandler(productSvc)
	referencesH := handler.NewReferencesHandler(referenceSvc)
	campaignsH := handler.NewCampaignsHandler(campaignSvc)
	logsH := handler.NewLogsHandler(activitySvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(pinger, rdb, cb))

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: operator (read), manager (write), admin (restore/purge/logs)
		read := middleware.RequireRole("operator", "manager", "admin")
		write := middleware.RequireRole("manager", "admin")
		adminOnly := middleware.RequireRole("admin")

		v1.GET("/products", read, productsH.List)
		v1.GET("/products/trash", read, productsH.ListTrash)
		v1.GET("/products/:ref", read, productsH.Get)
		v1.POST("/products", write, productsH.Create)
		v1.PATCH("/products/:ref", write, productsH.Update)
		v1.DELETE("/products/:ref", write, productsH.SoftDelete)
		v1.POST("/products/:ref/restore", adminOnly, productsH.Restore)
		v1.DELETE("/products/:ref/purge", adminOnly, productsH.Purge)

		v1.GET("/brands", read, referencesH.ListBrands)
		v1.POST("/brands", write, referencesH.AddBrand)
		v1.DELETE("/brands/:name", write, referencesH.RemoveBrand)

		v1.GET("/typologies", read, referencesH.ListTypologies)
		v1.POST("/typologies", write, referencesH.AddTypology)
		v1.DELETE("/typologies/:name", write, referencesH.RemoveTypology)

		v1.GET("/racks", read, referencesH.ListRacks)
		v1.POST("/racks", write, referencesH.AddRack)
		v1.DELETE("/racks/:id", write, referencesH.RemoveRack)

		v1.GET("/campaigns", read, campaignsH.List)
		v1.GET("/campaigns/:id", read, campaignsH.Get)
		v1.POST("/campaigns", write, campaignsH.Create)
		v1.PATCH("/campaigns/:id", write, campaignsH.Update)
		v1.DELETE("/campaigns/:id", write, campaignsH.Delete)

		v1.GET("/logs", adminOnly, logsH.Query)
	}

	return r
}
