package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	rd "github.com/redis/go-redis/v9"

	"github.com/printflow/printflow-logistics-api/config"
	"github.com/printflow/printflow-logistics-api/contract"
	"github.com/printflow/printflow-logistics-api/controllers"
	"github.com/printflow/printflow-logistics-api/middleware"
	"github.com/printflow/printflow-logistics-api/services"
	"github.com/printflow/printflow-logistics-api/storage"
)

// setupRouter wires the HTTP surface. Every data route is registered from
// its contract.Route definition, so the served paths cannot drift from the
// contract the client validates against.
func setupRouter(cfg *config.Config, store storage.Store, artwork services.ArtworkService, rdb *rd.Client) (*gin.Engine, error) {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	sessions := services.NewSessionService(store, time.Duration(cfg.SessionTTLHours)*time.Hour)
	auth0 := services.NewAuth0Service(cfg)

	authenticator, err := middleware.NewAuthenticator(cfg, store, sessions)
	if err != nil {
		return nil, err
	}
	requireAuth := authenticator.RequireAuth()

	// Rate limiting applies to mutations only, and only when Redis is wired
	rateLimit := func(c *gin.Context) { c.Next() }
	if rdb != nil {
		rateLimit = middleware.RedisRateLimit(rdb, 100, time.Minute)
	}

	authCtl := controllers.NewAuthController(cfg, store, auth0, sessions)
	statsCtl := controllers.NewStatsController(store)
	orderCtl := controllers.NewOrderController(store, artwork)
	productionCtl := controllers.NewProductionController(store)
	shipmentCtl := controllers.NewShipmentController(store)
	alertCtl := controllers.NewAlertController(store)
	artworkCtl := controllers.NewArtworkController(store, artwork)

	// Public routes
	router.GET("/api/health", healthCheck)
	router.GET("/api/database/status", databaseStatus)
	router.Handle(contract.Login.Method, contract.Login.Path, authCtl.Login)
	router.Handle(contract.Callback.Method, contract.Callback.Path, authCtl.Callback)
	router.Handle(contract.Logout.Method, contract.Logout.Path, authCtl.Logout)

	// Authenticated API
	router.Handle(contract.AuthUser.Method, contract.AuthUser.Path, requireAuth, authCtl.GetCurrentUser)

	router.Handle(contract.DashboardStats.Method, contract.DashboardStats.Path, requireAuth, statsCtl.GetDashboardStats)

	router.Handle(contract.OrdersList.Method, contract.OrdersList.Path, requireAuth, orderCtl.ListOrders)
	router.Handle(contract.OrdersCreate.Method, contract.OrdersCreate.Path, requireAuth, rateLimit, orderCtl.CreateOrder)
	router.Handle(contract.OrdersGet.Method, contract.OrdersGet.Path, requireAuth, orderCtl.GetOrder)
	router.Handle(contract.OrdersArtwork.Method, contract.OrdersArtwork.Path, requireAuth, rateLimit, artworkCtl.UploadArtwork)

	router.Handle(contract.ProductionList.Method, contract.ProductionList.Path, requireAuth, productionCtl.ListProductionQueue)
	router.Handle(contract.ProductionUpdate.Method, contract.ProductionUpdate.Path, requireAuth, rateLimit, productionCtl.UpdateProductionJob)

	router.Handle(contract.ShipmentsList.Method, contract.ShipmentsList.Path, requireAuth, shipmentCtl.ListShipments)

	router.Handle(contract.AlertsList.Method, contract.AlertsList.Path, requireAuth, alertCtl.ListAlerts)
	router.Handle(contract.AlertMarkRead.Method, contract.AlertMarkRead.Path, requireAuth, rateLimit, alertCtl.MarkAlertRead)

	return router, nil
}
