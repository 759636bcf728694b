package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-stockcontrol-ws/internal/broker"
	"go-stockcontrol-ws/internal/handler"
	"go-stockcontrol-ws/internal/middleware"
	"go-stockcontrol-ws/internal/model"
	"go-stockcontrol-ws/internal/repository"
	"go-stockcontrol-ws/internal/service"
	"go-stockcontrol-ws/internal/session"
	"go-stockcontrol-ws/internal/ws"
	"go-stockcontrol-ws/pkg/database"
	pkgjwt "go-stockcontrol-ws/pkg/jwt"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(&model.Document{})

	// 3. Sync broker: Redis when configured, in-process otherwise
	var syncBroker broker.SyncBroker
	if rdb := database.ConnectRedis(context.Background()); rdb != nil {
		syncBroker = broker.NewRedisBroker(rdb)
	} else {
		log.Println("REDIS_ADDR not set, using in-process sync broker")
		syncBroker = broker.NewMemoryBroker()
	}

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	docRepo := repository.NewDocumentRepo(db)
	sessions := session.NewManager(docRepo, syncBroker)

	invService := service.NewInventoryService()
	salesService := service.NewSalesService()
	notesService := service.NewNotesService()

	authHandler := handler.NewAuthHandler(sessions, wsHub)
	invHandler := handler.NewInventoryHandler(invService)
	salesHandler := handler.NewSalesHandler(salesService)
	notesHandler := handler.NewNotesHandler(notesService)
	statsHandler := handler.NewStatsHandler(invService)
	exportHandler := handler.NewExportHandler(invService, salesService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Control de Stock v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/validate-token", authHandler.ValidateToken)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireSession(sessions))

	protected.Post("/auth/logout", authHandler.Logout)

	// Inventory
	protected.Get("/inventory", invHandler.GetItems)
	protected.Post("/inventory", invHandler.CreateItem)
	protected.Put("/inventory/:id", invHandler.UpdateItem)
	protected.Delete("/inventory/:id", invHandler.DeleteItem)

	// Sales
	protected.Get("/sales", salesHandler.GetSales)
	protected.Post("/sales", salesHandler.RegisterSale)
	protected.Put("/sales/:id/status", salesHandler.UpdateSaleStatus)
	protected.Delete("/sales/:id", salesHandler.DeleteSale)

	// Notes
	protected.Get("/notes", notesHandler.GetNotes)
	protected.Post("/notes", notesHandler.AddNote)
	protected.Delete("/notes/:id", notesHandler.DeleteNote)

	// Stats & Export
	protected.Get("/stats", statsHandler.GetStats)
	protected.Get("/export/inventory.tsv", exportHandler.InventoryTSV)
	protected.Get("/export/inventory.xlsx", exportHandler.InventoryXLSX)
	protected.Get("/export/sales.xlsx", exportHandler.SalesXLSX)

	// Metrics
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// WebSocket Route. Clients authenticate with ?token=<jwt>.
	app.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return c.SendStatus(fiber.StatusUpgradeRequired)
		}
		claims, err := pkgjwt.ValidateToken(c.Query("token"))
		if err != nil {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		if _, ok := sessions.Get(claims.Username); !ok {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		c.Locals("username", claims.Username)
		return c.Next()
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		user := c.Locals("username").(string)
		wsHub.Register <- ws.Subscription{Conn: c, User: user}
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
