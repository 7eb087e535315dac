package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/vigiamar/operaciones-api/internal/config"
	"github.com/vigiamar/operaciones-api/internal/database"
	"github.com/vigiamar/operaciones-api/internal/handlers"
	"github.com/vigiamar/operaciones-api/internal/middleware"
	"github.com/vigiamar/operaciones-api/internal/repository"
	"github.com/vigiamar/operaciones-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		log.Fatalf("Failed to add indexes: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// CORS for the operations dashboard
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions("operaciones_session", store))

	// Initialize repositories
	db := database.GetDB()
	assemblyRepo := repository.NewAssemblyRepository(db)
	participationRepo := repository.NewParticipationRepository(db)
	materialRepo := repository.NewMaterialRepository(db)
	equipmentRepo := repository.NewEquipmentRepository(db)
	movementRepo := repository.NewMovementRepository(db)
	siteRepo := repository.NewSiteRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	assemblyService := services.NewAssemblyService(assemblyRepo, materialRepo, equipmentRepo, movementRepo)
	participationService := services.NewParticipationService(participationRepo)
	ledgerService := services.NewLedgerService(assemblyRepo, materialRepo, equipmentRepo, movementRepo, siteRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	assemblyHandler := handlers.NewAssemblyHandler(assemblyService)
	participationHandler := handlers.NewParticipationHandler(participationService)
	materialHandler := handlers.NewMaterialHandler(ledgerService)
	movementHandler := handlers.NewMovementHandler(ledgerService)
	equipmentHandler := handlers.NewEquipmentHandler(ledgerService)
	siteHandler := handlers.NewSiteHandler()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Operaciones API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Assembly routes (protected)
		armados := api.Group("/armados")
		armados.Use(middleware.RequireAuth())
		{
			armados.GET("", assemblyHandler.ListAssemblies)
			armados.POST("", assemblyHandler.CreateAssembly)
			armados.GET("/movimientos", movementHandler.ListRecentMovements)
			armados.PUT("/:id", assemblyHandler.UpdateAssembly)
			armados.DELETE("/:id", assemblyHandler.DeleteAssembly)
			armados.GET("/:id/materiales", materialHandler.ListMaterials)
			armados.PUT("/:id/materiales", materialHandler.ReplaceMaterials)
			armados.GET("/:id/movimientos", movementHandler.ListMovements)
			armados.GET("/:id/participaciones", participationHandler.ListParticipations)
			armados.POST("/:id/participaciones", participationHandler.Transfer)
		}

		// Participation routes (protected)
		participaciones := api.Group("/participaciones")
		participaciones.Use(middleware.RequireAuth())
		{
			participaciones.PUT("/:id", participationHandler.UpdateParticipation)
			participaciones.DELETE("/:id", participationHandler.DeleteParticipation)
		}

		// Site routes (protected)
		centros := api.Group("/centros")
		centros.Use(middleware.RequireAuth())
		{
			centros.GET("", siteHandler.ListSites)
			centros.GET("/:id", siteHandler.GetSite)
		}

		// Equipment routes (protected)
		equipos := api.Group("/equipos")
		equipos.Use(middleware.RequireAuth())
		{
			equipos.GET("", equipmentHandler.ListEquipment)
			equipos.POST("", equipmentHandler.CreateEquipment)
			equipos.PUT("/:id", equipmentHandler.UpdateEquipment)
			equipos.DELETE("/:id", equipmentHandler.DeleteEquipment)
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
