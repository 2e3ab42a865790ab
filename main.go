package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"ekinerja/config"
	"ekinerja/database"
	"ekinerja/handlers"
	"ekinerja/notifications"
	repository "ekinerja/repositories"
	routes "ekinerja/routes"
	services "ekinerja/services"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	// Create a new client and connect to the server
	clientOptions := options.Client().ApplyURI(cfg.MongoURI)
	client, err := mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer func() {
		if err = client.Disconnect(context.TODO()); err != nil {
			log.Fatal("Failed to disconnect from MongoDB:", err)
		}
	}()

	// Set a timeout for the ping operation
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Ping the primary to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}

	fmt.Println("Successfully connected to MongoDB!")

	db := client.Database(cfg.MongoDB)

	// Create indexes
	fmt.Println("Creating database indexes...")
	if err := database.CreateIndexes(db); err != nil {
		log.Printf("Warning: Failed to create indexes: %v", err)
	}

	// Outbound notifications are optional; a nil mailer disables them
	mailer := notifications.NewMailer(cfg)
	if mailer == nil {
		log.Println("SMTP not configured, notifications disabled")
	}

	// Initialize repositories
	hierarchyRepo := repository.NewHierarchyRepository(db)
	anggaranRepo := repository.NewAnggaranRepository(db)
	kinerjaRepo := repository.NewKinerjaRepository(db)
	pencapaianRepo := repository.NewPencapaianRepository(db)
	realisasiRepo := repository.NewRealisasiRepository(db)
	evaluasiKinerjaRepo := repository.NewEvaluasiKinerjaRepository(db)
	evaluasiRealisasiRepo := repository.NewEvaluasiRealisasiRepository(db)

	// Initialize services
	hierarchyService := services.NewHierarchyService(hierarchyRepo)
	anggaranService := services.NewAnggaranService(anggaranRepo, hierarchyRepo)
	kinerjaService := services.NewKinerjaService(kinerjaRepo, anggaranRepo)
	pencapaianService := services.NewPencapaianService(pencapaianRepo, kinerjaRepo, mailer)
	realisasiService := services.NewRealisasiService(realisasiRepo, anggaranRepo)
	evaluasiKinerjaService := services.NewEvaluasiKinerjaService(evaluasiKinerjaRepo, pencapaianRepo, mailer)
	evaluasiRealisasiService := services.NewEvaluasiRealisasiService(evaluasiRealisasiRepo, realisasiRepo)

	// Initialize handlers
	hierarchyHandler := handlers.NewHierarchyHandler(hierarchyService)
	anggaranHandler := handlers.NewAnggaranHandler(anggaranService)
	kinerjaHandler := handlers.NewKinerjaHandler(kinerjaService)
	pencapaianHandler := handlers.NewPencapaianHandler(pencapaianService)
	realisasiHandler := handlers.NewRealisasiHandler(realisasiService)
	evaluasiHandler := handlers.NewEvaluasiHandler(evaluasiKinerjaService, evaluasiRealisasiService)

	// Setup routes using ServeMux with JWT middleware
	mux := routes.SetupRoutes(hierarchyHandler, anggaranHandler, kinerjaHandler, pencapaianHandler, realisasiHandler, evaluasiHandler, cfg.JWTSecret)

	fmt.Printf("Server starting on port %s\n", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, mux))
}
