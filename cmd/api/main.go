package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	handlerHttp "policytrack/internal/handler/http"
	redisclient "policytrack/internal/infrastructure/cache"
	"policytrack/internal/infrastructure/config"
	database "policytrack/internal/infrastructure/database"
	"policytrack/internal/infrastructure/logger"
	"policytrack/internal/infrastructure/repository/mongodb"
	"policytrack/internal/infrastructure/repository/neo4jdb"
	"policytrack/internal/infrastructure/store"
	"policytrack/internal/usecase"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	neo4jURI := os.Getenv("NEO4J_URI")
	neo4jUser := os.Getenv("NEO4J_USER")
	neo4jPassword := os.Getenv("NEO4J_PASSWORD")
	if neo4jURI == "" || neo4jUser == "" || neo4jPassword == "" {
		log.Fatal("NEO4J_URI, NEO4J_USER and NEO4J_PASSWORD environment variables must be set")
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		log.Fatal("REDIS_URL environment variable not set")
	}

	ctx := context.Background()

	// Establish the Neo4j connection holding the vote ledger
	neo4jClient, err := database.NewNeo4jClient(ctx, neo4jURI, neo4jUser, neo4jPassword)
	if err != nil {
		log.Fatalf("Failed to connect to Neo4j: %v", err)
	}
	defer neo4jClient.Disconnect()

	rdb := redisclient.NewRedisFromURL(ctx, redisURL)
	defer redisclient.Close(rdb)

	// Initialize Gin router
	router := gin.Default()

	appConfig := config.NewConfig()
	appLogger := logger.NewStdLogger()

	// Dependency Injection: Repositories and stores
	voteLedger := neo4jdb.NewVoteLedger(neo4jClient.Driver)
	voteCache := store.NewRedisVoteCacheStore(rdb, appConfig, appLogger)

	// Dependency Injection: Usecases
	voteUsecase := usecase.NewVoteUsecase(voteLedger, voteCache, appLogger, appConfig)

	// Optional Dependency Injection: MongoDB abuse-report sink
	if mongoURI := os.Getenv("MONGODB_URI"); mongoURI != "" {
		dbName := os.Getenv("MONGODB_DB_NAME")
		if dbName == "" {
			log.Fatal("MONGODB_DB_NAME environment variable not set")
		}
		mongoClient, err := database.NewMongoDBClient(mongoURI)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		defer mongoClient.Disconnect()
		abuseRepo := mongodb.NewAbuseReportRepository(mongoClient.Client.Database(dbName))
		voteUsecase.SetAbuseReportRepository(abuseRepo)
	}

	// Setup API routes
	appRouter := handlerHttp.NewRouter(voteUsecase, appLogger)
	appRouter.SetupRoutes(router)

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
