package main

import (
	"context"
	"os"
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"copyforge/config"
	"copyforge/controllers"
	"copyforge/db"
	"copyforge/routes"
	"copyforge/services"
	"copyforge/websocket"
)

func main() {
	// .env is optional; environment overrides the YAML either way
	godotenv.Load()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.LoadConfig("./config/config.yml")
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	client, err := services.NewGeminiClient(ctx, cfg.Gemini.ApiKey)
	if err != nil {
		logrus.Fatalf("Failed to create Gemini client: %v", err)
	}
	completion := services.NewGeminiCompletion(client, cfg.Gemini.Model)
	image := services.NewGeminiImage(client, cfg.Gemini.ImageModel, cfg.Server.UploadsDir)

	// Persistence is optional: without a URI the server runs with history
	// disabled and the pipeline skips the example-fetch path.
	var store *db.Store
	if cfg.Database.URI != "" {
		store, err = db.Connect(ctx, cfg.Database.URI)
		if err != nil {
			logrus.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		defer store.Close(ctx)
		logrus.Info("Connected to MongoDB")
	} else {
		logrus.Warn("No database URI configured, running without persistence")
	}

	builder := services.NewPromptBuilder(completion)
	rater := services.NewRater(completion)
	pipeline := services.NewPipeline(completion, image, store, builder, rater)
	rewriter := services.NewRewriter(completion, rater)

	generateController := controllers.NewGenerateController(pipeline, rewriter)
	postController := controllers.NewPostController(store)
	progressHandler := websocket.NewProgressHandler(pipeline)

	// Create uploads directory for generated images
	os.MkdirAll(cfg.Server.UploadsDir, os.ModePerm)

	router := setupRouter(cfg)
	routes.Setup(router, generateController, postController, progressHandler)

	port := strconv.Itoa(cfg.Server.Port)
	logrus.Infof("Server starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}

func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	origins := cfg.Server.CorsOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	router.OPTIONS("/*path", func(c *gin.Context) { c.Status(204) })

	// Generated images are served from the uploads directory
	router.Static("/uploads", cfg.Server.UploadsDir)

	return router
}
