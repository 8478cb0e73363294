package main

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/justbuildingit/post-factory/internal/database"
	"github.com/justbuildingit/post-factory/internal/handlers"
	"github.com/justbuildingit/post-factory/internal/services"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	// 2. Database Connection
	db := database.Connect()

	// 3. Initialize Core Services (Dependencies)
	llmService := services.NewLLMService()
	postService := services.NewPostService(db)
	newsService := services.NewNewsService()
	renderService := services.NewRenderService(db)

	// 4. Start the Scheduler
	// Promotes "scheduled" posts to "posted" when their time arrives
	scheduler := services.NewSchedulerService(db)
	scheduler.StartWatcher()
	log.Println("✅ Post scheduler running.")

	// 5. Initialize Handlers
	postHandler := handlers.NewPostHandler(llmService, postService)
	mediaHandler := handlers.NewMediaHandler(renderService, postService)
	newsHandler := handlers.NewNewsHandler(newsService)

	// 6. Setup Router & CORS
	r := gin.Default()
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true // For development only
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(config))

	// 7. Define Routes
	api := r.Group("/api/v1")
	{
		api.GET("/health", handlers.HealthCheck)

		// Post Routes
		api.POST("/posts/generate", postHandler.GeneratePost)
		api.POST("/posts", postHandler.CreatePost)
		api.GET("/posts", postHandler.ListPosts)
		api.GET("/posts/:id", postHandler.GetPost)
		api.PATCH("/posts/:id/status", postHandler.UpdateStatus)
		api.DELETE("/posts/:id", postHandler.DeletePost)

		// Media Routes (proxied to the rendering backend)
		api.POST("/media/carousel", mediaHandler.GenerateCarousel)
		api.POST("/media/chart", mediaHandler.GenerateChart)
		api.POST("/media/code-image", mediaHandler.GenerateCodeImage)
		api.POST("/media/infographic", mediaHandler.GenerateInfographic)
		api.POST("/media/qrcode", mediaHandler.GenerateQRCode)
		api.POST("/media/ai-image", mediaHandler.GenerateAIImage)
		api.POST("/media/interactive", mediaHandler.GenerateInteractive)
		api.GET("/media/:postId", mediaHandler.ListMedia)

		// News Routes
		api.GET("/news/trending", newsHandler.Trending)
		api.GET("/news/search", newsHandler.Search)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server starting on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
