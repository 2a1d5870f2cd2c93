package routes

import (
	"github.com/gin-gonic/gin"

	"copyforge/controllers"
	"copyforge/websocket"
)

// Setup registers every API route on the router. Controllers are built in
// main and passed in; this package only does wiring.
func Setup(router *gin.Engine, generate *controllers.GenerateController, posts *controllers.PostController, progress *websocket.ProgressHandler) {
	api := router.Group("/api")
	{
		api.POST("/generate", generate.Generate)
		api.POST("/rewrite", generate.Rewrite)

		api.POST("/posts", posts.SavePost)
		api.GET("/posts", posts.ListPosts)
		api.POST("/posts/:id/performance", posts.RecordPerformance)
		api.GET("/insights", posts.Insights)
	}

	// WebSocket endpoint for streaming generation progress
	router.GET("/ws/generate", progress.Handle)
}
