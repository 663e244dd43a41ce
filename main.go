package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"tshirt-store/config"
	_ "tshirt-store/docs"
	"tshirt-store/middleware"
	"tshirt-store/models"
	"tshirt-store/routes"
)

// @title T-Shirt Store Gateway API
// @version 1.0
// @description Storefront gateway with tiered bulk pricing and optimistic cart sync
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {

	config.LoadConfig()

	if config.AppConfig.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	models.InitRedis()
	defer models.CloseRedis()

	deps, sessions := routes.BuildDeps()
	defer sessions.Close()

	router := gin.Default()
	router.Use(middleware.CORSMiddleware())
	routes.SetupRoutes(router, deps)

	port := ":" + config.AppConfig.Port
	server := &http.Server{Addr: port, Handler: router}

	go func() {
		log.Printf("Server starting on port %s", port)
		log.Printf("Environment: %s", config.AppConfig.AppEnv)
		log.Printf("Swagger UI: http://localhost:%s/swagger/index.html", config.AppConfig.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Shut down cleanly so pending cart syncs are not cut off mid-flight.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
}
