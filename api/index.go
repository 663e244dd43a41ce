package api

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"tshirt-store/config"
	"tshirt-store/middleware"
	"tshirt-store/models"
	"tshirt-store/routes"
)

var (
	router *gin.Engine
	once   sync.Once
)

func initApp() {
	once.Do(func() {
		gin.SetMode(gin.ReleaseMode)

		config.LoadConfig()
		models.InitRedis()

		router = gin.New()
		router.Use(gin.Recovery())
		router.Use(middleware.CORSMiddleware())

		deps, _ := routes.BuildDeps()
		routes.SetupRoutes(router, deps)
	})
}

func Handler(w http.ResponseWriter, r *http.Request) {
	initApp()
	router.ServeHTTP(w, r)
}
