package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"tralli/cmd/fx/aifx"
	"tralli/cmd/fx/dbfx"
	"tralli/cmd/fx/ingestfx"
	"tralli/cmd/fx/queryfx"
	"tralli/internal/api/controllers"
	"tralli/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	app := fx.New(
		dbfx.Module,
		aifx.Module,
		queryfx.Module,
		ingestfx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	queryController *controllers.QueryController,
	citiesController *controllers.CitiesController,
	adminController *controllers.AdminController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, queryController, citiesController, adminController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	queryController *controllers.QueryController,
	citiesController *controllers.CitiesController,
	adminController *controllers.AdminController) {

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Yescity travel bot is running"})
	})
	r.GET("/cities", citiesController.ListSupportedCities)

	tralliGroup := r.Group("/tralli")
	tralliGroup.POST("/query", queryController.HandleQuery)

	adminGroup := r.Group("/admin")
	adminGroup.POST("/login", adminController.Login)

	protected := adminGroup.Group("",
		middleware.JWTAuthMiddleware(),
		middleware.RoleMiddleware("admin"))
	protected.POST("/ingest", adminController.Ingest)
	protected.POST("/upsert", adminController.Upsert)
}
