package main

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"

	_ "Backend-Procure/docs"
	"Backend-Procure/src/database"
	"Backend-Procure/src/jobs"
	"Backend-Procure/src/routes"
	"Backend-Procure/src/seeder"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
)

func main() {
	if err := database.ConnectMongoDB(); err != nil {
		log.Fatalf("Error connecting to the database: %v", err)
	}
	database.InitRedis()
	database.InitAsynq()

	if os.Getenv("SEED_DEMO") == "true" {
		if err := seeder.SeedDemoData(context.Background()); err != nil {
			log.Fatalf("Error seeding demo data: %v", err)
		}
	}

	// background worker for signer notifications
	if database.RedisClient != nil {
		go jobs.StartWorker()
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)

	routes.InitRoutes(app)

	appURI := os.Getenv("APP_URI")
	if appURI == "" {
		appURI = "8888"
	}

	log.Println("Server is running on port " + appURI)
	if err := app.Listen(fmt.Sprintf(":%s", url.PathEscape(appURI))); err != nil {
		log.Fatal(err)
	}
}
