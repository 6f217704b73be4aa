package main

import (
	"log"

	"github.com/MrFrederic/opensky/config"
	"github.com/MrFrederic/opensky/database"
	"github.com/MrFrederic/opensky/helper"
	"github.com/MrFrederic/opensky/router"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.ConfigDefault("CORS_ORIGINS", "http://localhost:5173"),
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))

	database.ConnectDB()
	database.ConnectRedis()

	helper.StartLoadStatusScheduler()
	defer helper.StopLoadStatusScheduler()
	helper.StartTokenCleanupScheduler()
	defer helper.StopTokenCleanupScheduler()

	router.SetupRoutes(app)
	log.Fatal(app.Listen(":" + config.ConfigDefault("PORT", "8000")))
}
