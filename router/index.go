package router

import (
	"github.com/MrFrederic/opensky/handler"
	"github.com/MrFrederic/opensky/middleware"
	"github.com/MrFrederic/opensky/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	auth := v1.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Post("/refresh-token", handler.RefreshToken)
	auth.Post("/logout", handler.Logout)
	auth.Get("/me", middleware.Protected(), handler.Me)

	user := v1.Group("/users", logger.New())
	user.Get("/", middleware.Protected(), handler.GetUsers)
	user.Get("/:userId", middleware.Protected(), validate.GetById("userId"), handler.GetUserById)
	user.Post("/", middleware.Protected(), validate.CreateUser(), handler.CreateUser)

	aircraft := v1.Group("/aircraft", logger.New())
	aircraft.Get("/", middleware.Protected(), handler.GetAircraft)
	aircraft.Get("/:aircraftId", middleware.Protected(), validate.GetById("aircraftId"), handler.GetAircraftById)
	aircraft.Post("/", middleware.Protected(), validate.CreateAircraft(), handler.CreateAircraft)
	aircraft.Put("/:aircraftId", middleware.Protected(), validate.EditAircraft("aircraftId"), handler.EditAircraft)
	aircraft.Delete("/:aircraftId", middleware.Protected(), validate.GetById("aircraftId"), handler.DeleteAircraft)

	jumpType := v1.Group("/jump-types", logger.New())
	jumpType.Get("/", middleware.Protected(), handler.GetJumpTypes)
	jumpType.Get("/:jumpTypeId", middleware.Protected(), validate.GetById("jumpTypeId"), handler.GetJumpTypeById)
	jumpType.Post("/", middleware.Protected(), validate.CreateJumpType(), handler.CreateJumpType)
	jumpType.Put("/:jumpTypeId", middleware.Protected(), validate.EditJumpType("jumpTypeId"), handler.EditJumpType)
	jumpType.Delete("/:jumpTypeId", middleware.Protected(), validate.GetById("jumpTypeId"), handler.DeleteJumpType)

	load := v1.Group("/loads", logger.New())
	load.Get("/", middleware.Protected(), handler.GetLoads)
	load.Get("/:loadId", middleware.Protected(), validate.GetById("loadId"), handler.GetLoadById)
	load.Post("/", middleware.Protected(), validate.CreateLoad(), handler.CreateLoad)
	load.Put("/:loadId", middleware.Protected(), validate.EditLoad("loadId"), handler.EditLoad)
	load.Delete("/:loadId", middleware.Protected(), validate.GetById("loadId"), handler.DeleteLoad)
	load.Patch("/:loadId/status", middleware.Protected(), validate.SetLoadStatus("loadId"), handler.SetLoadStatus)
	load.Patch("/:loadId/reserved-spaces", middleware.Protected(), validate.SetReservedSpaces("loadId"), handler.SetReservedSpaces)
	load.Get("/:loadId/spaces", middleware.Protected(), validate.GetById("loadId"), handler.GetLoadSpaces)
	load.Get("/:loadId/jumps", middleware.Protected(), validate.GetById("loadId"), handler.GetLoadJumps)

	jump := v1.Group("/jumps", logger.New())
	jump.Get("/", middleware.Protected(), handler.GetJumps)
	jump.Get("/:jumpId", middleware.Protected(), validate.GetById("jumpId"), handler.GetJumpById)
	jump.Post("/", middleware.Protected(), validate.CreateJump(), handler.CreateJump)
	jump.Put("/:jumpId", middleware.Protected(), validate.EditJump("jumpId"), handler.EditJump)
	jump.Delete("/:jumpId", middleware.Protected(), validate.DeleteJump("jumpId"), handler.DeleteJump)
	jump.Post("/:jumpId/assign", middleware.Protected(), validate.AssignJump("jumpId"), handler.AssignJumpToLoad)
	jump.Post("/:jumpId/remove", middleware.Protected(), validate.RemoveJump("jumpId"), handler.RemoveJumpFromLoad)

	manifest := v1.Group("/manifest", logger.New())
	manifest.Get("/", middleware.Protected(), handler.GetManifest)
}
