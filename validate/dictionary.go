package validate

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/MrFrederic/opensky/constants"
	"github.com/MrFrederic/opensky/database"
	"github.com/MrFrederic/opensky/helper"
	"github.com/MrFrederic/opensky/model"
	"github.com/MrFrederic/opensky/utils"

	"github.com/gofiber/fiber/v2"
)

func adminOnlyBody[T any](c *fiber.Ctx, localsKey string) error {
	_, isAdmin, _, _ := helper.GetInfoUserFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}

	var input T
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Invalid input %s", err.Error()),
		})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Locals(localsKey, input)
	return c.Next()
}

func CreateAircraft() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return adminOnlyBody[model.CreateAircraftInput](c, "inputCreateAircraft")
	}
}

func EditAircraft(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := c.Params(key)
		valueKey, err := strconv.Atoi(params)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}
		var aircraft model.Aircraft
		if err := database.DB.First(&aircraft, valueKey).Error; err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, "Aircraft does not exist", err, "aircraftId")
		}
		c.Locals("aircraftId", uint(valueKey))
		return adminOnlyBody[model.UpdateAircraftInput](c, "inputEditAircraft")
	}
}

func CreateJumpType() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return adminOnlyBody[model.CreateJumpTypeInput](c, "inputCreateJumpType")
	}
}

func EditJumpType(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := c.Params(key)
		valueKey, err := strconv.Atoi(params)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}
		var jumpType model.JumpType
		if err := database.DB.First(&jumpType, valueKey).Error; err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, "Jump type does not exist", err, "jumpTypeId")
		}
		c.Locals("jumpTypeId", uint(valueKey))
		return adminOnlyBody[model.UpdateJumpTypeInput](c, "inputEditJumpType")
	}
}

func CreateUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return adminOnlyBody[model.CreateUserInput](c, "inputCreateUser")
	}
}
