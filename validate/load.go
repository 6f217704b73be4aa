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

func CreateLoad() fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, isAdmin, _, _ := helper.GetInfoUserFromToken(c)
		if !isAdmin {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
		}

		var input model.CreateLoadInput
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

		var aircraft model.Aircraft
		if err := database.DB.Where("id = ? AND is_available = ?", input.AircraftId, true).First(&aircraft).Error; err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Aircraft does not exist or is unavailable", err, "aircraftId")
		}
		if input.ReservedSpaces > aircraft.MaxLoad {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest,
				fmt.Sprintf("Reserved spaces cannot exceed aircraft capacity (%d)", aircraft.MaxLoad),
				nil, "reservedSpaces")
		}

		c.Locals("inputCreateLoad", input)
		return c.Next()
	}
}

func EditLoad(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := c.Params(key)
		valueKey, err := strconv.Atoi(params)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		_, isAdmin, _, _ := helper.GetInfoUserFromToken(c)
		if !isAdmin {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
		}

		var input model.UpdateLoadInput
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

		var load model.Load
		if err := database.DB.First(&load, valueKey).Error; err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, "Load does not exist", err, "loadId")
		}
		if input.AircraftId != nil {
			var aircraft model.Aircraft
			if err := database.DB.Where("id = ? AND is_available = ?", *input.AircraftId, true).First(&aircraft).Error; err != nil {
				return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Aircraft does not exist or is unavailable", err, "aircraftId")
			}
			if load.ReservedSpaces > aircraft.MaxLoad {
				return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest,
					fmt.Sprintf("Load reserves %d spaces but the new aircraft only has %d", load.ReservedSpaces, aircraft.MaxLoad),
					nil, "aircraftId")
			}
		}

		c.Locals("inputEditLoad", input)
		c.Locals("loadId", uint(valueKey))
		return c.Next()
	}
}

func SetLoadStatus(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := c.Params(key)
		valueKey, err := strconv.Atoi(params)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		_, isAdmin, _, _ := helper.GetInfoUserFromToken(c)
		if !isAdmin {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
		}

		var input model.LoadStatusInput
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

		c.Locals("inputLoadStatus", input)
		c.Locals("loadId", uint(valueKey))
		return c.Next()
	}
}

// SetReservedSpaces rejects negative values and values above the
// aircraft capacity before the handler runs.
func SetReservedSpaces(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := c.Params(key)
		valueKey, err := strconv.Atoi(params)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		_, isAdmin, _, _ := helper.GetInfoUserFromToken(c)
		if !isAdmin {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
		}

		var input model.ReservedSpacesInput
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Invalid input %s", err.Error()),
			})
		}

		var load model.Load
		if err := database.DB.Preload("Aircraft").First(&load, valueKey).Error; err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, "Load does not exist", err, "loadId")
		}
		if input.ReservedSpaces < 0 {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Reserved spaces cannot be negative", nil, "reservedSpaces")
		}
		if input.ReservedSpaces > load.Aircraft.MaxLoad {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest,
				fmt.Sprintf("Reserved spaces cannot exceed aircraft capacity (%d)", load.Aircraft.MaxLoad),
				nil, "reservedSpaces")
		}

		c.Locals("inputReservedSpaces", input)
		c.Locals("loadId", uint(valueKey))
		return c.Next()
	}
}
