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

func CreateJump() fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, isAdmin, _, _ := helper.GetInfoUserFromToken(c)
		if !isAdmin {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
		}

		var input model.CreateJumpInput
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

		var user model.User
		if err := database.DB.First(&user, input.UserId).Error; err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "User does not exist", err, "userId")
		}
		var jumpType model.JumpType
		if err := database.DB.Where("id = ? AND is_available = ?", input.JumpTypeId, true).First(&jumpType).Error; err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Jump type does not exist or is unavailable", err, "jumpTypeId")
		}

		c.Locals("inputCreateJump", input)
		return c.Next()
	}
}

func EditJump(key string) fiber.Handler {
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

		var input model.UpdateJumpInput
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

		var jump model.Jump
		if err := database.DB.First(&jump, valueKey).Error; err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, "Jump does not exist", err, "jumpId")
		}
		if input.JumpTypeId != nil {
			var jumpType model.JumpType
			if err := database.DB.Where("id = ? AND is_available = ?", *input.JumpTypeId, true).First(&jumpType).Error; err != nil {
				return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Jump type does not exist or is unavailable", err, "jumpTypeId")
			}
		}

		c.Locals("inputEditJump", input)
		c.Locals("jumpId", uint(valueKey))
		return c.Next()
	}
}

func AssignJump(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := c.Params(key)
		valueKey, err := strconv.Atoi(params)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		_, isAdmin, isInstructor, _ := helper.GetInfoUserFromToken(c)
		if !isAdmin && !isInstructor {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_MANIFEST_ACCESS, errors.New("not permission"))
		}

		var input model.AssignJumpInput
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

		c.Locals("inputAssignJump", input)
		c.Locals("jumpId", uint(valueKey))
		return c.Next()
	}
}

func RemoveJump(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := c.Params(key)
		valueKey, err := strconv.Atoi(params)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		_, isAdmin, isInstructor, _ := helper.GetInfoUserFromToken(c)
		if !isAdmin && !isInstructor {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_MANIFEST_ACCESS, errors.New("not permission"))
		}

		var input model.RemoveJumpInput
		// Body is optional; default keeps the stored staff assignments.
		_ = c.BodyParser(&input)

		c.Locals("inputRemoveJump", input)
		c.Locals("jumpId", uint(valueKey))
		return c.Next()
	}
}

// DeleteJump only allows deleting jumps that are unassigned and have no
// dependents; everything else must go through remove first.
func DeleteJump(key string) fiber.Handler {
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

		var jump model.Jump
		if err := database.DB.First(&jump, valueKey).Error; err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, "Jump does not exist", err, "jumpId")
		}
		if jump.LoadId != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Jump is assigned to a load, remove it first", nil, "jumpId")
		}
		var childCount int64
		if err := database.DB.Model(&model.Jump{}).Where("parent_jump_id = ?", jump.ID).Count(&childCount).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		if childCount > 0 {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Jump still has dependent staff jumps", nil, "jumpId")
		}

		c.Locals("jumpId", uint(valueKey))
		return c.Next()
	}
}
