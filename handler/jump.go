package handler

import (
	"errors"

	"github.com/MrFrederic/opensky/constants"
	"github.com/MrFrederic/opensky/database"
	"github.com/MrFrederic/opensky/helper"
	"github.com/MrFrederic/opensky/model"
	"github.com/MrFrederic/opensky/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

// manifestErrorStatus maps the manifest engine sentinels onto HTTP codes.
func manifestErrorStatus(err error) int {
	switch {
	case errors.Is(err, helper.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, helper.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, helper.ErrValidation):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func GetJumps(c *fiber.Ctx) error {
	var filter model.FilterJumpInput
	if err := c.QueryParser(&filter); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query", err)
	}

	query := database.DB.Model(&model.Jump{}).
		Preload("User").
		Preload("JumpType")
	if filter.UserId > 0 {
		query = query.Where("user_id = ?", filter.UserId)
	}
	if filter.JumpTypeId > 0 {
		query = query.Where("jump_type_id = ?", filter.JumpTypeId)
	}
	if filter.LoadId > 0 {
		query = query.Where("load_id = ?", filter.LoadId)
	}
	if filter.IsManifested != nil {
		query = query.Where("is_manifested = ?", *filter.IsManifested)
	}
	if filter.HasLoad != nil {
		if *filter.HasLoad {
			query = query.Where("load_id IS NOT NULL")
		} else {
			query = query.Where("load_id IS NULL")
		}
	}
	if filter.HasParent != nil {
		if *filter.HasParent {
			query = query.Where("parent_jump_id IS NOT NULL")
		} else {
			query = query.Where("parent_jump_id IS NULL")
		}
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to count jumps", err)
	}

	var jumps []model.Jump
	if err := utils.ApplyPagination(query, filter.Limit, filter.Page).
		Order("created_at DESC").
		Find(&jumps).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch jumps", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       jumps,
		Limit:      filter.Limit,
		Page:       filter.Page,
		TotalCount: totalCount,
	})
}

func GetJumpById(c *fiber.Ctx) error {
	jumpId := c.Locals("inputId").(uint)

	var jump model.Jump
	if err := database.DB.
		Preload("User").
		Preload("JumpType.AdditionalStaff").
		Preload("Load").
		First(&jump, jumpId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Jump not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, jump)
}

func CreateJump(c *fiber.Ctx) error {
	input, ok := c.Locals("inputCreateJump").(model.CreateJumpInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}
	userInfo, _, _, _ := helper.GetInfoUserFromToken(c)

	jump := model.Jump{
		UserId:     input.UserId,
		JumpTypeId: input.JumpTypeId,
		Comment:    input.Comment,
		Audit:      model.Audit{CreatedBy: &userInfo.UserId},
	}
	if err := database.DB.Create(&jump).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create jump", err)
	}

	database.DB.Preload("User").Preload("JumpType").First(&jump, jump.ID)
	return utils.SuccessResponse(c, fiber.StatusCreated, jump)
}

func EditJump(c *fiber.Ctx) error {
	input, ok := c.Locals("inputEditJump").(model.UpdateJumpInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}
	jumpId := c.Locals("jumpId").(uint)
	userInfo, _, _, _ := helper.GetInfoUserFromToken(c)

	var jump model.Jump
	if err := database.DB.First(&jump, jumpId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Jump not found", err)
	}

	if err := copier.CopyWithOption(&jump, &input, copier.Option{IgnoreEmpty: true}); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to apply changes", err)
	}
	jump.UpdatedBy = &userInfo.UserId

	if err := database.DB.Omit("User", "JumpType", "Load").Save(&jump).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update jump", err)
	}

	database.DB.Preload("User").Preload("JumpType").First(&jump, jump.ID)
	return utils.SuccessResponse(c, fiber.StatusOK, jump)
}

func DeleteJump(c *fiber.Ctx) error {
	jumpId := c.Locals("jumpId").(uint)

	if err := database.DB.Delete(&model.Jump{}, jumpId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete jump", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Jump deleted successfully"})
}

func AssignJumpToLoad(c *fiber.Ctx) error {
	input, ok := c.Locals("inputAssignJump").(model.AssignJumpInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}
	jumpId := c.Locals("jumpId").(uint)
	userInfo, _, _, _ := helper.GetInfoUserFromToken(c)

	result, err := helper.AssignJumpToLoad(database.DB, jumpId, input, userInfo.UserId)
	if err != nil {
		return utils.ErrorResponse(c, manifestErrorStatus(err), err.Error(), err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, result)
}

func RemoveJumpFromLoad(c *fiber.Ctx) error {
	input, _ := c.Locals("inputRemoveJump").(model.RemoveJumpInput)
	jumpId := c.Locals("jumpId").(uint)
	userInfo, _, _, _ := helper.GetInfoUserFromToken(c)

	result, err := helper.RemoveJumpFromLoad(database.DB, jumpId, userInfo.UserId, input.ClearStaffAssignments)
	if err != nil {
		return utils.ErrorResponse(c, manifestErrorStatus(err), err.Error(), err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, result)
}
