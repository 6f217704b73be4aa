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

func GetJumpTypes(c *fiber.Ctx) error {
	var jumpTypes []model.JumpType
	if err := database.DB.Preload("AdditionalStaff").Order("name ASC").Find(&jumpTypes).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch jump types", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, jumpTypes)
}

func GetJumpTypeById(c *fiber.Ctx) error {
	jumpTypeId := c.Locals("inputId").(uint)

	var jumpType model.JumpType
	if err := database.DB.Preload("AdditionalStaff").First(&jumpType, jumpTypeId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Jump type not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, jumpType)
}

func CreateJumpType(c *fiber.Ctx) error {
	input, ok := c.Locals("inputCreateJumpType").(model.CreateJumpTypeInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}
	userInfo, _, _, _ := helper.GetInfoUserFromToken(c)

	jumpType := model.JumpType{
		Name:         input.Name,
		ShortName:    input.ShortName,
		Description:  input.Description,
		ExitAltitude: input.ExitAltitude,
		Price:        input.Price,
		IsAvailable:  true,
		Audit:        model.Audit{CreatedBy: &userInfo.UserId},
	}
	for _, req := range input.AdditionalStaff {
		jumpType.AdditionalStaff = append(jumpType.AdditionalStaff, model.AdditionalStaff{
			StaffRequiredRole:      model.UserRole(req.StaffRequiredRole),
			StaffDefaultJumpTypeId: req.StaffDefaultJumpTypeId,
		})
	}

	if err := database.DB.Create(&jumpType).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create jump type", err)
	}

	database.DB.Preload("AdditionalStaff").First(&jumpType, jumpType.ID)
	return utils.SuccessResponse(c, fiber.StatusCreated, jumpType)
}

func EditJumpType(c *fiber.Ctx) error {
	input, ok := c.Locals("inputEditJumpType").(model.UpdateJumpTypeInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}
	jumpTypeId := c.Locals("jumpTypeId").(uint)
	userInfo, _, _, _ := helper.GetInfoUserFromToken(c)

	var jumpType model.JumpType
	if err := database.DB.First(&jumpType, jumpTypeId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Jump type not found", err)
	}

	if err := copier.CopyWithOption(&jumpType, &input, copier.Option{IgnoreEmpty: true}); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to apply changes", err)
	}
	if input.IsAvailable != nil {
		jumpType.IsAvailable = *input.IsAvailable
	}
	jumpType.UpdatedBy = &userInfo.UserId

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("AdditionalStaff").Save(&jumpType).Error; err != nil {
			return err
		}
		if input.AdditionalStaff == nil {
			return nil
		}
		// Staff requirements are replaced wholesale, never patched.
		if err := tx.Where("jump_type_id = ?", jumpType.ID).Delete(&model.AdditionalStaff{}).Error; err != nil {
			return err
		}
		for _, req := range input.AdditionalStaff {
			staff := model.AdditionalStaff{
				JumpTypeId:             jumpType.ID,
				StaffRequiredRole:      model.UserRole(req.StaffRequiredRole),
				StaffDefaultJumpTypeId: req.StaffDefaultJumpTypeId,
			}
			if err := tx.Create(&staff).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update jump type", err)
	}

	database.DB.Preload("AdditionalStaff").First(&jumpType, jumpType.ID)
	return utils.SuccessResponse(c, fiber.StatusOK, jumpType)
}

func DeleteJumpType(c *fiber.Ctx) error {
	jumpTypeId := c.Locals("inputId").(uint)
	_, isAdmin, _, _ := helper.GetInfoUserFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}

	var jumpCount int64
	if err := database.DB.Model(&model.Jump{}).Where("jump_type_id = ?", jumpTypeId).Count(&jumpCount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if jumpCount > 0 {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Jump type is in use, mark it unavailable instead", nil, "jumpTypeId")
	}

	if err := database.DB.Select("AdditionalStaff").Delete(&model.JumpType{DTO: model.DTO{ID: jumpTypeId}}).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete jump type", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Jump type deleted successfully"})
}
