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

func GetAircraft(c *fiber.Ctx) error {
	var aircraft []model.Aircraft
	if err := database.DB.Order("name ASC").Find(&aircraft).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch aircraft", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, aircraft)
}

func GetAircraftById(c *fiber.Ctx) error {
	aircraftId := c.Locals("inputId").(uint)

	var aircraft model.Aircraft
	if err := database.DB.First(&aircraft, aircraftId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Aircraft not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, aircraft)
}

func CreateAircraft(c *fiber.Ctx) error {
	input, ok := c.Locals("inputCreateAircraft").(model.CreateAircraftInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}
	userInfo, _, _, _ := helper.GetInfoUserFromToken(c)

	aircraft := model.Aircraft{
		Name:        input.Name,
		Type:        input.Type,
		MaxLoad:     input.MaxLoad,
		IsAvailable: true,
		Audit:       model.Audit{CreatedBy: &userInfo.UserId},
	}
	if err := database.DB.Create(&aircraft).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create aircraft", err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, aircraft)
}

func EditAircraft(c *fiber.Ctx) error {
	input, ok := c.Locals("inputEditAircraft").(model.UpdateAircraftInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}
	aircraftId := c.Locals("aircraftId").(uint)
	userInfo, _, _, _ := helper.GetInfoUserFromToken(c)

	var aircraft model.Aircraft
	if err := database.DB.First(&aircraft, aircraftId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Aircraft not found", err)
	}

	if err := copier.CopyWithOption(&aircraft, &input, copier.Option{IgnoreEmpty: true}); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to apply changes", err)
	}
	if input.IsAvailable != nil {
		aircraft.IsAvailable = *input.IsAvailable
	}
	aircraft.UpdatedBy = &userInfo.UserId

	if err := database.DB.Save(&aircraft).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update aircraft", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, aircraft)
}

func DeleteAircraft(c *fiber.Ctx) error {
	aircraftId := c.Locals("inputId").(uint)
	_, isAdmin, _, _ := helper.GetInfoUserFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}

	var loadCount int64
	if err := database.DB.Model(&model.Load{}).Where("aircraft_id = ?", aircraftId).Count(&loadCount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if loadCount > 0 {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Aircraft still has loads, mark it unavailable instead", nil, "aircraftId")
	}

	if err := database.DB.Delete(&model.Aircraft{}, aircraftId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete aircraft", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Aircraft deleted successfully"})
}
