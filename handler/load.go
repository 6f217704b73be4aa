package handler

import (
	"errors"
	"fmt"
	"time"

	"github.com/MrFrederic/opensky/constants"
	"github.com/MrFrederic/opensky/database"
	"github.com/MrFrederic/opensky/helper"
	"github.com/MrFrederic/opensky/model"
	"github.com/MrFrederic/opensky/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

func GetLoads(c *fiber.Ctx) error {
	var filter model.FilterLoadInput
	if err := c.QueryParser(&filter); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query", err)
	}

	query := database.DB.Model(&model.Load{}).Preload("Aircraft")
	if filter.AircraftId > 0 {
		query = query.Where("aircraft_id = ?", filter.AircraftId)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.StartDate != "" {
		start, err := time.Parse("2006-01-02", filter.StartDate)
		if err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "startDate must be YYYY-MM-DD", err, "startDate")
		}
		query = query.Where("departure >= ?", start)
	}
	if filter.EndDate != "" {
		end, err := time.Parse("2006-01-02", filter.EndDate)
		if err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "endDate must be YYYY-MM-DD", err, "endDate")
		}
		query = query.Where("departure < ?", end.AddDate(0, 0, 1))
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to count loads", err)
	}

	var loads []model.Load
	if err := utils.ApplyPagination(query, filter.Limit, filter.Page).
		Order("departure ASC").
		Find(&loads).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch loads", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       loads,
		Limit:      filter.Limit,
		Page:       filter.Page,
		TotalCount: totalCount,
	})
}

func GetLoadById(c *fiber.Ctx) error {
	loadId := c.Locals("inputId").(uint)

	var load model.Load
	if err := database.DB.Preload("Aircraft").Preload("Jumps").First(&load, loadId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Load not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, load)
}

func CreateLoad(c *fiber.Ctx) error {
	input, ok := c.Locals("inputCreateLoad").(model.CreateLoadInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}
	userInfo, _, _, _ := helper.GetInfoUserFromToken(c)

	load := model.Load{
		Departure:      input.Departure,
		Status:         model.LoadForming,
		AircraftId:     input.AircraftId,
		ReservedSpaces: input.ReservedSpaces,
		Audit:          model.Audit{CreatedBy: &userInfo.UserId},
	}
	if err := database.DB.Create(&load).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create load", err)
	}

	database.DB.Preload("Aircraft").First(&load, load.ID)
	return utils.SuccessResponse(c, fiber.StatusCreated, load)
}

func EditLoad(c *fiber.Ctx) error {
	input, ok := c.Locals("inputEditLoad").(model.UpdateLoadInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}
	loadId := c.Locals("loadId").(uint)
	userInfo, _, _, _ := helper.GetInfoUserFromToken(c)

	var load model.Load
	if err := database.DB.First(&load, loadId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Load not found", err)
	}

	if err := copier.CopyWithOption(&load, &input, copier.Option{IgnoreEmpty: true}); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to apply changes", err)
	}
	load.UpdatedBy = &userInfo.UserId

	if err := database.DB.Save(&load).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update load", err)
	}

	database.DB.Preload("Aircraft").First(&load, load.ID)
	return utils.SuccessResponse(c, fiber.StatusOK, load)
}

func DeleteLoad(c *fiber.Ctx) error {
	loadId := c.Locals("inputId").(uint)
	_, isAdmin, _, _ := helper.GetInfoUserFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}

	var load model.Load
	if err := database.DB.First(&load, loadId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Load not found", err)
	}

	var jumpCount int64
	if err := database.DB.Model(&model.Jump{}).Where("load_id = ?", loadId).Count(&jumpCount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if jumpCount > 0 {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest,
			fmt.Sprintf("Load still has %d manifested jumps", jumpCount), nil, "loadId")
	}

	if err := database.DB.Delete(&load).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete load", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Load deleted successfully"})
}

// SetLoadStatus is the administrative direct-set; the scheduler owns the
// automatic forming -> on_call -> departed path.
func SetLoadStatus(c *fiber.Ctx) error {
	input, ok := c.Locals("inputLoadStatus").(model.LoadStatusInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}
	loadId := c.Locals("loadId").(uint)
	userInfo, _, _, _ := helper.GetInfoUserFromToken(c)

	var load model.Load
	if err := database.DB.First(&load, loadId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Load not found", err)
	}

	load.Status = model.LoadStatus(input.Status)
	load.UpdatedBy = &userInfo.UserId
	if err := database.DB.Save(&load).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update load status", err)
	}

	database.DB.Preload("Aircraft").First(&load, load.ID)
	return utils.SuccessResponse(c, fiber.StatusOK, load)
}

func SetReservedSpaces(c *fiber.Ctx) error {
	input, ok := c.Locals("inputReservedSpaces").(model.ReservedSpacesInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}
	loadId := c.Locals("loadId").(uint)
	userInfo, _, _, _ := helper.GetInfoUserFromToken(c)

	if err := database.DB.Model(&model.Load{}).Where("id = ?", loadId).
		Updates(map[string]interface{}{
			"reserved_spaces": input.ReservedSpaces,
			"updated_by":      userInfo.UserId,
		}).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update reserved spaces", err)
	}

	var load model.Load
	database.DB.Preload("Aircraft").First(&load, loadId)
	return utils.SuccessResponse(c, fiber.StatusOK, load)
}

// GetLoadSpaces recomputes occupancy from the live jump set on every
// call; nothing is cached on the load row.
func GetLoadSpaces(c *fiber.Ctx) error {
	loadId := c.Locals("inputId").(uint)

	var load model.Load
	if err := database.DB.Preload("Aircraft").First(&load, loadId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Load not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var jumps []model.Jump
	if err := database.DB.Where("load_id = ?", loadId).Find(&jumps).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, helper.CalculateSpaces(&load, jumps))
}

func GetLoadJumps(c *fiber.Ctx) error {
	loadId := c.Locals("inputId").(uint)

	var load model.Load
	if err := database.DB.First(&load, loadId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Load not found", err)
	}

	var jumps []model.Jump
	if err := database.DB.
		Preload("User").
		Preload("JumpType.AdditionalStaff").
		Where("load_id = ?", loadId).
		Order("created_at ASC").
		Find(&jumps).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch jumps", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, jumps)
}
