package handler

import (
	"time"

	"github.com/MrFrederic/opensky/database"
	"github.com/MrFrederic/opensky/helper"
	"github.com/MrFrederic/opensky/model"
	"github.com/MrFrederic/opensky/utils"

	"github.com/gofiber/fiber/v2"
)

// GetManifest builds the board in one response: every visible load with
// live space figures, the selected load's jump set and the unassigned
// queue. The frontend polls this endpoint.
func GetManifest(c *fiber.Ctx) error {
	var filter model.FilterManifestInput
	if err := c.QueryParser(&filter); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query", err)
	}

	hideOld := true
	if filter.HideOldLoads != nil {
		hideOld = *filter.HideOldLoads
	}

	query := database.DB.Model(&model.Load{}).Preload("Aircraft")
	if hideOld {
		now := time.Now()
		startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		query = query.Where("departure >= ?", startOfDay)
	}
	if filter.AircraftId > 0 {
		query = query.Where("aircraft_id = ?", filter.AircraftId)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var loads []model.Load
	if err := query.Order("departure ASC").Find(&loads).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch loads", err)
	}

	loadIds := make([]uint, 0, len(loads))
	for _, load := range loads {
		loadIds = append(loadIds, load.ID)
	}

	// One pass over all jumps of the visible loads keeps the space
	// figures consistent with each other.
	jumpsByLoad := map[uint][]model.Jump{}
	if len(loadIds) > 0 {
		var assigned []model.Jump
		if err := database.DB.
			Preload("User").
			Preload("JumpType.AdditionalStaff").
			Where("load_id IN ?", loadIds).
			Order("created_at ASC").
			Find(&assigned).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch jumps", err)
		}
		for _, jump := range assigned {
			jumpsByLoad[*jump.LoadId] = append(jumpsByLoad[*jump.LoadId], jump)
		}
	}

	response := model.ManifestResponse{
		Loads:             make([]model.LoadSummary, 0, len(loads)),
		SelectedLoadJumps: []model.JumpSummary{},
		UnassignedJumps:   []model.JumpSummary{},
	}

	var selected *model.Load
	for i := range loads {
		load := &loads[i]
		spaces := helper.CalculateSpaces(load, jumpsByLoad[load.ID])
		response.Loads = append(response.Loads, model.LoadSummary{
			Id:                      load.ID,
			IndexNumber:             i + 1,
			AircraftId:              load.AircraftId,
			AircraftName:            load.Aircraft.Name,
			TotalSpaces:             spaces.TotalSpaces,
			RemainingPublicSpaces:   spaces.RemainingPublic,
			RemainingReservedSpaces: spaces.RemainingReserved,
			Departure:               load.Departure,
			Status:                  load.Status,
			ReservedSpaces:          load.ReservedSpaces,
		})

		if filter.SelectedLoadId > 0 {
			if load.ID == filter.SelectedLoadId {
				selected = load
			}
		} else if selected == nil && load.Status != model.LoadDeparted {
			// Default selection: the first load still open for boarding.
			selected = load
		}
	}

	if selected != nil {
		response.SelectedLoad = &selected.ID
		for _, jump := range jumpsByLoad[selected.ID] {
			response.SelectedLoadJumps = append(response.SelectedLoadJumps, summarizeJump(jump))
		}
	}

	var unassigned []model.Jump
	if err := database.DB.
		Preload("User").
		Preload("JumpType.AdditionalStaff").
		Where("load_id IS NULL AND is_manifested = ? AND parent_jump_id IS NULL", true).
		Order("created_at ASC").
		Find(&unassigned).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch unassigned jumps", err)
	}
	for _, jump := range unassigned {
		response.UnassignedJumps = append(response.UnassignedJumps, summarizeJump(jump))
	}

	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

func summarizeJump(jump model.Jump) model.JumpSummary {
	staff := make([]model.AdditionalStaffSummary, 0, len(jump.JumpType.AdditionalStaff))
	for _, req := range jump.JumpType.AdditionalStaff {
		staff = append(staff, model.AdditionalStaffSummary{
			Id:                     req.ID,
			StaffRequiredRole:      req.StaffRequiredRole,
			StaffDefaultJumpTypeId: req.StaffDefaultJumpTypeId,
		})
	}
	return model.JumpSummary{
		Id:               jump.ID,
		UserId:           jump.UserId,
		UserName:         jump.User.FirstName + " " + jump.User.LastName,
		JumpTypeName:     jump.JumpType.Name,
		Reserved:         jump.Reserved,
		ParentJumpId:     jump.ParentJumpId,
		LoadId:           jump.LoadId,
		StaffAssignments: jump.StaffAssignments,
		JumpType: &model.JumpTypeSummary{
			Id:              jump.JumpType.ID,
			Name:            jump.JumpType.Name,
			ShortName:       jump.JumpType.ShortName,
			AdditionalStaff: staff,
		},
	}
}
