package helper

import (
	"errors"
	"fmt"

	"github.com/MrFrederic/opensky/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Error kinds surfaced by the manifest engine. Handlers translate them
// to 404/409/400; everything else is a server error.
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation failed")
)

// AssignJumpToLoad puts a jump (and the staff jumps its type requires)
// onto a load inside one transaction. Capacity is advisory: a shortfall
// in the requested pool produces a warning on the result, never an
// error. Re-assignment of an already-manifested jump is allowed and
// rebuilds its dependent set.
func AssignJumpToLoad(db *gorm.DB, jumpId uint, input model.AssignJumpInput, actorId uint) (model.AssignResult, error) {
	var result model.AssignResult

	err := db.Transaction(func(tx *gorm.DB) error {
		var jump model.Jump
		if err := tx.Preload("User").Preload("JumpType.AdditionalStaff").First(&jump, jumpId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: jump %d", ErrNotFound, jumpId)
			}
			return err
		}

		var load model.Load
		if err := tx.Preload("Aircraft").First(&load, input.LoadId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: load %d", ErrNotFound, input.LoadId)
			}
			return err
		}

		// One jump per user per load; moving a jump onto its own load
		// again is fine.
		var userInLoad int64
		if err := tx.Model(&model.Jump{}).
			Where("user_id = ? AND load_id = ? AND id <> ?", jump.UserId, load.ID, jump.ID).
			Count(&userInLoad).Error; err != nil {
			return err
		}
		if userInLoad > 0 {
			return fmt.Errorf("%w: user %d already has a jump in load %d", ErrConflict, jump.UserId, load.ID)
		}

		// Dependents only exist while their parent sits on a load, so a
		// re-assignment (same load or a move) always drops the old set
		// before the new one is computed.
		if jump.LoadId != nil {
			if err := tx.Where("parent_jump_id = ?", jump.ID).Delete(&model.Jump{}).Error; err != nil {
				return err
			}
		}

		// Occupancy excludes the jump being (re-)assigned so it can move
		// within the same load.
		var loadJumps []model.Jump
		if err := tx.Where("load_id = ? AND id <> ?", load.ID, jump.ID).Find(&loadJumps).Error; err != nil {
			return err
		}
		spaces := CalculateSpaces(&load, loadJumps)

		staffRequired := jump.JumpType.AdditionalStaff
		requiredSpaces := 1 + len(staffRequired)

		var warning string
		if input.Reserved {
			if spaces.RemainingReserved < requiredSpaces {
				warning = fmt.Sprintf("load has only %d available reserved spaces but %d are needed", spaces.RemainingReserved, requiredSpaces)
			}
		} else {
			if spaces.RemainingPublic < requiredSpaces {
				warning = fmt.Sprintf("load has only %d available public spaces but %d are needed", spaces.RemainingPublic, requiredSpaces)
			}
		}

		// Resolve every staff seat before touching the primary jump so a
		// rejected assignment leaves no partial rows behind.
		type staffPlan struct {
			requirement model.AdditionalStaff
			userId      uint
		}
		var plans []staffPlan
		for _, requirement := range staffRequired {
			staffUserId, ok := input.StaffAssignments[requirement.ID]
			if !ok || staffUserId == 0 {
				if !jump.IsManifested {
					return fmt.Errorf("%w: staff user required for role %s", ErrValidation, requirement.StaffRequiredRole)
				}
				// Moving an already-manifested jump without re-supplying
				// this seat: the dependent is simply not recreated.
				continue
			}

			var staffUser model.User
			if err := tx.First(&staffUser, staffUserId).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: staff user %d", ErrNotFound, staffUserId)
				}
				return err
			}
			if staffUserId == jump.UserId {
				return fmt.Errorf("%w: staff user %d is the manifested jumper", ErrConflict, staffUserId)
			}

			var staffInLoad int64
			if err := tx.Model(&model.Jump{}).
				Where("user_id = ? AND load_id = ? AND reserved = ? AND id <> ?", staffUserId, load.ID, input.Reserved, jump.ID).
				Count(&staffInLoad).Error; err != nil {
				return err
			}
			if staffInLoad > 0 {
				return fmt.Errorf("%w: staff user %d already has a jump in load %d", ErrConflict, staffUserId, load.ID)
			}

			// The occupancy query above cannot see seats resolved earlier
			// in this loop, so the same user filling two seats of one jump
			// type has to be caught against the plan itself.
			for _, planned := range plans {
				if planned.userId == staffUserId {
					return fmt.Errorf("%w: staff user %d supplied for multiple staff seats", ErrConflict, staffUserId)
				}
			}

			plans = append(plans, staffPlan{requirement: requirement, userId: staffUserId})
		}

		jump.LoadId = &load.ID
		jump.IsManifested = true
		jump.Reserved = input.Reserved
		jump.StaffAssignments = input.StaffAssignments
		jump.UpdatedBy = &actorId
		if load.Status == model.LoadDeparted {
			// Assigning onto an already-departed load stamps the jump
			// immediately; the scheduler never backfills this.
			jump.JumpDate = &load.Departure
		} else {
			jump.JumpDate = nil
		}
		if err := tx.Omit(clause.Associations).Save(&jump).Error; err != nil {
			return err
		}

		result.AssignedJumpIds = []uint{jump.ID}
		for _, plan := range plans {
			staffJumpTypeId := jump.JumpTypeId
			if plan.requirement.StaffDefaultJumpTypeId != nil {
				staffJumpTypeId = *plan.requirement.StaffDefaultJumpTypeId
			}
			staffJump := model.Jump{
				UserId:       plan.userId,
				JumpTypeId:   staffJumpTypeId,
				IsManifested: true,
				LoadId:       &load.ID,
				Reserved:     input.Reserved,
				ParentJumpId: &jump.ID,
				Comment:      fmt.Sprintf("Staff for %s %s", jump.User.FirstName, jump.User.LastName),
				JumpDate:     jump.JumpDate,
				Audit:        model.Audit{CreatedBy: &actorId},
			}
			if err := tx.Omit(clause.Associations).Create(&staffJump).Error; err != nil {
				return err
			}
			result.AssignedJumpIds = append(result.AssignedJumpIds, staffJump.ID)
		}

		result.Warning = warning
		return nil
	})
	if err != nil {
		return model.AssignResult{}, err
	}
	return result, nil
}

// RemoveJumpFromLoad detaches a jump and deletes its dependent staff
// jumps. The staff assignment map is retained unless the caller asks to
// clear it, so the whole group can be moved to another load without
// re-entering staff.
func RemoveJumpFromLoad(db *gorm.DB, jumpId uint, actorId uint, clearStaffAssignments bool) (model.RemoveResult, error) {
	var result model.RemoveResult

	err := db.Transaction(func(tx *gorm.DB) error {
		var jump model.Jump
		if err := tx.First(&jump, jumpId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: jump %d", ErrNotFound, jumpId)
			}
			return err
		}

		if jump.LoadId == nil {
			return fmt.Errorf("%w: jump %d is not assigned to any load", ErrValidation, jumpId)
		}

		var childIds []uint
		if err := tx.Model(&model.Jump{}).Where("parent_jump_id = ?", jump.ID).Pluck("id", &childIds).Error; err != nil {
			return err
		}
		if len(childIds) > 0 {
			if err := tx.Where("parent_jump_id = ?", jump.ID).Delete(&model.Jump{}).Error; err != nil {
				return err
			}
		}

		jump.LoadId = nil
		jump.Reserved = false
		jump.JumpDate = nil
		jump.IsManifested = true
		jump.UpdatedBy = &actorId
		if clearStaffAssignments {
			jump.StaffAssignments = nil
		}
		if err := tx.Omit(clause.Associations).Save(&jump).Error; err != nil {
			return err
		}

		result.RemovedJumpIds = append([]uint{jump.ID}, childIds...)
		return nil
	})
	if err != nil {
		return model.RemoveResult{}, err
	}
	return result, nil
}
