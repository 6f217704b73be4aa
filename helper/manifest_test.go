package helper

import (
	"testing"
	"time"

	"github.com/MrFrederic/opensky/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const actorId uint = 99

func TestAssignJumpToLoad_CreatesStaffJumps(t *testing.T) {
	db := newTestDB(t)

	jumper := createUser(t, db, "jumper", model.RoleTandemJumper)
	instructor := createUser(t, db, "instructor", model.RoleTandemInstructor)
	aircraft := createAircraft(t, db, 15)
	sportType := createJumpType(t, db, "Sport")
	tandemType := createJumpType(t, db, "Tandem", model.AdditionalStaff{
		StaffRequiredRole:      model.RoleTandemInstructor,
		StaffDefaultJumpTypeId: &sportType.ID,
	})
	load := createLoad(t, db, aircraft.ID, time.Now().Add(time.Hour), model.LoadForming, 0)
	jump := createJump(t, db, jumper.ID, tandemType.ID)

	requirementId := tandemType.AdditionalStaff[0].ID
	result, err := AssignJumpToLoad(db, jump.ID, model.AssignJumpInput{
		LoadId:           load.ID,
		StaffAssignments: model.StaffAssignmentMap{requirementId: instructor.ID},
	}, actorId)
	require.NoError(t, err)
	require.Len(t, result.AssignedJumpIds, 2)
	assert.Empty(t, result.Warning)

	var primary model.Jump
	require.NoError(t, db.First(&primary, jump.ID).Error)
	require.NotNil(t, primary.LoadId)
	assert.Equal(t, load.ID, *primary.LoadId)
	assert.True(t, primary.IsManifested)
	assert.Equal(t, instructor.ID, primary.StaffAssignments[requirementId])
	assert.Nil(t, primary.JumpDate)

	var staffJump model.Jump
	require.NoError(t, db.First(&staffJump, result.AssignedJumpIds[1]).Error)
	assert.Equal(t, instructor.ID, staffJump.UserId)
	assert.Equal(t, sportType.ID, staffJump.JumpTypeId)
	require.NotNil(t, staffJump.ParentJumpId)
	assert.Equal(t, jump.ID, *staffJump.ParentJumpId)
	require.NotNil(t, staffJump.LoadId)
	assert.Equal(t, load.ID, *staffJump.LoadId)
	assert.True(t, staffJump.IsManifested)
	assert.Equal(t, "Staff for Test jumper", staffJump.Comment)
}

func TestAssignJumpToLoad_StaffInheritsParentTypeWithoutDefault(t *testing.T) {
	db := newTestDB(t)

	jumper := createUser(t, db, "jumper")
	instructor := createUser(t, db, "instructor", model.RoleAffInstructor)
	aircraft := createAircraft(t, db, 15)
	affType := createJumpType(t, db, "AFF", model.AdditionalStaff{
		StaffRequiredRole: model.RoleAffInstructor,
	})
	load := createLoad(t, db, aircraft.ID, time.Now().Add(time.Hour), model.LoadForming, 0)
	jump := createJump(t, db, jumper.ID, affType.ID)

	result, err := AssignJumpToLoad(db, jump.ID, model.AssignJumpInput{
		LoadId:           load.ID,
		StaffAssignments: model.StaffAssignmentMap{affType.AdditionalStaff[0].ID: instructor.ID},
	}, actorId)
	require.NoError(t, err)
	require.Len(t, result.AssignedJumpIds, 2)

	var staffJump model.Jump
	require.NoError(t, db.First(&staffJump, result.AssignedJumpIds[1]).Error)
	assert.Equal(t, affType.ID, staffJump.JumpTypeId)
}

func TestAssignJumpToLoad_MissingStaffOnFreshJump(t *testing.T) {
	db := newTestDB(t)

	jumper := createUser(t, db, "jumper")
	aircraft := createAircraft(t, db, 15)
	tandemType := createJumpType(t, db, "Tandem", model.AdditionalStaff{
		StaffRequiredRole: model.RoleTandemInstructor,
	})
	load := createLoad(t, db, aircraft.ID, time.Now().Add(time.Hour), model.LoadForming, 0)
	jump := createJump(t, db, jumper.ID, tandemType.ID)

	_, err := AssignJumpToLoad(db, jump.ID, model.AssignJumpInput{LoadId: load.ID}, actorId)
	require.ErrorIs(t, err, ErrValidation)

	// Nothing landed on the load.
	var count int64
	require.NoError(t, db.Model(&model.Jump{}).Where("load_id = ?", load.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAssignJumpToLoad_StaffIsTheJumper(t *testing.T) {
	db := newTestDB(t)

	jumper := createUser(t, db, "jumper")
	aircraft := createAircraft(t, db, 15)
	tandemType := createJumpType(t, db, "Tandem", model.AdditionalStaff{
		StaffRequiredRole: model.RoleTandemInstructor,
	})
	load := createLoad(t, db, aircraft.ID, time.Now().Add(time.Hour), model.LoadForming, 0)
	jump := createJump(t, db, jumper.ID, tandemType.ID)

	_, err := AssignJumpToLoad(db, jump.ID, model.AssignJumpInput{
		LoadId:           load.ID,
		StaffAssignments: model.StaffAssignmentMap{tandemType.AdditionalStaff[0].ID: jumper.ID},
	}, actorId)
	require.ErrorIs(t, err, ErrConflict)

	var count int64
	require.NoError(t, db.Model(&model.Jump{}).Where("load_id = ?", load.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAssignJumpToLoad_StaffAlreadyOnLoad(t *testing.T) {
	db := newTestDB(t)

	jumper := createUser(t, db, "jumper")
	instructor := createUser(t, db, "instructor", model.RoleTandemInstructor)
	aircraft := createAircraft(t, db, 15)
	sportType := createJumpType(t, db, "Sport")
	tandemType := createJumpType(t, db, "Tandem", model.AdditionalStaff{
		StaffRequiredRole: model.RoleTandemInstructor,
	})
	load := createLoad(t, db, aircraft.ID, time.Now().Add(time.Hour), model.LoadForming, 0)

	// The instructor already jumps on this load in the public pool.
	instructorJump := createJump(t, db, instructor.ID, sportType.ID)
	_, err := AssignJumpToLoad(db, instructorJump.ID, model.AssignJumpInput{LoadId: load.ID}, actorId)
	require.NoError(t, err)

	jump := createJump(t, db, jumper.ID, tandemType.ID)
	_, err = AssignJumpToLoad(db, jump.ID, model.AssignJumpInput{
		LoadId:           load.ID,
		StaffAssignments: model.StaffAssignmentMap{tandemType.AdditionalStaff[0].ID: instructor.ID},
	}, actorId)
	require.ErrorIs(t, err, ErrConflict)
}

func TestAssignJumpToLoad_SameStaffUserForTwoSeats(t *testing.T) {
	db := newTestDB(t)

	jumper := createUser(t, db, "jumper")
	instructor := createUser(t, db, "instructor", model.RoleAffInstructor)
	aircraft := createAircraft(t, db, 15)
	affType := createJumpType(t, db, "AFF",
		model.AdditionalStaff{StaffRequiredRole: model.RoleAffInstructor},
		model.AdditionalStaff{StaffRequiredRole: model.RoleAffInstructor},
	)
	load := createLoad(t, db, aircraft.ID, time.Now().Add(time.Hour), model.LoadForming, 0)
	jump := createJump(t, db, jumper.ID, affType.ID)

	// One instructor cannot fill both seats: that would give the user
	// two jumps on the same load.
	_, err := AssignJumpToLoad(db, jump.ID, model.AssignJumpInput{
		LoadId: load.ID,
		StaffAssignments: model.StaffAssignmentMap{
			affType.AdditionalStaff[0].ID: instructor.ID,
			affType.AdditionalStaff[1].ID: instructor.ID,
		},
	}, actorId)
	require.ErrorIs(t, err, ErrConflict)

	var count int64
	require.NoError(t, db.Model(&model.Jump{}).Where("load_id = ?", load.ID).Count(&count).Error)
	assert.Zero(t, count)

	var staffJumps int64
	require.NoError(t, db.Model(&model.Jump{}).Where("user_id = ?", instructor.ID).Count(&staffJumps).Error)
	assert.Zero(t, staffJumps)
}

func TestAssignJumpToLoad_DuplicateUserOnLoad(t *testing.T) {
	db := newTestDB(t)

	jumper := createUser(t, db, "jumper")
	aircraft := createAircraft(t, db, 15)
	sportType := createJumpType(t, db, "Sport")
	load := createLoad(t, db, aircraft.ID, time.Now().Add(time.Hour), model.LoadForming, 0)

	first := createJump(t, db, jumper.ID, sportType.ID)
	_, err := AssignJumpToLoad(db, first.ID, model.AssignJumpInput{LoadId: load.ID}, actorId)
	require.NoError(t, err)

	second := createJump(t, db, jumper.ID, sportType.ID)
	_, err = AssignJumpToLoad(db, second.ID, model.AssignJumpInput{LoadId: load.ID}, actorId)
	require.ErrorIs(t, err, ErrConflict)
}

func TestAssignJumpToLoad_OverbookingWarns(t *testing.T) {
	db := newTestDB(t)

	aircraft := createAircraft(t, db, 4)
	sportType := createJumpType(t, db, "Sport")
	load := createLoad(t, db, aircraft.ID, time.Now().Add(time.Hour), model.LoadForming, 1)

	// 3 public spaces (4 - 1 reserved); fill them.
	for i := 0; i < 3; i++ {
		user := createUser(t, db, "filler"+string(rune('a'+i)))
		jump := createJump(t, db, user.ID, sportType.ID)
		result, err := AssignJumpToLoad(db, jump.ID, model.AssignJumpInput{LoadId: load.ID}, actorId)
		require.NoError(t, err)
		assert.Empty(t, result.Warning)
	}

	// Fourth public jump overbooks: warn but persist anyway.
	user := createUser(t, db, "overbooker")
	jump := createJump(t, db, user.ID, sportType.ID)
	result, err := AssignJumpToLoad(db, jump.ID, model.AssignJumpInput{LoadId: load.ID}, actorId)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Warning)

	var assigned model.Jump
	require.NoError(t, db.First(&assigned, jump.ID).Error)
	require.NotNil(t, assigned.LoadId)

	var loadObj model.Load
	require.NoError(t, db.Preload("Aircraft").First(&loadObj, load.ID).Error)
	var jumps []model.Jump
	require.NoError(t, db.Where("load_id = ?", load.ID).Find(&jumps).Error)
	spaces := CalculateSpaces(&loadObj, jumps)
	assert.Equal(t, -1, spaces.RemainingPublic)
	assert.Equal(t, 1, spaces.RemainingReserved)
}

func TestAssignJumpToLoad_ReservedPoolWarning(t *testing.T) {
	db := newTestDB(t)

	user := createUser(t, db, "jumper")
	aircraft := createAircraft(t, db, 4)
	sportType := createJumpType(t, db, "Sport")
	load := createLoad(t, db, aircraft.ID, time.Now().Add(time.Hour), model.LoadForming, 0)

	jump := createJump(t, db, user.ID, sportType.ID)
	result, err := AssignJumpToLoad(db, jump.ID, model.AssignJumpInput{LoadId: load.ID, Reserved: true}, actorId)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Warning)

	var loadObj model.Load
	require.NoError(t, db.Preload("Aircraft").First(&loadObj, load.ID).Error)
	var jumps []model.Jump
	require.NoError(t, db.Where("load_id = ?", load.ID).Find(&jumps).Error)
	assert.Equal(t, -1, CalculateSpaces(&loadObj, jumps).RemainingReserved)
}

func TestAssignJumpToLoad_ReassignSameLoadRebuildsDependents(t *testing.T) {
	db := newTestDB(t)

	jumper := createUser(t, db, "jumper")
	instructor := createUser(t, db, "instructor", model.RoleTandemInstructor)
	aircraft := createAircraft(t, db, 15)
	tandemType := createJumpType(t, db, "Tandem", model.AdditionalStaff{
		StaffRequiredRole: model.RoleTandemInstructor,
	})
	load := createLoad(t, db, aircraft.ID, time.Now().Add(time.Hour), model.LoadForming, 0)
	jump := createJump(t, db, jumper.ID, tandemType.ID)

	input := model.AssignJumpInput{
		LoadId:           load.ID,
		StaffAssignments: model.StaffAssignmentMap{tandemType.AdditionalStaff[0].ID: instructor.ID},
	}
	first, err := AssignJumpToLoad(db, jump.ID, input, actorId)
	require.NoError(t, err)

	second, err := AssignJumpToLoad(db, jump.ID, input, actorId)
	require.NoError(t, err)
	require.Len(t, second.AssignedJumpIds, 2)

	// The old dependent is gone and exactly one replacement exists.
	var dependents []model.Jump
	require.NoError(t, db.Where("parent_jump_id = ?", jump.ID).Find(&dependents).Error)
	require.Len(t, dependents, 1)
	assert.NotEqual(t, first.AssignedJumpIds[1], dependents[0].ID)
}

func TestAssignJumpToLoad_FlipReservedFlagOnSameLoad(t *testing.T) {
	db := newTestDB(t)

	jumper := createUser(t, db, "jumper")
	instructor := createUser(t, db, "instructor", model.RoleTandemInstructor)
	aircraft := createAircraft(t, db, 15)
	tandemType := createJumpType(t, db, "Tandem", model.AdditionalStaff{
		StaffRequiredRole: model.RoleTandemInstructor,
	})
	load := createLoad(t, db, aircraft.ID, time.Now().Add(time.Hour), model.LoadForming, 3)
	jump := createJump(t, db, jumper.ID, tandemType.ID)

	staff := model.StaffAssignmentMap{tandemType.AdditionalStaff[0].ID: instructor.ID}
	first, err := AssignJumpToLoad(db, jump.ID, model.AssignJumpInput{
		LoadId: load.ID, Reserved: false, StaffAssignments: staff,
	}, actorId)
	require.NoError(t, err)

	_, err = AssignJumpToLoad(db, jump.ID, model.AssignJumpInput{
		LoadId: load.ID, Reserved: true, StaffAssignments: staff,
	}, actorId)
	require.NoError(t, err)

	// The stale dependent is gone; the rebuilt group sits in the
	// reserved pool.
	var staleCount int64
	require.NoError(t, db.Model(&model.Jump{}).Where("id = ?", first.AssignedJumpIds[1]).Count(&staleCount).Error)
	assert.Zero(t, staleCount)

	var group []model.Jump
	require.NoError(t, db.Where("load_id = ?", load.ID).Find(&group).Error)
	require.Len(t, group, 2)
	for _, member := range group {
		assert.True(t, member.Reserved)
	}
}

func TestAssignJumpToLoad_MixedPoolOverbookingScenario(t *testing.T) {
	db := newTestDB(t)

	userA := createUser(t, db, "usera")
	userB := createUser(t, db, "userb")
	instructor := createUser(t, db, "instructor", model.RoleTandemInstructor)
	aircraft := createAircraft(t, db, 4)
	sportType := createJumpType(t, db, "Sport")
	tandemType := createJumpType(t, db, "Tandem", model.AdditionalStaff{
		StaffRequiredRole: model.RoleTandemInstructor,
	})
	load := createLoad(t, db, aircraft.ID, time.Now().Add(time.Hour), model.LoadForming, 1)

	jumpA := createJump(t, db, userA.ID, sportType.ID)
	resultA, err := AssignJumpToLoad(db, jumpA.ID, model.AssignJumpInput{LoadId: load.ID}, actorId)
	require.NoError(t, err)
	assert.Empty(t, resultA.Warning)

	var loadObj model.Load
	require.NoError(t, db.Preload("Aircraft").First(&loadObj, load.ID).Error)
	var jumps []model.Jump
	require.NoError(t, db.Where("load_id = ?", load.ID).Find(&jumps).Error)
	spaces := CalculateSpaces(&loadObj, jumps)
	assert.Equal(t, 2, spaces.RemainingPublic)
	assert.Equal(t, 1, spaces.RemainingReserved)

	// B and its instructor need 2 reserved spaces but only 1 exists:
	// accepted with a warning, pool goes negative.
	jumpB := createJump(t, db, userB.ID, tandemType.ID)
	resultB, err := AssignJumpToLoad(db, jumpB.ID, model.AssignJumpInput{
		LoadId:           load.ID,
		Reserved:         true,
		StaffAssignments: model.StaffAssignmentMap{tandemType.AdditionalStaff[0].ID: instructor.ID},
	}, actorId)
	require.NoError(t, err)
	require.Len(t, resultB.AssignedJumpIds, 2)
	assert.NotEmpty(t, resultB.Warning)

	require.NoError(t, db.Where("load_id = ?", load.ID).Find(&jumps).Error)
	spaces = CalculateSpaces(&loadObj, jumps)
	assert.Equal(t, 2, spaces.OccupiedReserved)
	assert.Equal(t, -1, spaces.RemainingReserved)
	assert.Equal(t, 2, spaces.RemainingPublic)
}

func TestAssignJumpToLoad_MoveWithoutStaffSkipsDependent(t *testing.T) {
	db := newTestDB(t)

	jumper := createUser(t, db, "jumper")
	instructor := createUser(t, db, "instructor", model.RoleTandemInstructor)
	aircraft := createAircraft(t, db, 15)
	tandemType := createJumpType(t, db, "Tandem", model.AdditionalStaff{
		StaffRequiredRole: model.RoleTandemInstructor,
	})
	load1 := createLoad(t, db, aircraft.ID, time.Now().Add(time.Hour), model.LoadForming, 0)
	load2 := createLoad(t, db, aircraft.ID, time.Now().Add(2*time.Hour), model.LoadForming, 0)
	jump := createJump(t, db, jumper.ID, tandemType.ID)

	_, err := AssignJumpToLoad(db, jump.ID, model.AssignJumpInput{
		LoadId:           load1.ID,
		StaffAssignments: model.StaffAssignmentMap{tandemType.AdditionalStaff[0].ID: instructor.ID},
	}, actorId)
	require.NoError(t, err)

	// Moving without re-supplying the seat is allowed once manifested;
	// the dependent is simply not recreated.
	result, err := AssignJumpToLoad(db, jump.ID, model.AssignJumpInput{LoadId: load2.ID}, actorId)
	require.NoError(t, err)
	assert.Len(t, result.AssignedJumpIds, 1)

	var dependents int64
	require.NoError(t, db.Model(&model.Jump{}).Where("parent_jump_id = ?", jump.ID).Count(&dependents).Error)
	assert.Zero(t, dependents)

	var count int64
	require.NoError(t, db.Model(&model.Jump{}).Where("load_id = ?", load1.ID).Count(&count).Error)
	assert.Zero(t, count, "old load should be fully vacated")
}

func TestAssignJumpToLoad_DepartedLoadStampsJumpDate(t *testing.T) {
	db := newTestDB(t)

	jumper := createUser(t, db, "jumper")
	aircraft := createAircraft(t, db, 15)
	sportType := createJumpType(t, db, "Sport")
	departure := time.Now().Add(-time.Hour).Truncate(time.Second)
	load := createLoad(t, db, aircraft.ID, departure, model.LoadDeparted, 0)
	jump := createJump(t, db, jumper.ID, sportType.ID)

	_, err := AssignJumpToLoad(db, jump.ID, model.AssignJumpInput{LoadId: load.ID}, actorId)
	require.NoError(t, err)

	var assigned model.Jump
	require.NoError(t, db.First(&assigned, jump.ID).Error)
	require.NotNil(t, assigned.JumpDate)
	assert.WithinDuration(t, departure, *assigned.JumpDate, time.Second)
}

func TestAssignJumpToLoad_NotFound(t *testing.T) {
	db := newTestDB(t)

	jumper := createUser(t, db, "jumper")
	aircraft := createAircraft(t, db, 15)
	sportType := createJumpType(t, db, "Sport")
	load := createLoad(t, db, aircraft.ID, time.Now().Add(time.Hour), model.LoadForming, 0)
	jump := createJump(t, db, jumper.ID, sportType.ID)

	_, err := AssignJumpToLoad(db, 4242, model.AssignJumpInput{LoadId: load.ID}, actorId)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = AssignJumpToLoad(db, jump.ID, model.AssignJumpInput{LoadId: 4242}, actorId)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveJumpFromLoad_CascadesDependents(t *testing.T) {
	db := newTestDB(t)

	jumper := createUser(t, db, "jumper")
	instructor := createUser(t, db, "instructor", model.RoleTandemInstructor)
	aircraft := createAircraft(t, db, 15)
	tandemType := createJumpType(t, db, "Tandem", model.AdditionalStaff{
		StaffRequiredRole: model.RoleTandemInstructor,
	})
	load := createLoad(t, db, aircraft.ID, time.Now().Add(time.Hour), model.LoadForming, 0)
	jump := createJump(t, db, jumper.ID, tandemType.ID)

	requirementId := tandemType.AdditionalStaff[0].ID
	assigned, err := AssignJumpToLoad(db, jump.ID, model.AssignJumpInput{
		LoadId:           load.ID,
		StaffAssignments: model.StaffAssignmentMap{requirementId: instructor.ID},
	}, actorId)
	require.NoError(t, err)

	result, err := RemoveJumpFromLoad(db, jump.ID, actorId, false)
	require.NoError(t, err)
	require.Len(t, result.RemovedJumpIds, 2)
	assert.Equal(t, jump.ID, result.RemovedJumpIds[0])
	assert.Equal(t, assigned.AssignedJumpIds[1], result.RemovedJumpIds[1])

	// The staff jump row is deleted, the primary survives detached with
	// its assignment map intact for re-manifesting.
	var staffCount int64
	require.NoError(t, db.Model(&model.Jump{}).Where("parent_jump_id = ?", jump.ID).Count(&staffCount).Error)
	assert.Zero(t, staffCount)

	var primary model.Jump
	require.NoError(t, db.First(&primary, jump.ID).Error)
	assert.Nil(t, primary.LoadId)
	assert.False(t, primary.Reserved)
	assert.Nil(t, primary.JumpDate)
	assert.True(t, primary.IsManifested)
	assert.Equal(t, instructor.ID, primary.StaffAssignments[requirementId])
}

func TestRemoveJumpFromLoad_ClearStaffAssignments(t *testing.T) {
	db := newTestDB(t)

	jumper := createUser(t, db, "jumper")
	instructor := createUser(t, db, "instructor", model.RoleTandemInstructor)
	aircraft := createAircraft(t, db, 15)
	tandemType := createJumpType(t, db, "Tandem", model.AdditionalStaff{
		StaffRequiredRole: model.RoleTandemInstructor,
	})
	load := createLoad(t, db, aircraft.ID, time.Now().Add(time.Hour), model.LoadForming, 0)
	jump := createJump(t, db, jumper.ID, tandemType.ID)

	_, err := AssignJumpToLoad(db, jump.ID, model.AssignJumpInput{
		LoadId:           load.ID,
		StaffAssignments: model.StaffAssignmentMap{tandemType.AdditionalStaff[0].ID: instructor.ID},
	}, actorId)
	require.NoError(t, err)

	_, err = RemoveJumpFromLoad(db, jump.ID, actorId, true)
	require.NoError(t, err)

	var primary model.Jump
	require.NoError(t, db.First(&primary, jump.ID).Error)
	assert.Empty(t, primary.StaffAssignments)
}

func TestRemoveJumpFromLoad_Unassigned(t *testing.T) {
	db := newTestDB(t)

	jumper := createUser(t, db, "jumper")
	sportType := createJumpType(t, db, "Sport")
	jump := createJump(t, db, jumper.ID, sportType.ID)

	_, err := RemoveJumpFromLoad(db, jump.ID, actorId, false)
	require.ErrorIs(t, err, ErrValidation)

	_, err = RemoveJumpFromLoad(db, 4242, actorId, false)
	require.ErrorIs(t, err, ErrNotFound)
}
