package helper

import (
	"fmt"
	"testing"
	"time"

	"github.com/MrFrederic/opensky/database"
	"github.com/MrFrederic/opensky/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	database.Migrate(db)
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string, roles ...model.UserRole) model.User {
	t.Helper()

	user := model.User{
		Username:  username,
		Password:  "x",
		FirstName: "Test",
		LastName:  username,
		IsActive:  true,
	}
	for _, role := range roles {
		user.Roles = append(user.Roles, model.UserRoleAssignment{Role: role})
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createAircraft(t *testing.T, db *gorm.DB, maxLoad int) model.Aircraft {
	t.Helper()

	aircraft := model.Aircraft{Name: fmt.Sprintf("AC-%d", maxLoad), Type: "test", MaxLoad: maxLoad, IsAvailable: true}
	require.NoError(t, db.Create(&aircraft).Error)
	return aircraft
}

func createJumpType(t *testing.T, db *gorm.DB, name string, staff ...model.AdditionalStaff) model.JumpType {
	t.Helper()

	jumpType := model.JumpType{
		Name:            name,
		ShortName:       name,
		IsAvailable:     true,
		AdditionalStaff: staff,
	}
	require.NoError(t, db.Create(&jumpType).Error)
	require.NoError(t, db.Preload("AdditionalStaff").First(&jumpType, jumpType.ID).Error)
	return jumpType
}

func createLoad(t *testing.T, db *gorm.DB, aircraftId uint, departure time.Time, status model.LoadStatus, reservedSpaces int) model.Load {
	t.Helper()

	load := model.Load{
		Departure:      departure,
		Status:         status,
		AircraftId:     aircraftId,
		ReservedSpaces: reservedSpaces,
	}
	require.NoError(t, db.Create(&load).Error)
	return load
}

func createJump(t *testing.T, db *gorm.DB, userId, jumpTypeId uint) model.Jump {
	t.Helper()

	jump := model.Jump{UserId: userId, JumpTypeId: jumpTypeId}
	require.NoError(t, db.Create(&jump).Error)
	return jump
}
