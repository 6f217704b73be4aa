package database

import (
	"log"

	"github.com/MrFrederic/opensky/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("changeme"), 10)
	if err != nil {
		log.Println("failed to hash seed password:", err)
		return
	}

	admin := model.User{
		Username:  "admin",
		Password:  string(bytes),
		FirstName: "Drop Zone",
		LastName:  "Admin",
		IsActive:  true,
	}
	if err := db.Where(model.User{Username: admin.Username}).FirstOrCreate(&admin).Error; err != nil {
		log.Println("failed to seed admin user:", err)
	} else {
		role := model.UserRoleAssignment{UserId: admin.ID, Role: model.RoleAdministrator}
		if err := db.Where(model.UserRoleAssignment{UserId: admin.ID, Role: model.RoleAdministrator}).FirstOrCreate(&role).Error; err != nil {
			log.Println("failed to seed admin role:", err)
		}
	}

	aircraft := []model.Aircraft{
		{Name: "Cessna 182", Type: "C182", MaxLoad: 4},
		{Name: "L-410 Turbolet", Type: "L410", MaxLoad: 15},
	}
	for _, a := range aircraft {
		if err := db.Where(model.Aircraft{Name: a.Name}).FirstOrCreate(&a).Error; err != nil {
			log.Println("failed to seed aircraft:", a.Name, "error:", err)
		}
	}

	// Staff-carrying types reference the plain instructor type, so seed
	// the dependency-free types first.
	instructorJump := model.JumpType{Name: "Instructor Accompaniment", ShortName: "INST"}
	if err := db.Where(model.JumpType{Name: instructorJump.Name}).FirstOrCreate(&instructorJump).Error; err != nil {
		log.Println("failed to seed jump type:", instructorJump.Name, "error:", err)
	}
	sportJump := model.JumpType{Name: "Sport Jump", ShortName: "SPORT"}
	if err := db.Where(model.JumpType{Name: sportJump.Name}).FirstOrCreate(&sportJump).Error; err != nil {
		log.Println("failed to seed jump type:", sportJump.Name, "error:", err)
	}

	tandem := model.JumpType{Name: "Tandem", ShortName: "TDM"}
	if err := db.Where(model.JumpType{Name: tandem.Name}).FirstOrCreate(&tandem).Error; err != nil {
		log.Println("failed to seed jump type:", tandem.Name, "error:", err)
	} else {
		staff := model.AdditionalStaff{
			JumpTypeId:             tandem.ID,
			StaffRequiredRole:      model.RoleTandemInstructor,
			StaffDefaultJumpTypeId: &instructorJump.ID,
		}
		if err := db.Where(model.AdditionalStaff{JumpTypeId: tandem.ID, StaffRequiredRole: model.RoleTandemInstructor}).FirstOrCreate(&staff).Error; err != nil {
			log.Println("failed to seed tandem staff requirement:", err)
		}
	}

	aff := model.JumpType{Name: "AFF Level 1", ShortName: "AFF1"}
	if err := db.Where(model.JumpType{Name: aff.Name}).FirstOrCreate(&aff).Error; err != nil {
		log.Println("failed to seed jump type:", aff.Name, "error:", err)
	} else {
		var existing int64
		db.Model(&model.AdditionalStaff{}).Where("jump_type_id = ?", aff.ID).Count(&existing)
		if existing == 0 {
			// AFF level 1 exits with two instructors
			for i := 0; i < 2; i++ {
				staff := model.AdditionalStaff{
					JumpTypeId:             aff.ID,
					StaffRequiredRole:      model.RoleAffInstructor,
					StaffDefaultJumpTypeId: &instructorJump.ID,
				}
				if err := db.Create(&staff).Error; err != nil {
					log.Println("failed to seed aff staff requirement:", err)
				}
			}
		}
	}
}
