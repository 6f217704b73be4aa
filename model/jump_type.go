package model

type JumpType struct {
	DTO
	Audit
	Name         string `gorm:"size:128" json:"name"`
	ShortName    string `gorm:"size:16" json:"shortName"`
	Description  string `json:"description"`
	ExitAltitude *int   `json:"exitAltitude"`
	Price        *int   `json:"price"`
	IsAvailable  bool   `gorm:"default:true" json:"isAvailable"`

	AdditionalStaff []AdditionalStaff `gorm:"foreignKey:JumpTypeId;constraint:OnDelete:CASCADE" json:"additionalStaff"`
}

// AdditionalStaff is one mandatory staff seat a jump of this type pulls
// onto the load, e.g. a tandem jump requiring a tandem instructor.
type AdditionalStaff struct {
	DTO
	JumpTypeId             uint     `json:"jumpTypeId"`
	StaffRequiredRole      UserRole `gorm:"size:32" json:"staffRequiredRole"`
	StaffDefaultJumpTypeId *uint    `json:"staffDefaultJumpTypeId"`
}

type AdditionalStaffInput struct {
	StaffRequiredRole      string `json:"staffRequiredRole" validate:"required,oneof=tandem_jumper aff_student sport_paid sport_free tandem_instructor aff_instructor administrator"`
	StaffDefaultJumpTypeId *uint  `json:"staffDefaultJumpTypeId"`
}

type CreateJumpTypeInput struct {
	Name            string                 `json:"name" validate:"required"`
	ShortName       string                 `json:"shortName" validate:"required,max=16"`
	Description     string                 `json:"description"`
	ExitAltitude    *int                   `json:"exitAltitude" validate:"omitempty,gt=0"`
	Price           *int                   `json:"price" validate:"omitempty,gte=0"`
	AdditionalStaff []AdditionalStaffInput `json:"additionalStaff" validate:"omitempty,dive"`
}

type UpdateJumpTypeInput struct {
	Name            *string                `json:"name"`
	ShortName       *string                `json:"shortName" validate:"omitempty,max=16"`
	Description     *string                `json:"description"`
	ExitAltitude    *int                   `json:"exitAltitude" validate:"omitempty,gt=0"`
	Price           *int                   `json:"price" validate:"omitempty,gte=0"`
	IsAvailable     *bool                  `json:"isAvailable"`
	AdditionalStaff []AdditionalStaffInput `json:"additionalStaff" validate:"omitempty,dive"`
}
