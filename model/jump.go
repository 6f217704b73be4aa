package model

import "time"

// StaffAssignmentMap maps an AdditionalStaff requirement id to the user
// manifested for that seat. Stored as JSON on the primary jump row.
type StaffAssignmentMap map[uint]uint

type Jump struct {
	DTO
	Audit
	UserId           uint               `json:"userId"`
	JumpTypeId       uint               `json:"jumpTypeId"`
	IsManifested     bool               `gorm:"default:false" json:"isManifested"`
	LoadId           *uint              `json:"loadId"`
	Reserved         bool               `gorm:"default:false" json:"reserved"`
	Comment          string             `json:"comment"`
	ParentJumpId     *uint              `json:"parentJumpId"`
	StaffAssignments StaffAssignmentMap `gorm:"serializer:json" json:"staffAssignments"`
	JumpDate         *time.Time         `json:"jumpDate"`

	User     User     `gorm:"foreignKey:UserId" json:"User"`
	JumpType JumpType `gorm:"foreignKey:JumpTypeId" json:"JumpType"`
	Load     *Load    `gorm:"foreignKey:LoadId" json:"Load,omitempty"`
}

type CreateJumpInput struct {
	UserId     uint   `json:"userId" validate:"required,gt=0"`
	JumpTypeId uint   `json:"jumpTypeId" validate:"required,gt=0"`
	Comment    string `json:"comment"`
}

type UpdateJumpInput struct {
	JumpTypeId *uint   `json:"jumpTypeId" validate:"omitempty,gt=0"`
	Comment    *string `json:"comment"`
}

type AssignJumpInput struct {
	LoadId           uint               `json:"loadId" validate:"required,gt=0"`
	Reserved         bool               `json:"reserved"`
	StaffAssignments StaffAssignmentMap `json:"staffAssignments"`
}

type RemoveJumpInput struct {
	ClearStaffAssignments bool `json:"clearStaffAssignments"`
}

type AssignResult struct {
	AssignedJumpIds []uint `json:"assignedJumpIds"`
	Warning         string `json:"warning,omitempty"`
}

type RemoveResult struct {
	RemovedJumpIds []uint `json:"removedJumpIds"`
}

type FilterJumpInput struct {
	Pagination
	UserId       uint  `query:"userId" validate:"omitempty,gt=0"`
	JumpTypeId   uint  `query:"jumpTypeId" validate:"omitempty,gt=0"`
	LoadId       uint  `query:"loadId" validate:"omitempty,gt=0"`
	IsManifested *bool `query:"isManifested"`
	HasLoad      *bool `query:"hasLoad"`
	HasParent    *bool `query:"hasParent"`
}
