package model

import "time"

// Aggregates for the manifesting board: load list with live space
// figures, the selected load's jump set and the unassigned queue.

type LoadSummary struct {
	Id                      uint       `json:"id"`
	IndexNumber             int        `json:"indexNumber"`
	AircraftId              uint       `json:"aircraftId"`
	AircraftName            string     `json:"aircraftName"`
	TotalSpaces             int        `json:"totalSpaces"`
	RemainingPublicSpaces   int        `json:"remainingPublicSpaces"`
	RemainingReservedSpaces int        `json:"remainingReservedSpaces"`
	Departure               time.Time  `json:"departure"`
	Status                  LoadStatus `json:"status"`
	ReservedSpaces          int        `json:"reservedSpaces"`
}

type AdditionalStaffSummary struct {
	Id                     uint     `json:"id"`
	StaffRequiredRole      UserRole `json:"staffRequiredRole"`
	StaffDefaultJumpTypeId *uint    `json:"staffDefaultJumpTypeId"`
}

type JumpTypeSummary struct {
	Id              uint                     `json:"id"`
	Name            string                   `json:"name"`
	ShortName       string                   `json:"shortName"`
	AdditionalStaff []AdditionalStaffSummary `json:"additionalStaff"`
}

type JumpSummary struct {
	Id               uint               `json:"id"`
	UserId           uint               `json:"userId"`
	UserName         string             `json:"userName"`
	JumpTypeName     string             `json:"jumpTypeName"`
	Reserved         bool               `json:"reserved"`
	ParentJumpId     *uint              `json:"parentJumpId"`
	LoadId           *uint              `json:"loadId"`
	StaffAssignments StaffAssignmentMap `json:"staffAssignments"`
	JumpType         *JumpTypeSummary   `json:"jumpType"`
}

type ManifestResponse struct {
	Loads             []LoadSummary `json:"loads"`
	SelectedLoad      *uint         `json:"selectedLoad"`
	SelectedLoadJumps []JumpSummary `json:"selectedLoadJumps"`
	UnassignedJumps   []JumpSummary `json:"unassignedJumps"`
}

type FilterManifestInput struct {
	HideOldLoads   *bool  `query:"hideOldLoads"`
	AircraftId     uint   `query:"aircraftId" validate:"omitempty,gt=0"`
	Status         string `query:"status" validate:"omitempty,oneof=forming on_call departed"`
	SelectedLoadId uint   `query:"selectedLoadId" validate:"omitempty,gt=0"`
}
