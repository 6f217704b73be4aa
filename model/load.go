package model

import "time"

type LoadStatus string

const (
	LoadForming  LoadStatus = "forming"
	LoadOnCall   LoadStatus = "on_call"
	LoadDeparted LoadStatus = "departed"
)

type Load struct {
	DTO
	Audit
	Departure      time.Time  `validate:"required" json:"departure"`
	Status         LoadStatus `gorm:"size:20;default:forming" json:"status"`
	AircraftId     uint       `json:"aircraftId"`
	ReservedSpaces int        `json:"reservedSpaces"`

	Aircraft Aircraft `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;foreignKey:AircraftId" json:"Aircraft"`
	Jumps    []Jump   `gorm:"foreignKey:LoadId" json:"jumps,omitempty"`
}

// SpacesInfo is always recomputed from the live jump set, never cached.
// Remaining counts go negative when a load is overbooked.
type SpacesInfo struct {
	LoadId            uint `json:"loadId"`
	TotalSpaces       int  `json:"totalSpaces"`
	ReservedSpaces    int  `json:"reservedSpaces"`
	OccupiedPublic    int  `json:"occupiedPublic"`
	OccupiedReserved  int  `json:"occupiedReserved"`
	RemainingPublic   int  `json:"remainingPublic"`
	RemainingReserved int  `json:"remainingReserved"`
}

type CreateLoadInput struct {
	Departure      time.Time `json:"departure" validate:"required"`
	AircraftId     uint      `json:"aircraftId" validate:"required,gt=0"`
	ReservedSpaces int       `json:"reservedSpaces" validate:"gte=0"`
}

type UpdateLoadInput struct {
	Departure  *time.Time `json:"departure"`
	AircraftId *uint      `json:"aircraftId" validate:"omitempty,gt=0"`
}

type LoadStatusInput struct {
	Status string `json:"status" validate:"required,oneof=forming on_call departed"`
}

type ReservedSpacesInput struct {
	ReservedSpaces int `json:"reservedSpaces"`
}

type FilterLoadInput struct {
	Pagination
	AircraftId uint   `query:"aircraftId" validate:"omitempty,gt=0"`
	Status     string `query:"status" validate:"omitempty,oneof=forming on_call departed"`
	StartDate  string `query:"startDate"`
	EndDate    string `query:"endDate"`
}
