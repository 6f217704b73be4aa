package model

type Aircraft struct {
	DTO
	Audit
	Name        string `gorm:"size:64" json:"name"`
	Type        string `gorm:"size:64" json:"type"`
	MaxLoad     int    `json:"maxLoad"`
	IsAvailable bool   `gorm:"default:true" json:"isAvailable"`
}

type CreateAircraftInput struct {
	Name    string `json:"name" validate:"required"`
	Type    string `json:"type" validate:"required"`
	MaxLoad int    `json:"maxLoad" validate:"required,gt=0"`
}

type UpdateAircraftInput struct {
	Name        *string `json:"name"`
	Type        *string `json:"type"`
	MaxLoad     *int    `json:"maxLoad" validate:"omitempty,gt=0"`
	IsAvailable *bool   `json:"isAvailable"`
}
