package model

import "time"

// RefreshToken mirrors the redis allowlist so sessions survive a cache
// flush and expired rows can be purged by the nightly job.
type RefreshToken struct {
	DTO
	TokenId   string    `gorm:"size:36;uniqueIndex" json:"tokenId"`
	UserId    uint      `gorm:"index" json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
	Revoked   bool      `gorm:"default:false" json:"revoked"`
}

type RefreshInput struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}
