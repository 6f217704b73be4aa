package helper

import (
	"context"
	"log"
	"time"

	"github.com/MrFrederic/opensky/database"
	"github.com/MrFrederic/opensky/model"

	"github.com/go-co-op/gocron/v2"
)

const RefreshTokenTTL = time.Hour * 24 * 7

var tokenScheduler gocron.Scheduler

func refreshKey(tokenId string) string {
	return "refresh:" + tokenId
}

// StoreRefreshToken puts the token id on the redis allowlist and mirrors
// it into the refresh_tokens table.
func StoreRefreshToken(tokenId string, userId uint) error {
	expiresAt := time.Now().Add(RefreshTokenTTL)

	record := model.RefreshToken{TokenId: tokenId, UserId: userId, ExpiresAt: expiresAt}
	if err := database.DB.Create(&record).Error; err != nil {
		return err
	}

	if database.Redis != nil {
		if err := database.Redis.Set(context.Background(), refreshKey(tokenId), userId, RefreshTokenTTL).Err(); err != nil {
			log.Printf("redis set refresh token: %v", err)
		}
	}
	return nil
}

// RefreshTokenValid checks the allowlist, falling back to the database
// when redis is down or was flushed.
func RefreshTokenValid(tokenId string) bool {
	if database.Redis != nil {
		n, err := database.Redis.Exists(context.Background(), refreshKey(tokenId)).Result()
		if err == nil && n > 0 {
			return true
		}
	}

	var record model.RefreshToken
	if err := database.DB.Where("token_id = ? AND revoked = ? AND expires_at > ?", tokenId, false, time.Now()).First(&record).Error; err != nil {
		return false
	}
	return true
}

func RevokeRefreshToken(tokenId string) {
	if database.Redis != nil {
		if err := database.Redis.Del(context.Background(), refreshKey(tokenId)).Err(); err != nil {
			log.Printf("redis del refresh token: %v", err)
		}
	}
	if err := database.DB.Model(&model.RefreshToken{}).Where("token_id = ?", tokenId).Update("revoked", true).Error; err != nil {
		log.Printf("revoke refresh token: %v", err)
	}
}

// PurgeExpiredTokens drops refresh token rows past their expiry; redis
// entries expire on their own TTL.
func PurgeExpiredTokens() {
	result := database.DB.Where("expires_at < ?", time.Now()).Delete(&model.RefreshToken{})
	if result.Error != nil {
		log.Printf("purging expired refresh tokens: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Purged %d expired refresh tokens", result.RowsAffected)
	}
}

// StartTokenCleanupScheduler purges expired refresh tokens nightly.
func StartTokenCleanupScheduler() {
	s, err := gocron.NewScheduler()
	if err != nil {
		log.Printf("failed to start token cleanup scheduler: %v", err)
		return
	}

	tokenScheduler = s

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(3, 0, 0),
			),
		),
		gocron.NewTask(PurgeExpiredTokens),
	)
	if err != nil {
		log.Printf("failed to register token cleanup job: %v", err)
		return
	}

	s.Start()
	log.Println("Token cleanup scheduler started (03:00 daily)")
}

func StopTokenCleanupScheduler() {
	if tokenScheduler != nil {
		_ = tokenScheduler.Shutdown()
	}
}
