package helper

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/MrFrederic/opensky/config"
	"github.com/MrFrederic/opensky/database"
	"github.com/MrFrederic/opensky/model"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// JwtSecret is read per call so a secret set only in .env is picked up
// after config loads it.
func JwtSecret() []byte {
	return []byte(config.Config("JWT_SECRET"))
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func GetUserByUsername(u string) (*model.User, error) {
	db := database.DB
	var user model.User
	if err := db.Preload("Roles").Where(&model.User{Username: u}).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func GenerateAccessToken(tokenClaim model.TokenClaim) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["username"] = tokenClaim.Username
	claims["userId"] = tokenClaim.UserId
	claims["exp"] = time.Now().Add(time.Minute * 60).Unix()

	return token.SignedString(JwtSecret())
}

func GenerateRefreshToken(tokenClaim model.TokenClaim, tokenId string) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["username"] = tokenClaim.Username
	claims["userId"] = tokenClaim.UserId
	claims["jti"] = tokenId
	claims["exp"] = time.Now().Add(RefreshTokenTTL).Unix()

	return token.SignedString(JwtSecret())
}

func ParseToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return JwtSecret(), nil
	})
	return token, err
}

// GetInfoUserFromToken resolves the authenticated user and the role
// flags the routes care about: admin, instructor (tandem or AFF) and
// sport jumper.
func GetInfoUserFromToken(c *fiber.Ctx) (model.TokenClaim, bool, bool, bool) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return model.TokenClaim{}, false, false, false
	}
	tokenClaim := token.Claims.(jwt.MapClaims)
	userIdFloat, ok := tokenClaim["userId"].(float64)
	if !ok {
		return model.TokenClaim{}, false, false, false
	}
	userId := uint(userIdFloat)
	username, _ := tokenClaim["username"].(string)

	var user model.User
	db := database.DB
	if err := db.Preload("Roles").First(&user, userId).Error; err != nil {
		log.Printf("account lookup failed: id=%d, error=%v", userId, err)
		return model.TokenClaim{}, false, false, false
	}

	userInfo := model.TokenClaim{
		UserId:   userId,
		Username: username,
	}

	return userInfo,
		user.HasRole(model.RoleAdministrator),
		user.HasRole(model.RoleTandemInstructor, model.RoleAffInstructor),
		user.HasRole(model.RoleSportPaid, model.RoleSportFree)
}
