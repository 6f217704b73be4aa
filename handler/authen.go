package handler

import (
	"errors"

	"github.com/MrFrederic/opensky/database"
	"github.com/MrFrederic/opensky/helper"
	"github.com/MrFrederic/opensky/model"
	"github.com/MrFrederic/opensky/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func Login(c *fiber.Ctx) error {
	var input model.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid input", err)
	}

	user, err := helper.GetUserByUsername(input.Username)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to look up user", err)
	}
	if user == nil || !user.IsActive || !helper.CheckPasswordHash(input.Password, user.Password) {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid username or password", errors.New("bad credentials"))
	}

	claim := model.TokenClaim{UserId: user.ID, Username: user.Username}
	accessToken, err := helper.GenerateAccessToken(claim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to issue token", err)
	}
	tokenId := uuid.NewString()
	refreshToken, err := helper.GenerateRefreshToken(claim, tokenId)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to issue token", err)
	}
	if err := helper.StoreRefreshToken(tokenId, user.ID); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to store token", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.TokenData{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

func RefreshToken(c *fiber.Ctx) error {
	var input model.RefreshInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid input", err)
	}

	token, err := helper.ParseToken(input.RefreshToken)
	if err != nil || !token.Valid {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid refresh token", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid refresh token", errors.New("bad claims"))
	}
	tokenId, _ := claims["jti"].(string)
	userIdFloat, _ := claims["userId"].(float64)
	if tokenId == "" || !helper.RefreshTokenValid(tokenId) {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Refresh token revoked or expired", errors.New("token not on allowlist"))
	}

	var user model.User
	if err := database.DB.First(&user, uint(userIdFloat)).Error; err != nil || !user.IsActive {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Account unavailable", err)
	}

	// Rotate: revoke the old token id, issue a fresh pair.
	helper.RevokeRefreshToken(tokenId)

	claim := model.TokenClaim{UserId: user.ID, Username: user.Username}
	accessToken, err := helper.GenerateAccessToken(claim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to issue token", err)
	}
	newTokenId := uuid.NewString()
	refreshToken, err := helper.GenerateRefreshToken(claim, newTokenId)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to issue token", err)
	}
	if err := helper.StoreRefreshToken(newTokenId, user.ID); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to store token", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.TokenData{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

func Logout(c *fiber.Ctx) error {
	var input model.RefreshInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid input", err)
	}

	token, err := helper.ParseToken(input.RefreshToken)
	if err == nil && token.Valid {
		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if tokenId, _ := claims["jti"].(string); tokenId != "" {
				helper.RevokeRefreshToken(tokenId)
			}
		}
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Logged out"})
}

func Me(c *fiber.Ctx) error {
	userInfo, _, _, _ := helper.GetInfoUserFromToken(c)
	if userInfo.UserId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Account does not exist", errors.New("no account"))
	}

	var user model.User
	if err := database.DB.Preload("Roles").First(&user, userInfo.UserId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Account does not exist", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, user)
}
