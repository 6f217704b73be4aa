package handler

import (
	"errors"

	"github.com/MrFrederic/opensky/constants"
	"github.com/MrFrederic/opensky/database"
	"github.com/MrFrederic/opensky/helper"
	"github.com/MrFrederic/opensky/model"
	"github.com/MrFrederic/opensky/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func GetUsers(c *fiber.Ctx) error {
	var filter model.FilterUserInput
	if err := c.QueryParser(&filter); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query", err)
	}

	query := database.DB.Model(&model.User{}).Preload("Roles")
	if filter.Role != "" {
		query = query.Where("id IN (?)",
			database.DB.Model(&model.UserRoleAssignment{}).Select("user_id").Where("role = ?", filter.Role))
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("username LIKE ? OR first_name LIKE ? OR last_name LIKE ? OR display_name LIKE ?",
			pattern, pattern, pattern, pattern)
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to count users", err)
	}

	var users []model.User
	if err := utils.ApplyPagination(query, filter.Limit, filter.Page).
		Order("last_name ASC, first_name ASC").
		Find(&users).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch users", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       users,
		Limit:      filter.Limit,
		Page:       filter.Page,
		TotalCount: totalCount,
	})
}

func GetUserById(c *fiber.Ctx) error {
	userId := c.Locals("inputId").(uint)

	var user model.User
	if err := database.DB.Preload("Roles").First(&user, userId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "User not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, user)
}

func CreateUser(c *fiber.Ctx) error {
	input, ok := c.Locals("inputCreateUser").(model.CreateUserInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}
	userInfo, _, _, _ := helper.GetInfoUserFromToken(c)

	var existing int64
	if err := database.DB.Model(&model.User{}).Where("username = ?", input.Username).Count(&existing).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if existing > 0 {
		return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, "Username is already taken", nil, "username")
	}

	hash, err := helper.HashPassword(input.Password)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to hash password", err)
	}

	displayName := input.DisplayName
	if displayName == "" {
		displayName = input.FirstName + " " + input.LastName
	}

	user := model.User{
		Username:    input.Username,
		Password:    hash,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		DisplayName: displayName,
		Email:       input.Email,
		IsActive:    true,
		Audit:       model.Audit{CreatedBy: &userInfo.UserId},
	}
	for _, role := range input.Roles {
		user.Roles = append(user.Roles, model.UserRoleAssignment{Role: model.UserRole(role)})
	}

	if err := database.DB.Create(&user).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create user", err)
	}

	database.DB.Preload("Roles").First(&user, user.ID)
	return utils.SuccessResponse(c, fiber.StatusCreated, user)
}
