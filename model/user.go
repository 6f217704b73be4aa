package model

type UserRole string

const (
	RoleTandemJumper     UserRole = "tandem_jumper"
	RoleAffStudent       UserRole = "aff_student"
	RoleSportPaid        UserRole = "sport_paid"
	RoleSportFree        UserRole = "sport_free"
	RoleTandemInstructor UserRole = "tandem_instructor"
	RoleAffInstructor    UserRole = "aff_instructor"
	RoleAdministrator    UserRole = "administrator"
)

type User struct {
	DTO
	Audit
	Username    string `gorm:"size:64;uniqueIndex" json:"username"`
	Password    string `json:"-"`
	FirstName   string `gorm:"size:64" json:"firstName"`
	LastName    string `gorm:"size:64" json:"lastName"`
	DisplayName string `gorm:"size:128" json:"displayName"`
	Email       string `gorm:"size:128" json:"email"`
	IsActive    bool   `gorm:"default:true" json:"isActive"`

	Roles []UserRoleAssignment `gorm:"foreignKey:UserId" json:"roles"`
}

type UserRoleAssignment struct {
	DTO
	UserId uint     `gorm:"index:idx_user_role,unique" json:"userId"`
	Role   UserRole `gorm:"size:32;index:idx_user_role,unique" json:"role"`
}

// HasRole reports whether any of the given roles is assigned.
func (u *User) HasRole(roles ...UserRole) bool {
	for _, assignment := range u.Roles {
		for _, role := range roles {
			if assignment.Role == role {
				return true
			}
		}
	}
	return false
}

type CreateUserInput struct {
	Username    string   `json:"username" validate:"required,min=3,max=64"`
	Password    string   `json:"password" validate:"required,min=6"`
	FirstName   string   `json:"firstName" validate:"required"`
	LastName    string   `json:"lastName" validate:"required"`
	DisplayName string   `json:"displayName"`
	Email       string   `json:"email" validate:"omitempty,email"`
	Roles       []string `json:"roles" validate:"omitempty,dive,oneof=tandem_jumper aff_student sport_paid sport_free tandem_instructor aff_instructor administrator"`
}

type FilterUserInput struct {
	Pagination
	Role   string `query:"role" validate:"omitempty,oneof=tandem_jumper aff_student sport_paid sport_free tandem_instructor aff_instructor administrator"`
	Search string `query:"search"`
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
