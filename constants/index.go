package constants

const (
	DATA_INPUT_IS_NOT_NUMBER   = "Input must be a number"
	ERROR_PARSE_DATA_TO_LOCALS = "Failed to read validated input"
	ERROR_INTERNAL_ERROR       = "Internal server error"
	NOT_ADMIN                  = "Administrator permission required"
	NOT_MANIFEST_ACCESS        = "Manifest access required"

	ROLE_TANDEM_JUMPER     = "tandem_jumper"
	ROLE_AFF_STUDENT       = "aff_student"
	ROLE_SPORT_PAID        = "sport_paid"
	ROLE_SPORT_FREE        = "sport_free"
	ROLE_TANDEM_INSTRUCTOR = "tandem_instructor"
	ROLE_AFF_INSTRUCTOR    = "aff_instructor"
	ROLE_ADMIN             = "administrator"
)
