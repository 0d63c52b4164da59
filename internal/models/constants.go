package models

// Field length limits shared by validation and schema.
const (
	MaxProjectNameLength = 20
	MaxStatusNameLength  = 20
	MaxTaskTitleLength   = 100
	MaxUsernameLength    = 150
	MaxGroupNameLength   = 150
	MaxEmailLength       = 254
)
