package domain

const RoleAdmin = "admin"

// Identity is the caller resolved from a bearer token
type Identity struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

type ProfileTable struct {
	ID   string
	Role string
}

func GetProfileTable() ProfileTable {
	return ProfileTable{
		ID:   "id",
		Role: "role",
	}
}

func (ProfileTable) TableName() string {
	return "profiles"
}
