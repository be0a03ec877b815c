package models

import "time"

type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleVendor Role = "vendor"
	RoleGuest  Role = "guest"
)

// User is a buyer or vendor. Accounts are created by the identity provider.
type User struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Fullname  string    `json:"fullname"`
	Email     string    `gorm:"index" json:"email"`
	Phone     string    `json:"phone"`
	Role      Role      `gorm:"type:VARCHAR(20);default:'buyer'" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// DisplayName falls back to a generated label for users without a name.
func (u User) DisplayName() string {
	if u.Fullname != "" {
		return u.Fullname
	}
	return "User-" + u.ID
}
