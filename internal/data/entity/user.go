package entity

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleOwner   UserRole = "owner"
	RoleAdmin   UserRole = "admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleStudent, RoleOwner, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	Base
	Name         string   `db:"name"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password"`
	Phone        *string  `db:"phone"`
	Role         UserRole `db:"role"`
	IsActive     bool     `db:"is_active"`
}
