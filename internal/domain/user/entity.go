package user

import (
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
	RoleIntern   Role = "intern"
)

type StipendType string

const (
	StipendHourly StipendType = "hourly"
	StipendFixed  StipendType = "fixed"
)

type User struct {
	ID      string
	Name    string
	Email   string
	Phone   string
	Role    Role
	PINHash string

	// Salary configuration: employees carry MonthlySalary, interns carry
	// StipendAmount + StipendType. Admins carry neither.
	MonthlySalary *decimal.Decimal
	StipendAmount *decimal.Decimal
	StipendType   *StipendType

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u User) IsIntern() bool {
	return u.Role == RoleIntern
}
