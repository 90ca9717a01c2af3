package auth

import (
	"github.com/punchdesk/attendance-backend-go/internal/domain/user"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/validator"
)

type LoginRequest struct {
	// LoginID accepts email or phone.
	LoginID string `json:"login_id"`
	PIN     string `json:"pin"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LoginID) {
		errs = append(errs, validator.ValidationError{
			Field:   "login_id",
			Message: "login_id is required",
		})
	}
	if !validator.IsValidPIN(r.PIN) {
		errs = append(errs, validator.ValidationError{
			Field:   "pin",
			Message: "pin must be 4 to 6 digits",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LoginResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"-"`
	AccessTokenExpiresAt  int64     `json:"access_token_expires_at"`
	RefreshTokenExpiresAt int64     `json:"-"`
	UserID                string    `json:"user_id"`
	Name                  string    `json:"name"`
	Role                  user.Role `json:"role"`
}
