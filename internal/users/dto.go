package users

import "github.com/estradaranch/flockherd-backend/pkg/db/models"

// CreateUserDTO carries the fields needed to persist a new user.
type CreateUserDTO struct {
	Username     string
	Email        string
	PasswordHash string
}

// ToModel maps the DTO onto the persistence model.
func (d CreateUserDTO) ToModel() *models.User {
	return &models.User{
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
	}
}
