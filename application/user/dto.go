package user

import (
	"flexible-project/domain/user"
)

// CreateUserRequest Create user request DTO
type CreateUserRequest struct {
	Name        string  `json:"name" validate:"required"`
	DisplayName string  `json:"display_name" validate:"required"`
	Role        string  `json:"role,omitempty"`
	Email       *string `json:"email,omitempty"`
	Avatar      *string `json:"avatar,omitempty"`
}

// Data turns the raw request into validated user data. The first invalid
// field is reported with its validation error unchanged; an empty role
// means user.RoleUser.
func (r CreateUserRequest) Data() (user.Data, error) {
	name, err := user.NewName(r.Name)
	if err != nil {
		return user.Data{}, err
	}
	displayName, err := user.NewDisplayName(r.DisplayName)
	if err != nil {
		return user.Data{}, err
	}

	data := user.Data{Name: name, DisplayName: displayName}
	if r.Role != "" {
		if data.Role, err = user.ParseRole(r.Role); err != nil {
			return user.Data{}, err
		}
	}
	if r.Email != nil {
		email, err := user.NewEmail(*r.Email)
		if err != nil {
			return user.Data{}, err
		}
		data.Email = &email
	}
	if r.Avatar != nil {
		avatar, err := user.NewAvatar(*r.Avatar)
		if err != nil {
			return user.Data{}, err
		}
		data.Avatar = &avatar
	}
	return data, nil
}

// UserResponse User response DTO
type UserResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name"`
	Role        string  `json:"role"`
	Email       *string `json:"email,omitempty"`
	Avatar      *string `json:"avatar,omitempty"`
}

// NewUserResponse converts a user into its response DTO.
func NewUserResponse(u user.User) UserResponse {
	resp := UserResponse{
		ID:          u.ID.String(),
		Name:        u.Data.Name.String(),
		DisplayName: u.Data.DisplayName.String(),
		Role:        u.Data.Role.String(),
	}
	if u.Data.Email != nil {
		email := u.Data.Email.String()
		resp.Email = &email
	}
	if u.Data.Avatar != nil {
		avatar := u.Data.Avatar.String()
		resp.Avatar = &avatar
	}
	return resp
}
