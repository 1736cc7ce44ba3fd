package po

import (
	"time"

	"flexible-project/domain/user"
)

// UserPO User persistence object
// Note: Only used for database mapping, does not contain any business logic
// Name and email use a binary collation so that equality, uniqueness and
// REGEXP are case-sensitive like the domain filters.
type UserPO struct {
	ID          string    `gorm:"primaryKey;type:varchar(64) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin"`
	Name        string    `gorm:"type:varchar(32) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin;uniqueIndex;not null"`
	DisplayName string    `gorm:"type:varchar(128);not null"`
	Role        uint8     `gorm:"not null;default:0;index"`
	Email       *string   `gorm:"type:varchar(255) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin;uniqueIndex"`
	Avatar      *string   `gorm:"type:varchar(2048)"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (UserPO) TableName() string {
	return "users"
}

func FromUserDomain(id user.ID, data user.Data) *UserPO {
	p := &UserPO{
		ID:          id.String(),
		Name:        data.Name.String(),
		DisplayName: data.DisplayName.String(),
		Role:        uint8(data.Role),
	}
	if data.Email != nil {
		email := data.Email.String()
		p.Email = &email
	}
	if data.Avatar != nil {
		avatar := data.Avatar.String()
		p.Avatar = &avatar
	}
	return p
}

// Columns returns the mutable columns for an update. Nil optional values
// are written as NULL.
func (po *UserPO) Columns() map[string]any {
	return map[string]any{
		"name":         po.Name,
		"display_name": po.DisplayName,
		"role":         po.Role,
		"email":        po.Email,
		"avatar":       po.Avatar,
	}
}

// ToDomain revalidates the stored values. A row that no longer passes
// validation is reported rather than silently repaired.
func (po *UserPO) ToDomain() (user.User, error) {
	name, err := user.NewName(po.Name)
	if err != nil {
		return user.User{}, err
	}
	displayName, err := user.NewDisplayName(po.DisplayName)
	if err != nil {
		return user.User{}, err
	}
	role := user.Role(po.Role)
	if !role.IsValid() {
		return user.User{}, user.ErrInvalidRole
	}

	data := user.Data{Name: name, DisplayName: displayName, Role: role}
	if po.Email != nil {
		email, err := user.NewEmail(*po.Email)
		if err != nil {
			return user.User{}, err
		}
		data.Email = &email
	}
	if po.Avatar != nil {
		avatar, err := user.NewAvatar(*po.Avatar)
		if err != nil {
			return user.User{}, err
		}
		data.Avatar = &avatar
	}
	return user.User{ID: user.ID(po.ID), Data: data}, nil
}
