package mongodb

import (
	"flexible-project/domain/user"
)

// Field names of the users collection.
const (
	fieldID          = "_id"
	fieldName        = "name"
	fieldDisplayName = "display_name"
	fieldRole        = "role"
	fieldEmail       = "email"
	fieldAvatar      = "avatar"
)

// userDocument is the stored shape of a user. Absent optional values are
// omitted rather than stored as null, so $exists, $ne and $nin see them
// the way the domain filters do.
type userDocument struct {
	ID          string  `bson:"_id"`
	Name        string  `bson:"name"`
	DisplayName string  `bson:"display_name"`
	Role        int     `bson:"role"`
	Email       *string `bson:"email,omitempty"`
	Avatar      *string `bson:"avatar,omitempty"`
}

func fromDomain(id user.ID, data user.Data) userDocument {
	doc := userDocument{
		ID:          id.String(),
		Name:        data.Name.String(),
		DisplayName: data.DisplayName.String(),
		Role:        int(data.Role),
	}
	if data.Email != nil {
		email := data.Email.String()
		doc.Email = &email
	}
	if data.Avatar != nil {
		avatar := data.Avatar.String()
		doc.Avatar = &avatar
	}
	return doc
}

func (d userDocument) toDomain() (user.User, error) {
	name, err := user.NewName(d.Name)
	if err != nil {
		return user.User{}, err
	}
	displayName, err := user.NewDisplayName(d.DisplayName)
	if err != nil {
		return user.User{}, err
	}
	role := user.Role(d.Role)
	if d.Role < 0 || !role.IsValid() {
		return user.User{}, user.ErrInvalidRole
	}

	data := user.Data{Name: name, DisplayName: displayName, Role: role}
	if d.Email != nil {
		email, err := user.NewEmail(*d.Email)
		if err != nil {
			return user.User{}, err
		}
		data.Email = &email
	}
	if d.Avatar != nil {
		avatar, err := user.NewAvatar(*d.Avatar)
		if err != nil {
			return user.User{}, err
		}
		data.Avatar = &avatar
	}
	return user.User{ID: user.ID(d.ID), Data: data}, nil
}
