package specification

import (
	"flexible-project/domain/filter"
	"flexible-project/domain/user"

	"gorm.io/gorm"
)

// Scope is a GORM query function, applied with db.Scopes.
type Scope = func(*gorm.DB) *gorm.DB

// Column names of the users table.
const (
	ColumnID          = "id"
	ColumnName        = "name"
	ColumnDisplayName = "display_name"
	ColumnRole        = "role"
	ColumnEmail       = "email"
	ColumnAvatar      = "avatar"
)

// matchNothing is rendered for operators no row can satisfy (an empty In
// list, an invalid pattern).
const matchNothing = "1 = 0"

// Translator converts user filter trees to GORM scopes
// DDD principle: Infrastructure layer handles framework-specific concerns
type Translator interface {
	Translate(filters user.Filters) []Scope
}

// GormTranslator implements Translator for MySQL through GORM. Every present
// operator becomes one WHERE condition; GORM joins them with AND.
type GormTranslator struct{}

// NewGormTranslator creates a new GORM translator
func NewGormTranslator() *GormTranslator {
	return &GormTranslator{}
}

// Translate converts an entity filter group into scopes. Nil groups add
// nothing, so the zero Filters selects every row.
func (t *GormTranslator) Translate(filters user.Filters) []Scope {
	var scopes []Scope
	if filters.ID != nil {
		scopes = append(scopes, translateID(*filters.ID)...)
	}
	if filters.Name != nil {
		scopes = append(scopes, translateValue(ColumnName, *filters.Name)...)
	}
	if filters.DisplayName != nil {
		scopes = append(scopes, translateValue(ColumnDisplayName, *filters.DisplayName)...)
	}
	if filters.Role != nil {
		scopes = append(scopes, translateRole(*filters.Role)...)
	}
	if filters.Email != nil {
		scopes = append(scopes, translateOptionalValue(ColumnEmail, *filters.Email)...)
	}
	if filters.Avatar != nil {
		scopes = append(scopes, translateOptionalValue(ColumnAvatar, *filters.Avatar)...)
	}
	return scopes
}

func where(query string, args ...any) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(query, args...)
	}
}

func stringValues[T interface{ String() string }](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.String()
	}
	return out
}

func translateID(f user.IDFilters) []Scope {
	var scopes []Scope
	if f.Eq != nil {
		scopes = append(scopes, where(ColumnID+" = ?", f.Eq.Value.String()))
	}
	if f.Ne != nil {
		scopes = append(scopes, where(ColumnID+" <> ?", f.Ne.Value.String()))
	}
	if f.In != nil {
		scopes = append(scopes, in(ColumnID, stringValues(f.In.Values)))
	}
	if f.Nin != nil && len(f.Nin.Values) > 0 {
		scopes = append(scopes, where(ColumnID+" NOT IN ?", stringValues(f.Nin.Values)))
	}
	return scopes
}

func translateValue[T user.Value](column string, f user.ValueFilters[T]) []Scope {
	var scopes []Scope
	if f.Eq != nil {
		scopes = append(scopes, where(column+" = ?", f.Eq.Value.String()))
	}
	if f.Ne != nil {
		scopes = append(scopes, where(column+" <> ?", f.Ne.Value.String()))
	}
	if f.In != nil {
		scopes = append(scopes, in(column, stringValues(f.In.Values)))
	}
	if f.Nin != nil && len(f.Nin.Values) > 0 {
		scopes = append(scopes, where(column+" NOT IN ?", stringValues(f.Nin.Values)))
	}
	if f.Regex != nil {
		scopes = append(scopes, regex(column, f.Regex))
	}
	return scopes
}

// translateOptionalValue maps a nullable column. NULL fails Eq, In and
// Regex on its own; Ne and Nin must admit it explicitly.
func translateOptionalValue[T user.Value](column string, f user.OptionalValueFilters[T]) []Scope {
	var scopes []Scope
	if f.Exists != nil {
		if f.Exists.Value {
			scopes = append(scopes, where(column+" IS NOT NULL"))
		} else {
			scopes = append(scopes, where(column+" IS NULL"))
		}
	}
	if f.Eq != nil {
		scopes = append(scopes, where(column+" = ?", f.Eq.Value.String()))
	}
	if f.Ne != nil {
		scopes = append(scopes, where("("+column+" <> ? OR "+column+" IS NULL)", f.Ne.Value.String()))
	}
	if f.In != nil {
		scopes = append(scopes, in(column, stringValues(f.In.Values)))
	}
	if f.Nin != nil && len(f.Nin.Values) > 0 {
		scopes = append(scopes, where("("+column+" NOT IN ? OR "+column+" IS NULL)", stringValues(f.Nin.Values)))
	}
	if f.Regex != nil {
		scopes = append(scopes, regex(column, f.Regex))
	}
	return scopes
}

func translateRole(f user.RoleFilters) []Scope {
	var scopes []Scope
	if f.Eq != nil {
		scopes = append(scopes, where(ColumnRole+" = ?", int(f.Eq.Value)))
	}
	if f.Ne != nil {
		scopes = append(scopes, where(ColumnRole+" <> ?", int(f.Ne.Value)))
	}
	if f.Lt != nil {
		scopes = append(scopes, where(ColumnRole+" < ?", int(f.Lt.Value)))
	}
	if f.Le != nil {
		scopes = append(scopes, where(ColumnRole+" <= ?", int(f.Le.Value)))
	}
	if f.Gt != nil {
		scopes = append(scopes, where(ColumnRole+" > ?", int(f.Gt.Value)))
	}
	if f.Ge != nil {
		scopes = append(scopes, where(ColumnRole+" >= ?", int(f.Ge.Value)))
	}
	if f.Between != nil {
		scopes = append(scopes, where("("+ColumnRole+" > ? AND "+ColumnRole+" < ?)", int(f.Between.Min), int(f.Between.Max)))
	}
	if f.BetweenEqual != nil {
		scopes = append(scopes, where(ColumnRole+" BETWEEN ? AND ?", int(f.BetweenEqual.Min), int(f.BetweenEqual.Max)))
	}
	if f.NotBetween != nil {
		scopes = append(scopes, where("("+ColumnRole+" <= ? OR "+ColumnRole+" >= ?)", int(f.NotBetween.Min), int(f.NotBetween.Max)))
	}
	if f.NotBetweenEqual != nil {
		scopes = append(scopes, where(ColumnRole+" NOT BETWEEN ? AND ?", int(f.NotBetweenEqual.Min), int(f.NotBetweenEqual.Max)))
	}
	if f.In != nil {
		scopes = append(scopes, in(ColumnRole, roleValues(f.In.Values)))
	}
	if f.Nin != nil && len(f.Nin.Values) > 0 {
		scopes = append(scopes, where(ColumnRole+" NOT IN ?", roleValues(f.Nin.Values)))
	}
	return scopes
}

func roleValues(roles []user.Role) []int {
	out := make([]int, len(roles))
	for i, r := range roles {
		out[i] = int(r)
	}
	return out
}

func in[V any](column string, values []V) Scope {
	if len(values) == 0 {
		return where(matchNothing)
	}
	return where(column+" IN ?", values)
}

func regex(column string, f *filter.Regex) Scope {
	if !f.Valid() {
		return where(matchNothing)
	}
	return where(column+" REGEXP ?", f.Pattern)
}
