package models

import "fmt"

// ListType is the closed set of per-user list kinds. Every user owns exactly
// one list of each type, created together with the account.
type ListType int

const (
	ListTypePlanned ListType = 1
	ListTypeWatched ListType = 2
	ListTypeDropped ListType = 3
)

// AllListTypes in the order the default lists are created for a new user.
var AllListTypes = []ListType{ListTypePlanned, ListTypeWatched, ListTypeDropped}

func (t ListType) Valid() bool {
	return t >= ListTypePlanned && t <= ListTypeDropped
}

func (t ListType) String() string {
	switch t {
	case ListTypePlanned:
		return "planned"
	case ListTypeWatched:
		return "watched"
	case ListTypeDropped:
		return "dropped"
	}
	return fmt.Sprintf("ListType(%d)", int(t))
}

// ParseListType maps the wire name back to a ListType.
func ParseListType(name string) (ListType, bool) {
	switch name {
	case "planned":
		return ListTypePlanned, true
	case "watched":
		return ListTypeWatched, true
	case "dropped":
		return ListTypeDropped, true
	}
	return 0, false
}

type FilmList struct {
	ID      int64    `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID  string   `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_film_lists_user_type"`
	Type    ListType `json:"type" gorm:"not null;uniqueIndex:idx_film_lists_user_type;check:type >= 1 AND type <= 3"`
	Private bool     `json:"private" gorm:"not null;default:true"`

	// Associations
	User  *User  `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Films []Film `json:"films,omitempty" gorm:"many2many:list_films;constraint:OnDelete:CASCADE;"`
}

func (FilmList) TableName() string {
	return "film_lists"
}
