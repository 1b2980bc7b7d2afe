package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DBStruct is the constraint for all database models.
type DBStruct any

// GeneralFields is embedded in every model, id is generated on create.
type GeneralFields struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (f *GeneralFields) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// Page is the top level of the link hierarchy. A page without any
// PageGroup row is public.
type Page struct {
	GeneralFields
	Title     string `gorm:"uniqueIndex;type:varchar(255);not null" json:"title"`
	SortOrder int32  `gorm:"not null" json:"sort_order"`
}

type Section struct {
	GeneralFields
	PageID      uuid.UUID `gorm:"type:char(36);index;not null" json:"page_id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	SortOrder   int32     `gorm:"not null" json:"sort_order"`

	Page *Page `gorm:"foreignKey:PageID" json:"-"`
}

type Link struct {
	GeneralFields
	SectionID   uuid.UUID `gorm:"type:char(36);index;not null" json:"section_id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	URL         string    `gorm:"type:text" json:"url"`
	Logo        string    `gorm:"type:text" json:"logo"`
	Background  string    `gorm:"type:varchar(7)" json:"background"`
	Color       string    `gorm:"type:varchar(7)" json:"color"`
	SortOrder   int32     `gorm:"not null" json:"sort_order"`

	Section *Section `gorm:"foreignKey:SectionID" json:"-"`
}

type User struct {
	GeneralFields
	Username string `gorm:"uniqueIndex;type:varchar(100);not null" json:"username"`
	Password string `gorm:"type:varchar(255);not null" json:"-"`
}

// Role is stored as data, the steady state set is {admin, user}.
type Role struct {
	GeneralFields
	Name string `gorm:"uniqueIndex;type:varchar(50);not null" json:"name"`
}

// Group is a visibility scope for pages.
type Group struct {
	GeneralFields
	Name string `gorm:"uniqueIndex;type:varchar(100);not null" json:"name"`
}

type UserRole struct {
	GeneralFields
	UID uuid.UUID `gorm:"type:char(36);uniqueIndex:idx_user_role;not null" json:"uid"`
	RID uuid.UUID `gorm:"column:rid;type:char(36);uniqueIndex:idx_user_role;not null" json:"rid"`

	User *User `gorm:"foreignKey:UID" json:"-"`
	Role *Role `gorm:"foreignKey:RID" json:"-"`
}

type UserGroup struct {
	GeneralFields
	UID uuid.UUID `gorm:"type:char(36);uniqueIndex:idx_user_group;not null" json:"uid"`
	GID uuid.UUID `gorm:"column:gid;type:char(36);uniqueIndex:idx_user_group;not null" json:"gid"`

	User  *User  `gorm:"foreignKey:UID" json:"-"`
	Group *Group `gorm:"foreignKey:GID" json:"-"`
}

type PageGroup struct {
	GeneralFields
	PID uuid.UUID `gorm:"column:pid;type:char(36);uniqueIndex:idx_page_group;not null" json:"pid"`
	GID uuid.UUID `gorm:"column:gid;type:char(36);uniqueIndex:idx_page_group;not null" json:"gid"`

	Page  *Page  `gorm:"foreignKey:PID" json:"-"`
	Group *Group `gorm:"foreignKey:GID" json:"-"`
}

// Tables lists every table in dependency order, parents first.
// The migrator relies on this order.
var Tables = []string{
	"pages",
	"sections",
	"links",
	"users",
	"roles",
	"groups",
	"user_roles",
	"user_groups",
	"page_groups",
}

func models() []any {
	return []any{
		&Page{}, &Section{}, &Link{},
		&User{}, &Role{}, &Group{},
		&UserRole{}, &UserGroup{}, &PageGroup{},
	}
}
