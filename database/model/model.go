package model

import "time"

// User is a registered account. Password holds the salted PBKDF2 credential
// ("salt:hash" hex) and is never serialized.
type User struct {
	Id         int       `json:"id" gorm:"column:id_users;primaryKey;autoIncrement"`
	Email      string    `json:"email" gorm:"uniqueIndex;not null"`
	Password   string    `json:"-" gorm:"not null"`
	Username   string    `json:"username"`
	AvatarPath string    `json:"avatar_path"`
	CreatedAt  time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// Category is a fixed classification seeded at startup from the gallery table.
type Category struct {
	Id   int    `json:"id" gorm:"column:id_category;primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

func (Category) TableName() string {
	return "category"
}

// Tag is a free-form label. Tags are created lazily on first use and never
// deleted, even when no work references them anymore.
type Tag struct {
	Id   int    `json:"id" gorm:"column:id_tag;primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

func (Tag) TableName() string {
	return "tags"
}

// Art is a posted work. CategoryId is nil for works whose gallery label is
// outside the seeded set.
type Art struct {
	Id          int       `json:"id" gorm:"column:id_art;primaryKey;autoIncrement"`
	UserId      int       `json:"userId" gorm:"column:id_users;not null;index"`
	CategoryId  *int      `json:"categoryId" gorm:"column:id_category"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"not null"`
	ImagePath   string    `json:"-" gorm:"column:image_path"`
	Gallery     string    `json:"gallery" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}

func (Art) TableName() string {
	return "art"
}

// ArtTag joins works and tags. The composite unique index keeps a tag from
// being attached to the same work twice.
type ArtTag struct {
	Id    int `json:"id" gorm:"primaryKey;autoIncrement"`
	ArtId int `json:"artId" gorm:"column:id_art;not null;uniqueIndex:idx_arttags_art_tag"`
	TagId int `json:"tagId" gorm:"column:id_tag;not null;uniqueIndex:idx_arttags_art_tag"`
}

func (ArtTag) TableName() string {
	return "arttags"
}

// Setting is a key/value runtime setting row.
type Setting struct {
	Id    int    `json:"id" form:"id" gorm:"primaryKey;autoIncrement"`
	Key   string `json:"key" form:"key" gorm:"uniqueIndex"`
	Value string `json:"value" form:"value"`
}

func (Setting) TableName() string {
	return "settings"
}
