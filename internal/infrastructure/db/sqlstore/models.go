package sqlstore

import (
	"time"

	"github.com/google/uuid"
)

type UserModel struct {
	ID       uint   `gorm:"primaryKey"`
	Username string `gorm:"size:50;uniqueIndex;not null"`
	Email    string `gorm:"size:120;uniqueIndex;not null"`
}

func (UserModel) TableName() string {
	return "users"
}

type TagModel struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:50;uniqueIndex;not null"`
}

func (TagModel) TableName() string {
	return "tags"
}

type PostModel struct {
	ID        uint       `gorm:"primaryKey"`
	Title     string     `gorm:"size:100;not null"`
	Content   string     `gorm:"type:text;not null"`
	UserID    uint       `gorm:"not null;index"`
	Author    UserModel  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `gorm:"not null"`
	Level     string     `gorm:"size:50;not null"`
	Category  string     `gorm:"size:50;not null"`
	Published bool       `gorm:"not null;default:true"`
	Tags      []TagModel `gorm:"many2many:post_tag_association;joinForeignKey:PostID;joinReferences:TagID"`
}

func (PostModel) TableName() string {
	return "posts"
}

// PostTagModel is a row of the post/tag join table.
type PostTagModel struct {
	PostID uint `gorm:"primaryKey"`
	TagID  uint `gorm:"primaryKey"`
}

func (PostTagModel) TableName() string {
	return "post_tag_association"
}

type IdempotencyRecordModel struct {
	Id         uuid.UUID `gorm:"type:varchar(36);primaryKey"`
	Key        string    `gorm:"size:255;uniqueIndex;not null"`
	Request    string    `gorm:"type:text"`
	Response   string    `gorm:"type:text"`
	StatusCode int
	CreatedAt  time.Time
}

func (IdempotencyRecordModel) TableName() string {
	return "idempotency_records"
}
