package domain

import (
	"context"
	"time"
)

type User struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	Email          string    `gorm:"uniqueIndex;size:191;not null" json:"email"`
	PasswordDigest string    `gorm:"column:password_digest;size:191;not null" json:"-"`
	Name           string    `gorm:"size:150" json:"name"`
	CreatedAt      time.Time `json:"createdAt"`
	// todo.author_id -> users.id
	Items []Item `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
}

func (User) TableName() string { return "users" }

// UserRepository 身份存储；查不到时返回 nil, nil
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
}
