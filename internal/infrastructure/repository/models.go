package repository

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"go-blog-api/internal/auth"
	"go-blog-api/internal/domain"
)

type userModel struct {
	ID        int64   `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string  `gorm:"column:name;size:100;not null"`
	Email     string  `gorm:"column:email;size:255;not null;uniqueIndex"`
	Password  string  `gorm:"column:password;not null"`
	Avatar    *string `gorm:"column:avatar"`
	Role      string  `gorm:"column:role;size:16;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (userModel) TableName() string { return "users" }

func userModelFromEntity(u *domain.User) userModel {
	return userModel{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.PasswordHash,
		Avatar:    u.Avatar,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (m userModel) toEntity() *domain.User {
	return &domain.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.Password,
		Avatar:       m.Avatar,
		Role:         auth.Role(m.Role),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

type postModel struct {
	ID        int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Title     string `gorm:"column:title;not null"`
	Content   string `gorm:"column:content;type:text;not null"`
	UserID    int64  `gorm:"column:user_id;not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (postModel) TableName() string { return "posts" }

func postModelFromEntity(p *domain.Post) postModel {
	return postModel{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		UserID:    p.UserID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (m postModel) toEntity() domain.Post {
	return domain.Post{
		ID:        m.ID,
		Title:     m.Title,
		Content:   m.Content,
		UserID:    m.UserID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// Models lists the tables owned by this package, in migration order.
func Models() []any {
	return []any{&userModel{}, &postModel{}}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
