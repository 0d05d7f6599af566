package inbound

import (
	"context"

	"go-blog-api/internal/domain"
	"go-blog-api/internal/port/outbound"
)

type UserUseCase interface {
	CreateUser(ctx context.Context, in domain.NewUser) (*domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	UpdateUser(ctx context.Context, id int64, changes domain.UserChanges) (*domain.User, error)
	DeleteUser(ctx context.Context, id int64) error
	UploadAvatar(ctx context.Context, id int64, file outbound.AvatarFile) (*domain.User, error)
}

type PostUseCase interface {
	CreatePost(ctx context.Context, in domain.NewPost) (*domain.Post, error)
	GetPost(ctx context.Context, id int64) (*domain.Post, error)
	UpdatePost(ctx context.Context, id int64, changes domain.PostChanges) (*domain.Post, error)
	DeletePost(ctx context.Context, id int64) error
	ListPostsByUser(ctx context.Context, userID int64) ([]domain.Post, error)
}

// AuthUseCase exchanges credentials for a signed token.
type AuthUseCase interface {
	Login(ctx context.Context, email, password string) (string, error)
	Signup(ctx context.Context, in domain.NewUser) (string, *domain.User, error)
}
