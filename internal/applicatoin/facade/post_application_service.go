package facade

import (
	"context"
	"strings"

	"go-blog-api/internal/domain"
	"go-blog-api/internal/infrastructure/logger"
	"go-blog-api/internal/port/inbound"
	"go-blog-api/internal/port/outbound"
)

type PostApplicationService struct {
	posts  outbound.PostRepository
	events PostEvents
	logger logger.Logger
}

var _ inbound.PostUseCase = (*PostApplicationService)(nil)

func NewPostApplicationService(posts outbound.PostRepository, events PostEvents, log logger.Logger) *PostApplicationService {
	return &PostApplicationService{
		posts:  posts,
		events: events,
		logger: log.WithField("service", "post"),
	}
}

func (s *PostApplicationService) CreatePost(ctx context.Context, in domain.NewPost) (*domain.Post, error) {
	if err := validateTitle(in.Title); err != nil {
		return nil, err
	}
	if err := validateContent(in.Content); err != nil {
		return nil, err
	}

	post := &domain.Post{
		Title:   strings.TrimSpace(in.Title),
		Content: in.Content,
		UserID:  in.UserID,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	s.events.Changed.Publish(ctx, domain.EventPostCreated, *post)
	return post, nil
}

func (s *PostApplicationService) GetPost(ctx context.Context, id int64) (*domain.Post, error) {
	return s.posts.GetByID(ctx, id)
}

func (s *PostApplicationService) UpdatePost(ctx context.Context, id int64, changes domain.PostChanges) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if changes.Title != nil {
		if err := validateTitle(*changes.Title); err != nil {
			return nil, err
		}
		post.Title = strings.TrimSpace(*changes.Title)
	}
	if changes.Content != nil {
		if err := validateContent(*changes.Content); err != nil {
			return nil, err
		}
		post.Content = *changes.Content
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}

	s.events.Changed.Publish(ctx, domain.EventPostUpdated, *post)
	return post, nil
}

func (s *PostApplicationService) DeletePost(ctx context.Context, id int64) error {
	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}

	s.events.Deleted.Publish(ctx, domain.EventPostDeleted, domain.PostDeleted{ID: id})
	return nil
}

func (s *PostApplicationService) ListPostsByUser(ctx context.Context, userID int64) ([]domain.Post, error) {
	return s.posts.ListByUser(ctx, userID)
}
