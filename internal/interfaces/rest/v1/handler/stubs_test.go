package handler

import (
	"context"
	"io"

	"go-blog-api/internal/domain"
	"go-blog-api/internal/port/outbound"
)

type stubUsers struct {
	user    *domain.User
	err     error
	created domain.NewUser
	changes domain.UserChanges
	avatar  outbound.AvatarFile
	body    string
	deleted int64
}

func (s *stubUsers) CreateUser(_ context.Context, in domain.NewUser) (*domain.User, error) {
	s.created = in
	return s.user, s.err
}

func (s *stubUsers) GetUser(context.Context, int64) (*domain.User, error) { return s.user, s.err }

func (s *stubUsers) UpdateUser(_ context.Context, _ int64, changes domain.UserChanges) (*domain.User, error) {
	s.changes = changes
	return s.user, s.err
}

func (s *stubUsers) DeleteUser(_ context.Context, id int64) error {
	s.deleted = id
	return s.err
}

func (s *stubUsers) UploadAvatar(_ context.Context, _ int64, file outbound.AvatarFile) (*domain.User, error) {
	s.avatar = file
	data, _ := io.ReadAll(file.Body)
	s.body = string(data)
	return s.user, s.err
}

type stubPosts struct {
	post    *domain.Post
	list    []domain.Post
	err     error
	created domain.NewPost
	changes domain.PostChanges
}

func (s *stubPosts) CreatePost(_ context.Context, in domain.NewPost) (*domain.Post, error) {
	s.created = in
	return s.post, s.err
}

func (s *stubPosts) GetPost(context.Context, int64) (*domain.Post, error) { return s.post, s.err }

func (s *stubPosts) UpdatePost(_ context.Context, _ int64, changes domain.PostChanges) (*domain.Post, error) {
	s.changes = changes
	return s.post, s.err
}

func (s *stubPosts) DeletePost(context.Context, int64) error { return s.err }

func (s *stubPosts) ListPostsByUser(context.Context, int64) ([]domain.Post, error) {
	return s.list, s.err
}

type stubAuth struct {
	token  string
	user   *domain.User
	err    error
	signup domain.NewUser
}

func (s *stubAuth) Login(context.Context, string, string) (string, error) { return s.token, s.err }

func (s *stubAuth) Signup(_ context.Context, in domain.NewUser) (string, *domain.User, error) {
	s.signup = in
	return s.token, s.user, s.err
}

type stubPublisher struct {
	event   string
	payload domain.Notice
}

func (p *stubPublisher) Publish(_ context.Context, event string, payload domain.Notice) {
	p.event = event
	p.payload = payload
}

type stubHub struct {
	running bool
	count   int
}

func (h stubHub) IsRunning() bool      { return h.running }
func (h stubHub) ConnectionCount() int { return h.count }
