package facade

import (
	"context"
	"io"
	"sort"
	"sync"

	"go-blog-api/internal/auth"
	"go-blog-api/internal/domain"
	"go-blog-api/internal/port/outbound"
)

type fakeUserRepo struct {
	mu        sync.Mutex
	users     map[int64]domain.User
	nextID    int64
	updateErr error
}

func newFakeUserRepo(users ...domain.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[int64]domain.User)}
	for _, u := range users {
		r.users[u.ID] = u
		if u.ID > r.nextID {
			r.nextID = u.ID
		}
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrConflict
		}
	}
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrNotFound
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

type fakePostRepo struct {
	posts  map[int64]domain.Post
	nextID int64
}

func newFakePostRepo(posts ...domain.Post) *fakePostRepo {
	r := &fakePostRepo{posts: make(map[int64]domain.Post)}
	for _, p := range posts {
		r.posts[p.ID] = p
		if p.ID > r.nextID {
			r.nextID = p.ID
		}
	}
	return r
}

func (r *fakePostRepo) Create(_ context.Context, post *domain.Post) error {
	r.nextID++
	post.ID = r.nextID
	r.posts[post.ID] = *post
	return nil
}

func (r *fakePostRepo) GetByID(_ context.Context, id int64) (*domain.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *fakePostRepo) Update(_ context.Context, post *domain.Post) error {
	if _, ok := r.posts[post.ID]; !ok {
		return domain.ErrNotFound
	}
	r.posts[post.ID] = *post
	return nil
}

func (r *fakePostRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.posts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *fakePostRepo) ListByUser(_ context.Context, userID int64) ([]domain.Post, error) {
	out := []domain.Post{}
	for _, p := range r.posts {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

type fakeAvatarStore struct {
	uploaded  []string
	deleted   []string
	uploadErr error
	deleteErr error
}

func (s *fakeAvatarStore) Upload(_ context.Context, file outbound.AvatarFile) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	body, _ := io.ReadAll(file.Body)
	url := "https://cdn.example.com/" + string(body) + ".jpg"
	s.uploaded = append(s.uploaded, url)
	return url, nil
}

func (s *fakeAvatarStore) Delete(_ context.Context, url string) error {
	s.deleted = append(s.deleted, url)
	return s.deleteErr
}

type published[T any] struct {
	event   string
	payload T
}

type recordingPublisher[T any] struct {
	mu     sync.Mutex
	events []published[T]
}

func (p *recordingPublisher[T]) Publish(_ context.Context, event string, payload T) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published[T]{event: event, payload: payload})
}

func (p *recordingPublisher[T]) Events() []published[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]published[T](nil), p.events...)
}

type stubIssuer struct {
	issued []auth.Identity
	err    error
}

func (s *stubIssuer) Issue(identity auth.Identity) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.issued = append(s.issued, identity)
	return "token-for-" + identity.Email, nil
}

type userFixture struct {
	repo    *fakeUserRepo
	avatars *fakeAvatarStore
	changed *recordingPublisher[domain.User]
	deleted *recordingPublisher[domain.UserDeleted]
	avatar  *recordingPublisher[domain.AvatarUpdated]
	service *UserApplicationService
}
