package facade

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-blog-api/internal/auth"
	"go-blog-api/internal/domain"
	"go-blog-api/internal/infrastructure/logger"
	"go-blog-api/internal/port/outbound"
)

func newUserFixture(users ...domain.User) *userFixture {
	f := &userFixture{
		repo:    newFakeUserRepo(users...),
		avatars: &fakeAvatarStore{},
		changed: &recordingPublisher[domain.User]{},
		deleted: &recordingPublisher[domain.UserDeleted]{},
		avatar:  &recordingPublisher[domain.AvatarUpdated]{},
	}
	f.service = NewUserApplicationService(f.repo, f.avatars, UserEvents{
		Changed: f.changed,
		Deleted: f.deleted,
		Avatar:  f.avatar,
	}, logger.NewNop())
	return f
}

func strPtr(s string) *string { return &s }

func TestCreateUser_HashesPasswordAndPublishes(t *testing.T) {
	f := newUserFixture()

	user, err := f.service.CreateUser(context.Background(), domain.NewUser{
		Name:     " Ada Lovelace ",
		Email:    "ada@example.com",
		Password: "secret1",
		Role:     auth.RoleAdmin,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "Ada Lovelace", user.Name)
	assert.NotEqual(t, "secret1", user.PasswordHash)
	assert.NoError(t, auth.ComparePassword(user.PasswordHash, "secret1"))

	events := f.changed.Events()
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventUserCreated, events[0].event)
	assert.Equal(t, user.ID, events[0].payload.ID)
}

func TestCreateUser_Validation(t *testing.T) {
	valid := domain.NewUser{Name: "Ada", Email: "ada@example.com", Password: "secret1", Role: auth.RoleUser}

	tests := []struct {
		name   string
		mutate func(*domain.NewUser)
		want   string
	}{
		{"short name", func(u *domain.NewUser) { u.Name = "Al" }, "Name must be between 3 and 100 characters."},
		{"long name", func(u *domain.NewUser) { u.Name = strings.Repeat("a", 101) }, "Name must be between 3 and 100 characters."},
		{"bad email", func(u *domain.NewUser) { u.Email = "ada@example" }, "Invalid email address."},
		{"short password", func(u *domain.NewUser) { u.Password = "12345" }, "Password must be between 6 and 100 characters."},
		{"unknown role", func(u *domain.NewUser) { u.Role = "ROOT" }, "Role must be ADMIN or USER."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newUserFixture()
			in := valid
			tt.mutate(&in)

			_, err := f.service.CreateUser(context.Background(), in)
			require.ErrorIs(t, err, domain.ErrValidation)
			assert.EqualError(t, err, tt.want)
			assert.Empty(t, f.changed.Events(), "nothing is published on failure")
		})
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	f := newUserFixture(domain.User{ID: 1, Email: "ada@example.com", Role: auth.RoleUser})

	_, err := f.service.CreateUser(context.Background(), domain.NewUser{
		Name: "Ada", Email: "ada@example.com", Password: "secret1", Role: auth.RoleUser,
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, f.changed.Events())
}

func TestUpdateUser(t *testing.T) {
	f := newUserFixture(domain.User{ID: 1, Name: "Ada", Email: "ada@example.com", PasswordHash: "old", Role: auth.RoleUser})
	admin := auth.RoleAdmin

	user, err := f.service.UpdateUser(context.Background(), 1, domain.UserChanges{
		Name:     strPtr("Ada King"),
		Password: strPtr("newsecret"),
		Role:     &admin,
	})
	require.NoError(t, err)

	assert.Equal(t, "Ada King", user.Name)
	assert.Equal(t, auth.RoleAdmin, user.Role)
	assert.NoError(t, auth.ComparePassword(user.PasswordHash, "newsecret"))

	stored, _ := f.repo.GetByID(context.Background(), 1)
	assert.Equal(t, user.PasswordHash, stored.PasswordHash)

	events := f.changed.Events()
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventUserUpdated, events[0].event)
}

func TestUpdateUser_EmptyChangesIsNoop(t *testing.T) {
	f := newUserFixture(domain.User{ID: 1, Name: "Ada", Role: auth.RoleUser})

	user, err := f.service.UpdateUser(context.Background(), 1, domain.UserChanges{})
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.Name)
	assert.Empty(t, f.changed.Events())
}

func TestUpdateUser_Errors(t *testing.T) {
	f := newUserFixture(domain.User{ID: 1, Name: "Ada", Role: auth.RoleUser})

	_, err := f.service.UpdateUser(context.Background(), 2, domain.UserChanges{Name: strPtr("Grace")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.service.UpdateUser(context.Background(), 1, domain.UserChanges{Email: strPtr("nope")})
	assert.ErrorIs(t, err, domain.ErrValidation)

	assert.Empty(t, f.changed.Events())
}

func TestDeleteUser(t *testing.T) {
	avatar := "https://cdn.example.com/old.jpg"
	f := newUserFixture(domain.User{ID: 1, Name: "Ada", Avatar: &avatar, Role: auth.RoleUser})

	require.NoError(t, f.service.DeleteUser(context.Background(), 1))

	_, err := f.repo.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, []string{avatar}, f.avatars.deleted)

	events := f.deleted.Events()
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventUserDeleted, events[0].event)
	assert.Equal(t, domain.UserDeleted{ID: 1}, events[0].payload)

	assert.ErrorIs(t, f.service.DeleteUser(context.Background(), 1), domain.ErrNotFound)
	assert.Len(t, f.deleted.Events(), 1)
}

func TestUploadAvatar_ReplacesPrevious(t *testing.T) {
	old := "https://cdn.example.com/old.jpg"
	f := newUserFixture(domain.User{ID: 4, Name: "Ada", Avatar: &old, Role: auth.RoleUser})

	user, err := f.service.UploadAvatar(context.Background(), 4, outbound.AvatarFile{
		Filename: "me.jpg", ContentType: "image/jpeg", Body: strings.NewReader("new"),
	})
	require.NoError(t, err)

	require.NotNil(t, user.Avatar)
	assert.Equal(t, "https://cdn.example.com/new.jpg", *user.Avatar)
	assert.Equal(t, []string{old}, f.avatars.deleted)

	events := f.avatar.Events()
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventUserAvatarUpdated, events[0].event)
	assert.Equal(t, domain.AvatarUpdated{ID: 4, Avatar: "https://cdn.example.com/new.jpg"}, events[0].payload)
}

func TestUploadAvatar_OldDeleteFailureIsIgnored(t *testing.T) {
	old := "https://cdn.example.com/old.jpg"
	f := newUserFixture(domain.User{ID: 4, Avatar: &old, Role: auth.RoleUser})
	f.avatars.deleteErr = errors.New("s3 down")

	_, err := f.service.UploadAvatar(context.Background(), 4, outbound.AvatarFile{Body: strings.NewReader("new")})
	require.NoError(t, err)
	assert.Len(t, f.avatar.Events(), 1)
}

func TestUploadAvatar_Failures(t *testing.T) {
	t.Run("unknown user uploads nothing", func(t *testing.T) {
		f := newUserFixture()
		_, err := f.service.UploadAvatar(context.Background(), 9, outbound.AvatarFile{Body: strings.NewReader("x")})
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Empty(t, f.avatars.uploaded)
	})

	t.Run("upload error", func(t *testing.T) {
		f := newUserFixture(domain.User{ID: 1, Role: auth.RoleUser})
		f.avatars.uploadErr = errors.New("denied")
		_, err := f.service.UploadAvatar(context.Background(), 1, outbound.AvatarFile{Body: strings.NewReader("x")})
		assert.ErrorContains(t, err, "denied")
		assert.Empty(t, f.avatar.Events())
	})

	t.Run("update error removes the new object", func(t *testing.T) {
		f := newUserFixture(domain.User{ID: 1, Role: auth.RoleUser})
		f.repo.updateErr = errors.New("db down")
		_, err := f.service.UploadAvatar(context.Background(), 1, outbound.AvatarFile{Body: strings.NewReader("x")})
		assert.Error(t, err)
		assert.Equal(t, []string{"https://cdn.example.com/x.jpg"}, f.avatars.deleted)
		assert.Empty(t, f.avatar.Events())
	})
}
