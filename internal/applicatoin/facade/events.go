package facade

import (
	"go-blog-api/internal/domain"
	"go-blog-api/internal/port/outbound"
)

// UserEvents are the publishers the user service announces mutations on.
type UserEvents struct {
	Changed outbound.EventPublisher[domain.User]
	Deleted outbound.EventPublisher[domain.UserDeleted]
	Avatar  outbound.EventPublisher[domain.AvatarUpdated]
}

// PostEvents are the publishers the post service announces mutations on.
type PostEvents struct {
	Changed outbound.EventPublisher[domain.Post]
	Deleted outbound.EventPublisher[domain.PostDeleted]
}
