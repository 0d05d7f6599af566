package domain

// Event names broadcast after a successful mutation, <resource>.<action>.
const (
	EventPostCreated       = "post.created"
	EventPostUpdated       = "post.updated"
	EventPostDeleted       = "post.deleted"
	EventUserCreated       = "user.created"
	EventUserUpdated       = "user.updated"
	EventUserDeleted       = "user.deleted"
	EventUserAvatarUpdated = "user.avatar.updated"
	EventNotification      = "notification"
)

// Notice is the payload of an operator broadcast.
type Notice struct {
	Msg string `json:"msg"`
}
