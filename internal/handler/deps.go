package handler

import (
	"context"
	"net/http"

	"roomhub/internal/app/storage"
	"roomhub/internal/app/store"
	"roomhub/internal/configs"
	"roomhub/internal/pkg/auth/session"
	"roomhub/internal/pkg/render"
)

// Store is the data access surface the handlers depend on. The pgx
// implementation lives in internal/app/store; tests substitute an
// in-memory fake.
type Store interface {
	CreateUser(ctx context.Context, arg store.CreateUserParams) (store.User, error)
	GetUserByEmail(ctx context.Context, email string) (store.User, error)
	GetUserByID(ctx context.Context, id string) (store.User, error)
	UpdateUserProfile(ctx context.Context, arg store.UpdateUserProfileParams) (store.User, error)

	GetOrCreateTopic(ctx context.Context, name string) (store.Topic, error)
	SearchTopics(ctx context.Context, q string) ([]store.Topic, error)
	TopTopics(ctx context.Context, limit int) ([]store.Topic, error)

	CreateRoom(ctx context.Context, arg store.CreateRoomParams) (store.Room, error)
	GetRoom(ctx context.Context, id string) (store.Room, error)
	UpdateRoom(ctx context.Context, arg store.UpdateRoomParams) error
	DeleteRoom(ctx context.Context, id string) error
	SearchRooms(ctx context.Context, q string) ([]store.Room, error)
	RoomsByHost(ctx context.Context, hostID string) ([]store.Room, error)
	AddParticipant(ctx context.Context, roomID, userID string) error
	ListParticipants(ctx context.Context, roomID string) ([]store.User, error)

	CreateMessage(ctx context.Context, arg store.CreateMessageParams) (store.Message, error)
	GetMessage(ctx context.Context, id string) (store.Message, error)
	UpdateMessageBody(ctx context.Context, id, body string) error
	DeleteMessage(ctx context.Context, id string) error
	MessagesByRoom(ctx context.Context, roomID string) ([]store.Message, error)
	MessagesByUser(ctx context.Context, userID string) ([]store.Message, error)
	FeedByTopic(ctx context.Context, q string) ([]store.Message, error)
	AllMessages(ctx context.Context) ([]store.Message, error)
}

// AppDeps bundles everything a handler needs.
type AppDeps struct {
	Store  Store
	Config *configs.AppConfig
	Render *render.Renderer

	// Storage is nil when the S3 settings are not configured; avatar
	// uploads are disabled in that case.
	Storage storage.StorageService
}

// SecureCookies reports whether session cookies should be marked Secure.
func (d *AppDeps) SecureCookies() bool {
	return d.Config.Environment != "development"
}

// FullAssetURL turns a stored avatar object key into a browser-reachable
// URL. Empty keys stay empty.
func (d *AppDeps) FullAssetURL(key string) string {
	if key == "" || d.Config.AssetBaseURL == "" {
		return ""
	}
	return d.Config.AssetBaseURL + "/" + key
}

// pageData seeds the template context every page shares: the session
// claims of the current visitor, nil when anonymous.
func pageData(r *http.Request) map[string]any {
	return map[string]any{
		"user": session.FromRequest(r),
	}
}
