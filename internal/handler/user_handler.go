package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"roomhub/internal/app/db"
	"roomhub/internal/app/store"
	"roomhub/internal/pkg/auth/session"
	"roomhub/internal/pkg/errs"
	"roomhub/internal/pkg/logx"
	"roomhub/internal/pkg/randx"
	"roomhub/internal/pkg/render"
	"roomhub/internal/pkg/req"
)

// HandleProfile renders a user's public profile: their hosted rooms,
// their messages and the global topic list. No authorization gate.
func HandleProfile(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "id")

		user, err := deps.Store.GetUserByID(r.Context(), userID)
		if err != nil {
			if db.IsNotFound(err) {
				deps.Render.Error(w, errs.NewError(errs.ErrUserNotFound))
				return
			}

			logx.Error(err, "profile: user fetch failed", "user_id", userID)
			deps.Render.Error(w, errs.NewError(errs.ErrUnknown))
			return
		}

		rooms, err := deps.Store.RoomsByHost(r.Context(), user.ID)
		if err != nil {
			logx.Error(err, "profile: room listing failed", "user_id", user.ID)
			deps.Render.Error(w, errs.NewError(errs.ErrUnknown))
			return
		}

		roomMessages, err := deps.Store.MessagesByUser(r.Context(), user.ID)
		if err != nil {
			logx.Error(err, "profile: message listing failed", "user_id", user.ID)
			deps.Render.Error(w, errs.NewError(errs.ErrUnknown))
			return
		}

		topics, err := deps.Store.SearchTopics(r.Context(), "")
		if err != nil {
			logx.Error(err, "profile: topic listing failed")
			deps.Render.Error(w, errs.NewError(errs.ErrUnknown))
			return
		}

		data := pageData(r)
		data["profile_user"] = user
		data["avatar_url"] = deps.FullAssetURL(user.AvatarKey)
		data["rooms"] = rooms
		data["room_messages"] = roomMessages
		data["topics"] = topics

		deps.Render.HTML(w, http.StatusOK, "profile", data)
	}
}

// renderProfileForm re-renders the profile form with a flash error and
// the sticky field values.
func renderProfileForm(deps *AppDeps, w http.ResponseWriter, r *http.Request, flash string, values map[string]string) {
	data := pageData(r)
	data["error"] = flash
	data["values"] = values
	data["storage_enabled"] = deps.Storage != nil

	deps.Render.HTML(w, http.StatusOK, "profile_form", data)
}

// HandleUpdateProfile lets the actor edit their own record only; the
// target is always taken from the session, never from the request.
func HandleUpdateProfile(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := session.FromRequest(r)

		user, err := deps.Store.GetUserByID(r.Context(), claims.UserID)
		if err != nil {
			logx.Error(err, "update profile: user fetch failed", "user_id", claims.UserID)
			deps.Render.Error(w, errs.NewError(errs.ErrUnknown))
			return
		}

		if r.Method != http.MethodPost {
			renderProfileForm(deps, w, r, "", map[string]string{
				"name":       user.Name,
				"email":      user.Email,
				"bio":        user.Bio,
				"avatar_key": user.AvatarKey,
			})
			return
		}

		if customErr := req.ParseForm(w, r); customErr != nil {
			deps.Render.Error(w, customErr)
			return
		}

		email := strings.ToLower(req.Field(r, "email"))
		name := strings.ToLower(req.Field(r, "name"))
		bio := req.Field(r, "bio")
		avatarKey := req.Field(r, "avatar_key")

		values := map[string]string{
			"name": name, "email": email, "bio": bio, "avatar_key": avatarKey,
		}

		if !emailRegex.MatchString(email) {
			renderProfileForm(deps, w, r, errs.NewError(errs.ErrInvalidEmail).Message, values)
			return
		}

		if !nameRegex.MatchString(name) {
			renderProfileForm(deps, w, r, errs.NewError(errs.ErrInvalidName).Message, values)
			return
		}

		if avatarKey != "" && !randx.IsValidAvatarKey(avatarKey) {
			renderProfileForm(deps, w, r, errs.NewError(errs.ErrInvalidParams).Message, values)
			return
		}

		updatedUser, err := deps.Store.UpdateUserProfile(r.Context(), store.UpdateUserProfileParams{
			ID:        user.ID,
			Email:     email,
			Name:      name,
			Bio:       bio,
			AvatarKey: avatarKey,
		})

		if err != nil {
			if db.IsUniqueViolation(err) {
				renderProfileForm(deps, w, r, errs.NewError(errs.ErrUserAlreadyExists).Message, values)
				return
			}

			logx.Error(err, "update profile: update failed", "user_id", user.ID)
			deps.Render.Error(w, errs.NewError(errs.ErrUnknown))
			return
		}

		// A replaced avatar leaves an orphaned object behind; clean it
		// up off the request path.
		oldKey := user.AvatarKey
		if deps.Storage != nil && oldKey != "" && oldKey != avatarKey {
			go func(key string) {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				_ = deps.Storage.Delete(ctx, key)
			}(oldKey)
		}

		// The display name lives in the session token; refresh it so
		// the navigation bar matches immediately.
		if err := establishSession(deps, w, updatedUser); err != nil {
			logx.Error(err, "update profile: session refresh failed", "user_id", user.ID)
		}

		render.Redirect(w, r, "/profile/"+user.ID)
	}
}

const (
	// MaxAvatarSize caps avatar uploads at 5 MB.
	MaxAvatarSize int64 = 5 << 20

	// PresignExpiration is how long an issued upload URL stays valid.
	PresignExpiration = 10 * time.Minute
)

// allowedAvatarTypes lists the accepted avatar MIME types.
var allowedAvatarTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
	"image/gif":  {},
}

type PresignAvatarInput struct {
	MimeType string `json:"mimeType"`
	FileSize int64  `json:"fileSize"`
}

// HandlePresignAvatar issues a presigned PUT URL for an avatar upload
// plus the object key the profile form submits afterwards.
func HandlePresignAvatar(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deps.Storage == nil {
			respondJSONError(w, errs.NewError(errs.ErrStorageUnavailable))
			return
		}

		var input PresignAvatarInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			respondJSONError(w, customErr)
			return
		}

		if _, ok := allowedAvatarTypes[input.MimeType]; !ok {
			respondJSONError(w, errs.NewError(errs.ErrFileTypeInvalid))
			return
		}

		if input.FileSize <= 0 || input.FileSize > MaxAvatarSize {
			respondJSONError(w, errs.NewError(errs.ErrFileSizeTooLarge))
			return
		}

		key, err := randx.AvatarKey()
		if err != nil {
			logx.Error(err, "presign avatar: key generation failed")
			respondJSONError(w, errs.NewError(errs.ErrUnknown))
			return
		}

		uploadURL, err := deps.Storage.PresignUpload(r.Context(), key, input.MimeType, input.FileSize, PresignExpiration)
		if err != nil {
			logx.Error(err, "presign avatar: presign failed", "key", key)
			respondJSONError(w, errs.NewError(errs.ErrUnknown))
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{
			"uploadUrl": uploadURL,
			"key":       key,
		})
	}
}

// respondJSON writes a JSON payload for the API-style endpoints.
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logx.Error(err, "failed to encode JSON response")
	}
}

// respondJSONError writes a CustomError as a JSON payload.
func respondJSONError(w http.ResponseWriter, customErr *errs.CustomError) {
	respondJSON(w, customErr.Status, map[string]any{
		"code":    customErr.Code,
		"message": customErr.Message,
	})
}
