package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"roomhub/internal/app/db"
	"roomhub/internal/app/store"
	"roomhub/internal/pkg/auth/session"
	"roomhub/internal/pkg/errs"
	"roomhub/internal/pkg/logx"
	"roomhub/internal/pkg/render"
	"roomhub/internal/pkg/req"
)

// HandleRoom renders a room's conversation. POST with a session posts a
// message into the room, adds the author to the participants and
// redirects back to the room so a refresh never re-posts.
func HandleRoom(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roomID := chi.URLParam(r, "id")

		room, err := deps.Store.GetRoom(r.Context(), roomID)
		if err != nil {
			if db.IsNotFound(err) {
				deps.Render.Error(w, errs.NewError(errs.ErrRoomNotFound))
				return
			}

			logx.Error(err, "room: fetch failed", "room_id", roomID)
			deps.Render.Error(w, errs.NewError(errs.ErrUnknown))
			return
		}

		if r.Method == http.MethodPost {
			claims := session.FromRequest(r)
			if claims == nil {
				render.Redirect(w, r, "/login")
				return
			}

			if customErr := req.ParseForm(w, r); customErr != nil {
				deps.Render.Error(w, customErr)
				return
			}

			body := req.Field(r, "body")
			if body == "" {
				render.Redirect(w, r, "/room/"+room.ID)
				return
			}

			_, err := deps.Store.CreateMessage(r.Context(), store.CreateMessageParams{
				UserID: claims.UserID,
				RoomID: room.ID,
				Body:   body,
			})
			if err != nil {
				logx.Error(err, "room: message creation failed", "room_id", room.ID)
				deps.Render.Error(w, errs.NewError(errs.ErrUnknown))
				return
			}

			if err := deps.Store.AddParticipant(r.Context(), room.ID, claims.UserID); err != nil {
				logx.Error(err, "room: participant insert failed",
					"room_id", room.ID, "user_id", claims.UserID)
				deps.Render.Error(w, errs.NewError(errs.ErrUnknown))
				return
			}

			render.Redirect(w, r, "/room/"+room.ID)
			return
		}

		roomMessages, err := deps.Store.MessagesByRoom(r.Context(), room.ID)
		if err != nil {
			logx.Error(err, "room: message listing failed", "room_id", room.ID)
			deps.Render.Error(w, errs.NewError(errs.ErrUnknown))
			return
		}

		participants, err := deps.Store.ListParticipants(r.Context(), room.ID)
		if err != nil {
			logx.Error(err, "room: participant listing failed", "room_id", room.ID)
			deps.Render.Error(w, errs.NewError(errs.ErrUnknown))
			return
		}

		data := pageData(r)
		data["room"] = room
		data["room_messages"] = roomMessages
		data["participants"] = participants

		deps.Render.HTML(w, http.StatusOK, "room", data)
	}
}

// renderRoomForm renders the create/edit room form.
func renderRoomForm(deps *AppDeps, w http.ResponseWriter, r *http.Request, onCreate bool, flash string, values map[string]string) {
	topics, err := deps.Store.SearchTopics(r.Context(), "")
	if err != nil {
		logx.Error(err, "room form: topic listing failed")
		deps.Render.Error(w, errs.NewError(errs.ErrUnknown))
		return
	}

	data := pageData(r)
	data["on_create"] = onCreate
	data["error"] = flash
	data["values"] = values
	data["topics"] = topics

	deps.Render.HTML(w, http.StatusOK, "room_form", data)
}

// roomFormInput validates the submitted room form. It returns the
// trimmed fields and the first validation error, if any.
func roomFormInput(r *http.Request) (topicName, name, description string, customErr *errs.CustomError) {
	topicName = req.Field(r, "topic")
	name = req.Field(r, "name")
	description = req.Field(r, "description")

	if topicName == "" {
		return topicName, name, description, errs.NewError(errs.ErrTopicNameEmpty)
	}
	if name == "" {
		return topicName, name, description, errs.NewError(errs.ErrRoomNameEmpty)
	}

	return topicName, name, description, nil
}

// HandleCreateRoom creates a room hosted by the actor. The topic is
// resolved by name with get-or-create semantics.
func HandleCreateRoom(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := session.FromRequest(r)

		if r.Method != http.MethodPost {
			renderRoomForm(deps, w, r, true, "", map[string]string{})
			return
		}

		if customErr := req.ParseForm(w, r); customErr != nil {
			deps.Render.Error(w, customErr)
			return
		}

		topicName, name, description, customErr := roomFormInput(r)
		values := map[string]string{"topic": topicName, "name": name, "description": description}
		if customErr != nil {
			renderRoomForm(deps, w, r, true, customErr.Message, values)
			return
		}

		topic, err := deps.Store.GetOrCreateTopic(r.Context(), topicName)
		if err != nil {
			logx.Error(err, "create room: topic resolution failed", "topic", topicName)
			deps.Render.Error(w, errs.NewError(errs.ErrUnknown))
			return
		}

		_, err = deps.Store.CreateRoom(r.Context(), store.CreateRoomParams{
			HostID:      claims.UserID,
			TopicID:     topic.ID,
			Name:        name,
			Description: description,
		})
		if err != nil {
			logx.Error(err, "create room: insert failed", "host_id", claims.UserID)
			deps.Render.Error(w, errs.NewError(errs.ErrUnknown))
			return
		}

		render.Redirect(w, r, "/")
	}
}

// HandleUpdateRoom lets the host edit a room's topic, name and
// description. Non-hosts get a plain-text denial, for GET and POST
// alike.
func HandleUpdateRoom(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := session.FromRequest(r)
		roomID := chi.URLParam(r, "id")

		room, err := deps.Store.GetRoom(r.Context(), roomID)
		if err != nil {
			if db.IsNotFound(err) {
				deps.Render.Error(w, errs.NewError(errs.ErrRoomNotFound))
				return
			}

			logx.Error(err, "update room: fetch failed", "room_id", roomID)
			deps.Render.Error(w, errs.NewError(errs.ErrUnknown))
			return
		}

		if claims.UserID != room.HostID {
			render.Deny(w, errs.NewError(errs.ErrRoomEditForbidden))
			return
		}

		if r.Method != http.MethodPost {
			renderRoomForm(deps, w, r, false, "", map[string]string{
				"topic":       room.TopicName,
				"name":        room.Name,
				"description": room.Description,
			})
			return
		}

		if customErr := req.ParseForm(w, r); customErr != nil {
			deps.Render.Error(w, customErr)
			return
		}

		topicName, name, description, customErr := roomFormInput(r)
		values := map[string]string{"topic": topicName, "name": name, "description": description}
		if customErr != nil {
			renderRoomForm(deps, w, r, false, customErr.Message, values)
			return
		}

		topic, err := deps.Store.GetOrCreateTopic(r.Context(), topicName)
		if err != nil {
			logx.Error(err, "update room: topic resolution failed", "topic", topicName)
			deps.Render.Error(w, errs.NewError(errs.ErrUnknown))
			return
		}

		err = deps.Store.UpdateRoom(r.Context(), store.UpdateRoomParams{
			ID:          room.ID,
			TopicID:     topic.ID,
			Name:        name,
			Description: description,
		})
		if err != nil {
			logx.Error(err, "update room: update failed", "room_id", room.ID)
			deps.Render.Error(w, errs.NewError(errs.ErrUnknown))
			return
		}

		render.Redirect(w, r, "/")
	}
}

// HandleDeleteRoom lets the host delete a room after a confirmation
// page. Messages and membership rows cascade away with it.
func HandleDeleteRoom(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := session.FromRequest(r)
		roomID := chi.URLParam(r, "id")

		room, err := deps.Store.GetRoom(r.Context(), roomID)
		if err != nil {
			if db.IsNotFound(err) {
				deps.Render.Error(w, errs.NewError(errs.ErrRoomNotFound))
				return
			}

			logx.Error(err, "delete room: fetch failed", "room_id", roomID)
			deps.Render.Error(w, errs.NewError(errs.ErrUnknown))
			return
		}

		if claims.UserID != room.HostID {
			render.Deny(w, errs.NewError(errs.ErrRoomDeleteForbidden))
			return
		}

		if r.Method != http.MethodPost {
			data := pageData(r)
			data["obj"] = room.Name
			data["back"] = "/room/" + room.ID

			deps.Render.HTML(w, http.StatusOK, "delete", data)
			return
		}

		if err := deps.Store.DeleteRoom(r.Context(), room.ID); err != nil {
			logx.Error(err, "delete room: delete failed", "room_id", room.ID)
			deps.Render.Error(w, errs.NewError(errs.ErrUnknown))
			return
		}

		render.Redirect(w, r, "/")
	}
}
