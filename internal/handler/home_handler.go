package handler

import (
	"net/http"

	"roomhub/internal/pkg/errs"
	"roomhub/internal/pkg/logx"
)

// TopicSidebarLimit caps the topics shown in the home-page sidebar.
const TopicSidebarLimit = 5

// HandleHome renders the room listing. The q parameter filters rooms by
// topic name, room name or description, and scopes the activity feed to
// rooms whose topic matches the same query. Empty q shows everything.
func HandleHome(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")

		rooms, err := deps.Store.SearchRooms(r.Context(), q)
		if err != nil {
			logx.Error(err, "home: room search failed", "q", q)
			deps.Render.Error(w, errs.NewError(errs.ErrUnknown))
			return
		}

		topics, err := deps.Store.TopTopics(r.Context(), TopicSidebarLimit)
		if err != nil {
			logx.Error(err, "home: topic listing failed")
			deps.Render.Error(w, errs.NewError(errs.ErrUnknown))
			return
		}

		roomMessages, err := deps.Store.FeedByTopic(r.Context(), q)
		if err != nil {
			logx.Error(err, "home: activity feed failed", "q", q)
			deps.Render.Error(w, errs.NewError(errs.ErrUnknown))
			return
		}

		data := pageData(r)
		data["q"] = q
		data["rooms"] = rooms
		data["topics"] = topics
		data["room_count"] = len(rooms)
		data["room_messages"] = roomMessages

		deps.Render.HTML(w, http.StatusOK, "home", data)
	}
}

// HandleTopics renders the topic listing filtered by the q parameter.
func HandleTopics(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")

		topics, err := deps.Store.SearchTopics(r.Context(), q)
		if err != nil {
			logx.Error(err, "topics: search failed", "q", q)
			deps.Render.Error(w, errs.NewError(errs.ErrUnknown))
			return
		}

		data := pageData(r)
		data["q"] = q
		data["topics"] = topics

		deps.Render.HTML(w, http.StatusOK, "topics", data)
	}
}

// HandleActivity renders the global feed of all messages, newest first.
func HandleActivity(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roomMessages, err := deps.Store.AllMessages(r.Context())
		if err != nil {
			logx.Error(err, "activity: message listing failed")
			deps.Render.Error(w, errs.NewError(errs.ErrUnknown))
			return
		}

		data := pageData(r)
		data["room_messages"] = roomMessages

		deps.Render.HTML(w, http.StatusOK, "activity", data)
	}
}
