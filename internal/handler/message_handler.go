package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"roomhub/internal/app/db"
	"roomhub/internal/pkg/auth/session"
	"roomhub/internal/pkg/errs"
	"roomhub/internal/pkg/logx"
	"roomhub/internal/pkg/render"
	"roomhub/internal/pkg/req"
)

// HandleUpdateMessage lets the author edit a message's body. The room
// and author references never change; success redirects to the owning
// room.
func HandleUpdateMessage(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := session.FromRequest(r)
		messageID := chi.URLParam(r, "id")

		msg, err := deps.Store.GetMessage(r.Context(), messageID)
		if err != nil {
			if db.IsNotFound(err) {
				deps.Render.Error(w, errs.NewError(errs.ErrMessageNotFound))
				return
			}

			logx.Error(err, "update message: fetch failed", "message_id", messageID)
			deps.Render.Error(w, errs.NewError(errs.ErrUnknown))
			return
		}

		if claims.UserID != msg.UserID {
			render.Deny(w, errs.NewError(errs.ErrMessageEditForbidden))
			return
		}

		if r.Method != http.MethodPost {
			data := pageData(r)
			data["message"] = msg
			data["error"] = ""

			deps.Render.HTML(w, http.StatusOK, "message_form", data)
			return
		}

		if customErr := req.ParseForm(w, r); customErr != nil {
			deps.Render.Error(w, customErr)
			return
		}

		body := req.Field(r, "body")
		if body == "" {
			data := pageData(r)
			data["message"] = msg
			data["error"] = errs.NewError(errs.ErrMessageBodyEmpty).Message

			deps.Render.HTML(w, http.StatusOK, "message_form", data)
			return
		}

		if err := deps.Store.UpdateMessageBody(r.Context(), msg.ID, body); err != nil {
			logx.Error(err, "update message: update failed", "message_id", msg.ID)
			deps.Render.Error(w, errs.NewError(errs.ErrUnknown))
			return
		}

		render.Redirect(w, r, "/room/"+msg.RoomID)
	}
}

// HandleDeleteMessage lets the author delete a message after a
// confirmation page.
func HandleDeleteMessage(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := session.FromRequest(r)
		messageID := chi.URLParam(r, "id")

		msg, err := deps.Store.GetMessage(r.Context(), messageID)
		if err != nil {
			if db.IsNotFound(err) {
				deps.Render.Error(w, errs.NewError(errs.ErrMessageNotFound))
				return
			}

			logx.Error(err, "delete message: fetch failed", "message_id", messageID)
			deps.Render.Error(w, errs.NewError(errs.ErrUnknown))
			return
		}

		if claims.UserID != msg.UserID {
			render.Deny(w, errs.NewError(errs.ErrMessageDeleteForbidden))
			return
		}

		if r.Method != http.MethodPost {
			data := pageData(r)
			data["obj"] = msg.Body
			data["back"] = "/room/" + msg.RoomID

			deps.Render.HTML(w, http.StatusOK, "delete", data)
			return
		}

		if err := deps.Store.DeleteMessage(r.Context(), msg.ID); err != nil {
			logx.Error(err, "delete message: delete failed", "message_id", msg.ID)
			deps.Render.Error(w, errs.NewError(errs.ErrUnknown))
			return
		}

		render.Redirect(w, r, "/")
	}
}
