package handler

import (
	"net/http"
	"net/url"
	"testing"
)

func TestUpdateMessageNotFound(t *testing.T) {
	h, ms, _ := newTestEnv(t)
	user := seedUser(t, ms, "ada", "ada@example.com", "hunter22")

	w := doGet(t, h, "/update-message/no-such-message", sessionCookie(t, user))
	assertStatus(t, w, http.StatusNotFound)
	assertContains(t, body(t, w), "Message not found.")
}

func TestUpdateMessageByNonAuthorForbidden(t *testing.T) {
	h, ms, _ := newTestEnv(t)
	author := seedUser(t, ms, "ada", "ada@example.com", "hunter22")
	other := seedUser(t, ms, "bob", "bob@example.com", "hunter22")
	room := seedRoom(t, ms, author, "Python", "Django room", "")
	msg := seedMessage(t, ms, author, room, "original body")

	w := doPost(t, h, "/update-message/"+msg.ID, url.Values{"body": {"defaced"}}, sessionCookie(t, other))
	assertStatus(t, w, http.StatusForbidden)
	assertContains(t, body(t, w), "You cannot edit a message you don't own.")

	got, _ := ms.GetMessage(t.Context(), msg.ID)
	if got.Body != "original body" {
		t.Fatalf("body = %q, want unchanged %q", got.Body, "original body")
	}
}

func TestUpdateMessageByAuthor(t *testing.T) {
	h, ms, _ := newTestEnv(t)
	author := seedUser(t, ms, "ada", "ada@example.com", "hunter22")
	room := seedRoom(t, ms, author, "Python", "Django room", "")
	msg := seedMessage(t, ms, author, room, "original body")

	cookie := sessionCookie(t, author)

	w := doGet(t, h, "/update-message/"+msg.ID, cookie)
	assertStatus(t, w, http.StatusOK)
	assertContains(t, body(t, w), "original body")

	w = doPost(t, h, "/update-message/"+msg.ID, url.Values{"body": {"edited body"}}, cookie)
	assertRedirect(t, w, "/room/"+room.ID)

	got, _ := ms.GetMessage(t.Context(), msg.ID)
	if got.Body != "edited body" {
		t.Errorf("body = %q, want %q", got.Body, "edited body")
	}
	if got.RoomID != room.ID || got.UserID != author.ID {
		t.Error("edit changed the message's room or author")
	}
}

func TestUpdateMessageEmptyBodyRejected(t *testing.T) {
	h, ms, _ := newTestEnv(t)
	author := seedUser(t, ms, "ada", "ada@example.com", "hunter22")
	room := seedRoom(t, ms, author, "Python", "Django room", "")
	msg := seedMessage(t, ms, author, room, "original body")

	w := doPost(t, h, "/update-message/"+msg.ID, url.Values{"body": {"  "}}, sessionCookie(t, author))
	assertStatus(t, w, http.StatusOK)
	assertContains(t, body(t, w), "Message body is required.")

	got, _ := ms.GetMessage(t.Context(), msg.ID)
	if got.Body != "original body" {
		t.Fatalf("body = %q, want unchanged", got.Body)
	}
}

func TestDeleteMessageByNonAuthorForbidden(t *testing.T) {
	h, ms, _ := newTestEnv(t)
	author := seedUser(t, ms, "ada", "ada@example.com", "hunter22")
	other := seedUser(t, ms, "bob", "bob@example.com", "hunter22")
	room := seedRoom(t, ms, author, "Python", "Django room", "")
	msg := seedMessage(t, ms, author, room, "original body")

	w := doPost(t, h, "/delete-message/"+msg.ID, url.Values{}, sessionCookie(t, other))
	assertStatus(t, w, http.StatusForbidden)
	assertContains(t, body(t, w), "You cannot delete a message you don't own.")

	if len(ms.messages) != 1 {
		t.Fatal("message deleted despite denial")
	}
}

func TestDeleteMessageByAuthor(t *testing.T) {
	h, ms, _ := newTestEnv(t)
	author := seedUser(t, ms, "ada", "ada@example.com", "hunter22")
	room := seedRoom(t, ms, author, "Python", "Django room", "")
	msg := seedMessage(t, ms, author, room, "doomed body")

	cookie := sessionCookie(t, author)

	w := doGet(t, h, "/delete-message/"+msg.ID, cookie)
	assertStatus(t, w, http.StatusOK)
	assertContains(t, body(t, w), "doomed body")

	w = doPost(t, h, "/delete-message/"+msg.ID, url.Values{}, cookie)
	assertRedirect(t, w, "/")

	if len(ms.messages) != 0 {
		t.Fatalf("messages = %d, want 0", len(ms.messages))
	}
	if len(ms.rooms) != 1 {
		t.Fatal("deleting a message removed its room")
	}
}
