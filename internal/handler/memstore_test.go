package handler

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"roomhub/internal/app/store"
	"roomhub/internal/pkg/randx"
)

// memStore is an in-memory Store used by the handler tests. It mirrors
// the SQL layer's observable behavior: pgx.ErrNoRows for missing rows,
// a 23505 PgError for unique violations, ILIKE-style case-insensitive
// containment for searches and idempotent membership insertion.
type memStore struct {
	users        []store.User
	topics       []store.Topic
	rooms        []store.Room
	messages     []store.Message
	participants map[string][]string // roomID -> userIDs in join order

	// topicInserts counts actual topic creations per name, so tests can
	// assert get-or-create never duplicates.
	topicInserts map[string]int
}

func newMemStore() *memStore {
	return &memStore{
		participants: make(map[string][]string),
		topicInserts: make(map[string]int),
	}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505"}
}

// --- users ---

func (m *memStore) CreateUser(_ context.Context, arg store.CreateUserParams) (store.User, error) {
	for _, u := range m.users {
		if u.Email == arg.Email {
			return store.User{}, uniqueViolation()
		}
	}

	u := store.User{
		ID:           randx.NewID(),
		Email:        arg.Email,
		Name:         arg.Name,
		PasswordHash: arg.PasswordHash,
		CreatedAt:    time.Now(),
	}
	m.users = append(m.users, u)
	return u, nil
}

func (m *memStore) GetUserByEmail(_ context.Context, email string) (store.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return store.User{}, pgx.ErrNoRows
}

func (m *memStore) GetUserByID(_ context.Context, id string) (store.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return store.User{}, pgx.ErrNoRows
}

func (m *memStore) UpdateUserProfile(_ context.Context, arg store.UpdateUserProfileParams) (store.User, error) {
	for _, u := range m.users {
		if u.Email == arg.Email && u.ID != arg.ID {
			return store.User{}, uniqueViolation()
		}
	}

	for i := range m.users {
		if m.users[i].ID != arg.ID {
			continue
		}

		m.users[i].Email = arg.Email
		m.users[i].Name = arg.Name
		m.users[i].Bio = arg.Bio
		m.users[i].AvatarKey = arg.AvatarKey

		// Denormalized names follow the update, as the SQL joins would.
		for j := range m.rooms {
			if m.rooms[j].HostID == arg.ID {
				m.rooms[j].HostName = arg.Name
			}
		}
		for j := range m.messages {
			if m.messages[j].UserID == arg.ID {
				m.messages[j].UserName = arg.Name
			}
		}

		return m.users[i], nil
	}
	return store.User{}, pgx.ErrNoRows
}

// --- topics ---

func (m *memStore) GetOrCreateTopic(_ context.Context, name string) (store.Topic, error) {
	for _, t := range m.topics {
		if t.Name == name {
			return t, nil
		}
	}

	t := store.Topic{ID: randx.NewID(), Name: name}
	m.topics = append(m.topics, t)
	m.topicInserts[name]++
	return t, nil
}

func (m *memStore) SearchTopics(_ context.Context, q string) ([]store.Topic, error) {
	var topics []store.Topic
	for _, t := range m.topics {
		if containsFold(t.Name, q) {
			topics = append(topics, t)
		}
	}
	sort.Slice(topics, func(i, j int) bool { return topics[i].Name < topics[j].Name })
	return topics, nil
}

func (m *memStore) TopTopics(_ context.Context, limit int) ([]store.Topic, error) {
	topics, _ := m.SearchTopics(context.Background(), "")
	if len(topics) > limit {
		topics = topics[:limit]
	}
	return topics, nil
}

// --- rooms ---

func (m *memStore) CreateRoom(_ context.Context, arg store.CreateRoomParams) (store.Room, error) {
	host, err := m.GetUserByID(context.Background(), arg.HostID)
	if err != nil {
		return store.Room{}, err
	}

	var topic store.Topic
	found := false
	for _, t := range m.topics {
		if t.ID == arg.TopicID {
			topic = t
			found = true
		}
	}
	if !found {
		return store.Room{}, pgx.ErrNoRows
	}

	now := time.Now()
	rm := store.Room{
		ID:          randx.NewID(),
		HostID:      host.ID,
		HostName:    host.Name,
		TopicID:     topic.ID,
		TopicName:   topic.Name,
		Name:        arg.Name,
		Description: arg.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.rooms = append(m.rooms, rm)
	return rm, nil
}

func (m *memStore) GetRoom(_ context.Context, id string) (store.Room, error) {
	for _, rm := range m.rooms {
		if rm.ID == id {
			return rm, nil
		}
	}
	return store.Room{}, pgx.ErrNoRows
}

func (m *memStore) UpdateRoom(_ context.Context, arg store.UpdateRoomParams) error {
	for i := range m.rooms {
		if m.rooms[i].ID != arg.ID {
			continue
		}

		for _, t := range m.topics {
			if t.ID == arg.TopicID {
				m.rooms[i].TopicID = t.ID
				m.rooms[i].TopicName = t.Name
			}
		}
		m.rooms[i].Name = arg.Name
		m.rooms[i].Description = arg.Description
		m.rooms[i].UpdatedAt = time.Now()

		for j := range m.messages {
			if m.messages[j].RoomID == arg.ID {
				m.messages[j].RoomName = arg.Name
			}
		}

		return nil
	}
	return pgx.ErrNoRows
}

func (m *memStore) DeleteRoom(_ context.Context, id string) error {
	rooms := m.rooms[:0]
	for _, rm := range m.rooms {
		if rm.ID != id {
			rooms = append(rooms, rm)
		}
	}
	m.rooms = rooms

	// Cascade, as the ON DELETE CASCADE foreign keys would.
	messages := m.messages[:0]
	for _, msg := range m.messages {
		if msg.RoomID != id {
			messages = append(messages, msg)
		}
	}
	m.messages = messages

	delete(m.participants, id)
	return nil
}

func (m *memStore) SearchRooms(_ context.Context, q string) ([]store.Room, error) {
	var rooms []store.Room
	for _, rm := range m.rooms {
		if containsFold(rm.TopicName, q) || containsFold(rm.Name, q) || containsFold(rm.Description, q) {
			rooms = append(rooms, rm)
		}
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].CreatedAt.After(rooms[j].CreatedAt) })
	return rooms, nil
}

func (m *memStore) RoomsByHost(_ context.Context, hostID string) ([]store.Room, error) {
	var rooms []store.Room
	for _, rm := range m.rooms {
		if rm.HostID == hostID {
			rooms = append(rooms, rm)
		}
	}
	return rooms, nil
}

func (m *memStore) AddParticipant(_ context.Context, roomID, userID string) error {
	for _, existing := range m.participants[roomID] {
		if existing == userID {
			return nil
		}
	}
	m.participants[roomID] = append(m.participants[roomID], userID)
	return nil
}

func (m *memStore) ListParticipants(_ context.Context, roomID string) ([]store.User, error) {
	var users []store.User
	for _, userID := range m.participants[roomID] {
		if u, err := m.GetUserByID(context.Background(), userID); err == nil {
			users = append(users, u)
		}
	}
	return users, nil
}

// --- messages ---

func (m *memStore) CreateMessage(_ context.Context, arg store.CreateMessageParams) (store.Message, error) {
	user, err := m.GetUserByID(context.Background(), arg.UserID)
	if err != nil {
		return store.Message{}, err
	}
	room, err := m.GetRoom(context.Background(), arg.RoomID)
	if err != nil {
		return store.Message{}, err
	}

	now := time.Now()
	msg := store.Message{
		ID:        randx.NewID(),
		UserID:    user.ID,
		UserName:  user.Name,
		RoomID:    room.ID,
		RoomName:  room.Name,
		Body:      arg.Body,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.messages = append(m.messages, msg)
	return msg, nil
}

func (m *memStore) GetMessage(_ context.Context, id string) (store.Message, error) {
	for _, msg := range m.messages {
		if msg.ID == id {
			return msg, nil
		}
	}
	return store.Message{}, pgx.ErrNoRows
}

func (m *memStore) UpdateMessageBody(_ context.Context, id, body string) error {
	for i := range m.messages {
		if m.messages[i].ID == id {
			m.messages[i].Body = body
			m.messages[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *memStore) DeleteMessage(_ context.Context, id string) error {
	messages := m.messages[:0]
	for _, msg := range m.messages {
		if msg.ID != id {
			messages = append(messages, msg)
		}
	}
	m.messages = messages
	return nil
}

func (m *memStore) MessagesByRoom(_ context.Context, roomID string) ([]store.Message, error) {
	var messages []store.Message
	for _, msg := range m.messages {
		if msg.RoomID == roomID {
			messages = append(messages, msg)
		}
	}
	return messages, nil
}

func (m *memStore) MessagesByUser(_ context.Context, userID string) ([]store.Message, error) {
	var messages []store.Message
	for _, msg := range m.messages {
		if msg.UserID == userID {
			messages = append(messages, msg)
		}
	}
	return messages, nil
}

func (m *memStore) FeedByTopic(_ context.Context, q string) ([]store.Message, error) {
	matching := make(map[string]bool)
	for _, rm := range m.rooms {
		if containsFold(rm.TopicName, q) {
			matching[rm.ID] = true
		}
	}

	var messages []store.Message
	for _, msg := range m.messages {
		if matching[msg.RoomID] {
			messages = append(messages, msg)
		}
	}
	sort.Slice(messages, func(i, j int) bool { return messages[i].CreatedAt.After(messages[j].CreatedAt) })
	return messages, nil
}

func (m *memStore) AllMessages(_ context.Context) ([]store.Message, error) {
	messages := make([]store.Message, len(m.messages))
	copy(messages, m.messages)
	sort.Slice(messages, func(i, j int) bool { return messages[i].CreatedAt.After(messages[j].CreatedAt) })
	return messages, nil
}
