package store

import "context"

const messageColumns = `
	m.id, m.user_id, u.name, m.room_id, r.name, m.body, m.created_at, m.updated_at`

const messageJoins = `
	FROM messages m
	JOIN users u ON u.id = m.user_id
	JOIN rooms r ON r.id = m.room_id`

func scanMessageRows(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]Message, error) {
	var messages []Message
	for rows.Next() {
		var m Message
		err := rows.Scan(&m.ID, &m.UserID, &m.UserName, &m.RoomID, &m.RoomName,
			&m.Body, &m.CreatedAt, &m.UpdatedAt)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// CreateMessageParams carries the fields persisted when posting.
type CreateMessageParams struct {
	UserID string
	RoomID string
	Body   string
}

// CreateMessage inserts a new post. Room and author references never
// change afterwards; edits touch the body only.
func (s *Store) CreateMessage(ctx context.Context, arg CreateMessageParams) (Message, error) {
	const query = `
		INSERT INTO messages (user_id, room_id, body)
		VALUES ($1, $2, $3)
		RETURNING id`

	var id string
	err := s.pool.QueryRow(ctx, query, arg.UserID, arg.RoomID, arg.Body).Scan(&id)
	if err != nil {
		return Message{}, err
	}

	return s.GetMessage(ctx, id)
}

// GetMessage fetches a message by primary key with its author and room
// names.
func (s *Store) GetMessage(ctx context.Context, id string) (Message, error) {
	const query = `SELECT` + messageColumns + messageJoins + `
		WHERE m.id = $1`

	var m Message
	err := s.pool.QueryRow(ctx, query, id).
		Scan(&m.ID, &m.UserID, &m.UserName, &m.RoomID, &m.RoomName,
			&m.Body, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// UpdateMessageBody persists an edited body, leaving the room and
// author references untouched.
func (s *Store) UpdateMessageBody(ctx context.Context, id, body string) error {
	const query = `
		UPDATE messages
		SET body = $2, updated_at = now()
		WHERE id = $1`

	_, err := s.pool.Exec(ctx, query, id, body)
	return err
}

// DeleteMessage removes a message.
func (s *Store) DeleteMessage(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM messages WHERE id = $1`, id)
	return err
}

// MessagesByRoom returns a room's conversation, oldest first.
func (s *Store) MessagesByRoom(ctx context.Context, roomID string) ([]Message, error) {
	const query = `SELECT` + messageColumns + messageJoins + `
		WHERE m.room_id = $1
		ORDER BY m.created_at`

	rows, err := s.pool.Query(ctx, query, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMessageRows(rows)
}

// MessagesByUser returns the posts a user has authored, newest first.
func (s *Store) MessagesByUser(ctx context.Context, userID string) ([]Message, error) {
	const query = `SELECT` + messageColumns + messageJoins + `
		WHERE m.user_id = $1
		ORDER BY m.created_at DESC`

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMessageRows(rows)
}

// FeedByTopic returns every message posted in rooms whose topic name
// contains q case-insensitively, newest first. The home page uses this
// as its recent-activity feed for the current search.
func (s *Store) FeedByTopic(ctx context.Context, q string) ([]Message, error) {
	const query = `SELECT` + messageColumns + messageJoins + `
		JOIN topics t ON t.id = r.topic_id
		WHERE t.name ILIKE $1
		ORDER BY m.created_at DESC`

	rows, err := s.pool.Query(ctx, query, likePattern(q))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMessageRows(rows)
}

// AllMessages returns the global activity feed, newest first.
func (s *Store) AllMessages(ctx context.Context) ([]Message, error) {
	const query = `SELECT` + messageColumns + messageJoins + `
		ORDER BY m.created_at DESC`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMessageRows(rows)
}
