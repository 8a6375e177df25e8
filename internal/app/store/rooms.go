package store

import "context"

const roomColumns = `
	r.id, r.host_id, u.name, r.topic_id, t.name, r.name, r.description,
	r.created_at, r.updated_at`

const roomJoins = `
	FROM rooms r
	JOIN users u ON u.id = r.host_id
	JOIN topics t ON t.id = r.topic_id`

func scanRoomRows(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]Room, error) {
	var rooms []Room
	for rows.Next() {
		var rm Room
		err := rows.Scan(&rm.ID, &rm.HostID, &rm.HostName, &rm.TopicID, &rm.TopicName,
			&rm.Name, &rm.Description, &rm.CreatedAt, &rm.UpdatedAt)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, rm)
	}
	return rooms, rows.Err()
}

// CreateRoomParams carries the fields persisted when a room is created.
type CreateRoomParams struct {
	HostID      string
	TopicID     string
	Name        string
	Description string
}

// CreateRoom inserts a new room with the actor as host.
func (s *Store) CreateRoom(ctx context.Context, arg CreateRoomParams) (Room, error) {
	const query = `
		INSERT INTO rooms (host_id, topic_id, name, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	var id string
	err := s.pool.QueryRow(ctx, query, arg.HostID, arg.TopicID, arg.Name, arg.Description).
		Scan(&id)
	if err != nil {
		return Room{}, err
	}

	return s.GetRoom(ctx, id)
}

// GetRoom fetches a room by primary key with its host and topic names.
func (s *Store) GetRoom(ctx context.Context, id string) (Room, error) {
	const query = `SELECT` + roomColumns + roomJoins + `
		WHERE r.id = $1`

	var rm Room
	err := s.pool.QueryRow(ctx, query, id).
		Scan(&rm.ID, &rm.HostID, &rm.HostName, &rm.TopicID, &rm.TopicName,
			&rm.Name, &rm.Description, &rm.CreatedAt, &rm.UpdatedAt)
	return rm, err
}

// UpdateRoomParams carries the host-editable room fields.
type UpdateRoomParams struct {
	ID          string
	TopicID     string
	Name        string
	Description string
}

// UpdateRoom overwrites the room's name, topic and description.
func (s *Store) UpdateRoom(ctx context.Context, arg UpdateRoomParams) error {
	const query = `
		UPDATE rooms
		SET topic_id = $2, name = $3, description = $4, updated_at = now()
		WHERE id = $1`

	_, err := s.pool.Exec(ctx, query, arg.ID, arg.TopicID, arg.Name, arg.Description)
	return err
}

// DeleteRoom removes a room. Its messages and participant rows go with
// it through the ON DELETE CASCADE foreign keys.
func (s *Store) DeleteRoom(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	return err
}

// SearchRooms returns rooms whose topic name, room name or description
// contains q case-insensitively, newest first. An empty q matches all.
func (s *Store) SearchRooms(ctx context.Context, q string) ([]Room, error) {
	const query = `SELECT` + roomColumns + roomJoins + `
		WHERE t.name ILIKE $1 OR r.name ILIKE $1 OR r.description ILIKE $1
		ORDER BY r.created_at DESC`

	rows, err := s.pool.Query(ctx, query, likePattern(q))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRoomRows(rows)
}

// RoomsByHost returns the rooms hosted by a user, newest first.
func (s *Store) RoomsByHost(ctx context.Context, hostID string) ([]Room, error) {
	const query = `SELECT` + roomColumns + roomJoins + `
		WHERE r.host_id = $1
		ORDER BY r.created_at DESC`

	rows, err := s.pool.Query(ctx, query, hostID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRoomRows(rows)
}

// AddParticipant records room membership. Adding an existing member is
// a no-op, so repeated posts never error or duplicate.
func (s *Store) AddParticipant(ctx context.Context, roomID, userID string) error {
	const query = `
		INSERT INTO room_participants (room_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`

	_, err := s.pool.Exec(ctx, query, roomID, userID)
	return err
}

// ListParticipants returns the users who are members of a room.
func (s *Store) ListParticipants(ctx context.Context, roomID string) ([]User, error) {
	const query = `
		SELECT u.id, u.email, u.name, u.password_hash, u.bio, u.avatar_key, u.created_at
		FROM room_participants rp
		JOIN users u ON u.id = rp.user_id
		WHERE rp.room_id = $1
		ORDER BY u.name`

	rows, err := s.pool.Query(ctx, query, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Bio, &u.AvatarKey, &u.CreatedAt)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
