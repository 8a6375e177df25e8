package store

import "context"

// CreateUserParams carries the fields persisted at registration.
type CreateUserParams struct {
	Email        string
	Name         string
	PasswordHash string
}

// CreateUser inserts a new user. The unique email constraint surfaces
// duplicate registrations as a unique-violation error.
func (s *Store) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	const query = `
		INSERT INTO users (email, name, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, email, name, password_hash, bio, avatar_key, created_at`

	var u User
	err := s.pool.QueryRow(ctx, query, arg.Email, arg.Name, arg.PasswordHash).
		Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Bio, &u.AvatarKey, &u.CreatedAt)
	return u, err
}

// GetUserByEmail looks up a user by their (lowercased) email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (User, error) {
	const query = `
		SELECT id, email, name, password_hash, bio, avatar_key, created_at
		FROM users
		WHERE email = $1`

	var u User
	err := s.pool.QueryRow(ctx, query, email).
		Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Bio, &u.AvatarKey, &u.CreatedAt)
	return u, err
}

// GetUserByID looks up a user by primary key.
func (s *Store) GetUserByID(ctx context.Context, id string) (User, error) {
	const query = `
		SELECT id, email, name, password_hash, bio, avatar_key, created_at
		FROM users
		WHERE id = $1`

	var u User
	err := s.pool.QueryRow(ctx, query, id).
		Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Bio, &u.AvatarKey, &u.CreatedAt)
	return u, err
}

// UpdateUserProfileParams carries the self-service profile fields.
type UpdateUserProfileParams struct {
	ID        string
	Email     string
	Name      string
	Bio       string
	AvatarKey string
}

// UpdateUserProfile overwrites the user's profile fields. The password
// hash is untouched.
func (s *Store) UpdateUserProfile(ctx context.Context, arg UpdateUserProfileParams) (User, error) {
	const query = `
		UPDATE users
		SET email = $2, name = $3, bio = $4, avatar_key = $5
		WHERE id = $1
		RETURNING id, email, name, password_hash, bio, avatar_key, created_at`

	var u User
	err := s.pool.QueryRow(ctx, query, arg.ID, arg.Email, arg.Name, arg.Bio, arg.AvatarKey).
		Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Bio, &u.AvatarKey, &u.CreatedAt)
	return u, err
}
