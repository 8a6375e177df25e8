// Package store is the relational data access layer. Every record the
// forum persists (users, topics, rooms, messages, room membership) is
// read and written here through hand-written SQL over the pgx pool.
package store

import (
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store executes all forum queries against a PostgreSQL pool.
type Store struct {
	pool *pgxpool.Pool
}

// New wraps the given connection pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// User is a registered account. Email and Name are stored lowercase.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Bio          string
	AvatarKey    string
	CreatedAt    time.Time
}

// Topic is a reusable category label attached to rooms. Names are
// unique; topics are created implicitly on first use and never edited.
type Topic struct {
	ID   string
	Name string
}

// Room is a topic-tagged discussion thread with one host. HostName and
// TopicName are denormalized from the joined tables for display.
type Room struct {
	ID          string
	HostID      string
	HostName    string
	TopicID     string
	TopicName   string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Message is a single post authored by a user within a room. UserName
// and RoomName are denormalized from the joined tables for display.
type Message struct {
	ID        string
	UserID    string
	UserName  string
	RoomID    string
	RoomName  string
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// likePattern builds a case-insensitive containment pattern for ILIKE,
// escaping the wildcard characters in the user's query.
func likePattern(q string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(q) + "%"
}
