package store

import "context"

// GetOrCreateTopic resolves a topic name to its record, inserting it on
// first use. The upsert races safely against concurrent room creation:
// the no-op DO UPDATE makes RETURNING yield the existing row instead of
// failing on the unique name constraint.
func (s *Store) GetOrCreateTopic(ctx context.Context, name string) (Topic, error) {
	const query = `
		INSERT INTO topics (name)
		VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name`

	var t Topic
	err := s.pool.QueryRow(ctx, query, name).Scan(&t.ID, &t.Name)
	return t, err
}

// SearchTopics returns topics whose name contains q, case-insensitively.
// An empty q matches every topic.
func (s *Store) SearchTopics(ctx context.Context, q string) ([]Topic, error) {
	const query = `
		SELECT id, name
		FROM topics
		WHERE name ILIKE $1
		ORDER BY name`

	rows, err := s.pool.Query(ctx, query, likePattern(q))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var topics []Topic
	for rows.Next() {
		var t Topic
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

// TopTopics returns up to limit topics for the home-page sidebar.
func (s *Store) TopTopics(ctx context.Context, limit int) ([]Topic, error) {
	const query = `
		SELECT id, name
		FROM topics
		ORDER BY name
		LIMIT $1`

	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var topics []Topic
	for rows.Next() {
		var t Topic
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}
