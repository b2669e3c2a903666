package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Sessions table - one row per recording session
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			subject TEXT NOT NULL,
			hand TEXT NOT NULL DEFAULT 'unknown' CHECK(hand IN ('left', 'right', 'unknown')),
			notes TEXT NOT NULL DEFAULT '',
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			ended_at DATETIME
		)`,

		// Assessments table - evaluated results, one row per assessment
		// run within a session; the result column holds the full JSON
		// payload
		`CREATE TABLE IF NOT EXISTS assessments (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			type TEXT NOT NULL CHECK(type IN ('tam', 'kapandji', 'wrist_flexion_extension', 'radial_ulnar_deviation')),
			repetitions INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			result TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Indexes for better query performance
		`CREATE INDEX IF NOT EXISTS idx_assessments_session_id ON assessments(session_id)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_subject ON sessions(subject)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
