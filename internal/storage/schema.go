// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines the catalog tables and the workout/exercise/set hierarchy.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS workout_types (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE COLLATE NOCASE,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS exercise_definitions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE COLLATE NOCASE,
		exercise_type TEXT NOT NULL CHECK (exercise_type IN ('SETS_REPS', 'SETS_TIME', 'DISTANCE')),
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS workouts (
		id TEXT PRIMARY KEY,
		workout_type TEXT NOT NULL COLLATE NOCASE,
		started_at DATETIME NOT NULL,
		ended_at DATETIME NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS exercise_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		workout_id TEXT NOT NULL,
		exercise_definition_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		exercise_type TEXT NOT NULL,
		order_index INTEGER NOT NULL,
		started_at DATETIME NOT NULL,
		ended_at DATETIME,
		distance REAL,
		distance_unit TEXT,
		rest_before_ms INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY (workout_id) REFERENCES workouts(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS exercise_sets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		exercise_record_id INTEGER NOT NULL,
		order_index INTEGER NOT NULL,
		started_at DATETIME NOT NULL,
		ended_at DATETIME,
		is_failure INTEGER NOT NULL DEFAULT 0,
		repetitions INTEGER,
		partial_repetitions INTEGER,
		weight_kg REAL,
		rest_before_ms INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY (exercise_record_id) REFERENCES exercise_records(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_workouts_started ON workouts(started_at DESC);
	CREATE INDEX IF NOT EXISTS idx_workouts_type ON workouts(workout_type);
	CREATE INDEX IF NOT EXISTS idx_exercise_records_workout ON exercise_records(workout_id, order_index);
	CREATE INDEX IF NOT EXISTS idx_exercise_records_definition ON exercise_records(exercise_definition_id);
	CREATE INDEX IF NOT EXISTS idx_exercise_sets_record ON exercise_sets(exercise_record_id, order_index);
	`

	_, err := d.db.Exec(schema)
	return err
}
