package config

// DefaultDatabasePath is where the sqlite database lives unless
// DATABASE_PATH overrides it.
const DefaultDatabasePath = "./library.db"
