package usecase

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Use case tests run against the real storage layer on SQLite. The DDL
// mirrors migrations/ in SQLite dialect; each test gets its own named
// in-memory database so parallel tests stay isolated.
var testDDL = []string{
	`CREATE TABLE IF NOT EXISTS carpets (
  carpet_id INTEGER PRIMARY KEY,
  collection TEXT NOT NULL DEFAULT '',
  geometry TEXT NOT NULL DEFAULT '',
  size TEXT NOT NULL DEFAULT '',
  design TEXT NOT NULL DEFAULT '',
  color_1 TEXT NOT NULL,
  color_2 TEXT,
  color_3 TEXT,
  style TEXT NOT NULL DEFAULT '',
  quantity INTEGER NOT NULL DEFAULT 0,
  price REAL NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE IF NOT EXISTS registered_users (
  telegram_id INTEGER PRIMARY KEY,
  username TEXT UNIQUE,
  first_name TEXT NOT NULL,
  last_name TEXT,
  email TEXT NOT NULL,
  phone TEXT UNIQUE,
  role TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE IF NOT EXISTS pending_users (
  telegram_id INTEGER PRIMARY KEY,
  username TEXT UNIQUE,
  first_name TEXT NOT NULL,
  last_name TEXT,
  email TEXT NOT NULL,
  phone TEXT UNIQUE,
  from_whom TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE IF NOT EXISTS banned_users (
  telegram_id INTEGER PRIMARY KEY,
  username TEXT UNIQUE,
  first_name TEXT NOT NULL,
  last_name TEXT,
  email TEXT NOT NULL,
  phone TEXT UNIQUE,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE IF NOT EXISTS sales (
  sale_id TEXT PRIMARY KEY,
  carpet_id INTEGER NOT NULL,
  design TEXT,
  size TEXT,
  collection TEXT,
  style TEXT,
  sale_date DATETIME NOT NULL,
  quantity INTEGER NOT NULL,
  payment_method TEXT NOT NULL,
  basic_price REAL NOT NULL,
  sale_price REAL NOT NULL,
  discount REAL NOT NULL DEFAULT 0,
  extra_info TEXT,
  sold_to TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE IF NOT EXISTS favorite_carpets (
  id TEXT PRIMARY KEY,
  user_id INTEGER NOT NULL,
  carpet_id INTEGER NOT NULL,
  created_at DATETIME,
  UNIQUE (user_id, carpet_id)
);`,
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:usecase_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	for _, ddl := range testDDL {
		require.NoError(t, db.Exec(ddl).Error)
	}
	return db
}
