package postgres

import (
	"database/sql"
	"time"
)

type saveSlotTableModel struct {
	ID         int64          `db:"id"`
	PublicID   string         `db:"public_id"`
	Label      sql.NullString `db:"label"`
	Payload    []byte         `db:"payload"`
	Version    int64          `db:"version"`
	Phase      string         `db:"phase"`
	PlayerName sql.NullString `db:"player_name"`
	SeasonYear int            `db:"season_year"`
	Round      int            `db:"round"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
	DeletedAt  *time.Time     `db:"deleted_at"`
}

type saveSlotInsertModel struct {
	PublicID   string         `db:"public_id"`
	Label      sql.NullString `db:"label"`
	Payload    []byte         `db:"payload"`
	Version    int64          `db:"version"`
	Phase      string         `db:"phase"`
	PlayerName sql.NullString `db:"player_name"`
	SeasonYear int            `db:"season_year"`
	Round      int            `db:"round"`
}

type saveSlotStampModel struct {
	Version   int64     `db:"version"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type hallOfFameTableModel struct {
	ID          int64     `db:"id"`
	SlotID      string    `db:"slot_public_id"`
	Name        string    `db:"name"`
	Position    string    `db:"position"`
	RetiredYear int       `db:"retired_year"`
	Seasons     int       `db:"seasons"`
	Matches     int       `db:"matches"`
	Goals       int       `db:"goals"`
	Awards      int       `db:"awards"`
	Flags       int       `db:"premierships"`
	CreatedAt   time.Time `db:"created_at"`
}

type hallOfFameInsertModel struct {
	SlotID      string `db:"slot_public_id"`
	Name        string `db:"name"`
	Position    string `db:"position"`
	RetiredYear int    `db:"retired_year"`
	Seasons     int    `db:"seasons"`
	Matches     int    `db:"matches"`
	Goals       int    `db:"goals"`
	Awards      int    `db:"awards"`
	Flags       int    `db:"premierships"`
}
