package postgres

import "time"

type clubTableModel struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

type licenseMappingTableModel struct {
	ID     string `db:"id"`
	Prefix string `db:"prefix"`
	ClubID string `db:"club_id"`
}
