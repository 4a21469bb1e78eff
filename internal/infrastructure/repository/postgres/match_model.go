package postgres

import (
	"database/sql"
	"time"

	"github.com/V1TECKOR/interclub/internal/domain/match"
)

type matchTableModel struct {
	ID          string         `db:"id"`
	TeamID      string         `db:"team_id"`
	Opponent    string         `db:"opponent"`
	Location    string         `db:"location"`
	Status      string         `db:"status"`
	FinalDate   *time.Time     `db:"final_date"`
	FinalDateID sql.NullString `db:"final_date_id"`
	CreatedAt   time.Time      `db:"created_at"`
}

type matchDateTableModel struct {
	ID         string    `db:"id"`
	MatchID    string    `db:"match_id"`
	ProposedAt time.Time `db:"proposed_datetime"`
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		ID:          row.ID,
		TeamID:      row.TeamID,
		Opponent:    row.Opponent,
		Location:    match.Location(row.Location),
		Status:      match.Status(row.Status),
		FinalDate:   row.FinalDate,
		FinalDateID: row.FinalDateID.String,
		CreatedAt:   row.CreatedAt,
	}
}

func matchDateFromRow(row matchDateTableModel) match.Date {
	return match.Date{ID: row.ID, MatchID: row.MatchID, ProposedAt: row.ProposedAt}
}
