// Package sqlite implements the interaction log sink on a local SQLite
// database, for single-machine deployments that want SQL access to the log
// without a server.
package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/pkg/errors"
	// Import the pure-Go SQLite driver.
	_ "modernc.org/sqlite"

	"github.com/Shirel25/NutriSnap-HAI/internal/profile"
	"github.com/Shirel25/NutriSnap-HAI/store"
)

type DB struct {
	db      *sql.DB
	profile *profile.Profile
}

func NewDB(profile *profile.Profile) (store.Driver, error) {
	if profile == nil {
		return nil, errors.New("profile is nil")
	}

	db, err := sql.Open("sqlite", profile.DSN)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database: %s", profile.DSN)
	}

	// SQLite serializes writers; a single connection avoids SQLITE_BUSY on
	// concurrent session appends.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	return &DB{db: db, profile: profile}, nil
}

const createTableStmt = `
	CREATE TABLE IF NOT EXISTS interaction (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT NOT NULL,
		session_id TEXT NOT NULL,
		trial_id INTEGER NOT NULL,
		condition TEXT NOT NULL,
		ai_category TEXT NOT NULL,
		ai_text TEXT NOT NULL,
		ai_calories TEXT NOT NULL,
		ai_uncertainty TEXT NOT NULL,
		human_action TEXT NOT NULL,
		manual_input TEXT NOT NULL,
		final_entry TEXT NOT NULL,
		human_intervention INTEGER NOT NULL,
		explanation_variant TEXT NOT NULL,
		correct TEXT NOT NULL,
		decision_time_ms TEXT NOT NULL
	)`

// Migrate creates the interaction table once; the schema is the SQL analog of
// the CSV header and is never altered afterwards.
func (d *DB) Migrate(ctx context.Context) error {
	if _, err := d.db.ExecContext(ctx, createTableStmt); err != nil {
		return errors.Wrap(err, "failed to create interaction table")
	}
	return nil
}

func (d *DB) CreateInteraction(ctx context.Context, create *store.Interaction) error {
	stmt := `INSERT INTO interaction (` + strings.Join(store.InteractionColumns, ", ") + `)
		VALUES (` + placeholders(len(store.InteractionColumns)) + `)`

	if _, err := d.db.ExecContext(ctx, stmt,
		create.Timestamp,
		create.SessionID,
		create.TrialID,
		create.Condition,
		create.AICategory,
		create.AIText,
		create.AICalories,
		create.AIUncertainty,
		create.HumanAction,
		create.ManualInput,
		create.FinalEntry,
		create.HumanIntervention,
		create.ExplanationVariant,
		create.Correct,
		create.DecisionTimeMs,
	); err != nil {
		return errors.Wrap(err, "failed to append interaction")
	}
	return nil
}

func (d *DB) ListInteractions(ctx context.Context, find *store.FindInteraction) ([]*store.Interaction, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.SessionID; v != nil {
		where, args = append(where, "session_id = ?"), append(args, *v)
	}
	if v := find.TrialID; v != nil {
		where, args = append(where, "trial_id = ?"), append(args, *v)
	}

	query := `SELECT ` + strings.Join(store.InteractionColumns, ", ") + `
		FROM interaction
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY id ASC`
	if v := find.Limit; v != nil {
		query += ` LIMIT ` + placeholder(len(args)+1)
		args = append(args, *v)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list interactions")
	}
	defer rows.Close()

	list := []*store.Interaction{}
	for rows.Next() {
		interaction := &store.Interaction{}
		if err := rows.Scan(
			&interaction.Timestamp,
			&interaction.SessionID,
			&interaction.TrialID,
			&interaction.Condition,
			&interaction.AICategory,
			&interaction.AIText,
			&interaction.AICalories,
			&interaction.AIUncertainty,
			&interaction.HumanAction,
			&interaction.ManualInput,
			&interaction.FinalEntry,
			&interaction.HumanIntervention,
			&interaction.ExplanationVariant,
			&interaction.Correct,
			&interaction.DecisionTimeMs,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan interaction")
		}
		list = append(list, interaction)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}
