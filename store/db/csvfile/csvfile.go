// Package csvfile implements the interaction log sink as an append-only CSV
// file, matching the study's analysis pipeline: one header row written when
// the file is first created, then one data row per interaction.
package csvfile

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/pkg/errors"

	"github.com/Shirel25/NutriSnap-HAI/store"
)

// DB holds the CSV sink state. The mutex serializes the stat-header-append
// sequence so concurrent sessions in one process cannot interleave rows;
// cross-process sharing requires one file per session or an external lock.
type DB struct {
	path string
	mu   sync.Mutex
}

// NewDB opens a CSV interaction log at the given path. The file itself is
// created lazily on first append.
func NewDB(path string) *DB {
	return &DB{path: path}
}

func (d *DB) Migrate(_ context.Context) error {
	dir := filepath.Dir(d.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "create log directory %s", dir)
	}
	return nil
}

// CreateInteraction appends one row, prefixed by the header when the file is
// empty or absent. Header and row are flushed in a single write so a failed
// append leaves no partial row behind.
func (d *DB) CreateInteraction(_ context.Context, create *store.Interaction) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	needHeader := true
	if info, err := os.Stat(d.path); err == nil && info.Size() > 0 {
		needHeader = false
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if needHeader {
		if err := w.Write(store.InteractionColumns); err != nil {
			return errors.Wrap(err, "encode header")
		}
	}
	if err := w.Write(toRow(create)); err != nil {
		return errors.Wrap(err, "encode row")
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.Wrap(err, "encode row")
	}

	f, err := os.OpenFile(d.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrapf(err, "open log %s", d.path)
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "append to log %s", d.path)
	}
	return f.Close()
}

func (d *DB) ListInteractions(_ context.Context, find *store.FindInteraction) ([]*store.Interaction, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	f, err := os.Open(d.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "open log %s", d.path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "read log %s", d.path)
	}

	list := []*store.Interaction{}
	for i, row := range rows {
		if i == 0 {
			// header
			continue
		}
		interaction, err := fromRow(row)
		if err != nil {
			return nil, err
		}
		if v := find.SessionID; v != nil && interaction.SessionID != *v {
			continue
		}
		if v := find.TrialID; v != nil && interaction.TrialID != *v {
			continue
		}
		list = append(list, interaction)
		if find.Limit != nil && len(list) >= *find.Limit {
			break
		}
	}
	return list, nil
}

func (*DB) Close() error {
	return nil
}

func toRow(in *store.Interaction) []string {
	return []string{
		in.Timestamp,
		in.SessionID,
		strconv.Itoa(in.TrialID),
		in.Condition,
		in.AICategory,
		in.AIText,
		in.AICalories,
		in.AIUncertainty,
		in.HumanAction,
		in.ManualInput,
		in.FinalEntry,
		strconv.Itoa(in.HumanIntervention),
		in.ExplanationVariant,
		in.Correct,
		in.DecisionTimeMs,
	}
}

func fromRow(row []string) (*store.Interaction, error) {
	if len(row) != len(store.InteractionColumns) {
		return nil, errors.Errorf("malformed log row: %d columns, want %d", len(row), len(store.InteractionColumns))
	}
	trialID, err := strconv.Atoi(row[2])
	if err != nil {
		return nil, errors.Wrap(err, "parse trial_id")
	}
	intervention, err := strconv.Atoi(row[11])
	if err != nil {
		return nil, errors.Wrap(err, "parse human_intervention")
	}
	return &store.Interaction{
		Timestamp:          row[0],
		SessionID:          row[1],
		TrialID:            trialID,
		Condition:          row[3],
		AICategory:         row[4],
		AIText:             row[5],
		AICalories:         row[6],
		AIUncertainty:      row[7],
		HumanAction:        row[8],
		ManualInput:        row[9],
		FinalEntry:         row[10],
		HumanIntervention:  intervention,
		ExplanationVariant: row[12],
		Correct:            row[13],
		DecisionTimeMs:     row[14],
	}, nil
}
