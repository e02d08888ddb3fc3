package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// snapshotRepo implements SnapshotRepo on the ent SQL driver.
type snapshotRepo struct {
	drv *entsql.Driver
}

// snapshotRow mirrors a row of the snapshots table.
type snapshotRow struct {
	ID          int    `sql:"id"`
	Sequence    int64  `sql:"sequence"`
	TimestampMs int64  `sql:"timestamp_ms"`
	Data        string `sql:"data"`
}

func (r *snapshotRepo) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap.Data)
	if err != nil {
		return fmt.Errorf("marshal snapshot data: %w", err)
	}

	ts := snap.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	q, args := entsql.Dialect(dialect.SQLite).
		Insert(tableSnapshots).
		Columns("sequence", "timestamp_ms", "data").
		Values(snap.Sequence, ts.UnixMilli(), string(data)).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, q, args, &res); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		snap.ID = int(id)
	}
	return nil
}

func (r *snapshotRepo) Latest(ctx context.Context) (*Snapshot, error) {
	q, args := entsql.Dialect(dialect.SQLite).
		Select("id", "sequence", "timestamp_ms", "data").
		From(entsql.Table(tableSnapshots)).
		OrderBy(entsql.Desc("timestamp_ms"), entsql.Desc("id")).
		Limit(1).
		Query()

	var rows []snapshotRow
	if err := queryRows(ctx, r.drv, q, args, &rows); err != nil {
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rowToSnapshot(rows[0])
}

func (r *snapshotRepo) Prune(ctx context.Context, keep int) error {
	// Find the ID threshold: the newest snapshot past the keep window.
	q, args := entsql.Dialect(dialect.SQLite).
		Select("id", "sequence", "timestamp_ms", "data").
		From(entsql.Table(tableSnapshots)).
		OrderBy(entsql.Desc("id")).
		Offset(keep).
		Limit(1).
		Query()

	var rows []snapshotRow
	if err := queryRows(ctx, r.drv, q, args, &rows); err != nil {
		return fmt.Errorf("query snapshots for prune: %w", err)
	}
	if len(rows) == 0 {
		return nil // fewer than keep snapshots exist
	}

	q, args = entsql.Dialect(dialect.SQLite).
		Delete(tableSnapshots).
		Where(entsql.LTE("id", rows[0].ID)).
		Query()
	if err := r.drv.Exec(ctx, q, args, nil); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}

func rowToSnapshot(row snapshotRow) (*Snapshot, error) {
	snap := &Snapshot{
		ID:        row.ID,
		Sequence:  row.Sequence,
		Timestamp: time.UnixMilli(row.TimestampMs),
	}
	if err := json.Unmarshal([]byte(row.Data), &snap.Data); err != nil {
		return nil, fmt.Errorf("%w: snapshot %d: %w", ErrCorruptSnapshot, row.ID, err)
	}
	return snap, nil
}

// queryRows runs a select and scans every row into dest, a pointer to a
// slice of structs tagged with column names.
func queryRows(ctx context.Context, drv *entsql.Driver, query string, args []any, dest any) error {
	var rows entsql.Rows
	if err := drv.Query(ctx, query, args, &rows); err != nil {
		return err
	}
	defer rows.Close()
	return entsql.ScanSlice(rows, dest)
}
