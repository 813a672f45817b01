package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// AppendSession records a completed quiz activity.
func (r *EventLog) AppendSession(ctx context.Context, data SessionEventData) error {
	unlocked := data.Unlocked
	if unlocked == nil {
		unlocked = []string{}
	}
	raw, err := json.Marshal(unlocked)
	if err != nil {
		return fmt.Errorf("marshal unlocked achievements: %w", err)
	}

	query, args := r.s.builder().Insert(tableSessions).
		Columns(columnNames(sessionColumns[1:])...).
		Values(
			time.Now().UTC(),
			data.ProfileID,
			data.SessionID,
			data.Kind,
			data.Topic,
			data.Correct,
			data.Total,
			data.LeveledUp,
			string(raw),
		).Query()
	if _, err := r.s.db.ExecContext(ctx, query, args...); err != nil {
		return ioErr("save session event", err)
	}
	return nil
}

// QuerySessions returns a profile's session events newest first.
func (r *EventLog) QuerySessions(ctx context.Context, profileID string, opts QueryOpts) ([]SessionEvent, error) {
	sel := r.s.builder().Select(columnNames(sessionColumns)...).
		From(entsql.Table(tableSessions)).
		Where(entsql.EQ("profile_id", profileID)).
		OrderBy(entsql.Desc("id"))
	applyOpts(sel, opts)

	query, args := sel.Query()
	rows, err := r.s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, ioErr("query session events", err)
	}
	defer rows.Close()

	var out []SessionEvent
	for rows.Next() {
		var (
			e   SessionEvent
			raw []byte
		)
		err := rows.Scan(
			&e.ID,
			&e.Timestamp,
			&e.ProfileID,
			&e.SessionID,
			&e.Kind,
			&e.Topic,
			&e.Correct,
			&e.Total,
			&e.LeveledUp,
			&raw,
		)
		if err != nil {
			return nil, ioErr("scan session event", err)
		}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &e.Unlocked); err != nil {
				return nil, fmt.Errorf("unmarshal unlocked achievements: %w", err)
			}
		}
		out = append(out, e)
	}
	return out, ioErr("query session events", rows.Err())
}
