package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// EventLog implements EventRepo and the session event log.
type EventLog struct {
	s *Store
}

var _ EventRepo = (*EventLog)(nil)

func (r *EventLog) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	query, args := r.s.builder().Insert(tableLLMRequests).
		Columns(columnNames(llmRequestColumns[1:])...).
		Values(
			time.Now().UTC(),
			data.Provider,
			data.Model,
			data.Purpose,
			data.InputTokens,
			data.OutputTokens,
			data.LatencyMs,
			data.Success,
			data.ErrorMessage,
			data.RequestBody,
			data.ResponseBody,
		).Query()
	if _, err := r.s.db.ExecContext(ctx, query, args...); err != nil {
		return ioErr("save LLM request event", err)
	}
	return nil
}

// QueryLLMEvents returns LLM events newest first.
func (r *EventLog) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error) {
	sel := r.s.builder().Select(columnNames(llmRequestColumns)...).
		From(entsql.Table(tableLLMRequests)).
		OrderBy(entsql.Desc("id"))
	applyOpts(sel, opts)
	if opts.Purpose != "" {
		sel.Where(entsql.EQ("purpose", opts.Purpose))
	}

	query, args := sel.Query()
	rows, err := r.s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, ioErr("query LLM events", err)
	}
	defer rows.Close()

	var out []LLMRequestEvent
	for rows.Next() {
		e, err := scanLLMEvent(rows)
		if err != nil {
			return nil, ioErr("scan LLM event", err)
		}
		out = append(out, *e)
	}
	return out, ioErr("query LLM events", rows.Err())
}

// GetLLMEvent returns one event by id, or nil when it does not exist.
func (r *EventLog) GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error) {
	query, args := r.s.builder().Select(columnNames(llmRequestColumns)...).
		From(entsql.Table(tableLLMRequests)).
		Where(entsql.EQ("id", id)).
		Query()

	e, err := scanLLMEvent(r.s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, ioErr("get LLM event", err)
	}
	return e, nil
}

// LLMUsageByPurpose aggregates calls and tokens per purpose.
func (r *EventLog) LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error) {
	query, args := r.s.builder().Select(
		"purpose",
		entsql.Count("*"),
		entsql.Sum("input_tokens"),
		entsql.Sum("output_tokens"),
		entsql.Avg("latency_ms"),
	).
		From(entsql.Table(tableLLMRequests)).
		GroupBy("purpose").
		OrderBy("purpose").
		Query()

	rows, err := r.s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, ioErr("query usage by purpose", err)
	}
	defer rows.Close()

	var out []PurposeUsage
	for rows.Next() {
		var (
			u   PurposeUsage
			avg float64
		)
		if err := rows.Scan(&u.Purpose, &u.Calls, &u.InputTokens, &u.OutputTokens, &avg); err != nil {
			return nil, ioErr("scan usage by purpose", err)
		}
		u.AvgLatencyMs = int64(avg)
		out = append(out, u)
	}
	return out, ioErr("query usage by purpose", rows.Err())
}

// LLMUsageByModel aggregates calls and tokens per model.
func (r *EventLog) LLMUsageByModel(ctx context.Context) ([]ModelUsage, error) {
	query, args := r.s.builder().Select(
		"model",
		entsql.Count("*"),
		entsql.Sum("input_tokens"),
		entsql.Sum("output_tokens"),
	).
		From(entsql.Table(tableLLMRequests)).
		GroupBy("model").
		OrderBy("model").
		Query()

	rows, err := r.s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, ioErr("query usage by model", err)
	}
	defer rows.Close()

	var out []ModelUsage
	for rows.Next() {
		var u ModelUsage
		if err := rows.Scan(&u.Model, &u.Calls, &u.InputTokens, &u.OutputTokens); err != nil {
			return nil, ioErr("scan usage by model", err)
		}
		out = append(out, u)
	}
	return out, ioErr("query usage by model", rows.Err())
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLLMEvent(row scanner) (*LLMRequestEvent, error) {
	var e LLMRequestEvent
	err := row.Scan(
		&e.ID,
		&e.Timestamp,
		&e.Provider,
		&e.Model,
		&e.Purpose,
		&e.InputTokens,
		&e.OutputTokens,
		&e.LatencyMs,
		&e.Success,
		&e.ErrorMessage,
		&e.RequestBody,
		&e.ResponseBody,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func applyOpts(sel *entsql.Selector, opts QueryOpts) {
	if opts.After > 0 {
		sel.Where(entsql.GT("id", opts.After))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("timestamp", opts.To.UTC()))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
}
