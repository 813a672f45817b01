package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

// ReportRepo stores teacher error reports.
type ReportRepo struct {
	s *Store
}

// Create inserts rep, assigning an id, the pending status and timestamps
// when unset.
func (r *ReportRepo) Create(ctx context.Context, rep *ErrorReport) error {
	now := time.Now().UTC()
	if rep.ID == "" {
		rep.ID = "rep_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	}
	if rep.Status == "" {
		rep.Status = ReportPending
	}
	if !rep.Status.Valid() {
		return fmt.Errorf("invalid report status %q", rep.Status)
	}
	rep.CreatedAt, rep.UpdatedAt = now, now

	query, args := r.s.builder().Insert(tableReports).
		Columns(columnNames(reportColumns)...).
		Values(
			rep.ID,
			rep.TeacherID,
			rep.Question,
			rep.AIAnswer,
			rep.TeacherAnswer,
			rep.Justification,
			string(rep.Status),
			rep.CreatedAt,
			rep.UpdatedAt,
		).Query()
	if _, err := r.s.db.ExecContext(ctx, query, args...); err != nil {
		return ioErr("save error report", err)
	}
	return nil
}

// List returns reports matching f, newest first.
func (r *ReportRepo) List(ctx context.Context, f ReportFilter) ([]ErrorReport, error) {
	sel := r.s.builder().Select(columnNames(reportColumns)...).
		From(entsql.Table(tableReports)).
		OrderBy(entsql.Desc("created_at"))
	if f.TeacherID != "" {
		sel.Where(entsql.EQ("teacher_id", f.TeacherID))
	}
	if f.Status != "" {
		sel.Where(entsql.EQ("status", string(f.Status)))
	}

	query, args := sel.Query()
	rows, err := r.s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, ioErr("query error reports", err)
	}
	defer rows.Close()

	var out []ErrorReport
	for rows.Next() {
		var (
			rep    ErrorReport
			status string
		)
		err := rows.Scan(
			&rep.ID,
			&rep.TeacherID,
			&rep.Question,
			&rep.AIAnswer,
			&rep.TeacherAnswer,
			&rep.Justification,
			&status,
			&rep.CreatedAt,
			&rep.UpdatedAt,
		)
		if err != nil {
			return nil, ioErr("scan error report", err)
		}
		rep.Status = ReportStatus(status)
		out = append(out, rep)
	}
	return out, ioErr("query error reports", rows.Err())
}

// SetStatus moves a report to status.
func (r *ReportRepo) SetStatus(ctx context.Context, id string, status ReportStatus) error {
	if !status.Valid() {
		return fmt.Errorf("invalid report status %q", status)
	}

	query, args := r.s.builder().Update(tableReports).
		Set("status", string(status)).
		Set("updated_at", time.Now().UTC()).
		Where(entsql.EQ("id", id)).
		Query()
	res, err := r.s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return ioErr("update error report", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return ioErr("update error report", err)
	}
	if n == 0 {
		return ErrReportNotFound
	}
	return nil
}
