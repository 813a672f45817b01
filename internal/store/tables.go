package store

import (
	"context"
	"fmt"
	"math"

	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	tableProfiles    = "profiles"
	tableLLMRequests = "llm_request_events"
	tableSessions    = "session_events"
	tableReports     = "error_reports"
)

// textSize maps to TEXT/LONGTEXT on every dialect.
const textSize = math.MaxInt32

var (
	profileColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Size: 64},
		{Name: "role", Type: field.TypeString, Size: 16},
		{Name: "schema_version", Type: field.TypeString, Size: 32},
		{Name: "data", Type: field.TypeJSON},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "updated_at", Type: field.TypeTime},
	}
	profilesTable = &schema.Table{
		Name:       tableProfiles,
		Columns:    profileColumns,
		PrimaryKey: []*schema.Column{profileColumns[0]},
		Indexes: []*schema.Index{
			{Name: "profile_role", Columns: []*schema.Column{profileColumns[1]}},
		},
	}

	llmRequestColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt},
		{Name: "output_tokens", Type: field.TypeInt},
		{Name: "latency_ms", Type: field.TypeInt64},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Size: textSize},
		{Name: "request_body", Type: field.TypeString, Size: textSize},
		{Name: "response_body", Type: field.TypeString, Size: textSize},
	}
	llmRequestsTable = &schema.Table{
		Name:       tableLLMRequests,
		Columns:    llmRequestColumns,
		PrimaryKey: []*schema.Column{llmRequestColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_timestamp", Columns: []*schema.Column{llmRequestColumns[1]}},
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{llmRequestColumns[4]}},
		},
	}

	sessionColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "profile_id", Type: field.TypeString, Size: 64},
		{Name: "session_id", Type: field.TypeString, Size: 64},
		{Name: "kind", Type: field.TypeString, Size: 16},
		{Name: "topic", Type: field.TypeString},
		{Name: "correct", Type: field.TypeInt},
		{Name: "total", Type: field.TypeInt},
		{Name: "leveled_up", Type: field.TypeBool},
		{Name: "unlocked", Type: field.TypeJSON},
	}
	sessionsTable = &schema.Table{
		Name:       tableSessions,
		Columns:    sessionColumns,
		PrimaryKey: []*schema.Column{sessionColumns[0]},
		Indexes: []*schema.Index{
			{Name: "sessionevent_profile_id", Columns: []*schema.Column{sessionColumns[2]}},
		},
	}

	reportColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Size: 64},
		{Name: "teacher_id", Type: field.TypeString, Size: 64},
		{Name: "question", Type: field.TypeString, Size: textSize},
		{Name: "ai_answer", Type: field.TypeString, Size: textSize},
		{Name: "teacher_answer", Type: field.TypeString, Size: textSize},
		{Name: "justification", Type: field.TypeString, Size: textSize},
		{Name: "status", Type: field.TypeString, Size: 16},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "updated_at", Type: field.TypeTime},
	}
	reportsTable = &schema.Table{
		Name:       tableReports,
		Columns:    reportColumns,
		PrimaryKey: []*schema.Column{reportColumns[0]},
		Indexes: []*schema.Index{
			{Name: "errorreport_status", Columns: []*schema.Column{reportColumns[6]}},
		},
	}

	tables = []*schema.Table{profilesTable, llmRequestsTable, sessionsTable, reportsTable}
)

func (s *Store) migrate(ctx context.Context) error {
	m, err := schema.NewMigrate(s.drv)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	return m.Create(ctx, tables...)
}

// columnNames returns the names of cols in order.
func columnNames(cols []*schema.Column) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}
