package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/braincourse/internal/content"
	"github.com/abhisek/braincourse/internal/store"
)

// cli runs the root command against a private database file. Flags are
// reset before each run since cobra keeps them on the package-level tree.
type cli struct {
	t  *testing.T
	db string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("BRAINCOURSE_USER", "")
	return &cli{t: t, db: filepath.Join(t.TempDir(), "braincourse.db")}
}

func (c *cli) run(user string, args ...string) (string, error) {
	c.t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--db", c.db, "--provider", "mock", "--user", user}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func TestProfileCreateAndShow(t *testing.T) {
	c := newCLI(t)

	out, err := c.run("", "profile", "create", "--email", "Ana@Example.com", "--name", "Ana", "--stage", "university")
	require.NoError(t, err)
	assert.Contains(t, out, "Created student profile ana@example.com")

	out, err = c.run("ana@example.com", "profile", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Name:      Ana")
	assert.Contains(t, out, "University")
	assert.Contains(t, out, "Level:     1")

	out, err = c.run("ana@example.com", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Answered:  0 (0 correct, 0%)")

	out, err = c.run("ana@example.com", "achievements")
	require.NoError(t, err)
	assert.Contains(t, out, "0 of 4 unlocked")

	out, err = c.run("", "profile", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "ana@example.com")
}

func TestProfileCreateRejects(t *testing.T) {
	c := newCLI(t)

	_, err := c.run("ana@example.com", "profile", "create", "--name", "Ana", "--stage", "kindergarten")
	assert.ErrorContains(t, err, "unknown stage")

	_, err = c.run("ana@example.com", "profile", "create", "--name", "Ana", "--role", "admin")
	assert.ErrorContains(t, err, "unknown role")

	_, err = c.run("ana@example.com", "profile", "create", "--name", "Ana")
	require.NoError(t, err)
	_, err = c.run("ana@example.com", "profile", "create", "--name", "Ana")
	assert.Error(t, err, "duplicate profile")
}

func TestUnknownUserHint(t *testing.T) {
	c := newCLI(t)

	_, err := c.run("ghost@example.com", "stats")
	assert.ErrorContains(t, err, "profile create")

	_, err = c.run("", "stats")
	assert.ErrorContains(t, err, "no user selected")
}

func TestTeacherLinkAndReport(t *testing.T) {
	c := newCLI(t)
	const teacher, student = "prof@example.com", "ana@example.com"

	_, err := c.run("", "profile", "create", "--email", teacher, "--name", "Prof", "--role", "teacher", "--career", "Biology")
	require.NoError(t, err)
	_, err = c.run("", "profile", "create", "--email", student, "--name", "Ana")
	require.NoError(t, err)

	out, err := c.run(teacher, "link", "invite", student)
	require.NoError(t, err)
	assert.Contains(t, out, "Invitation sent")

	out, err = c.run(student, "link", "accept", teacher)
	require.NoError(t, err)
	assert.Contains(t, out, "Linked")

	out, err = c.run(student, "profile", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Teachers:  "+teacher)

	out, err = c.run(teacher, "link", "students")
	require.NoError(t, err)
	assert.Contains(t, out, student)

	_, err = c.run(teacher, "report", "add", "--question", "What do cells use for energy?",
		"--ai-answer", "Sunlight", "--answer", "ATP", "--why", "Sunlight is only for plants")
	require.NoError(t, err)

	out, err = c.run(teacher, "report", "list", "--mine")
	require.NoError(t, err)
	assert.Contains(t, out, "Correct:   ATP")
	assert.Contains(t, out, "Status:    pending")

	_, err = c.run(student, "report", "add", "--question", "q", "--answer", "a")
	assert.Error(t, err, "students cannot file reports")
}

func TestPickOption(t *testing.T) {
	it := content.Item{Options: []string{"Paris", "Rome", "Oslo", "Bern"}, Correct: "Paris"}
	tests := []struct {
		in   string
		want string
	}{
		{"1", "Paris"},
		{"4", "Bern"},
		{"rome", "Rome"},
		{"5", ""},
		{"Madrid", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, pickOption(it, tt.in))
		})
	}
}

func TestVersion(t *testing.T) {
	c := newCLI(t)
	out, err := c.run("", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "braincourse (devel)")
}

func TestLLMLogRejectsUnknownPurpose(t *testing.T) {
	c := newCLI(t)
	_, err := c.run("", "llm", "log", "--purpose", "homework")
	assert.ErrorContains(t, err, `unknown purpose "homework"`)
}

func TestLLMUsageEmpty(t *testing.T) {
	c := newCLI(t)
	out, err := c.run("", "llm", "usage")
	require.NoError(t, err)
	assert.Contains(t, out, "No generation calls recorded.")
}

func TestModelCostTotalsPricedModels(t *testing.T) {
	var out bytes.Buffer
	printModelCost(&out, []store.ModelUsage{
		{Model: "gemini-2.5-pro", Calls: 2, InputTokens: 1_000_000, OutputTokens: 100_000},
		{Model: "homegrown-7b", Calls: 1, InputTokens: 10, OutputTokens: 10},
	})

	assert.Contains(t, out.String(), "$2.25")
	assert.Contains(t, out.String(), "Total (priced models)")
	assert.Contains(t, out.String(), "No price known for homegrown-7b")
}

func TestPurposeUsageOrdersByPurpose(t *testing.T) {
	var out bytes.Buffer
	printPurposeUsage(&out, []store.PurposeUsage{
		{Purpose: "explain", Calls: 1},
		{Purpose: "quiz", Calls: 3},
	})

	s := out.String()
	assert.Less(t, strings.Index(s, "Practice items"), strings.Index(s, "Explanations"))
	assert.Contains(t, s, "All")
}
