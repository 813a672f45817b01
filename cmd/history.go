package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/braincourse/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show finished quizzes and exams, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		if sessions, _ := cmd.Flags().GetBool("sessions"); sessions {
			since, _ := cmd.Flags().GetDuration("since")
			return printSessionLog(cmd, e, limit, since)
		}

		id, err := e.user()
		if err != nil {
			return err
		}
		recs, err := e.svc.History(cmd.Context(), id, limit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(recs) == 0 {
			fmt.Fprintln(out, "No quizzes yet.")
			return nil
		}

		missed, _ := cmd.Flags().GetBool("missed")
		fmt.Fprintf(out, "%-3s  %-16s  %-15s  %-28s  %6s\n", "#", "Date", "Kind", "Topic", "Score")
		fmt.Fprintln(out, strings.Repeat("─", 76))
		for i, r := range recs {
			fmt.Fprintf(out, "%-3d  %-16s  %-15s  %-28s  %6s\n",
				i, r.Timestamp.Local().Format("2006-01-02 15:04"), r.Kind.DisplayName(), truncate(r.Topic, 28), r.Result())
			if !missed {
				continue
			}
			for _, d := range r.Failed() {
				fmt.Fprintf(out, "       ✗ %s\n         you: %s   answer: %s\n", d.Question, d.UserAnswer, d.CorrectAnswer)
			}
		}
		return nil
	},
}

// printSessionLog lists the append-only session events instead of the
// activity log stored on the profile.
func printSessionLog(cmd *cobra.Command, e *env, limit int, since time.Duration) error {
	id, err := e.user()
	if err != nil {
		return err
	}
	opts := store.QueryOpts{Limit: limit}
	if since > 0 {
		opts.From = time.Now().Add(-since)
	}
	events, err := e.store.Events().QuerySessions(cmd.Context(), id, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(events) == 0 {
		fmt.Fprintln(out, "No session events found.")
		return nil
	}
	fmt.Fprintf(out, "%-5s  %-19s  %-10s  %-24s  %5s  %s\n", "ID", "Timestamp", "Kind", "Topic", "Score", "Unlocked")
	fmt.Fprintln(out, strings.Repeat("─", 84))
	for _, ev := range events {
		score := fmt.Sprintf("%d/%d", ev.Correct, ev.Total)
		if ev.LeveledUp {
			score += "↑"
		}
		fmt.Fprintf(out, "%-5d  %-19s  %-10s  %-24s  %5s  %s\n",
			ev.ID, ev.Timestamp.Local().Format("2006-01-02 15:04:05"), ev.Kind,
			truncate(ev.Topic, 24), score, strings.Join(ev.Unlocked, ","))
	}
	return nil
}

func init() {
	f := historyCmd.Flags()
	f.IntP("limit", "n", 20, "Number of records to show (0 for all)")
	f.Bool("missed", false, "Show the questions answered wrong")
	f.Bool("sessions", false, "Read the session event log instead of the profile history")
	f.Duration("since", 0, "With --sessions, only events newer than this (e.g. 168h)")
}
