package cmd

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/abhisek/braincourse/internal/llm"
	"github.com/abhisek/braincourse/internal/store"
)

// purposes are the labels the content generator records, in the order the
// usage table lists them.
var purposes = []llm.Purpose{
	llm.PurposeQuiz,
	llm.PurposeExam,
	llm.PurposePlacement,
	llm.PurposeSyllabus,
	llm.PurposeTheory,
	llm.PurposeExplain,
	llm.PurposeUnknown,
}

var purposeTitles = map[llm.Purpose]string{
	llm.PurposeQuiz:      "Practice items",
	llm.PurposeExam:      "Exam items",
	llm.PurposePlacement: "Placement items",
	llm.PurposeSyllabus:  "Course syllabi",
	llm.PurposeTheory:    "Module theory",
	llm.PurposeExplain:   "Explanations",
	llm.PurposeUnknown:   "Unlabelled",
}

const stamp = "2006-01-02 15:04:05"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the content generation calls made to the model provider",
}

var llmLogCmd = &cobra.Command{
	Use:     "log",
	Aliases: []string{"list"},
	Short:   "List recent generation calls, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		failed, _ := cmd.Flags().GetBool("failed")
		since, _ := cmd.Flags().GetDuration("since")

		if purpose != "" && !slices.Contains(purposes, llm.Purpose(purpose)) {
			return fmt.Errorf("unknown purpose %q (want one of %s)", purpose,
				strings.Join(lo.Map(purposes, func(p llm.Purpose, _ int) string { return string(p) }), ", "))
		}

		e, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		opts := store.QueryOpts{Purpose: purpose}
		if since > 0 {
			opts.From = time.Now().Add(-since)
		}
		// Failures are filtered after the query, so fetch without a limit.
		if !failed {
			opts.Limit = limit
		}
		events, err := e.store.Events().QueryLLMEvents(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query generation calls: %w", err)
		}
		if failed {
			events = lo.Filter(events, func(ev store.LLMRequestEvent, _ int) bool { return !ev.Success })
			if limit > 0 && len(events) > limit {
				events = events[:limit]
			}
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No generation calls recorded.")
			return nil
		}

		fmt.Fprintf(out, "%5s  %-19s  %-10s  %-24s  %13s  %7s  %s\n",
			"ID", "Time", "Purpose", "Model", "Tokens in/out", "Latency", "")
		rule(out, 96)
		for _, ev := range events {
			status := ""
			if !ev.Success {
				status = "failed: " + truncate(ev.ErrorMessage, 40)
			}
			fmt.Fprintf(out, "%5d  %-19s  %-10s  %-24s  %13s  %7s  %s\n",
				ev.ID,
				ev.Timestamp.Local().Format(stamp),
				ev.Purpose,
				truncate(ev.Model, 24),
				fmt.Sprintf("%d/%d", ev.InputTokens, ev.OutputTokens),
				(time.Duration(ev.LatencyMs) * time.Millisecond).String(),
				status,
			)
		}
		return nil
	},
}

var llmShowCmd = &cobra.Command{
	Use:     "show <id>",
	Aliases: []string{"view"},
	Short:   "Show one generation call with its prompt and reply",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid call id %q", args[0])
		}
		bodies, _ := cmd.Flags().GetBool("bodies")

		e, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		ev, err := e.store.Events().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("load generation call: %w", err)
		}
		if ev == nil {
			return fmt.Errorf("no generation call with id %d", id)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Call %d, %s\n", ev.ID, ev.Timestamp.Local().Format(stamp))
		fmt.Fprintf(out, "For:       %s\n", purposeTitle(ev.Purpose))
		fmt.Fprintf(out, "Model:     %s (%s)\n", ev.Model, ev.Provider)
		fmt.Fprintf(out, "Tokens:    %d in, %d out\n", ev.InputTokens, ev.OutputTokens)
		fmt.Fprintf(out, "Latency:   %s\n", time.Duration(ev.LatencyMs)*time.Millisecond)
		if c := llm.LookupCost(ev.Model); c != nil {
			fmt.Fprintf(out, "Cost:      %s\n", usd(decimal.NewFromFloat(c.Cost(ev.InputTokens, ev.OutputTokens))))
		}
		if !ev.Success {
			fmt.Fprintf(out, "Failed:    %s\n", ev.ErrorMessage)
		}

		if !bodies {
			return nil
		}
		for _, part := range []struct{ name, body string }{
			{"Prompt", ev.RequestBody},
			{"Reply", ev.ResponseBody},
		} {
			fmt.Fprintf(out, "\n%s\n", part.name)
			rule(out, 60)
			fmt.Fprintln(out, lo.Ternary(part.body == "", "(not recorded)", part.body))
		}
		return nil
	},
}

var llmUsageCmd = &cobra.Command{
	Use:     "usage",
	Aliases: []string{"stats"},
	Short:   "Summarize tokens and estimated cost per purpose and model",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		byPurpose, err := e.store.Events().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(byPurpose) == 0 {
			fmt.Fprintln(out, "No generation calls recorded.")
			return nil
		}
		printPurposeUsage(out, byPurpose)

		byModel, err := e.store.Events().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query usage by model: %w", err)
		}
		fmt.Fprintln(out)
		printModelCost(out, byModel)
		return nil
	},
}

func printPurposeUsage(out io.Writer, stats []store.PurposeUsage) {
	rank := func(p string) int {
		if i := slices.Index(purposes, llm.Purpose(p)); i >= 0 {
			return i
		}
		return len(purposes)
	}
	stats = slices.Clone(stats)
	slices.SortStableFunc(stats, func(a, b store.PurposeUsage) int { return rank(a.Purpose) - rank(b.Purpose) })

	fmt.Fprintf(out, "%-18s  %6s  %10s  %10s  %8s\n", "Generated", "Calls", "Tokens in", "Tokens out", "Avg")
	rule(out, 60)
	var calls, in, outTok int
	for _, st := range stats {
		fmt.Fprintf(out, "%-18s  %6d  %10d  %10d  %8s\n",
			purposeTitle(st.Purpose), st.Calls, st.InputTokens, st.OutputTokens,
			time.Duration(st.AvgLatencyMs)*time.Millisecond)
		calls += st.Calls
		in += st.InputTokens
		outTok += st.OutputTokens
	}
	rule(out, 60)
	fmt.Fprintf(out, "%-18s  %6d  %10d  %10d\n", "All", calls, in, outTok)
}

// printModelCost prices each model's tokens. Models without a known price
// are listed but left out of the total.
func printModelCost(out io.Writer, usage []store.ModelUsage) {
	if len(usage) == 0 {
		return
	}
	fmt.Fprintf(out, "%-32s  %6s  %12s\n", "Model", "Calls", "Cost (USD)")
	rule(out, 54)

	total := decimal.Zero
	var unpriced []string
	for _, mu := range usage {
		cost := "?"
		if c := llm.LookupCost(mu.Model); c != nil {
			d := decimal.NewFromFloat(c.Cost(mu.InputTokens, mu.OutputTokens))
			total = total.Add(d)
			cost = usd(d)
		} else {
			unpriced = append(unpriced, mu.Model)
		}
		fmt.Fprintf(out, "%-32s  %6d  %12s\n", truncate(mu.Model, 32), mu.Calls, cost)
	}
	rule(out, 54)
	fmt.Fprintf(out, "%-32s  %6s  %12s\n", lo.Ternary(len(unpriced) > 0, "Total (priced models)", "Total"), "", usd(total))
	if len(unpriced) > 0 {
		fmt.Fprintf(out, "\nNo price known for %s\n", strings.Join(unpriced, ", "))
	}
}

func purposeTitle(p string) string {
	if t, ok := purposeTitles[llm.Purpose(p)]; ok {
		return t
	}
	return p
}

func rule(out io.Writer, width int) {
	fmt.Fprintln(out, strings.Repeat("─", width))
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

// usd shows sub-cent amounts with four decimals.
func usd(d decimal.Decimal) string {
	if d.LessThan(decimal.NewFromFloat(0.01)) {
		return "$" + d.StringFixed(4)
	}
	return "$" + d.StringFixed(2)
}

func init() {
	llmLogCmd.Flags().IntP("limit", "n", 20, "Number of calls to show")
	llmLogCmd.Flags().StringP("purpose", "p", "", "Only calls made for this purpose (quiz, exam, placement, syllabus, theory, explain)")
	llmLogCmd.Flags().Bool("failed", false, "Only calls that failed")
	llmLogCmd.Flags().Duration("since", 0, "Only calls newer than this, e.g. 24h")
	llmShowCmd.Flags().Bool("bodies", true, "Print the recorded prompt and reply")

	llmCmd.AddCommand(llmLogCmd, llmShowCmd, llmUsageCmd)
}
