package cmd

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/braincourse/internal/content"
	"github.com/abhisek/braincourse/internal/llm"
)

var previewCmd = &cobra.Command{
	Use:   "preview <topic>",
	Short: "Preview generated questions for a topic (no database)",
	Long: `Generate and interactively answer questions for a topic.

This is a stateless developer tool: nothing is stored and no progress is
tracked. Useful for evaluating question quality and prompt changes.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().IntP("count", "n", 0, "Number of questions (default: practice.default_length)")
	previewCmd.Flags().Int("level", 1, "Learner level used in the prompt")
	previewCmd.Flags().String("kind", string(content.KindQuiz), "quiz or placement")
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	count, _ := cmd.Flags().GetInt("count")
	if count <= 0 {
		count = cfg.Practice.DefaultLength
	}
	level, _ := cmd.Flags().GetInt("level")
	kind, _ := cmd.Flags().GetString("kind")
	switch content.Kind(kind) {
	case content.KindQuiz, content.KindPlacement:
	default:
		return fmt.Errorf("invalid kind %q: must be quiz or placement", kind)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	// No event log: nothing is recorded.
	provider, err := llm.NewProvider(ctx, cfg.LLM, nil)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}
	gen := content.New(provider, generationConfig(cfg.Generation))

	topic := strings.Join(args, " ")
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Topic: %s (level %d, %s)\n", topic, level, kind)
	fmt.Fprintf(out, "Generating %d questions...\n\n", count)

	items, err := gen.Items(ctx, content.Request{
		Kind:  content.Kind(kind),
		Topic: topic,
		Level: level,
		Count: count,
	})
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	var correct int
	for i, it := range items {
		fmt.Fprintf(out, "── Question %d/%d ──\n", i+1, len(items))
		fmt.Fprintln(out, it.Question)
		for j, o := range it.Options {
			fmt.Fprintf(out, "  %d) %s\n", j+1, o)
		}

		fmt.Fprint(out, "\nYour answer: ")
		if !scanner.Scan() {
			fmt.Fprintln(out, "\n(input closed)")
			break
		}
		answer := pickOption(it, strings.TrimSpace(scanner.Text()))
		if answer == "" {
			fmt.Fprintln(out, "(skipped)")
			fmt.Fprintln(out)
			continue
		}

		if answer == it.Correct {
			correct++
			fmt.Fprintln(out, "\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Fprintf(out, "\033[31m✗ Wrong.\033[0m Answer: %s\n", it.Correct)
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "── Summary: %d/%d correct ──\n", correct, len(items))
	return nil
}

// pickOption maps a typed answer (an option number or its text) to the
// option it names, or "" when it names none.
func pickOption(it content.Item, in string) string {
	if n, err := strconv.Atoi(in); err == nil && n >= 1 && n <= len(it.Options) {
		return it.Options[n-1]
	}
	for _, o := range it.Options {
		if strings.EqualFold(o, in) {
			return o
		}
	}
	return ""
}
