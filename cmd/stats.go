package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/abhisek/braincourse/internal/achievements"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		p, err := e.me(cmd.Context())
		if err != nil {
			return err
		}
		pr := p.Progress
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "Level:     %d\n", pr.Level)
		fmt.Fprintf(out, "Streak:    %d\n", pr.CorrectStreak)
		fmt.Fprintf(out, "Answered:  %d (%d correct, %.0f%%)\n",
			pr.Statistics.TotalQuestions, pr.Statistics.TotalCorrect, pr.Accuracy()*100)
		fmt.Fprintf(out, "Recent:    %s\n", listOrNone(pr.RecentTopics))

		if len(pr.Statistics.PerTopic) == 0 {
			return nil
		}

		fmt.Fprintln(out)
		fmt.Fprintf(out, "%-32s  %7s  %5s  %8s\n", "Topic", "Correct", "Total", "Accuracy")
		fmt.Fprintln(out, strings.Repeat("─", 60))

		topics := lo.Keys(pr.Statistics.PerTopic)
		slices.Sort(topics)
		for _, t := range topics {
			ts := pr.Statistics.PerTopic[t]
			acc, _ := pr.TopicAccuracy(t)
			fmt.Fprintf(out, "%-32s  %7d  %5d  %7.0f%%\n", truncate(t, 32), ts.Correct, ts.Total, acc*100)
		}
		return nil
	},
}

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "List achievements and when they were unlocked",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		p, err := e.me(cmd.Context())
		if err != nil {
			return err
		}

		unlocked := lo.SliceToMap(achievements.Unlocked(p.Progress), func(u achievements.Unlock) (achievements.ID, string) {
			return u.ID, u.At.Local().Format("2006-01-02 15:04")
		})

		out := cmd.OutOrStdout()
		for _, d := range achievements.Catalog() {
			at, ok := unlocked[d.ID]
			if !ok {
				at = "locked"
			}
			fmt.Fprintf(out, "%s  %-16s  %-16s  %s\n", d.Icon, d.Title, at, d.Description)
		}
		fmt.Fprintf(out, "\n%d of %d unlocked\n", len(unlocked), len(achievements.Catalog()))
		return nil
	},
}
