package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/braincourse/internal/store"
	"github.com/abhisek/braincourse/internal/tutor"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "File and review corrections of generated answers",
}

var reportAddCmd = &cobra.Command{
	Use:   "add",
	Short: "File a correction of an AI answer (teacher)",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		me, err := e.user()
		if err != nil {
			return err
		}
		f := cmd.Flags()
		var in tutor.ReportInput
		in.Question, _ = f.GetString("question")
		in.AIAnswer, _ = f.GetString("ai-answer")
		in.TeacherAnswer, _ = f.GetString("answer")
		in.Justification, _ = f.GetString("why")

		rep, err := e.svc.FileReport(cmd.Context(), me, in)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Filed report %s (%s)\n", rep.ID, rep.Status)
		return nil
	},
}

var reportListCmd = &cobra.Command{
	Use:   "list",
	Short: "List error reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		var filter store.ReportFilter
		status, _ := cmd.Flags().GetString("status")
		filter.Status = store.ReportStatus(status)
		if mine, _ := cmd.Flags().GetBool("mine"); mine {
			if filter.TeacherID, err = e.user(); err != nil {
				return err
			}
		}

		reps, err := e.svc.Reports(cmd.Context(), filter)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(reps) == 0 {
			fmt.Fprintln(out, "No reports found.")
			return nil
		}

		sep := strings.Repeat("─", 60)
		for _, r := range reps {
			fmt.Fprintln(out, sep)
			fmt.Fprintf(out, "ID:        %s\n", r.ID)
			fmt.Fprintf(out, "Teacher:   %s\n", r.TeacherID)
			fmt.Fprintf(out, "Status:    %s\n", r.Status)
			fmt.Fprintf(out, "Filed:     %s\n", r.CreatedAt.Local().Format("2006-01-02 15:04"))
			fmt.Fprintf(out, "Question:  %s\n", r.Question)
			fmt.Fprintf(out, "AI said:   %s\n", r.AIAnswer)
			fmt.Fprintf(out, "Correct:   %s\n", r.TeacherAnswer)
			if r.Justification != "" {
				fmt.Fprintf(out, "Why:       %s\n", r.Justification)
			}
		}
		return nil
	},
}

var reportStatusCmd = &cobra.Command{
	Use:   "status <id> <pending|reviewed|resolved>",
	Short: "Move a report to a new status",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.svc.SetReportStatus(cmd.Context(), args[0], store.ReportStatus(args[1])); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report %s is now %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	f := reportAddCmd.Flags()
	f.String("question", "", "The question as generated")
	f.String("ai-answer", "", "The answer the AI marked as correct")
	f.String("answer", "", "The correct answer")
	f.String("why", "", "Justification for the correction")
	_ = reportAddCmd.MarkFlagRequired("question")
	_ = reportAddCmd.MarkFlagRequired("answer")

	reportListCmd.Flags().String("status", "", "Filter by status")
	reportListCmd.Flags().Bool("mine", false, "Only reports filed by --user")

	reportCmd.AddCommand(reportAddCmd, reportListCmd, reportStatusCmd)
}
