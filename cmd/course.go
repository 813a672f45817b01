package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var courseCmd = &cobra.Command{
	Use:   "course",
	Short: "Generate and read courses",
}

var courseNewCmd = &cobra.Command{
	Use:   "new <topic>",
	Short: "Generate a course on a topic",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, envOptions{NeedLLM: true})
		if err != nil {
			return err
		}
		defer e.Close()

		id, err := e.user()
		if err != nil {
			return err
		}
		topic := strings.Join(args, " ")
		fmt.Fprintf(cmd.ErrOrStderr(), "Designing a course on %s...\n", topic)

		c, err := e.svc.CreateCourse(cmd.Context(), id, topic)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Created %s (%s)\n\n", c.Topic, c.ID)
		for i, m := range c.Modules {
			fmt.Fprintf(out, "%d. %s  [%s]\n", i+1, m.Title, m.ID)
			for _, s := range m.Subtopics {
				fmt.Fprintf(out, "     - %s\n", s)
			}
		}
		return nil
	},
}

var courseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List courses with progress and average grade",
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
		out := cmd.OutOrStdout()
		if len(p.Courses) == 0 {
			fmt.Fprintln(out, "No courses yet. Create one with `braincourse course new <topic>`.")
			return nil
		}

		fmt.Fprintf(out, "%-24s  %-28s  %7s  %8s  %5s\n", "ID", "Topic", "Modules", "Progress", "Grade")
		fmt.Fprintln(out, strings.Repeat("─", 80))
		for _, c := range p.Courses {
			grade := "-"
			if avg := c.AverageGrade(); avg != nil {
				grade = avg.StringFixed(1)
			}
			fmt.Fprintf(out, "%-24s  %-28s  %7d  %7.0f%%  %5s\n",
				c.ID, truncate(c.Topic, 28), len(c.Modules), c.Progress()*100, grade)

			if verbose, _ := cmd.Flags().GetBool("modules"); verbose {
				for _, m := range c.Modules {
					status := "○"
					if m.Completed {
						status = "●"
					}
					g := ""
					if m.ExamGrade != nil {
						g = "  grade " + m.ExamGrade.StringFixed(1)
					}
					fmt.Fprintf(out, "    %s %-20s %s%s\n", status, m.ID, m.Title, g)
				}
			}
		}
		return nil
	},
}

var courseTheoryCmd = &cobra.Command{
	Use:   "theory <course-id> <module-id> <subtopic>",
	Short: "Print the theory of a subtopic, generating it on first read",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, envOptions{NeedLLM: true})
		if err != nil {
			return err
		}
		defer e.Close()

		id, err := e.user()
		if err != nil {
			return err
		}
		text, err := e.svc.Theory(cmd.Context(), id, args[0], args[1], strings.Join(args[2:], " "))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

func init() {
	courseListCmd.Flags().Bool("modules", false, "Also list each course's modules")

	courseCmd.AddCommand(courseNewCmd)
	courseCmd.AddCommand(courseListCmd)
	courseCmd.AddCommand(courseTheoryCmd)
}
