package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Manage teacher and student links",
	Long: `Teachers invite students and answer their requests; students request a
teacher and answer invitations. --user is the acting profile.`,
}

// linkAction builds a subcommand that applies one link operation between
// the acting profile and the profile named by the single argument.
func linkAction(use, short string, run func(cmd *cobra.Command, e *env, me, other string, accept bool) error, done string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
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
			// Only the respond commands define --decline.
			decline, _ := cmd.Flags().GetBool("decline")
			if err := run(cmd, e, me, args[0], !decline); err != nil {
				return err
			}
			msg := done
			if decline {
				msg = "Declined"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", msg, args[0])
			return nil
		},
	}
}

var (
	linkInviteCmd = linkAction("invite <student>", "Invite a student (teacher)",
		func(cmd *cobra.Command, e *env, me, other string, _ bool) error {
			return e.svc.Invite(cmd.Context(), me, other)
		}, "Invitation sent")

	linkRequestCmd = linkAction("request <teacher>", "Ask a teacher to link (student)",
		func(cmd *cobra.Command, e *env, me, other string, _ bool) error {
			return e.svc.RequestLink(cmd.Context(), me, other)
		}, "Request sent")

	linkAcceptCmd = linkAction("accept <teacher>", "Answer a teacher's invitation (student)",
		func(cmd *cobra.Command, e *env, me, other string, accept bool) error {
			return e.svc.RespondToInvitation(cmd.Context(), me, other, accept)
		}, "Linked")

	linkRespondCmd = linkAction("respond <student>", "Answer a student's request (teacher)",
		func(cmd *cobra.Command, e *env, me, other string, accept bool) error {
			return e.svc.RespondToRequest(cmd.Context(), me, other, accept)
		}, "Linked")

	linkUnlinkCmd = linkAction("unlink <student>", "Remove a linked student (teacher)",
		func(cmd *cobra.Command, e *env, me, other string, _ bool) error {
			return e.svc.Unlink(cmd.Context(), me, other)
		}, "Unlinked")
)

var linkStudentsCmd = &cobra.Command{
	Use:   "students",
	Short: "List linked students with their level and accuracy (teacher)",
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
		students, err := e.svc.Students(cmd.Context(), me)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(students) == 0 {
			fmt.Fprintln(out, "No linked students.")
			return nil
		}
		fmt.Fprintf(out, "%-32s  %-20s  %5s  %8s  %7s\n", "Email", "Name", "Level", "Accuracy", "Courses")
		for _, st := range students {
			fmt.Fprintf(out, "%-32s  %-20s  %5d  %7.0f%%  %7d\n",
				st.ID, truncate(st.Name, 20), st.Progress.Level, st.Progress.Accuracy()*100, len(st.Courses))
		}
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{linkAcceptCmd, linkRespondCmd} {
		c.Flags().Bool("decline", false, "Decline instead of accepting")
	}
	linkCmd.AddCommand(linkInviteCmd, linkRequestCmd, linkAcceptCmd, linkRespondCmd, linkUnlinkCmd, linkStudentsCmd)
}
