package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/abhisek/braincourse/internal/profile"
)

var errTeacherTUI = errors.New("the terminal UI is for students; teachers use the link and report commands")

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Create and inspect profiles",
}

var profileCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a student or teacher profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		f := cmd.Flags()
		email, _ := f.GetString("email")
		if email == "" {
			email = e.cfg.User
		}
		name, _ := f.GetString("name")
		role, _ := f.GetString("role")
		now := time.Now()

		var p *profile.Profile
		switch role {
		case string(profile.KindStudent):
			stage, _ := f.GetString("stage")
			year, _ := f.GetString("year")
			goal, _ := f.GetString("goal")
			assess, _ := f.GetString("assessment")
			info := profile.StudentInfo{
				StudyStage:     profile.StudyStage(stage),
				StudyYear:      year,
				Goal:           profile.Goal(goal),
				SelfAssessment: profile.SelfAssessment(assess),
			}
			if err := checkStudentInfo(info); err != nil {
				return err
			}
			p, err = profile.NewStudent(email, name, info, now)
		case string(profile.KindTeacher):
			career, _ := f.GetString("career")
			inst, _ := f.GetString("institution")
			p, err = profile.NewTeacher(email, name, career, inst, now)
		default:
			return fmt.Errorf("unknown role %q: must be student or teacher", role)
		}
		if err != nil {
			return err
		}

		if err := e.svc.Register(cmd.Context(), p); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s profile %s\n", role, p.ID)
		return nil
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the selected profile",
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

		fmt.Fprintf(out, "Name:      %s\n", p.Name)
		fmt.Fprintf(out, "Email:     %s\n", p.Email)
		fmt.Fprintf(out, "Role:      %s\n", p.Role.Kind())
		fmt.Fprintf(out, "Since:     %s\n", p.CreatedAt.Local().Format("2006-01-02"))

		if st := p.Student(); st != nil {
			fmt.Fprintf(out, "Stage:     %s %s\n", st.StudyStage.DisplayName(), st.StudyYear)
			fmt.Fprintf(out, "Goal:      %s\n", st.Goal.DisplayName())
			fmt.Fprintf(out, "Level:     %d\n", p.Progress.Level)
			fmt.Fprintf(out, "Courses:   %d\n", len(p.Courses))
			fmt.Fprintf(out, "Teachers:  %s\n", listOrNone(st.Teachers))
			if len(st.Invitations) > 0 {
				fmt.Fprintf(out, "Invited by: %s\n", strings.Join(st.Invitations, ", "))
			}
			if len(st.SentRequests) > 0 {
				fmt.Fprintf(out, "Requested: %s\n", strings.Join(st.SentRequests, ", "))
			}
			if len(st.Notifications) > 0 {
				fmt.Fprintf(out, "\nNotifications (%d unread)\n", st.Unread())
				for _, n := range st.Notifications {
					mark := " "
					if !n.Read {
						mark = "•"
					}
					fmt.Fprintf(out, " %s %s  %s\n", mark, n.At.Local().Format("2006-01-02 15:04"), n.Message)
				}
				if read, _ := cmd.Flags().GetBool("mark-read"); read {
					st.MarkAllRead()
					if err := e.svc.Save(cmd.Context(), p); err != nil {
						return err
					}
				}
			}
		}
		if t := p.Teacher(); t != nil {
			fmt.Fprintf(out, "Career:    %s\n", t.Career)
			fmt.Fprintf(out, "School:    %s\n", t.Institution)
			fmt.Fprintf(out, "Students:  %s\n", listOrNone(t.Students))
			if len(t.PendingRequests) > 0 {
				fmt.Fprintf(out, "Requests:  %s\n", strings.Join(t.PendingRequests, ", "))
			}
		}
		return nil
	},
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		rows, err := e.store.Profiles().List(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(rows) == 0 {
			fmt.Fprintln(out, "No profiles yet.")
			return nil
		}
		fmt.Fprintf(out, "%-36s  %-8s  %s\n", "Email", "Role", "Updated")
		fmt.Fprintln(out, strings.Repeat("─", 66))
		for _, r := range rows {
			fmt.Fprintf(out, "%-36s  %-8s  %s\n", r.ID, r.Role, r.UpdatedAt.Local().Format("2006-01-02 15:04"))
		}
		return nil
	},
}

func checkStudentInfo(info profile.StudentInfo) error {
	stages := []profile.StudyStage{profile.StagePrimary, profile.StageSecondary, profile.StageUniversity}
	if !lo.Contains(stages, info.StudyStage) {
		return fmt.Errorf("unknown stage %q: must be primary, secondary or university", info.StudyStage)
	}
	goals := []profile.Goal{profile.GoalPassExam, profile.GoalReinforce, profile.GoalCuriosity}
	if info.Goal != "" && !lo.Contains(goals, info.Goal) {
		return fmt.Errorf("unknown goal %q: must be exam, reinforce or curiosity", info.Goal)
	}
	levels := []profile.SelfAssessment{profile.NeedsHelp, profile.GettingBy, profile.WantsToGrow}
	if info.SelfAssessment != "" && !lo.Contains(levels, info.SelfAssessment) {
		return fmt.Errorf("unknown assessment %q: must be need_help, getting_by or improving", info.SelfAssessment)
	}
	return nil
}

func listOrNone(ids []string) string {
	if len(ids) == 0 {
		return "none"
	}
	return strings.Join(ids, ", ")
}

func init() {
	f := profileCreateCmd.Flags()
	f.String("email", "", "Profile email (defaults to --user)")
	f.String("name", "", "Display name")
	f.String("role", "student", "student or teacher")
	f.String("stage", string(profile.StageSecondary), "Study stage: primary, secondary or university")
	f.String("year", "", "Study year, free text")
	f.String("goal", string(profile.GoalReinforce), "Goal: exam, reinforce or curiosity")
	f.String("assessment", string(profile.GettingBy), "Self assessment: need_help, getting_by or improving")
	f.String("career", "", "Teacher's subject or career")
	f.String("institution", "", "Teacher's school or university")
	_ = profileCreateCmd.MarkFlagRequired("name")

	profileShowCmd.Flags().Bool("mark-read", false, "Mark notifications as read")

	profileCmd.AddCommand(profileCreateCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileListCmd)
}
