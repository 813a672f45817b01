package content

import (
	"fmt"
	"strings"

	"github.com/abhisek/braincourse/internal/profile"
)

const systemPrompt = `You are Brainy, the AI tutor of the BrainCourse learning platform.

You explain any academic subject clearly, write practice exercises and guide
learners step by step. Keep explanations short and concrete. Use plain text;
write math with ASCII operators (+ - * / ^) and no LaTeX.

When writing multiple-choice questions:
- Every question has exactly 4 options and exactly one of them is correct.
- correct_answer must repeat the text of the correct option exactly.
- The other 3 options are plausible distractors that reflect common mistakes.
- Questions are self-contained and never refer to each other.`

// MaxPromptLevel caps the difficulty scale shown to the model.
const MaxPromptLevel = 10

// placementTopic picks the placement quiz subject for a study stage.
func placementTopic(stage profile.StudyStage) string {
	switch stage {
	case profile.StagePrimary:
		return "basic arithmetic (addition, subtraction, simple multiplication)"
	case profile.StageSecondary:
		return "fundamental algebra (first-degree equations, isolating variables)"
	default:
		return "pre-calculus concepts (2D vectors, simple functions)"
	}
}

// contextModifier phrases the learner profile as guidance for the question
// writer. It returns "" when there is nothing to say.
func contextModifier(pc *profile.PromptContext) string {
	if pc == nil {
		return ""
	}

	var mods []string
	if pc.StudyYear != "" {
		mods = append(mods, fmt.Sprintf("The learner is studying %s.", pc.StudyYear))
	} else if pc.StudyStage != "" {
		mods = append(mods, fmt.Sprintf("The learner is at %s level.", pc.StudyStage.DisplayName()))
	}

	switch pc.Goal {
	case profile.GoalPassExam:
		mods = append(mods, "Questions should read like exam questions: clear, concise and focused on assessment.")
	case profile.GoalCuriosity:
		mods = append(mods, "Questions can be creative or applied to an interesting real-world case.")
	}

	switch pc.SelfAssessment {
	case profile.NeedsHelp:
		mods = append(mods, "Keep problems fundamental, suited to a beginner; a short reminder of a key formula is welcome.")
	case profile.WantsToGrow:
		mods = append(mods, "Add a small twist or detail that needs extra attention, to challenge the learner.")
	}

	if len(mods) == 0 {
		return ""
	}
	return "Consider this context about the learner: " + strings.Join(mods, " ")
}

func promptLevel(level int) int {
	return min(max(level, 1), MaxPromptLevel)
}

// buildItemsMessage builds the user message for quiz, exam and placement
// requests.
func buildItemsMessage(req Request) string {
	var b strings.Builder

	switch req.Kind {
	case KindPlacement:
		stage := profile.StudyStage("")
		if req.Profile != nil {
			stage = req.Profile.StudyStage
		}
		fmt.Fprintf(&b, "Write a placement quiz of %d multiple-choice questions on: %s.\n", req.Count, placementTopic(stage))
		b.WriteString("Difficulty should increase from the first question to the last.\n")
	case KindExam:
		fmt.Fprintf(&b, "Write a module exam of %d multiple-choice questions.\n", req.Count)
		fmt.Fprintf(&b, "Cover these subtopics evenly: %s.\n", strings.Join(examTopics(req), ", "))
		fmt.Fprintf(&b, "Difficulty: level %d on a scale of 1 to %d.\n", promptLevel(req.Level), MaxPromptLevel)
	default:
		fmt.Fprintf(&b, "Write a quiz of %d multiple-choice questions on the topic: %s.\n", req.Count, req.Topic)
		fmt.Fprintf(&b, "Difficulty: level %d on a scale of 1 to %d.\n", promptLevel(req.Level), MaxPromptLevel)
	}

	if mod := contextModifier(req.Profile); mod != "" && req.Kind != KindPlacement {
		b.WriteString(mod)
		b.WriteString("\n")
	}

	b.WriteString("\nReturn the questions in the \"items\" array.")
	return b.String()
}

func examTopics(req Request) []string {
	if len(req.Subtopics) > 0 {
		return req.Subtopics
	}
	return []string{req.Topic}
}

func buildSyllabusMessage(req Request, cfg Config) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Act as an expert course designer. Write a syllabus for the topic: %s.\n", req.Topic)
	fmt.Fprintf(&b, "Split it into %d to %d modules. Each module has a title and an ordered list of subtopics.\n",
		cfg.MinModules, cfg.MaxModules)
	if mod := contextModifier(req.Profile); mod != "" {
		b.WriteString(mod)
		b.WriteString("\n")
	}
	return b.String()
}

func buildTheoryMessage(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Explain the concept: %s.\n", req.Topic)
	b.WriteString("Give the core theory, any key formulas, and one simple worked example. Use language that is easy to follow.\n")
	if mod := contextModifier(req.Profile); mod != "" {
		b.WriteString(mod)
		b.WriteString("\n")
	}
	return b.String()
}

func buildExplainMessage(req ExplainRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "The learner is at difficulty level %d.\n", promptLevel(req.Level))
	fmt.Fprintf(&b, "Question: %s\n", req.Question)
	if len(req.Options) > 0 {
		fmt.Fprintf(&b, "Options: %s\n", strings.Join(req.Options, " | "))
	}
	if mod := contextModifier(req.Profile); mod != "" {
		b.WriteString(mod)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch req.Mode {
	case ExplainHint:
		b.WriteString("Give one short hint that helps solve the question without revealing the answer.")
	case ExplainWhy:
		fmt.Fprintf(&b, "The correct answer is %q", req.Correct)
		if req.UserAnswer != "" && req.UserAnswer != req.Correct {
			fmt.Fprintf(&b, " and the learner chose %q", req.UserAnswer)
		}
		b.WriteString(". Briefly explain why the correct answer is right.")
	default:
		b.WriteString("Explain step by step how to solve the question.")
		if req.Correct != "" {
			fmt.Fprintf(&b, " The correct answer is %q.", req.Correct)
		}
	}
	return b.String()
}
