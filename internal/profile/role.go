package profile

// RoleKind discriminates the Role variants in stored records.
type RoleKind string

const (
	KindStudent RoleKind = "student"
	KindTeacher RoleKind = "teacher"
)

// Role is either *Student or *Teacher.
type Role interface {
	Kind() RoleKind
	isRole()
}

// StudyStage is the learner's current schooling stage.
type StudyStage string

const (
	StagePrimary    StudyStage = "primary"
	StageSecondary  StudyStage = "secondary"
	StageUniversity StudyStage = "university"
)

// DisplayName returns the human-readable stage.
func (s StudyStage) DisplayName() string {
	switch s {
	case StagePrimary:
		return "Primary school"
	case StageSecondary:
		return "Secondary / high school"
	case StageUniversity:
		return "University"
	default:
		return "Unspecified"
	}
}

// Goal is the learner's stated reason for studying.
type Goal string

const (
	GoalPassExam  Goal = "exam"
	GoalReinforce Goal = "reinforce"
	GoalCuriosity Goal = "curiosity"
)

func (g Goal) DisplayName() string {
	switch g {
	case GoalPassExam:
		return "Pass an exam"
	case GoalReinforce:
		return "Reinforce my knowledge"
	case GoalCuriosity:
		return "Learn out of curiosity"
	default:
		return "not specified"
	}
}

// SelfAssessment is how confident the learner says they are.
type SelfAssessment string

const (
	NeedsHelp   SelfAssessment = "need_help"
	GettingBy   SelfAssessment = "getting_by"
	WantsToGrow SelfAssessment = "improving"
)

func (a SelfAssessment) DisplayName() string {
	switch a {
	case NeedsHelp:
		return "Need a lot of help"
	case GettingBy:
		return "Getting by"
	case WantsToGrow:
		return "Good but want to improve"
	default:
		return "not specified"
	}
}

// Student is the learner role.
type Student struct {
	StudyStage     StudyStage     `json:"study_stage"`
	StudyYear      string         `json:"study_year,omitempty"`
	Goal           Goal           `json:"goal"`
	SelfAssessment SelfAssessment `json:"self_assessment"`

	Teachers      []string       `json:"teachers"`
	SentRequests  []string       `json:"sent_requests"`
	Invitations   []string       `json:"invitations"`
	Notifications []Notification `json:"notifications"`
}

func (*Student) Kind() RoleKind { return KindStudent }
func (*Student) isRole()        {}

// Teacher is the educator role.
type Teacher struct {
	Career      string `json:"career,omitempty"`
	Institution string `json:"institution,omitempty"`

	Students        []string `json:"students"`
	PendingRequests []string `json:"pending_requests"`
}

func (*Teacher) Kind() RoleKind { return KindTeacher }
func (*Teacher) isRole()        {}

func (s *Student) normalize() {
	if s.Teachers == nil {
		s.Teachers = []string{}
	}
	if s.SentRequests == nil {
		s.SentRequests = []string{}
	}
	if s.Invitations == nil {
		s.Invitations = []string{}
	}
	if s.Notifications == nil {
		s.Notifications = []Notification{}
	}
}

func (t *Teacher) normalize() {
	if t.Students == nil {
		t.Students = []string{}
	}
	if t.PendingRequests == nil {
		t.PendingRequests = []string{}
	}
}

// PromptContext is the learner information fed into generation prompts.
type PromptContext struct {
	StudyStage     StudyStage
	StudyYear      string
	Goal           Goal
	SelfAssessment SelfAssessment
}
