package evaluation

// Strategy names the pedagogical rubric variant a prompt is graded with.
type Strategy string

const (
	// StrategyBeginner3W checks the three W questions: who, what, why.
	StrategyBeginner3W Strategy = "beginner_3w"
	// StrategyIntermediateKAF checks context, task and format.
	StrategyIntermediateKAF Strategy = "intermediate_kaf"

	// DefaultStrategy applies when a request names no strategy.
	DefaultStrategy = StrategyBeginner3W
)

// Strategies lists the recognized strategies in a stable order.
var Strategies = []Strategy{StrategyBeginner3W, StrategyIntermediateKAF}

// Label is the quality annotation of a prompt segment.
type Label string

const (
	LabelGood          Label = "GOOD"
	LabelOK            Label = "OK"
	LabelMissingDetail Label = "MISSING_DETAIL"
	LabelUnclear       Label = "UNCLEAR"
	LabelTooVague      Label = "TOO_VAGUE"
	LabelOffTopic      Label = "OFF_TOPIC"
	LabelToneIssue     Label = "TONE_ISSUE"
)

// Labels returns the label set the model is asked to use for a strategy.
func (s Strategy) Labels() []Label {
	if s == StrategyIntermediateKAF {
		return []Label{LabelGood, LabelMissingDetail, LabelUnclear, LabelTooVague, LabelOffTopic, LabelToneIssue}
	}
	return []Label{LabelGood, LabelOK, LabelUnclear, LabelOffTopic}
}

// Request is one incoming grading call.
type Request struct {
	StudentPrompt string   `json:"student_prompt" validate:"required,nonblank,min=10,max=2000"`
	Strategy      Strategy `json:"strategy" validate:"oneof=beginner_3w intermediate_kaf"`
}

// Segment is a slice of the student prompt with a quality label.
type Segment struct {
	Text  string `json:"text"`
	Label Label  `json:"label"`
}

// RubricScores holds the four sub-scores, each 0..25.
type RubricScores struct {
	Clarity         int `json:"clarity"`
	Structure       int `json:"structure"`
	TaskSpecificity int `json:"task_specificity"`
	AudienceTone    int `json:"audience_tone"`
}

// Sum returns the total of all four sub-scores.
func (r RubricScores) Sum() int {
	return r.Clarity + r.Structure + r.TaskSpecificity + r.AudienceTone
}

// Evaluation is the graded result returned to the caller. It is built once
// per request, by decoding the model reply or by Fallback, and not changed
// afterwards.
type Evaluation struct {
	OverallScore   int          `json:"overall_score"`
	Segments       []Segment    `json:"segments"`
	Problems       []string     `json:"problems"`
	Tips           []string     `json:"tips"`
	ImprovedPrompt string       `json:"improved_prompt"`
	RubricScores   RubricScores `json:"rubric_scores"`
}
