package valueobject

import "fmt"

// ControlAnswer is the applicant's answer to a security posture question.
// The zero value means the question was left unanswered.
type ControlAnswer struct {
	value string
}

var (
	ControlAnswerYes     = ControlAnswer{value: "Yes"}
	ControlAnswerNo      = ControlAnswer{value: "No"}
	ControlAnswerPartial = ControlAnswer{value: "Partial"}
)

// ControlAnswerFromString parses a control answer. Answers are case-sensitive
// and an empty string yields the zero value.
func ControlAnswerFromString(s string) (ControlAnswer, error) {
	switch s {
	case "":
		return ControlAnswer{}, nil
	case "Yes":
		return ControlAnswerYes, nil
	case "No":
		return ControlAnswerNo, nil
	case "Partial":
		return ControlAnswerPartial, nil
	default:
		return ControlAnswer{}, fmt.Errorf("invalid control answer: %s", s)
	}
}

func (c ControlAnswer) String() string {
	return c.value
}

func (c ControlAnswer) IsZero() bool {
	return c.value == ""
}

func (c ControlAnswer) Equal(other ControlAnswer) bool {
	return c.value == other.value
}
