// Package entities содержит сущности мастера регистрации.
package entities

// Step - шаг мастера регистрации.
type Step int

// Шаги мастера. Credentials, Personal и Tags упорядочены; Submitting и Done
// являются служебными состояниями отправки.
const (
	StepCredentials Step = iota
	StepPersonal
	StepTags
	StepSubmitting
	StepDone
)

var stepNames = map[Step]string{
	StepCredentials: "credentials",
	StepPersonal:    "personal",
	StepTags:        "tags",
	StepSubmitting:  "submitting",
	StepDone:        "done",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return "unknown"
}

// Editable сообщает, можно ли менять форму на этом шаге.
func (s Step) Editable() bool {
	return s == StepCredentials || s == StepPersonal || s == StepTags
}
