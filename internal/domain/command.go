package domain

// CustomCommand is a user-defined instruction that can be injected into the
// system prompt. The optional Condition is a free-text temporal predicate
// ("before 10am", "evening", "at 3pm") evaluated against the wall clock at
// message-send time, not at creation time, so the same command can be active
// on one send and inactive on the next.
type CustomCommand struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Instruction string `yaml:"instruction" json:"instruction"`
	Condition   string `yaml:"condition,omitempty" json:"condition,omitempty"`
}
