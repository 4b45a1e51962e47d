// Package wizard prompts for the inputs a command was invoked without,
// using huh forms. It is only used when stdin is a terminal.
package wizard

import "errors"

// WizardResult holds the answers collected by a wizard run.
type WizardResult struct {
	ProjectName  string   // Name of the project to create.
	SkipFrontend bool     // Whether to skip the frontend toolchain.
	SkipGit      bool     // Whether to skip git init.
	EntityName   string   // Name of the entity to generate.
	FieldGroups  []string // Field groups, one per entered line.
}

// QuestionType represents the type of wizard question.
type QuestionType int

const (
	// QuestionTypeSelect is a single-choice selection question.
	QuestionTypeSelect QuestionType = iota
	// QuestionTypeInput is a single-line text input question.
	QuestionTypeInput
	// QuestionTypeText is a multi-line text question.
	QuestionTypeText
)

// Question defines a single wizard question.
type Question struct {
	ID          string                   // Unique identifier
	Type        QuestionType             // Select, Input or Text
	Title       string                   // Question title
	Description string                   // Additional description
	Options     []Option                 // Options for select questions
	Default     string                   // Default value
	Required    bool                     // Whether the field is required
	Validate    func(string) error       // Extra validation of the trimmed answer
	Condition   func(*WizardResult) bool // Condition for showing this question
}

// Option represents a selectable option.
type Option struct {
	Label string // Display label
	Value string // Actual value stored
	Desc  string // Optional description
}

// Error definitions for the wizard package.
var (
	// ErrCancelled is returned when the user cancels the wizard.
	ErrCancelled = errors.New("wizard cancelled by user")
	// ErrNoQuestions is returned when no questions are provided.
	ErrNoQuestions = errors.New("no questions provided")
	// ErrRequired is returned by validation when a required answer is empty.
	ErrRequired = errors.New("a value is required")
)
