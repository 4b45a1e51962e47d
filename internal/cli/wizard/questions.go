package wizard

import (
	"path/filepath"
	"strings"

	"github.com/nebulis-dev/nebulis/internal/core/project"
	"github.com/nebulis-dev/nebulis/internal/dsl"
	"github.com/nebulis-dev/nebulis/internal/naming"
)

// Question IDs.
const (
	IDProjectName = "project_name"
	IDFrontend    = "frontend"
	IDGit         = "git"
	IDEntityName  = "entity_name"
	IDFields      = "fields"
)

// ProjectQuestions returns the questions for `nebulis new`. The project
// name defaults to the base name of dir.
func ProjectQuestions(dir string) []Question {
	defaultName := filepath.Base(dir)
	if defaultName == "." || defaultName == string(filepath.Separator) {
		defaultName = "my-app"
	}

	return []Question{
		{
			ID:          IDProjectName,
			Type:        QuestionTypeInput,
			Title:       "Project name",
			Description: "A directory with this name is created.",
			Default:     defaultName,
			Required:    true,
			Validate:    project.ValidateProjectName,
		},
		// Default option first to keep the huh viewport from scrolling it away.
		{
			ID:    IDFrontend,
			Type:  QuestionTypeSelect,
			Title: "Create the frontend app?",
			Options: []Option{
				{Label: "Yes", Value: "yes", Desc: "runs the deno toolchain"},
				{Label: "No", Value: "no", Desc: "backend only"},
			},
			Default:  "yes",
			Required: true,
		},
		{
			ID:    IDGit,
			Type:  QuestionTypeSelect,
			Title: "Initialize a git repository?",
			Options: []Option{
				{Label: "Yes", Value: "yes"},
				{Label: "No", Value: "no"},
			},
			Default:  "yes",
			Required: true,
		},
	}
}

// EntityQuestions returns the questions for `generate entity`. The name
// question is omitted when name is already known, and the fields question
// when groups were passed.
func EntityQuestions(name string, haveFields bool) []Question {
	var qs []Question
	if name == "" {
		qs = append(qs, Question{
			ID:          IDEntityName,
			Type:        QuestionTypeInput,
			Title:       "Entity name",
			Description: "For example Post or BlogPost.",
			Required:    true,
			Validate:    validateEntityName,
		})
	}
	if !haveFields {
		qs = append(qs, Question{
			ID:          IDFields,
			Type:        QuestionTypeText,
			Title:       "Fields",
			Description: "One group per line, e.g. title:String|required minLength=3 or hasMany->Comment. Leave empty for none.",
			Validate:    validateFieldGroups,
		})
	}
	return qs
}

func validateEntityName(s string) error {
	if naming.Pascal(s) == "" {
		return ErrRequired
	}
	return nil
}

// validateFieldGroups runs the DSL parser so mistakes surface in the form.
func validateFieldGroups(s string) error {
	_, err := dsl.Parse(SplitLines(s))
	return err
}

// SplitLines returns the non-blank trimmed lines of s.
func SplitLines(s string) []string {
	var out []string
	for line := range strings.Lines(s) {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
