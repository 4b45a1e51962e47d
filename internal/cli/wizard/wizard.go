package wizard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nebulis-dev/nebulis/internal/ui"
)

// Run executes the questions and returns the collected answers.
// Each question runs as its own huh.Form to avoid the huh v0.8.x YOffset
// scroll bug that occurs when multiple groups share a single viewport.
func Run(questions []Question) (*WizardResult, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	result := &WizardResult{}
	theme := newWizardTheme()

	for i := range questions {
		q := &questions[i]

		if q.Condition != nil && !q.Condition(result) {
			continue
		}

		form := huh.NewForm(buildQuestionGroup(q, result)).
			WithTheme(theme).
			WithAccessible(false)

		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil, ErrCancelled
			}
			return nil, fmt.Errorf("wizard error: %w", err)
		}
	}

	return result, nil
}

// buildQuestionGroup creates a huh.Group for a single question.
func buildQuestionGroup(q *Question, result *WizardResult) *huh.Group {
	var field huh.Field

	switch q.Type {
	case QuestionTypeSelect:
		field = buildSelectField(q, result)
	case QuestionTypeInput:
		field = buildInputField(q, result)
	case QuestionTypeText:
		field = buildTextField(q, result)
	}

	return huh.NewGroup(field)
}

func buildSelectField(q *Question, result *WizardResult) *huh.Select[string] {
	selected := q.Default

	opts := make([]huh.Option[string], len(q.Options))
	for i, opt := range q.Options {
		key := opt.Label
		if opt.Desc != "" {
			key = opt.Label + " - " + opt.Desc
		}
		opts[i] = huh.NewOption(key, opt.Value)
	}

	id := q.ID
	return huh.NewSelect[string]().
		Title(q.Title).
		Description(q.Description).
		Options(opts...).
		Value(&selected).
		Validate(func(val string) error {
			saveAnswer(id, val, result)
			return nil
		})
}

func buildInputField(q *Question, result *WizardResult) *huh.Input {
	value := q.Default

	inp := huh.NewInput().
		Title(q.Title).
		Description(q.Description).
		Value(&value)
	if q.Default != "" {
		inp = inp.Placeholder(q.Default)
	}
	return inp.Validate(answerValidator(q, result))
}

func buildTextField(q *Question, result *WizardResult) *huh.Text {
	value := q.Default

	return huh.NewText().
		Title(q.Title).
		Description(q.Description).
		Lines(5).
		Value(&value).
		Validate(answerValidator(q, result))
}

// answerValidator applies the default, the required check and the
// question's own validation, then stores the answer.
func answerValidator(q *Question, result *WizardResult) func(string) error {
	id, required, defVal, validate := q.ID, q.Required, q.Default, q.Validate
	return func(val string) error {
		v := strings.TrimSpace(val)
		if v == "" && defVal != "" {
			v = defVal
		}
		if required && v == "" {
			return ErrRequired
		}
		if validate != nil && v != "" {
			if err := validate(v); err != nil {
				return err
			}
		}
		saveAnswer(id, v, result)
		return nil
	}
}

// saveAnswer stores an answer in the result.
func saveAnswer(id, value string, result *WizardResult) {
	switch id {
	case IDProjectName:
		result.ProjectName = value
	case IDFrontend:
		result.SkipFrontend = value == "no"
	case IDGit:
		result.SkipGit = value == "no"
	case IDEntityName:
		result.EntityName = value
	case IDFields:
		result.FieldGroups = SplitLines(value)
	}
}

// newWizardTheme creates a huh.Theme in the nebulis palette.
func newWizardTheme() *huh.Theme {
	t := huh.ThemeBase()

	primary := lipgloss.AdaptiveColor{Light: "#6D28D9", Dark: ui.ColorPrimary}
	secondary := lipgloss.AdaptiveColor{Light: "#0E7490", Dark: ui.ColorSecondary}
	green := lipgloss.AdaptiveColor{Light: "#059669", Dark: ui.ColorSuccess}
	red := lipgloss.AdaptiveColor{Light: "#DC2626", Dark: ui.ColorError}
	text := lipgloss.AdaptiveColor{Light: "#111827", Dark: ui.ColorText}
	muted := lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: ui.ColorMuted}
	border := lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: ui.ColorBorder}

	t.Focused.Base = t.Focused.Base.BorderForeground(border)
	t.Focused.Card = t.Focused.Base
	t.Focused.Title = t.Focused.Title.Foreground(primary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(muted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(red)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(red)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(primary).SetString("▸ ")
	t.Focused.Option = t.Focused.Option.Foreground(text)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(green)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(primary)
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(muted)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(secondary)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Focused.Base.BorderStyle(lipgloss.HiddenBorder())
	t.Blurred.Card = t.Blurred.Base

	t.Group.Title = t.Focused.Title
	t.Group.Description = t.Focused.Description

	return t
}
