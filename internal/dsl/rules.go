package dsl

import (
	"strconv"
	"strings"
)

// CompileRules folds rule tokens into a ValidationSpec. Bare flags are
// required, unique, email and url; valued rules are minLength (min_length),
// maxLength (max_length), min, max and pattern. A repeated rule overwrites
// the earlier one.
func CompileRules(tokens []string) (ValidationSpec, error) {
	var spec ValidationSpec
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		name, value, hasValue := strings.Cut(token, "=")
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)

		switch name {
		case "required":
			spec.Required = true
		case "unique":
			spec.Unique = true
		case "email":
			spec.Email = true
		case "url":
			spec.URL = true
		case "minLength", "min_length":
			n, err := lengthValue(name, value, hasValue)
			if err != nil {
				return ValidationSpec{}, err
			}
			spec.MinLength = &n
		case "maxLength", "max_length":
			n, err := lengthValue(name, value, hasValue)
			if err != nil {
				return ValidationSpec{}, err
			}
			spec.MaxLength = &n
		case "min", "max", "pattern":
			if !hasValue {
				return ValidationSpec{}, syntaxErr(ErrMissingRuleValue, name, "")
			}
			v := value
			switch name {
			case "min":
				spec.Min = &v
			case "max":
				spec.Max = &v
			default:
				spec.Pattern = &v
			}
		default:
			return ValidationSpec{}, syntaxErr(ErrUnknownRule, name, "")
		}
	}
	return spec, nil
}

func lengthValue(name, value string, hasValue bool) (uint64, error) {
	if !hasValue {
		return 0, syntaxErr(ErrMissingRuleValue, name, "")
	}
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, syntaxErr(ErrInvalidRuleValue, name+"="+value, "")
	}
	return n, nil
}
