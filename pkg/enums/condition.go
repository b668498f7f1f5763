package enums

import (
	"fmt"
	"strings"
)

// Condition tags the physical state of a stocked product.
type Condition string

const (
	ConditionNew         Condition = "new"
	ConditionRefurbished Condition = "refurbished"
	ConditionReturn      Condition = "return"
)

var validConditions = []Condition{
	ConditionNew,
	ConditionRefurbished,
	ConditionReturn,
}

// String implements fmt.Stringer.
func (c Condition) String() string {
	return string(c)
}

// IsValid reports whether the value is a known Condition.
func (c Condition) IsValid() bool {
	for _, candidate := range validConditions {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCondition converts raw input into a Condition. Both the value ("new")
// and the name ("NEW") are accepted, case-insensitively.
func ParseCondition(value string) (Condition, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validConditions {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid condition %q", value)
}

// ConditionValues returns the stored value of every supported condition.
func ConditionValues() []string {
	out := make([]string, 0, len(validConditions))
	for _, c := range validConditions {
		out = append(out, string(c))
	}
	return out
}
