package enums

import (
	"fmt"
	"strings"
)

// Operator is a comparison applied to the quantity filter.
type Operator string

const (
	OperatorEqual        Operator = "="
	OperatorLess         Operator = "<"
	OperatorLessEqual    Operator = "<="
	OperatorGreater      Operator = ">"
	OperatorGreaterEqual Operator = ">="
)

var validOperators = []Operator{
	OperatorEqual,
	OperatorLess,
	OperatorLessEqual,
	OperatorGreater,
	OperatorGreaterEqual,
}

// String implements fmt.Stringer.
func (o Operator) String() string {
	return string(o)
}

// IsValid reports whether the value is a supported Operator.
func (o Operator) IsValid() bool {
	for _, candidate := range validOperators {
		if candidate == o {
			return true
		}
	}
	return false
}

// OperatorSymbols returns every supported operator symbol.
func OperatorSymbols() []string {
	out := make([]string, 0, len(validOperators))
	for _, o := range validOperators {
		out = append(out, string(o))
	}
	return out
}

// ParseOperator converts a raw operator symbol into an Operator.
func ParseOperator(value string) (Operator, error) {
	trimmed := strings.TrimSpace(value)
	for _, candidate := range validOperators {
		if string(candidate) == trimmed {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid operator %q", value)
}
