// Package rules contains the lint rules built on component and prop
// tracking.
package rules

import (
	"github.com/gnana997/proplint/pkg/lint"
)

// All returns every rule.
func All() []lint.Rule {
	return []lint.Rule{
		PropTypes{},
		NoUnusedPropTypes{},
		DisplayName{},
		NoMultiComp{},
	}
}

// NewRegistry returns a rule registry holding All.
func NewRegistry() *lint.RuleRegistry {
	return lint.NewRuleRegistry(All()...)
}
