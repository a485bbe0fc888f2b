package rules

import (
	"github.com/gnana997/proplint/pkg/component"
	"github.com/gnana997/proplint/pkg/lint"
	"github.com/gnana997/proplint/pkg/proptypes"
)

// NoMultiComp reports every component after the first one in a file.
// ignoreStateless leaves functional components out of the count.
type NoMultiComp struct{}

func (NoMultiComp) Meta() lint.RuleMeta {
	return lint.RuleMeta{
		Name:        "no-multi-comp",
		Description: "Allow at most one component definition per file",
		Messages: map[string]string{
			"onlyOneComponent": "Declare only one React component per file",
		},
	}
}

func (NoMultiComp) Create(ctx *lint.Context) lint.Listeners {
	tracker := proptypes.NewTracker(ctx.Settings, ctx.Source)
	ignoreStateless := ctx.Options.Bool("ignoreStateless", false)

	return tracker.Listeners(func() {
		if tracker.Registry.ConfirmedCount() <= 1 {
			return
		}
		seen := 0
		for _, rec := range tracker.Registry.All() {
			if !rec.Confirmed || (ignoreStateless && rec.Kind == component.Functional) {
				continue
			}
			seen++
			if seen > 1 {
				ctx.Report(rec.Node, "onlyOneComponent", nil)
			}
		}
	})
}
