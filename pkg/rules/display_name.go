package rules

import (
	"github.com/gnana997/proplint/pkg/component"
	"github.com/gnana997/proplint/pkg/lint"
	"github.com/gnana997/proplint/pkg/proptypes"
)

// DisplayName reports components without a name usable in dev tools.
// By default a name inferred from the declaration is enough; with
// ignoreTranspilerName only an explicit displayName counts.
type DisplayName struct{}

func (DisplayName) Meta() lint.RuleMeta {
	return lint.RuleMeta{
		Name:        "display-name",
		Description: "Require a display name on component definitions",
		Messages: map[string]string{
			"noDisplayName": "Component definition is missing display name",
		},
	}
}

func (DisplayName) Create(ctx *lint.Context) lint.Listeners {
	tracker := proptypes.NewTracker(ctx.Settings, ctx.Source)
	explicitOnly := ctx.Options.Bool("ignoreTranspilerName", false)

	return tracker.Listeners(func() {
		for _, rec := range tracker.Registry.All() {
			if !rec.Confirmed || rec.DisplayName {
				continue
			}
			if !explicitOnly && rec.Identity.Name != component.DefaultName {
				continue
			}
			ctx.Report(rec.Node, "noDisplayName", nil)
		}
	})
}
