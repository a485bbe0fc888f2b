package rules

import (
	"github.com/gnana997/proplint/pkg/lint"
	"github.com/gnana997/proplint/pkg/proptypes"
)

// PropTypes reports props that are read but missing from propTypes.
//
// Options:
//   - ignore: prop names (or dotted paths) never reported
//   - skipUndeclared: only check components that declare propTypes
type PropTypes struct{}

func (PropTypes) Meta() lint.RuleMeta {
	return lint.RuleMeta{
		Name:        "prop-types",
		Description: "Disallow reading props that are missing from propTypes",
		Messages: map[string]string{
			"missingPropType": "'{{name}}' is missing in props validation",
		},
		Recommended: true,
	}
}

func (PropTypes) Create(ctx *lint.Context) lint.Listeners {
	tracker := proptypes.NewTracker(ctx.Settings, ctx.Source)
	skipUndeclared := ctx.Options.Bool("skipUndeclared", false)

	return tracker.Listeners(func() {
		violations := proptypes.Reconcile(tracker.Registry, proptypes.ReconcileOptions{
			Ignore: ctx.Options.Strings("ignore"),
		})
		for _, v := range violations {
			if v.Kind != proptypes.Undeclared {
				continue
			}
			if skipUndeclared {
				if rec := tracker.Registry.Lookup(v.Component); rec == nil || rec.Declared == nil {
					continue
				}
			}
			ctx.Report(v.Node, "missingPropType", map[string]string{"name": v.Path.String()})
		}
	})
}
