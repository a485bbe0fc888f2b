package rules

import (
	"github.com/gnana997/proplint/pkg/lint"
	"github.com/gnana997/proplint/pkg/proptypes"
)

// NoUnusedPropTypes reports propTypes entries the component never reads.
//
// Options:
//   - ignore: prop names (or dotted paths) never reported
//   - skipShapeProps: only report top-level declarations. Off by default,
//     so unread shape fields are reported too.
type NoUnusedPropTypes struct{}

func (NoUnusedPropTypes) Meta() lint.RuleMeta {
	return lint.RuleMeta{
		Name:        "no-unused-prop-types",
		Description: "Disallow propTypes entries that are never used",
		Messages: map[string]string{
			"unusedPropType": "'{{name}}' PropType is defined but prop is never used",
		},
		Recommended: true,
	}
}

func (NoUnusedPropTypes) Create(ctx *lint.Context) lint.Listeners {
	tracker := proptypes.NewTracker(ctx.Settings, ctx.Source)
	opts := proptypes.ReconcileOptions{
		Ignore:         ctx.Options.Strings("ignore"),
		SkipShapeProps: ctx.Options.Bool("skipShapeProps", false),
	}

	return tracker.Listeners(func() {
		for _, v := range proptypes.Reconcile(tracker.Registry, opts) {
			if v.Kind == proptypes.Unused {
				ctx.Report(v.Node, "unusedPropType", map[string]string{"name": v.Path.String()})
			}
		}
	})
}
