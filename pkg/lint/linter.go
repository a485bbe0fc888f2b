package lint

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/gnana997/proplint/pkg/parser"
	"github.com/gnana997/proplint/pkg/util"
)

// RuleConfig enables a rule and carries its options.
type RuleConfig struct {
	Severity Severity
	Options  Options
}

// Config selects rules and shared settings for a Linter.
type Config struct {
	Settings Settings
	Rules    map[string]RuleConfig
}

// DefaultConfig enables every recommended rule at error severity.
func DefaultConfig(registry *RuleRegistry) Config {
	cfg := Config{Settings: DefaultSettings(), Rules: make(map[string]RuleConfig)}
	for _, rule := range registry.Rules() {
		if rule.Meta().Recommended {
			cfg.Rules[rule.Meta().Name] = RuleConfig{Severity: SeverityError}
		}
	}
	return cfg
}

type activeRule struct {
	rule     Rule
	severity Severity
	options  Options
}

// Linter runs the configured rules over source files.
//
// Thread Safety:
//   - LintSource and LintFile are safe for concurrent use; every call
//     builds fresh per-file rule state.
type Linter struct {
	parser *parser.ParserManager
	rules  []activeRule
	config Config
	cache  *ResultCache
	logger *slog.Logger
}

// NewLinter validates cfg against registry and returns a linter. Unknown
// rule names fail with ErrUnknownRule.
func NewLinter(pm *parser.ParserManager, registry *RuleRegistry, cfg Config, logger *slog.Logger) (*Linter, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cfg.Settings = cfg.Settings.WithDefaults()

	l := &Linter{parser: pm, config: cfg, logger: logger}
	for _, name := range sortedKeys(cfg.Rules) {
		rc := cfg.Rules[name]
		rule, err := registry.Get(name)
		if err != nil {
			return nil, err
		}
		if rc.Severity == SeverityOff {
			continue
		}
		l.rules = append(l.rules, activeRule{rule: rule, severity: rc.Severity, options: rc.Options})
	}
	return l, nil
}

// SetCache enables result caching keyed by path and content.
func (l *Linter) SetCache(cache *ResultCache) {
	l.cache = cache
}

// Config returns the configuration the linter runs with.
func (l *Linter) Config() Config {
	return l.config
}

// LintSource lints source as if read from filePath; the extension selects
// the grammar.
func (l *Linter) LintSource(filePath string, source []byte) (result *FileResult, err error) {
	lang := parser.DetectLanguage(filePath)
	if lang == parser.LanguageUnknown {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, filePath)
	}

	if l.cache != nil {
		if cached, ok := l.cache.Get(filePath, source); ok {
			return cached, nil
		}
	}

	start := time.Now()
	tree, err := l.parser.Parse(source, lang)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filePath, err)
	}
	defer tree.Close()

	result = &FileResult{FilePath: filePath, SyntaxErrors: tree.RootNode().HasError()}

	listeners := make([]Listeners, 0, len(l.rules))
	for _, ar := range l.rules {
		ctx := &Context{
			FilePath: filePath,
			Source:   source,
			Settings: l.config.Settings,
			Options:  ar.options,
			Logger:   l.logger,
			meta:     ar.rule.Meta(),
			severity: ar.severity,
			sink: func(v Violation) {
				result.Violations = append(result.Violations, v)
			},
		}
		listeners = append(listeners, ar.rule.Create(ctx))
	}

	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("rule panicked", "file", filePath, "panic", r)
			result = nil
			err = fmt.Errorf("lint %s: rule panicked: %v", filePath, r)
		}
	}()
	Walk(tree.RootNode(), listeners...)

	sortViolations(result.Violations)
	if l.cache != nil {
		l.cache.Put(filePath, source, result)
	}
	l.logger.Debug("linted file",
		"file", filePath,
		"violations", len(result.Violations),
		"duration", time.Since(start))
	return result, nil
}

// LintFile reads and lints one file.
func (l *Linter) LintFile(filePath string) (*FileResult, error) {
	if parser.DetectLanguage(filePath) == parser.LanguageUnknown {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, filePath)
	}
	src, err := util.MapSource(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filePath, err)
	}
	defer src.Close()

	// Violations only hold positions, so the mapping can be released once
	// linting returns.
	return l.LintSource(filePath, src.Bytes())
}

func sortedKeys(m map[string]RuleConfig) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
