// Package parser turns JavaScript, TypeScript and TSX source into
// tree-sitter syntax trees using per-grammar parser pools.
package parser

import (
	"fmt"
	"log/slog"
	"sync"
	"unsafe"

	ts "github.com/tree-sitter/go-tree-sitter"
	ts_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	ts_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/gnana997/proplint/pkg/util"
)

// ParserManager owns one lazily created parser pool per grammar.
//
// Memory Management:
//   - ParserManager must be closed via Close()
//   - Callers own returned trees and must call tree.Close()
//
// Thread Safety:
//   - Parse is safe for concurrent use; each call borrows a parser from
//     the pool of its grammar.
//
// Example:
//
//	manager := NewParserManager(logger)
//	defer manager.Close()
//
//	tree, err := manager.Parse([]byte("const App = () => <div/>;"), LanguageJavaScript)
//	if err != nil {
//	    return err
//	}
//	defer tree.Close()
type ParserManager struct {
	pools    map[Language]*parserPool
	poolSize int
	mutex    sync.RWMutex
	logger   *slog.Logger

	parsesCalled int
}

// NewParserManager creates a manager sized with util.GetOptimalPoolSize.
func NewParserManager(logger *slog.Logger) *ParserManager {
	return NewParserManagerWithSize(logger, 0)
}

// NewParserManagerWithSize creates a manager with an explicit per-grammar
// pool size. A size of 0 selects the CPU-based default.
func NewParserManagerWithSize(logger *slog.Logger, poolSize int) *ParserManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &ParserManager{
		pools:    make(map[Language]*parserPool),
		poolSize: util.GetOptimalPoolSizeWithOverride(poolSize),
		logger:   logger,
	}
}

// Parse parses source with the grammar of lang.
//
// Trees containing syntax errors are still returned; rules run over the
// recovered tree and the error is only logged.
func (pm *ParserManager) Parse(source []byte, lang Language) (*ts.Tree, error) {
	if lang == LanguageUnknown {
		return nil, fmt.Errorf("cannot parse unknown language")
	}

	pm.mutex.Lock()
	pm.parsesCalled++
	pm.mutex.Unlock()

	pool, err := pm.getOrCreatePool(lang)
	if err != nil {
		return nil, fmt.Errorf("failed to get pool for %s: %w", lang, err)
	}

	parser, err := pool.acquire()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire parser: %w", err)
	}
	tree := parser.Parse(source, nil)
	pool.release(parser)

	if tree == nil {
		return nil, fmt.Errorf("parser.Parse returned nil tree")
	}
	if tree.RootNode().HasError() {
		pm.logger.Warn("parse tree contains errors", "language", lang.String())
	}
	return tree, nil
}

// ParseFile parses source after detecting the grammar from filePath.
func (pm *ParserManager) ParseFile(source []byte, filePath string) (*ts.Tree, error) {
	lang := DetectLanguage(filePath)
	if lang == LanguageUnknown {
		return nil, fmt.Errorf("unsupported file extension: %s", filePath)
	}
	return pm.Parse(source, lang)
}

// Close releases all parser pools. The manager cannot be used afterwards.
func (pm *ParserManager) Close() error {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()

	pm.logger.Debug("closing ParserManager", "parses_called", pm.parsesCalled)
	for _, pool := range pm.pools {
		pool.close()
	}
	pm.pools = make(map[Language]*parserPool)
	return nil
}

func (pm *ParserManager) getOrCreatePool(lang Language) (*parserPool, error) {
	pm.mutex.RLock()
	pool, ok := pm.pools[lang]
	pm.mutex.RUnlock()
	if ok {
		return pool, nil
	}

	pm.mutex.Lock()
	defer pm.mutex.Unlock()
	if pool, ok = pm.pools[lang]; ok {
		return pool, nil
	}

	langPtr, err := languagePointer(lang)
	if err != nil {
		return nil, err
	}
	pool = newParserPool(lang, langPtr, pm.poolSize, pm.logger)
	pm.pools[lang] = pool
	return pool, nil
}

func languagePointer(lang Language) (unsafe.Pointer, error) {
	switch lang {
	case LanguageJavaScript:
		return ts_javascript.Language(), nil
	case LanguageTypeScript:
		return ts_typescript.LanguageTypescript(), nil
	case LanguageTSX:
		return ts_typescript.LanguageTSX(), nil
	default:
		return nil, fmt.Errorf("unsupported language: %s", lang.String())
	}
}

// GetStats returns parser usage statistics.
func (pm *ParserManager) GetStats() ParserStats {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()

	created := 0
	for _, pool := range pm.pools {
		created += pool.createdCount()
	}
	return ParserStats{ParsersCreated: created, ParsesCalled: pm.parsesCalled}
}

// ParserStats contains parser usage statistics.
type ParserStats struct {
	ParsersCreated int
	ParsesCalled   int
}
