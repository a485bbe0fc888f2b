package parser

import (
	"fmt"
	"log/slog"
	"sync"
	"unsafe"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// parserPool hands out tree-sitter parsers bound to one grammar.
//
// Parsers are created lazily up to maxSize; once the limit is reached
// acquire blocks until another goroutine releases one.
type parserPool struct {
	pool    chan *ts.Parser
	langPtr unsafe.Pointer
	lang    Language
	maxSize int

	mutex   sync.Mutex
	created int

	logger *slog.Logger
}

func newParserPool(lang Language, langPtr unsafe.Pointer, maxSize int, logger *slog.Logger) *parserPool {
	return &parserPool{
		pool:    make(chan *ts.Parser, maxSize),
		langPtr: langPtr,
		lang:    lang,
		maxSize: maxSize,
		logger:  logger,
	}
}

// acquire returns an idle parser, creating one if the pool has room.
func (p *parserPool) acquire() (*ts.Parser, error) {
	select {
	case parser := <-p.pool:
		return parser, nil
	default:
	}

	p.mutex.Lock()
	if p.created >= p.maxSize {
		p.mutex.Unlock()
		return <-p.pool, nil
	}

	parser := ts.NewParser()
	if parser == nil {
		p.mutex.Unlock()
		return nil, fmt.Errorf("failed to create parser")
	}
	if err := parser.SetLanguage(ts.NewLanguage(p.langPtr)); err != nil {
		parser.Close()
		p.mutex.Unlock()
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	p.created++
	p.mutex.Unlock()

	p.logger.Debug("created parser in pool",
		"language", p.lang.String(),
		"pool_size", p.created)
	return parser, nil
}

// release returns a parser to the pool.
func (p *parserPool) release(parser *ts.Parser) {
	if parser == nil {
		return
	}
	select {
	case p.pool <- parser:
	default:
		parser.Close()
		p.logger.Warn("parser pool full, closing excess parser", "language", p.lang.String())
	}
}

// close releases all idle parsers. The pool cannot be used afterwards.
func (p *parserPool) close() {
	close(p.pool)
	for parser := range p.pool {
		if parser != nil {
			parser.Close()
		}
	}
}

func (p *parserPool) createdCount() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.created
}
