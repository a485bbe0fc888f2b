package parser

import (
	"path/filepath"
	"strings"
)

// Language identifies the grammar used to parse a source file.
type Language int

const (
	// LanguageJavaScript covers .js/.jsx/.mjs/.cjs. The JavaScript grammar
	// always accepts JSX.
	LanguageJavaScript Language = iota
	// LanguageTypeScript covers .ts/.mts/.cts (no JSX).
	LanguageTypeScript
	// LanguageTSX covers .tsx files.
	LanguageTSX
	// LanguageUnknown represents an unsupported file.
	LanguageUnknown
)

// String returns the string representation of the language.
func (l Language) String() string {
	switch l {
	case LanguageJavaScript:
		return "javascript"
	case LanguageTypeScript:
		return "typescript"
	case LanguageTSX:
		return "tsx"
	default:
		return "unknown"
	}
}

// SupportsJSX reports whether the grammar can produce JSX nodes.
func (l Language) SupportsJSX() bool {
	return l == LanguageJavaScript || l == LanguageTSX
}

// DetectLanguage detects the grammar from a file path.
// Returns LanguageUnknown if the extension is not recognized.
func DetectLanguage(filePath string) Language {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".js", ".jsx", ".mjs", ".cjs":
		return LanguageJavaScript
	case ".ts", ".mts", ".cts":
		return LanguageTypeScript
	case ".tsx":
		return LanguageTSX
	default:
		return LanguageUnknown
	}
}

// ParseLanguageString converts a language name to a Language.
func ParseLanguageString(lang string) Language {
	switch strings.ToLower(lang) {
	case "javascript", "js", "jsx":
		return LanguageJavaScript
	case "typescript", "ts":
		return LanguageTypeScript
	case "tsx":
		return LanguageTSX
	default:
		return LanguageUnknown
	}
}

// SupportedLanguages returns every language the manager can parse.
func SupportedLanguages() []Language {
	return []Language{LanguageJavaScript, LanguageTypeScript, LanguageTSX}
}
