package machinefile

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// MachineLexer tokenizes .wnd machine files.
var MachineLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Shell and C++ style line comments
	{Name: "Comment", Pattern: `(?:#|//)[^\n]*`},

	{Name: "Whitespace", Pattern: `[\s\t\n\r]+`},

	// Keywords (case-insensitive)
	{Name: "KwMachine", Pattern: `(?i)\bmachine\b`},

	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},
	{Name: "Integer", Pattern: `[-+]?[0-9]+`},

	// Identifiers (must come after keywords)
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_-]*`},

	{Name: "Assign", Pattern: `=`},
	{Name: "Semicolon", Pattern: `;`},
	{Name: "LBrace", Pattern: `\{`},
	{Name: "RBrace", Pattern: `\}`},
})
