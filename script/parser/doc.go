// Package parser implements the front end for an ActionScript 3 style
// scripting language with E4X XML literals: a three-mode lexer, a
// recursive-descent parser producing a typed AST, and diagnostics that
// never stop the parse.
//
// # Overview
//
//	+-----------+     +-----------+     +-----------+
//	|  Source   |---->|   Lexer   |---->|  Parser   |
//	|  (runes)  |     |  (tokens) |     |   (AST)   |
//	+-----------+     +-----------+     +-----------+
//	      |                                   |
//	      v                                   v
//	+-----------+                       +-----------+
//	|Diagnostics|<----------------------|  include  |
//	+-----------+                       +-----------+
//
// A [Source] owns the text of one compilation unit together with its line
// index, comments and diagnostics. The [Lexer] pulls one token at a time
// from it; the [Parser] drives the lexer, switching it between normal,
// XML tag and XML content modes and asking it to rescan a '/' as a regular
// expression where an expression is expected.
//
// # Usage
//
//	program, src := parser.Parse(text, parser.WithURL("Main.as"))
//	if src.Invalidated() {
//	    for _, d := range src.AllDiagnostics() {
//	        fmt.Println(d)
//	    }
//	}
//
// # Diagnostics and Recovery
//
// Most problems are recorded and parsing simply continues. Structural
// errors (an unmatched closer, an unexpected end of input, a bad token)
// are returned as *AbortError through the grammar functions up to the
// enclosing directive list, which skips at least one token and resumes.
// A Source is invalidated by any diagnostic that is not a warning.
//
// # Backtracking
//
// [Parser.Snapshot] captures every cursor of the parser and lexer and the
// lengths of the source's append-only lists; [Parser.Restore] truncates
// them again. Destructuring assignments, metadata and nullable type
// suffixes are parsed speculatively this way.
//
// # Includes
//
// `include "file"` parses the named file with a child parser of its own.
// The child Source is owned by the including one and its diagnostics are
// merged into the parent. Use [WithFS] to resolve includes in an fs.FS.
package parser
