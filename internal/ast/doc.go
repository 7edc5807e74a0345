// Package ast describes the syntax tree produced by the parser.
//
// Every entity embeds a Node with its [start, end) byte range. Start is the
// lookahead offset at rule entry, End is the end of the last token the rule
// consumed. The tree is built once per parse and never mutated afterwards.
package ast
