package token

import (
	"fmt"
	"strings"
)

// Kind identifies the lexical category of a token.
type Kind int

const (
	Illegal Kind = iota

	// Keywords
	Const
	Let
	Var
	Function
	Return
	Yield
	If
	Else
	Switch
	Case
	Break
	Continue
	Default
	For
	While
	Do
	Try
	Catch
	Finally
	Throw
	Class
	Extends
	Super
	This
	New
	Import
	Export
	From
	As
	Async
	Await
	With
	In
	Of
	InstanceOf
	Typeof
	Delete
	Void

	// Literals
	True
	False
	Null
	Undefined
	Number
	BigNumber
	String
	Identifier
	TemplateString
	TemplateExpr

	// Arithmetic
	Plus
	Minus
	Multiply
	Divide
	Modulo
	Exponent

	// Assignment
	Assign
	PlusAssign
	MinusAssign
	MultiplyAssign
	DivideAssign
	ModuloAssign
	ExponentAssign
	LeftShiftAssign
	RightShiftAssign
	UnsignedRightShiftAssign
	BitwiseAndAssign
	BitwiseOrAssign
	BitwiseXorAssign

	Increment
	Decrement

	// Comparison
	Equal
	NotEqual
	StrictEqual
	StrictNotEqual
	LessThan
	LessThanOrEqual
	GreaterThan
	GreaterThanOrEqual

	// Logical
	LogicalAnd
	LogicalOr
	LogicalNot

	// Bitwise
	BitwiseAnd
	BitwiseOr
	BitwiseXor
	BitwiseNot
	LeftShift
	RightShift
	UnsignedRightShift

	Arrow
	Question
	NullishCoalescing
	OptionalChaining
	Spread

	// Punctuation
	Semicolon
	Comma
	Dot
	Colon
	LeftParen
	RightParen
	LeftBrace
	RightBrace
	LeftBracket
	RightBracket

	Newline
	Comment
	BlockComment
	EOF
)

var kindNames = map[Kind]string{
	Illegal:                  "Illegal",
	Const:                    "Const",
	Let:                      "Let",
	Var:                      "Var",
	Function:                 "Function",
	Return:                   "Return",
	Yield:                    "Yield",
	If:                       "If",
	Else:                     "Else",
	Switch:                   "Switch",
	Case:                     "Case",
	Break:                    "Break",
	Continue:                 "Continue",
	Default:                  "Default",
	For:                      "For",
	While:                    "While",
	Do:                       "Do",
	Try:                      "Try",
	Catch:                    "Catch",
	Finally:                  "Finally",
	Throw:                    "Throw",
	Class:                    "Class",
	Extends:                  "Extends",
	Super:                    "Super",
	This:                     "This",
	New:                      "New",
	Import:                   "Import",
	Export:                   "Export",
	From:                     "From",
	As:                       "As",
	Async:                    "Async",
	Await:                    "Await",
	With:                     "With",
	In:                       "In",
	Of:                       "Of",
	InstanceOf:               "InstanceOf",
	Typeof:                   "Typeof",
	Delete:                   "Delete",
	Void:                     "Void",
	True:                     "True",
	False:                    "False",
	Null:                     "Null",
	Undefined:                "Undefined",
	Number:                   "Number",
	BigNumber:                "BigNumber",
	String:                   "String",
	Identifier:               "Identifier",
	TemplateString:           "TemplateString",
	TemplateExpr:             "TemplateExpr",
	Plus:                     "Plus",
	Minus:                    "Minus",
	Multiply:                 "Multiply",
	Divide:                   "Divide",
	Modulo:                   "Modulo",
	Exponent:                 "Exponent",
	Assign:                   "Assign",
	PlusAssign:               "PlusAssign",
	MinusAssign:              "MinusAssign",
	MultiplyAssign:           "MultiplyAssign",
	DivideAssign:             "DivideAssign",
	ModuloAssign:             "ModuloAssign",
	ExponentAssign:           "ExponentAssign",
	LeftShiftAssign:          "LeftShiftAssign",
	RightShiftAssign:         "RightShiftAssign",
	UnsignedRightShiftAssign: "UnsignedRightShiftAssign",
	BitwiseAndAssign:         "BitwiseAndAssign",
	BitwiseOrAssign:          "BitwiseOrAssign",
	BitwiseXorAssign:         "BitwiseXorAssign",
	Increment:                "Increment",
	Decrement:                "Decrement",
	Equal:                    "Equal",
	NotEqual:                 "NotEqual",
	StrictEqual:              "StrictEqual",
	StrictNotEqual:           "StrictNotEqual",
	LessThan:                 "LessThan",
	LessThanOrEqual:          "LessThanOrEqual",
	GreaterThan:              "GreaterThan",
	GreaterThanOrEqual:       "GreaterThanOrEqual",
	LogicalAnd:               "LogicalAnd",
	LogicalOr:                "LogicalOr",
	LogicalNot:               "LogicalNot",
	BitwiseAnd:               "BitwiseAnd",
	BitwiseOr:                "BitwiseOr",
	BitwiseXor:               "BitwiseXor",
	BitwiseNot:               "BitwiseNot",
	LeftShift:                "LeftShift",
	RightShift:               "RightShift",
	UnsignedRightShift:       "UnsignedRightShift",
	Arrow:                    "Arrow",
	Question:                 "Question",
	NullishCoalescing:        "NullishCoalescing",
	OptionalChaining:         "OptionalChaining",
	Spread:                   "Spread",
	Semicolon:                "Semicolon",
	Comma:                    "Comma",
	Dot:                      "Dot",
	Colon:                    "Colon",
	LeftParen:                "LeftParen",
	RightParen:               "RightParen",
	LeftBrace:                "LeftBrace",
	RightBrace:               "RightBrace",
	LeftBracket:              "LeftBracket",
	RightBracket:             "RightBracket",
	Newline:                  "Newline",
	Comment:                  "Comment",
	BlockComment:             "BlockComment",
	EOF:                      "EOF",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("unknown_kind_%d", int(k))
}

// Position locates a token in the source. Line and Column are 1-based and
// count runes; Offset is the 0-based byte offset.
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a single lexical unit. Tokens are never mutated after lexing.
type Token struct {
	Kind Kind
	// Text holds the lexeme for literal-carrying kinds (decoded for strings).
	Text string
	// Parts holds the segments of a TemplateString and the nested tokens of a
	// TemplateExpr.
	Parts []Token
	Pos   Position
}

// Make builds a token without position information.
func Make(kind Kind, text string) Token {
	return Token{Kind: kind, Text: text}
}

// IsTerminator reports whether the token ends a statement.
func (t Token) IsTerminator() bool {
	switch t.Kind {
	case Newline, Semicolon, EOF:
		return true
	default:
		return false
	}
}

// IsTrivia reports whether evaluation may skip the token entirely.
func (t Token) IsTrivia() bool {
	return t.Kind == Comment || t.Kind == BlockComment
}

func (t Token) String() string {
	switch t.Kind {
	case Number, BigNumber, Identifier, Comment, BlockComment:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Text)
	case String:
		return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
	case TemplateString, TemplateExpr:
		parts := make([]string, 0, len(t.Parts))
		for _, p := range t.Parts {
			parts = append(parts, p.String())
		}
		return fmt.Sprintf("%s([%s])", t.Kind, strings.Join(parts, ", "))
	default:
		return t.Kind.String()
	}
}

// Equal compares kind, text and parts, ignoring positions.
func (t Token) Equal(other Token) bool {
	if t.Kind != other.Kind || t.Text != other.Text || len(t.Parts) != len(other.Parts) {
		return false
	}
	for i := range t.Parts {
		if !t.Parts[i].Equal(other.Parts[i]) {
			return false
		}
	}
	return true
}
