package lexer

import "github.com/MMinusOne/endium/pkg/token"

type operator struct {
	text string
	kind token.Kind
}

// operators is ordered longest first so the first prefix match is the
// longest one.
var operators = []operator{
	{">>>=", token.UnsignedRightShiftAssign},

	{"...", token.Spread},
	{"===", token.StrictEqual},
	{"!==", token.StrictNotEqual},
	{"**=", token.ExponentAssign},
	{"<<=", token.LeftShiftAssign},
	{">>=", token.RightShiftAssign},
	{">>>", token.UnsignedRightShift},

	{"==", token.Equal},
	{"!=", token.NotEqual},
	{"<=", token.LessThanOrEqual},
	{">=", token.GreaterThanOrEqual},
	{"&&", token.LogicalAnd},
	{"||", token.LogicalOr},
	{"??", token.NullishCoalescing},
	{"?.", token.OptionalChaining},
	{"**", token.Exponent},
	{"+=", token.PlusAssign},
	{"-=", token.MinusAssign},
	{"*=", token.MultiplyAssign},
	{"/=", token.DivideAssign},
	{"%=", token.ModuloAssign},
	{"&=", token.BitwiseAndAssign},
	{"|=", token.BitwiseOrAssign},
	{"^=", token.BitwiseXorAssign},
	{"++", token.Increment},
	{"--", token.Decrement},
	{"=>", token.Arrow},
	{"<<", token.LeftShift},
	{">>", token.RightShift},

	{"+", token.Plus},
	{"-", token.Minus},
	{"*", token.Multiply},
	{"/", token.Divide},
	{"%", token.Modulo},
	{"=", token.Assign},
	{"<", token.LessThan},
	{">", token.GreaterThan},
	{"!", token.LogicalNot},
	{"&", token.BitwiseAnd},
	{"|", token.BitwiseOr},
	{"^", token.BitwiseXor},
	{"~", token.BitwiseNot},
	{"?", token.Question},
	{".", token.Dot},
	{",", token.Comma},
	{":", token.Colon},
	{";", token.Semicolon},
	{"(", token.LeftParen},
	{")", token.RightParen},
	{"{", token.LeftBrace},
	{"}", token.RightBrace},
	{"[", token.LeftBracket},
	{"]", token.RightBracket},
}
