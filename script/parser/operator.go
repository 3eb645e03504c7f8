package parser

// Precedence orders binding strength from the comma list (lowest) to postfix
// operators (highest).
type Precedence int

const (
	PrecList Precedence = iota
	PrecAssignment
	PrecTernary
	PrecLogicalOr
	PrecLogicalAnd
	PrecBitwiseOr
	PrecBitwiseXor
	PrecBitwiseAnd
	PrecEquality
	PrecRelational
	PrecShift
	PrecAdditive
	PrecMultiplicative
	PrecUnary
	PrecPostfix
)

type Operator int

const (
	OpNone Operator = iota

	// unary
	OpPreIncrement
	OpPreDecrement
	OpPostIncrement
	OpPostDecrement
	OpPositive
	OpNegate
	OpBitNot
	OpNot
	OpDelete
	OpTypeof
	OpVoid
	OpAwait
	OpYield
	OpNonNull

	// binary
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpRemainder
	OpShiftLeft
	OpShiftRight
	OpShiftRightUnsigned
	OpBitAnd
	OpBitXor
	OpBitOr
	OpLogicalAnd
	OpLogicalOr
	OpNullCoalescing
	OpEquals
	OpNotEquals
	OpStrictEquals
	OpStrictNotEquals
	OpLT
	OpGT
	OpLE
	OpGE
	OpIn
	OpAs
	OpIs
	OpInstanceof
)

var operatorNames = map[Operator]string{
	OpNone:               "none",
	OpPreIncrement:       "++x",
	OpPreDecrement:       "--x",
	OpPostIncrement:      "x++",
	OpPostDecrement:      "x--",
	OpPositive:           "+",
	OpNegate:             "-",
	OpBitNot:             "~",
	OpNot:                "!",
	OpDelete:             "delete",
	OpTypeof:             "typeof",
	OpVoid:               "void",
	OpAwait:              "await",
	OpYield:              "yield",
	OpNonNull:            "x!",
	OpAdd:                "+",
	OpSubtract:           "-",
	OpMultiply:           "*",
	OpDivide:             "/",
	OpRemainder:          "%",
	OpShiftLeft:          "<<",
	OpShiftRight:         ">>",
	OpShiftRightUnsigned: ">>>",
	OpBitAnd:             "&",
	OpBitXor:             "^",
	OpBitOr:              "|",
	OpLogicalAnd:         "&&",
	OpLogicalOr:          "||",
	OpNullCoalescing:     "??",
	OpEquals:             "==",
	OpNotEquals:          "!=",
	OpStrictEquals:       "===",
	OpStrictNotEquals:    "!==",
	OpLT:                 "<",
	OpGT:                 ">",
	OpLE:                 "<=",
	OpGE:                 ">=",
	OpIn:                 "in",
	OpAs:                 "as",
	OpIs:                 "is",
	OpInstanceof:         "instanceof",
}

func (o Operator) String() string {
	if name, ok := operatorNames[o]; ok {
		return name
	}
	return "unknown"
}

type binaryEntry struct {
	op   Operator
	prec Precedence
}

var binaryOperators = map[TokenKind]binaryEntry{
	TokenStar:             {OpMultiply, PrecMultiplicative},
	TokenSlash:            {OpDivide, PrecMultiplicative},
	TokenPercent:          {OpRemainder, PrecMultiplicative},
	TokenPlus:             {OpAdd, PrecAdditive},
	TokenMinus:            {OpSubtract, PrecAdditive},
	TokenShl:              {OpShiftLeft, PrecShift},
	TokenShr:              {OpShiftRight, PrecShift},
	TokenUShr:             {OpShiftRightUnsigned, PrecShift},
	TokenLT:               {OpLT, PrecRelational},
	TokenGT:               {OpGT, PrecRelational},
	TokenLE:               {OpLE, PrecRelational},
	TokenGE:               {OpGE, PrecRelational},
	TokenIn:               {OpIn, PrecRelational},
	TokenEQ:               {OpEquals, PrecEquality},
	TokenNE:               {OpNotEquals, PrecEquality},
	TokenStrictEQ:         {OpStrictEquals, PrecEquality},
	TokenStrictNE:         {OpStrictNotEquals, PrecEquality},
	TokenBitAnd:           {OpBitAnd, PrecBitwiseAnd},
	TokenBitXor:           {OpBitXor, PrecBitwiseXor},
	TokenBitOr:            {OpBitOr, PrecBitwiseOr},
	TokenAnd:              {OpLogicalAnd, PrecLogicalAnd},
	TokenOr:               {OpLogicalOr, PrecLogicalOr},
	TokenQuestionQuestion: {OpNullCoalescing, PrecLogicalOr},
}

// compoundOperators maps compound assignment tokens to the binary operator
// they apply.
var compoundOperators = map[TokenKind]Operator{
	TokenPlusAssign:    OpAdd,
	TokenMinusAssign:   OpSubtract,
	TokenStarAssign:    OpMultiply,
	TokenSlashAssign:   OpDivide,
	TokenPercentAssign: OpRemainder,
	TokenShlAssign:     OpShiftLeft,
	TokenShrAssign:     OpShiftRight,
	TokenUShrAssign:    OpShiftRightUnsigned,
	TokenBitAndAssign:  OpBitAnd,
	TokenBitOrAssign:   OpBitOr,
	TokenBitXorAssign:  OpBitXor,
	TokenAndAssign:     OpLogicalAnd,
	TokenOrAssign:      OpLogicalOr,
	TokenNullishAssign: OpNullCoalescing,
}

// unaryOperatorFor classifies a prefix operator token. The returned
// precedence is the minimum used to parse the operand.
func unaryOperatorFor(kind TokenKind) (Operator, Precedence, bool) {
	switch kind {
	case TokenIncrement:
		return OpPreIncrement, PrecPostfix, true
	case TokenDecrement:
		return OpPreDecrement, PrecPostfix, true
	case TokenPlus:
		return OpPositive, PrecUnary, true
	case TokenMinus:
		return OpNegate, PrecUnary, true
	case TokenBitNot:
		return OpBitNot, PrecUnary, true
	case TokenNot:
		return OpNot, PrecUnary, true
	case TokenDelete:
		return OpDelete, PrecPostfix, true
	case TokenTypeof:
		return OpTypeof, PrecUnary, true
	case TokenVoid:
		return OpVoid, PrecUnary, true
	}
	return OpNone, 0, false
}

// binaryOperatorFor classifies an infix operator token. The returned
// precedence is the operator's own level; it is accepted only when it is at
// least minPrec. `in` is rejected when allowIn is false.
func binaryOperatorFor(kind TokenKind, minPrec Precedence, allowIn bool) (Operator, Precedence, bool) {
	e, ok := binaryOperators[kind]
	if !ok {
		return OpNone, 0, false
	}
	if kind == TokenIn && !allowIn {
		return OpNone, 0, false
	}
	if e.prec < minPrec {
		return OpNone, 0, false
	}
	return e.op, e.prec, true
}

// rightOperandPrecedence is the minimum precedence for the right operand of a
// left-associative binary operator.
func rightOperandPrecedence(prec Precedence) Precedence {
	return prec + 1
}
