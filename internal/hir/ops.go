package hir

// UnaryOperator enumerates prefix operators.
type UnaryOperator uint8

const (
	UnaryDeref UnaryOperator = iota // *
	UnaryNot                        // !
	UnaryNeg                        // -
)

// String returns the operator's source symbol.
func (op UnaryOperator) String() string {
	switch op {
	case UnaryDeref:
		return "*"
	case UnaryNot:
		return "!"
	case UnaryNeg:
		return "-"
	default:
		return "?"
	}
}

// BinaryOperator enumerates infix operators. BinaryNone stands for an
// operator the parser could not recover.
type BinaryOperator uint8

const (
	BinaryNone BinaryOperator = iota
	// logic
	BinaryAnd
	BinaryOr
	// arithmetic and bitwise
	BinaryAdd
	BinarySub
	BinaryMul
	BinaryDiv
	BinaryRem
	BinaryShl
	BinaryShr
	BinaryBitXor
	BinaryBitOr
	BinaryBitAnd
	// comparison
	BinaryEq
	BinaryNe
	BinaryLt
	BinaryLe
	BinaryGt
	BinaryGe
	// assignment
	BinaryAssign
	BinaryAddAssign
	BinarySubAssign
	BinaryMulAssign
	BinaryDivAssign
	BinaryRemAssign
	BinaryShlAssign
	BinaryShrAssign
	BinaryBitXorAssign
	BinaryBitOrAssign
	BinaryBitAndAssign

	numBinaryOperators
)

var binaryOperatorText = [numBinaryOperators]string{
	BinaryNone:         "",
	BinaryAnd:          "&&",
	BinaryOr:           "||",
	BinaryAdd:          "+",
	BinarySub:          "-",
	BinaryMul:          "*",
	BinaryDiv:          "/",
	BinaryRem:          "%",
	BinaryShl:          "<<",
	BinaryShr:          ">>",
	BinaryBitXor:       "^",
	BinaryBitOr:        "|",
	BinaryBitAnd:       "&",
	BinaryEq:           "==",
	BinaryNe:           "!=",
	BinaryLt:           "<",
	BinaryLe:           "<=",
	BinaryGt:           ">",
	BinaryGe:           ">=",
	BinaryAssign:       "=",
	BinaryAddAssign:    "+=",
	BinarySubAssign:    "-=",
	BinaryMulAssign:    "*=",
	BinaryDivAssign:    "/=",
	BinaryRemAssign:    "%=",
	BinaryShlAssign:    "<<=",
	BinaryShrAssign:    ">>=",
	BinaryBitXorAssign: "^=",
	BinaryBitOrAssign:  "|=",
	BinaryBitAndAssign: "&=",
}

// String returns the operator's source symbol, or "" for BinaryNone.
func (op BinaryOperator) String() string {
	if op >= numBinaryOperators {
		return "?"
	}
	return binaryOperatorText[op]
}

// ParseBinaryOperator maps a source symbol back to its operator.
func ParseBinaryOperator(s string) (BinaryOperator, bool) {
	for op := BinaryNone; op < numBinaryOperators; op++ {
		if binaryOperatorText[op] == s {
			return op, true
		}
	}
	return BinaryNone, false
}

// ParseUnaryOperator maps a source symbol back to its operator.
func ParseUnaryOperator(s string) (UnaryOperator, bool) {
	for op := UnaryDeref; op <= UnaryNeg; op++ {
		if op.String() == s {
			return op, true
		}
	}
	return 0, false
}

// RangeOp tells whether a range includes its upper bound.
type RangeOp uint8

const (
	RangeExclusive RangeOp = iota // a..b
	RangeInclusive                // a..=b
)

func (op RangeOp) String() string {
	if op == RangeInclusive {
		return "..="
	}
	return ".."
}

// Mutability of references and reference patterns.
type Mutability uint8

const (
	Shared Mutability = iota
	Mut
)

func (m Mutability) IsMut() bool { return m == Mut }

// Rawness distinguishes `&raw` borrows from ordinary references.
type Rawness uint8

const (
	RefPlain Rawness = iota
	RefRaw
)

func (r Rawness) IsRaw() bool { return r == RefRaw }

// CaptureBy is how a closure captures its environment.
type CaptureBy uint8

const (
	CaptureByRef   CaptureBy = iota
	CaptureByValue           // `move` closures
)
