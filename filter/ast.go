package filter

// Record exposes the numeric fields a filter can reference. Values
// are in each field's natural unit: dte in days, return as a
// fraction, prices in currency. The engine never mutates a record.
type Record interface {
	Field(name string) (float64, bool)
}

// Expr is a node of the compiled expression tree. The tree is built
// once by the parser and immutable thereafter, so a single tree can
// be evaluated against any number of records, concurrently if the
// caller wants.
type Expr interface {
	Eval(rec Record) (bool, error)
}

// BinaryOp is the boolean connective of a BinaryExpr.
type BinaryOp int

const (
	OpAnd BinaryOp = iota // ','
	OpOr                  // '+'
)

// BinaryExpr is an AND/OR node. Evaluation short-circuits: AND skips
// the right subtree when the left is false, OR when the left is true.
type BinaryExpr struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (b *BinaryExpr) Eval(rec Record) (bool, error) {
	left, err := b.Left.Eval(rec)
	if err != nil {
		return false, err
	}
	if b.Op == OpAnd && !left {
		return false, nil
	}
	if b.Op == OpOr && left {
		return true, nil
	}
	return b.Right.Eval(rec)
}

// CompareExpr is a leaf comparing one record field against a literal
// already normalized to the field's native unit at compile time, so
// evaluation is pure numeric comparison with no coercion.
type CompareExpr struct {
	Field string
	Op    string // ">", "<", ">=", "<=", "=", "!="
	Value float64
}

func (c *CompareExpr) Eval(rec Record) (bool, error) {
	v, ok := rec.Field(c.Field)
	if !ok {
		return false, &MissingFieldError{Field: c.Field}
	}
	switch c.Op {
	case ">":
		return v > c.Value, nil
	case "<":
		return v < c.Value, nil
	case ">=":
		return v >= c.Value, nil
	case "<=":
		return v <= c.Value, nil
	case "=":
		// exact float equality, no epsilon
		return v == c.Value, nil
	case "!=":
		return v != c.Value, nil
	}
	return false, nil
}
