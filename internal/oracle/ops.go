package oracle

import "fmt"

// OpKind names one operation of a differential run.
type OpKind uint8

const (
	OpInsert OpKind = iota
	OpFetch
	OpRemove
	OpContains
	OpClear
	OpReserve

	opKindCount
)

var opKindNames = [...]string{"Insert", "Fetch", "Remove", "Contains", "Clear", "Reserve"}

func (k OpKind) String() string {
	if int(k) < len(opKindNames) {
		return opKindNames[k]
	}
	return fmt.Sprintf("OpKind(%d)", uint8(k))
}

// Op is a single operation. Arg is the inserted value for Insert, the
// position for Fetch/Remove/Contains and the additional capacity for
// Reserve.
type Op struct {
	Kind OpKind
	Arg  int
}

func (o Op) String() string {
	if o.Kind == OpClear {
		return o.Kind.String()
	}
	return fmt.Sprintf("%s(%d)", o.Kind, o.Arg)
}

// Result is what an operation observably returned. Fields an operation does
// not produce stay zero.
type Result struct {
	Key   int
	Value int
	Found bool
}

// Decode turns a byte stream into operations, two bytes per operation: the
// first selects the kind, the second the argument. Positions are kept small
// so that fetches and removes hit live slots often, but may land past the
// end of the slab. Reserve arguments are capped at maxReserve.
func Decode(data []byte, maxReserve int) []Op {
	ops := make([]Op, 0, len(data)/2)
	for i := 0; i+1 < len(data); i += 2 {
		kind := OpKind(data[i] % byte(opKindCount))
		arg := int(data[i+1])
		if kind == OpReserve && maxReserve > 0 {
			arg %= maxReserve + 1
		}
		ops = append(ops, Op{Kind: kind, Arg: arg})
	}
	return ops
}

// Apply runs op against the oracle and returns what it observed.
func (s *Slab[T]) Apply(op Op, value func(int) T, unwrap func(T) int) Result {
	switch op.Kind {
	case OpInsert:
		return Result{Key: s.Insert(value(op.Arg)), Found: true}
	case OpFetch:
		v, ok := s.Get(op.Arg)
		return result(v, ok, unwrap)
	case OpRemove:
		v, ok := s.Remove(op.Arg)
		return result(v, ok, unwrap)
	case OpContains:
		return Result{Found: s.Contains(op.Arg)}
	case OpClear:
		s.Clear()
	case OpReserve:
		s.Reserve(op.Arg)
	}
	return Result{}
}

func result[T any](v T, ok bool, unwrap func(T) int) Result {
	if !ok {
		return Result{}
	}
	return Result{Value: unwrap(v), Found: true}
}
