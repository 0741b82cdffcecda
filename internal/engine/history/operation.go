package history

import "unicode/utf8"

// Operation is a single recorded replacement: Deleted was removed at
// Offset and Inserted was put in its place. Offsets count characters.
type Operation struct {
	Offset   int
	Deleted  string
	Inserted string
}

// IsInsert reports whether the operation only inserted text.
func (op Operation) IsInsert() bool {
	return op.Deleted == "" && op.Inserted != ""
}

// IsDelete reports whether the operation only removed text.
func (op Operation) IsDelete() bool {
	return op.Deleted != "" && op.Inserted == ""
}

// IsNoop reports whether the operation changed nothing.
func (op Operation) IsNoop() bool {
	return op.Deleted == op.Inserted
}

// CharsDelta returns the change in document length.
func (op Operation) CharsDelta() int {
	return utf8.RuneCountInString(op.Inserted) - utf8.RuneCountInString(op.Deleted)
}

// Invert returns the operation that undoes op.
func (op Operation) Invert() Operation {
	return Operation{Offset: op.Offset, Deleted: op.Inserted, Inserted: op.Deleted}
}

// Apply performs the operation on e.
func (op Operation) Apply(e Editable) error {
	end := op.Offset + utf8.RuneCountInString(op.Deleted)
	return e.ApplyEdit(op.Offset, end, op.Inserted)
}

// Editable is the text an operation can be applied to. ApplyEdit replaces
// the characters [start, end) with text without recording history.
type Editable interface {
	ApplyEdit(start, end int, text string) error
}

// OperationList is an ordered list of operations applied together.
type OperationList []Operation

// Invert returns the inverse operations in reverse order.
func (ops OperationList) Invert() OperationList {
	result := make(OperationList, len(ops))
	for i, op := range ops {
		result[len(ops)-1-i] = op.Invert()
	}
	return result
}

// CharsDelta returns the total change in document length.
func (ops OperationList) CharsDelta() int {
	total := 0
	for _, op := range ops {
		total += op.CharsDelta()
	}
	return total
}

// apply runs every operation in order and returns the lowest offset touched.
func (ops OperationList) apply(e Editable) (int, error) {
	lowest := -1
	for _, op := range ops {
		if err := op.Apply(e); err != nil {
			return 0, err
		}
		if lowest < 0 || op.Offset < lowest {
			lowest = op.Offset
		}
	}
	return max(lowest, 0), nil
}
