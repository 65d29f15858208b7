package spv

// Value is a typed handle to a single-assignment shader value: the id
// of the instruction that produced it plus its semantic type. Values
// are only meaningful within the Builder session that created them.
type Value struct {
	id  uint32
	typ Type
}

// Type returns the value's semantic type.
func (v Value) Type() Type {
	return v.typ
}

// ID returns the value's identifier within its module.
func (v Value) ID() uint32 {
	return v.id
}

// valid reports whether v was produced by a builder operation. The zero
// Value is invalid.
func (v Value) valid() bool {
	return v.id != 0 && v.typ != nil
}

// pointer returns the value's pointer type, if it has one. Variables
// and access-chain results are pointers; computed values are not.
func (v Value) pointer() (PointerType, bool) {
	p, ok := v.typ.(PointerType)
	return p, ok
}
