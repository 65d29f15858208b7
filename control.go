package spv

import "github.com/gogpu/spv/spirv"

// Scope is a linear instruction stream within one region of the entry
// function. It tracks the current basic block and refuses appends once
// that block is terminated. Opening an If or While hands the scope's
// append right to the child construct until the construct is closed.
type Scope struct {
	b       *Builder
	blockID uint32
	sealed  bool
	child   construct
}

// construct is an open child control-flow builder.
type construct interface {
	constructName() string
}

// ready reports whether the scope can accept another instruction.
func (s *Scope) ready() error {
	if err := s.b.ready(); err != nil {
		return err
	}
	if s.child != nil {
		return errf(ErrNestedBuilderActive, "%s construct is still open on this scope", s.child.constructName())
	}
	if s.sealed {
		return NewError(ErrBlockAlreadySealed, "current block is already terminated")
	}
	return nil
}

func (s *Scope) append(inst spirv.Instruction) {
	s.b.appendBody(inst)
}

// terminate appends a block terminator and seals the scope's current
// block.
func (s *Scope) terminate(inst spirv.Instruction) {
	s.append(inst)
	s.sealed = true
}

// Return terminates the current block with a return from the entry
// function. Code after an early return in the same arm is an error.
func (s *Scope) Return() error {
	if err := s.ready(); err != nil {
		return err
	}
	s.terminate(spirv.Inst(spirv.OpReturn))
	return nil
}

// Discard terminates the current block by discarding the fragment.
func (s *Scope) Discard() error {
	if err := s.ready(); err != nil {
		return err
	}
	if s.b.stage != StageFragment {
		return errf(ErrUnsupportedType, "discard is not available in the %s stage", s.b.stage)
	}
	s.terminate(spirv.Inst(spirv.OpKill))
	return nil
}

// If is an open selection construct. The condition branch was emitted
// when the construct was opened; Then (and the scope returned by Else)
// receive the arm bodies, and End seals both arms into the merge block.
type If struct {
	parent *Scope

	// Then is the scope of the true arm.
	Then *Scope

	els    *Scope
	merge  uint32
	condBr []uint32
	closed bool
}

func (*If) constructName() string { return "if" }

// If opens a selection construct on the condition value. The parent
// scope cannot be appended to until End is called.
func (s *Scope) If(cond Value) (*If, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if !cond.valid() || !sameType(cond.typ, Bool) {
		return nil, errf(ErrTypeMismatch, "if condition must be bool, got %s", operandKey(cond))
	}
	thenID, err := s.b.alloc()
	if err != nil {
		return nil, err
	}
	mergeID, err := s.b.alloc()
	if err != nil {
		return nil, err
	}

	// The false target starts as the merge block and is re-pointed at
	// the else block if one is opened.
	condBr := []uint32{cond.id, thenID, mergeID}
	s.append(spirv.Inst(spirv.OpSelectionMerge, mergeID, uint32(spirv.SelectionControlNone)))
	s.append(spirv.Instruction{Opcode: spirv.OpBranchConditional, Words: condBr})
	s.sealed = true
	s.append(spirv.Inst(spirv.OpLabel, thenID))

	iff := &If{
		parent: s,
		Then:   &Scope{b: s.b, blockID: thenID},
		merge:  mergeID,
		condBr: condBr,
	}
	s.child = iff
	return iff, nil
}

// Else closes the true arm and opens the false arm.
func (i *If) Else() (*Scope, error) {
	if err := i.parent.b.ready(); err != nil {
		return nil, err
	}
	if i.closed {
		return nil, NewError(ErrBlockAlreadySealed, "if construct already closed")
	}
	if i.els != nil {
		return nil, NewError(ErrBlockAlreadySealed, "else branch already opened")
	}
	if i.Then.child != nil {
		return nil, errf(ErrUnterminatedConstruct, "%s construct open in then branch", i.Then.child.constructName())
	}
	if !i.Then.sealed {
		i.Then.terminate(spirv.Inst(spirv.OpBranch, i.merge))
	}
	elseID, err := i.parent.b.alloc()
	if err != nil {
		return nil, err
	}
	i.condBr[2] = elseID
	i.parent.append(spirv.Inst(spirv.OpLabel, elseID))
	i.els = &Scope{b: i.parent.b, blockID: elseID}
	return i.els, nil
}

// End seals the open arm into the merge block and returns control to
// the parent scope, which resumes in the merge block.
func (i *If) End() error {
	if err := i.parent.b.ready(); err != nil {
		return err
	}
	if i.closed {
		return NewError(ErrBlockAlreadySealed, "if construct already closed")
	}
	arm := i.Then
	if i.els != nil {
		arm = i.els
	}
	if arm.child != nil {
		return errf(ErrUnterminatedConstruct, "%s construct open inside if branch", arm.child.constructName())
	}
	if !arm.sealed {
		arm.terminate(spirv.Inst(spirv.OpBranch, i.merge))
	}
	i.parent.append(spirv.Inst(spirv.OpLabel, i.merge))
	i.closed = true
	i.parent.child = nil
	i.parent.blockID = i.merge
	i.parent.sealed = false
	return nil
}

// While is an open loop construct. The condition is computed in the
// Cond scope each iteration; Begin terminates it with the loop test and
// opens the body; End closes the back edge and the merge block.
type While struct {
	parent *Scope

	// Cond is the scope the loop condition is computed in.
	Cond *Scope

	body       *Scope
	header     uint32
	continueID uint32
	merge      uint32
	closed     bool
}

func (*While) constructName() string { return "while" }

// While opens a loop construct. The parent scope cannot be appended to
// until End is called.
func (s *Scope) While() (*While, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	header, err := s.b.alloc()
	if err != nil {
		return nil, err
	}
	condID, err := s.b.alloc()
	if err != nil {
		return nil, err
	}
	continueID, err := s.b.alloc()
	if err != nil {
		return nil, err
	}
	mergeID, err := s.b.alloc()
	if err != nil {
		return nil, err
	}

	s.terminate(spirv.Inst(spirv.OpBranch, header))
	s.append(spirv.Inst(spirv.OpLabel, header))
	s.append(spirv.Inst(spirv.OpLoopMerge, mergeID, continueID, uint32(spirv.LoopControlNone)))
	s.append(spirv.Inst(spirv.OpBranch, condID))
	s.append(spirv.Inst(spirv.OpLabel, condID))

	w := &While{
		parent:     s,
		Cond:       &Scope{b: s.b, blockID: condID},
		header:     header,
		continueID: continueID,
		merge:      mergeID,
	}
	s.child = w
	return w, nil
}

// Begin terminates the condition scope with the loop test and opens the
// body scope.
func (w *While) Begin(cond Value) (*Scope, error) {
	if w.closed {
		return nil, NewError(ErrBlockAlreadySealed, "while construct already closed")
	}
	if w.body != nil {
		return nil, NewError(ErrBlockAlreadySealed, "loop body already begun")
	}
	if err := w.Cond.ready(); err != nil {
		return nil, err
	}
	if !cond.valid() || !sameType(cond.typ, Bool) {
		return nil, errf(ErrTypeMismatch, "loop condition must be bool, got %s", operandKey(cond))
	}
	bodyID, err := w.parent.b.alloc()
	if err != nil {
		return nil, err
	}
	w.Cond.terminate(spirv.Inst(spirv.OpBranchConditional, cond.id, bodyID, w.merge))
	w.parent.append(spirv.Inst(spirv.OpLabel, bodyID))
	w.body = &Scope{b: w.parent.b, blockID: bodyID}
	return w.body, nil
}

// End closes the loop: the body falls through to the continue block,
// the continue block branches back to the header, and the parent scope
// resumes in the merge block.
func (w *While) End() error {
	if err := w.parent.b.ready(); err != nil {
		return err
	}
	if w.closed {
		return NewError(ErrBlockAlreadySealed, "while construct already closed")
	}
	if w.body == nil {
		return NewError(ErrUnterminatedConstruct, "loop body was never begun")
	}
	if w.body.child != nil {
		return errf(ErrUnterminatedConstruct, "%s construct open inside loop body", w.body.child.constructName())
	}
	if !w.body.sealed {
		w.body.terminate(spirv.Inst(spirv.OpBranch, w.continueID))
	}
	w.parent.append(spirv.Inst(spirv.OpLabel, w.continueID))
	w.parent.append(spirv.Inst(spirv.OpBranch, w.header))
	w.parent.append(spirv.Inst(spirv.OpLabel, w.merge))
	w.closed = true
	w.parent.child = nil
	w.parent.blockID = w.merge
	w.parent.sealed = false
	return nil
}
