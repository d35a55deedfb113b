package optimizer

import (
	"github.com/akasaka-miraina/lambdust-sub010/bytecode"
	"github.com/akasaka-miraina/lambdust-sub010/op"
)

// jumpTargets marks every in-range jump target. Passes must not delete
// a marked instruction: a transfer still lands there.
func jumpTargets(instructions []bytecode.Instruction) map[int]bool {
	targets := map[int]bool{}
	for i, instr := range instructions {
		if offset, ok := instr.Operand.JumpOffset(); ok {
			target := i + offset
			if target >= 0 && target < len(instructions) {
				targets[target] = true
			}
		}
	}
	return targets
}

// protectedIndexes marks the jump targets plus the entry point. Passes
// whose deletions are not no-ops when execution starts inside them
// (folding, tail calls) skip matches that overlap a protected index;
// the peephole pass deletes only no-effect sequences and so protects
// jump targets alone, letting the entry point shift forward.
func protectedIndexes(instructions []bytecode.Instruction, entry int) map[int]bool {
	protected := jumpTargets(instructions)
	if entry >= 0 && entry < len(instructions) {
		protected[entry] = true
	}
	return protected
}

// compact drops the instructions not marked keep and recomputes every
// surviving relative jump offset and the entry point against the new
// indexes. Passes guarantee that a surviving jump's target survives
// too, so the remapping is always resolvable. A deleted entry point
// moves forward to the next surviving instruction.
func compact(instructions []bytecode.Instruction, keep []bool, entry int) ([]bytecode.Instruction, int) {
	newIndex := make([]int, len(instructions))
	next := 0
	for i := range instructions {
		if keep[i] {
			newIndex[i] = next
			next++
		} else {
			newIndex[i] = -1
		}
	}
	if next == len(instructions) {
		return instructions, entry
	}

	out := make([]bytecode.Instruction, 0, next)
	for i, instr := range instructions {
		if !keep[i] {
			continue
		}
		if offset, ok := instr.Operand.JumpOffset(); ok {
			target := i + offset
			if target >= 0 && target < len(instructions) && newIndex[target] >= 0 {
				instr.Operand = bytecode.JumpOperand(newIndex[target] - newIndex[i])
			}
		}
		out = append(out, instr)
	}

	newEntry := entry
	if entry >= 0 && entry < len(instructions) {
		newEntry = 0
		for i := entry; i < len(instructions); i++ {
			if newIndex[i] >= 0 {
				newEntry = newIndex[i]
				break
			}
		}
	}
	return out, newEntry
}

func allKeep(n int) []bool {
	keep := make([]bool, n)
	for i := range keep {
		keep[i] = true
	}
	return keep
}

// numberAt fetches a numeric constant from the unit's pool.
func numberAt(code *bytecode.Bytecode, index int) (float64, bool) {
	c, ok := code.Constants().Get(index)
	if !ok {
		return 0, false
	}
	n, ok := c.(bytecode.Number)
	if !ok {
		return 0, false
	}
	return float64(n), true
}

// foldConstants rewrites each adjacent LOAD_CONST a, LOAD_CONST b, ADD
// triple over numeric constants into a single load of the interned sum.
// Only this shape is folded. A triple is skipped when a jump lands on
// its second or third instruction, since those entries observe a
// partially built stack. Jumps to the first instruction stay valid: the
// folded load pushes the same value the full triple did.
func (o *Optimizer) foldConstants(instructions []bytecode.Instruction, entry int, code *bytecode.Bytecode) ([]bytecode.Instruction, int, int) {
	if len(instructions) < 3 {
		return instructions, entry, 0
	}
	protected := protectedIndexes(instructions, entry)
	keep := allKeep(len(instructions))
	count := 0

	i := 0
	for i+2 < len(instructions) {
		first := instructions[i]
		second := instructions[i+1]
		third := instructions[i+2]
		if first.Opcode == op.LoadConst && second.Opcode == op.LoadConst &&
			third.Opcode == op.Add && !protected[i+1] && !protected[i+2] {
			ai, _ := first.Operand.ConstIndex()
			bi, _ := second.Operand.ConstIndex()
			a, aok := numberAt(code, ai)
			b, bok := numberAt(code, bi)
			if aok && bok {
				sum := code.AddConstant(bytecode.Number(a + b))
				instructions[i] = bytecode.NewInstruction(
					op.LoadConst, bytecode.ConstOperand(sum),
				).WithLocation(first.Location)
				keep[i+1] = false
				keep[i+2] = false
				count++
				i += 3
				continue
			}
		}
		i++
	}

	if count == 0 {
		return instructions, entry, 0
	}
	out, newEntry := compact(instructions, keep, entry)
	return out, newEntry, count
}

// eliminateDeadCode removes instructions unreachable from the entry
// point. An unconditional jump reaches only its target; a conditional
// jump reaches its target and the fall-through; return, halt, and
// yield reach nothing. Surviving jump offsets are recomputed during
// compaction, which is safe because a reachable jump always marks its
// target reachable. Units with an out-of-range entry point are left
// untouched; Validate reports those.
func (o *Optimizer) eliminateDeadCode(instructions []bytecode.Instruction, entry int) ([]bytecode.Instruction, int, int) {
	n := len(instructions)
	if n == 0 || entry < 0 || entry >= n {
		return instructions, entry, 0
	}

	reachable := make([]bool, n)
	work := []int{entry}
	for len(work) > 0 {
		i := work[len(work)-1]
		work = work[:len(work)-1]
		if i < 0 || i >= n || reachable[i] {
			continue
		}
		reachable[i] = true
		instr := instructions[i]
		switch instr.Opcode {
		case op.Jump:
			if offset, ok := instr.Operand.JumpOffset(); ok {
				work = append(work, i+offset)
			}
		case op.JumpIfFalse, op.JumpIfTrue:
			if offset, ok := instr.Operand.JumpOffset(); ok {
				work = append(work, i+offset)
			}
			work = append(work, i+1)
		case op.Return, op.Halt, op.Yield:
			// no successor
		default:
			work = append(work, i+1)
		}
	}

	count := 0
	for _, alive := range reachable {
		if !alive {
			count++
		}
	}
	if count == 0 {
		return instructions, entry, 0
	}
	out, newEntry := compact(instructions, reachable, entry)
	return out, newEntry, count
}

// combineInstructions runs the peephole patterns in one left-to-right
// scan with non-overlapping matches: POP, LOAD_CONST drops the POP;
// DUP, POP drops both; NOP and the debug and profile markers are
// dropped wherever they appear. Matches that would delete a jump
// target are skipped. Deleting the entry instruction is fine here
// since every deleted sequence has no effect; compaction shifts the
// entry point to the next survivor.
func (o *Optimizer) combineInstructions(instructions []bytecode.Instruction, entry int) ([]bytecode.Instruction, int, int) {
	if len(instructions) == 0 {
		return instructions, entry, 0
	}
	protected := jumpTargets(instructions)
	keep := allKeep(len(instructions))
	count := 0

	i := 0
	for i < len(instructions) {
		instr := instructions[i]
		if i+1 < len(instructions) {
			next := instructions[i+1]
			if instr.Opcode == op.Pop && next.Opcode == op.LoadConst && !protected[i] {
				keep[i] = false
				count++
				i += 2
				continue
			}
			if instr.Opcode == op.Dup && next.Opcode == op.Pop &&
				!protected[i] && !protected[i+1] {
				keep[i] = false
				keep[i+1] = false
				count++
				i += 2
				continue
			}
		}
		if (instr.IsMarker() || instr.Opcode == op.Nop) && !protected[i] {
			keep[i] = false
			count++
		}
		i++
	}

	if count == 0 {
		return instructions, entry, 0
	}

	// An emptied unit would stop validating. When every instruction
	// matched a pattern, keep the final one.
	kept := 0
	for _, k := range keep {
		if k {
			kept++
		}
	}
	if kept == 0 {
		keep[len(keep)-1] = true
		kept = 1
	}
	if kept == len(instructions) {
		return instructions, entry, 0
	}

	out, newEntry := compact(instructions, keep, entry)
	return out, newEntry, count
}

// optimizeTailCalls rewrites the first adjacent CALL, RETURN pair into
// a single TAIL_CALL carrying the same argument count, then stops. One
// rewrite per invocation keeps the scan state trivial; the fixpoint
// loop in Optimize picks up remaining pairs on later rounds.
func (o *Optimizer) optimizeTailCalls(instructions []bytecode.Instruction, entry int) ([]bytecode.Instruction, int, int) {
	if len(instructions) < 2 {
		return instructions, entry, 0
	}
	protected := protectedIndexes(instructions, entry)

	for i := 0; i+1 < len(instructions); i++ {
		if instructions[i].Opcode != op.Call ||
			instructions[i+1].Opcode != op.Return || protected[i+1] {
			continue
		}
		instructions[i] = bytecode.NewInstruction(
			op.TailCall, instructions[i].Operand,
		).WithLocation(instructions[i].Location)
		keep := allKeep(len(instructions))
		keep[i+1] = false
		out, newEntry := compact(instructions, keep, entry)
		return out, newEntry, 1
	}
	return instructions, entry, 0
}
