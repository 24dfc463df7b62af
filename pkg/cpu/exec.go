package cpu

import "github.com/oisee/sim8086/pkg/inst"

// Exec executes a single decoded instruction against regs and mem. For
// conditional jumps it reports whether the branch was taken (the cycle
// estimator in pkg/run charges a discount when it wasn't); for every other
// family the return value is always false and the caller should ignore it.
//
// Per the known execution gaps: only SubJne carries real branch semantics
// among the twenty jump/loop encodings the decoder recognizes — every other
// conditional jump panics, and sub/cmp against a memory destination panics,
// rather than silently producing a wrong answer.
func Exec(regs *RegisterFile, mem *Memory, in inst.Instruction) (branchTaken bool) {
	switch in.Opcode.Family {
	case inst.FamilyMov:
		wide := operandWidth(in)
		value := readOperand(regs, mem, *in.Source, wide)
		writeOperand(regs, mem, in.Destination, value, wide)

	case inst.FamilyAdd:
		wide := operandWidth(in)
		a := readOperand(regs, mem, in.Destination, wide)
		b := readOperand(regs, mem, *in.Source, wide)
		sum := a + b
		writeOperand(regs, mem, in.Destination, sum, wide)
		regs.Zero, regs.Sign = deriveFlags(sum, wide)

	case inst.FamilySub:
		wide := operandWidth(in)
		if in.Destination.Kind == inst.OperandMemory {
			panic("cpu: sub with a memory destination has no execution semantics implemented")
		}
		a := readOperand(regs, mem, in.Destination, wide)
		b := readOperand(regs, mem, *in.Source, wide)
		diff := a - b
		writeOperand(regs, mem, in.Destination, diff, wide)
		regs.Zero, regs.Sign = deriveFlags(diff, wide)

	case inst.FamilyCmp:
		wide := operandWidth(in)
		if in.Destination.Kind == inst.OperandMemory {
			panic("cpu: cmp with a memory destination has no execution semantics implemented")
		}
		a := readOperand(regs, mem, in.Destination, wide)
		b := readOperand(regs, mem, *in.Source, wide)
		diff := a - b
		regs.Zero, regs.Sign = deriveFlags(diff, wide)

	case inst.FamilyJump:
		return execJump(regs, in)

	default:
		panic("cpu: unknown opcode family")
	}
	return false
}

func execJump(regs *RegisterFile, in inst.Instruction) bool {
	if in.Opcode.SubForm != inst.SubJne {
		panic("cpu: jump variant " + in.Opcode.String() + " has no execution semantics implemented")
	}
	if regs.Zero {
		return false
	}
	regs.IP = uint16(int32(regs.IP) + int32(in.Destination.IPDelta))
	return true
}

// operandWidth reports whether an instruction operates on 16-bit operands.
// A register operand decides it directly; a memory destination defers to
// whichever side carries the register or the sized immediate, since the
// decoder already tags arithmetic immediates as byte- or word-sized.
func operandWidth(in inst.Instruction) bool {
	if in.Destination.Kind == inst.OperandRegister {
		return isWide(in.Destination.Reg)
	}
	if in.Source != nil {
		switch in.Source.Kind {
		case inst.OperandRegister:
			return isWide(in.Source.Reg)
		case inst.OperandByteImmediate:
			return false
		case inst.OperandWordImmediate:
			return true
		}
	}
	return false
}

func isWide(r inst.Register) bool {
	return r >= inst.AX
}

func readOperand(regs *RegisterFile, mem *Memory, op inst.Operand, wide bool) uint16 {
	switch op.Kind {
	case inst.OperandRegister:
		return regs.Read(op.Reg)
	case inst.OperandMemory:
		addr := effectiveAddr(regs, op.Addr)
		if wide {
			return mem.ReadWord(addr)
		}
		return uint16(mem.ReadByte(addr))
	case inst.OperandImmediate, inst.OperandByteImmediate, inst.OperandWordImmediate:
		return op.Imm
	default:
		panic("cpu: unreadable operand kind")
	}
}

func writeOperand(regs *RegisterFile, mem *Memory, op inst.Operand, value uint16, wide bool) {
	switch op.Kind {
	case inst.OperandRegister:
		regs.Write(op.Reg, value)
	case inst.OperandMemory:
		addr := effectiveAddr(regs, op.Addr)
		if wide {
			mem.WriteWord(addr, value)
		} else {
			mem.WriteByte(addr, byte(value))
		}
	default:
		panic("cpu: unwritable operand kind")
	}
}

func effectiveAddr(regs *RegisterFile, ea inst.EffectiveAddress) uint16 {
	switch ea.Kind {
	case inst.EASingleReg:
		return regs.Read(ea.Base)
	case inst.EASingleRegPlus:
		return uint16(int32(regs.Read(ea.Base)) + int32(ea.Disp))
	case inst.EAPlus:
		return regs.Read(ea.Base) + regs.Read(ea.Plus)
	case inst.EAPlusConstant:
		return uint16(int32(regs.Read(ea.Base)) + int32(regs.Read(ea.Plus)) + int32(ea.Disp))
	case inst.EADirectAddress:
		return ea.Addr
	default:
		panic("cpu: unknown effective-address kind")
	}
}
