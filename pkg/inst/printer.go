package inst

import "strconv"

// Disassemble renders an Instruction as a NASM-compatible source line, e.g.
// "mov ax, bx", "add [bp + 4], 12", "jne $+2".
func Disassemble(in Instruction) string {
	var b []byte
	b = append(b, in.Opcode.String()...)
	b = append(b, ' ')
	b = appendOperand(b, in.Destination)
	if in.Source != nil {
		b = append(b, ", "...)
		b = appendOperand(b, *in.Source)
	}
	return string(b)
}

func appendOperand(b []byte, op Operand) []byte {
	switch op.Kind {
	case OperandRegister:
		return append(b, op.Reg.String()...)
	case OperandMemory:
		return appendEffectiveAddress(b, op.Addr)
	case OperandImmediate:
		return strconv.AppendInt(b, int64(op.Imm), 10)
	case OperandByteImmediate:
		b = append(b, "byte "...)
		return strconv.AppendInt(b, int64(op.Imm), 10)
	case OperandWordImmediate:
		b = append(b, "word "...)
		return strconv.AppendInt(b, int64(int16(op.Imm)), 10)
	case OperandIPIncrement:
		// IPDelta is relative to the end of the two-byte jump, while NASM's
		// $ is the start of the jump, so the printed offset is IPDelta+2.
		offset := int64(op.IPDelta) + 2
		b = append(b, '$')
		if offset >= 0 {
			b = append(b, '+')
		}
		return strconv.AppendInt(b, offset, 10)
	default:
		return append(b, '?')
	}
}

func appendEffectiveAddress(b []byte, ea EffectiveAddress) []byte {
	b = append(b, '[')
	switch ea.Kind {
	case EASingleReg:
		b = append(b, ea.Base.String()...)
	case EASingleRegPlus:
		b = append(b, ea.Base.String()...)
		b = appendSignedOffset(b, ea.Disp)
	case EAPlus:
		b = append(b, ea.Base.String()...)
		b = append(b, " + "...)
		b = append(b, ea.Plus.String()...)
	case EAPlusConstant:
		b = append(b, ea.Base.String()...)
		b = append(b, " + "...)
		b = append(b, ea.Plus.String()...)
		b = appendSignedOffset(b, ea.Disp)
	case EADirectAddress:
		b = strconv.AppendUint(b, uint64(ea.Addr), 10)
	}
	return append(b, ']')
}

// appendSignedOffset renders a displacement as " + k" or " - k", never
// " + -k" — NASM doesn't parse the latter, and nobody writes it by hand.
func appendSignedOffset(b []byte, disp int16) []byte {
	if disp < 0 {
		b = append(b, " - "...)
		return strconv.AppendInt(b, int64(-disp), 10)
	}
	b = append(b, " + "...)
	return strconv.AppendInt(b, int64(disp), 10)
}
