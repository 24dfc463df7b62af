package decode

import (
	"fmt"

	"github.com/oisee/sim8086/pkg/inst"
)

const (
	dMask = 0x02
	wMask = 0x01
	sMask = 0x02
)

// Decode reads exactly one instruction from cur, advancing it past every
// byte the instruction occupies (opcode, mod/reg/rm, displacement,
// immediate). It panics if the opcode byte matches no known encoding or if
// the stream runs out mid-instruction — both are treated as fatal, on the
// assumption that input is an assembler-produced .bin file, never untrusted
// data.
func Decode(cur *Cursor) inst.Instruction {
	cur.StartWindow()
	first, ok := cur.NextByte()
	if !ok {
		panic("decode: no more input")
	}
	second, ok := cur.PeekByte()
	if !ok {
		second = 0
	}

	op, ok := inst.Classify(first, second)
	if !ok {
		panic(fmt.Sprintf("decode: unrecognized opcode byte 0x%02x at offset %d", first, cur.WindowStart()))
	}

	switch op.Family {
	case inst.FamilyMov:
		return decodeMov(cur, op, first)
	case inst.FamilyAdd, inst.FamilySub, inst.FamilyCmp:
		return decodeArith(cur, op, first)
	case inst.FamilyJump:
		return decodeJump(cur, op)
	default:
		panic("decode: unreachable family")
	}
}

func decodeMov(cur *Cursor, op inst.Opcode, first byte) inst.Instruction {
	switch op.SubForm {
	case inst.SubMovRM:
		return decodeRegMemToFromEither(cur, op, first)

	case inst.SubMovImmToReg:
		wide := (first>>3)&1 == 1
		reg := inst.RegisterFromField(first&0x07, wide)
		imm := readImmediate(cur, wide)
		dest := inst.Operand{Kind: inst.OperandRegister, Reg: reg}
		src := inst.Operand{Kind: inst.OperandImmediate, Imm: imm}
		return inst.Instruction{Opcode: op, Destination: dest, Source: &src}

	case inst.SubMovImmToRegOrMem:
		wide := first&wMask == 1
		second, ok := cur.NextByte()
		if !ok {
			panic("decode: missing mod/reg/rm byte")
		}
		mod := second >> 6
		rm := second & 0x07
		dest := decodeRM(cur, mod, rm, wide)
		var src inst.Operand
		if wide {
			imm := readImmediate(cur, true)
			src = inst.Operand{Kind: inst.OperandWordImmediate, Imm: imm}
		} else {
			imm := readImmediate(cur, false)
			src = inst.Operand{Kind: inst.OperandByteImmediate, Imm: imm}
		}
		return inst.Instruction{Opcode: op, Destination: dest, Source: &src}

	case inst.SubMovMemToAcc:
		wide := first&wMask == 1
		addr := readDirectAddress(cur)
		dest := accumulator(wide)
		src := inst.Operand{Kind: inst.OperandMemory, Addr: inst.EffectiveAddress{Kind: inst.EADirectAddress, Addr: addr}}
		return inst.Instruction{Opcode: op, Destination: dest, Source: &src}

	case inst.SubMovAccToMem:
		wide := first&wMask == 1
		addr := readDirectAddress(cur)
		dest := inst.Operand{Kind: inst.OperandMemory, Addr: inst.EffectiveAddress{Kind: inst.EADirectAddress, Addr: addr}}
		src := accumulator(wide)
		return inst.Instruction{Opcode: op, Destination: dest, Source: &src}

	default:
		panic("decode: unreachable mov sub-form")
	}
}

func decodeArith(cur *Cursor, op inst.Opcode, first byte) inst.Instruction {
	switch op.SubForm {
	case inst.SubArithRM:
		return decodeRegMemToFromEither(cur, op, first)

	case inst.SubArithImmToRegOrMem:
		wide := first&wMask == 1
		sign := first&sMask != 0
		second, ok := cur.NextByte()
		if !ok {
			panic("decode: missing mod/reg/rm byte")
		}
		mod := second >> 6
		rm := second & 0x07
		dest := decodeRM(cur, mod, rm, wide)
		var src inst.Operand
		switch {
		case !wide:
			src = inst.Operand{Kind: inst.OperandByteImmediate, Imm: readImmediate(cur, false)}
		case sign:
			b, ok := cur.NextByte()
			if !ok {
				panic("decode: missing byte immediate")
			}
			src = inst.Operand{Kind: inst.OperandWordImmediate, Imm: uint16(int16(int8(b)))}
		default:
			src = inst.Operand{Kind: inst.OperandWordImmediate, Imm: readImmediate(cur, true)}
		}
		return inst.Instruction{Opcode: op, Destination: dest, Source: &src}

	case inst.SubArithImmToAcc:
		wide := first&wMask == 1
		dest := accumulator(wide)
		src := inst.Operand{Kind: inst.OperandImmediate, Imm: readImmediate(cur, wide)}
		return inst.Instruction{Opcode: op, Destination: dest, Source: &src}

	default:
		panic("decode: unreachable arithmetic sub-form")
	}
}

func decodeJump(cur *Cursor, op inst.Opcode) inst.Instruction {
	b, ok := cur.NextByte()
	if !ok {
		panic("decode: jump missing displacement byte")
	}
	dest := inst.Operand{Kind: inst.OperandIPIncrement, IPDelta: int8(b)}
	return inst.Instruction{Opcode: op, Destination: dest}
}

// decodeRegMemToFromEither handles the shared "mov/add/sub/cmp reg/mem to/from
// either" shape: opcode byte carries D (direction) and W (width); the
// following byte carries MOD, REG, R/M.
func decodeRegMemToFromEither(cur *Cursor, op inst.Opcode, first byte) inst.Instruction {
	d := first&dMask != 0
	wide := first&wMask == 1

	second, ok := cur.NextByte()
	if !ok {
		panic("decode: missing mod/reg/rm byte")
	}
	mod := second >> 6
	reg := (second >> 3) & 0x07
	rm := second & 0x07

	regOperand := inst.Operand{Kind: inst.OperandRegister, Reg: inst.RegisterFromField(reg, wide)}
	rmOperand := decodeRM(cur, mod, rm, wide)

	if d {
		src := rmOperand
		return inst.Instruction{Opcode: op, Destination: regOperand, Source: &src}
	}
	src := regOperand
	return inst.Instruction{Opcode: op, Destination: rmOperand, Source: &src}
}

// decodeRM resolves the operand named by a MOD/R-M pair: a register when
// MOD == 0b11, otherwise a memory reference, consuming whatever
// displacement bytes that reference requires.
func decodeRM(cur *Cursor, mod, rm byte, wide bool) inst.Operand {
	if mod == 0b11 {
		return inst.Operand{Kind: inst.OperandRegister, Reg: inst.RegisterFromField(rm, wide)}
	}

	var ea inst.EffectiveAddress
	switch mod {
	case 0b00:
		if rm == 0b110 {
			ea = inst.EffectiveAddress{Kind: inst.EADirectAddress, Addr: readDirectAddress(cur)}
		} else {
			ea = effectiveAddressNoDisp(rm)
		}
	case 0b01:
		b, ok := cur.NextByte()
		if !ok {
			panic("decode: missing 8-bit displacement")
		}
		ea = effectiveAddressWithDisp(rm, int16(int8(b)))
	case 0b10:
		lo, hi, ok := cur.NextWord()
		if !ok {
			panic("decode: missing 16-bit displacement")
		}
		ea = effectiveAddressWithDisp(rm, inst.WordFromBytes(lo, hi).ToI16())
	}
	return inst.Operand{Kind: inst.OperandMemory, Addr: ea}
}

func effectiveAddressNoDisp(rm byte) inst.EffectiveAddress {
	switch rm {
	case 0:
		return inst.EffectiveAddress{Kind: inst.EAPlus, Base: inst.BX, Plus: inst.SI}
	case 1:
		return inst.EffectiveAddress{Kind: inst.EAPlus, Base: inst.BX, Plus: inst.DI}
	case 2:
		return inst.EffectiveAddress{Kind: inst.EAPlus, Base: inst.BP, Plus: inst.SI}
	case 3:
		return inst.EffectiveAddress{Kind: inst.EAPlus, Base: inst.BP, Plus: inst.DI}
	case 4:
		return inst.EffectiveAddress{Kind: inst.EASingleReg, Base: inst.SI}
	case 5:
		return inst.EffectiveAddress{Kind: inst.EASingleReg, Base: inst.DI}
	case 7:
		return inst.EffectiveAddress{Kind: inst.EASingleReg, Base: inst.BX}
	default:
		panic("decode: rm 6 with no displacement is direct-address, handled by caller")
	}
}

func effectiveAddressWithDisp(rm byte, disp int16) inst.EffectiveAddress {
	switch rm {
	case 0:
		return inst.EffectiveAddress{Kind: inst.EAPlusConstant, Base: inst.BX, Plus: inst.SI, Disp: disp}
	case 1:
		return inst.EffectiveAddress{Kind: inst.EAPlusConstant, Base: inst.BX, Plus: inst.DI, Disp: disp}
	case 2:
		return inst.EffectiveAddress{Kind: inst.EAPlusConstant, Base: inst.BP, Plus: inst.SI, Disp: disp}
	case 3:
		return inst.EffectiveAddress{Kind: inst.EAPlusConstant, Base: inst.BP, Plus: inst.DI, Disp: disp}
	case 4:
		return inst.EffectiveAddress{Kind: inst.EASingleRegPlus, Base: inst.SI, Disp: disp}
	case 5:
		return inst.EffectiveAddress{Kind: inst.EASingleRegPlus, Base: inst.DI, Disp: disp}
	case 6:
		return inst.EffectiveAddress{Kind: inst.EASingleRegPlus, Base: inst.BP, Disp: disp}
	case 7:
		return inst.EffectiveAddress{Kind: inst.EASingleRegPlus, Base: inst.BX, Disp: disp}
	default:
		panic("decode: rm out of range")
	}
}

func readDirectAddress(cur *Cursor) uint16 {
	lo, hi, ok := cur.NextWord()
	if !ok {
		panic("decode: missing direct-address word")
	}
	return inst.WordFromBytes(lo, hi).ToU16()
}

func readImmediate(cur *Cursor, wide bool) uint16 {
	if !wide {
		b, ok := cur.NextByte()
		if !ok {
			panic("decode: missing byte immediate")
		}
		return uint16(b)
	}
	lo, hi, ok := cur.NextWord()
	if !ok {
		panic("decode: missing word immediate")
	}
	return inst.WordFromBytes(lo, hi).ToU16()
}

func accumulator(wide bool) inst.Operand {
	if wide {
		return inst.Operand{Kind: inst.OperandRegister, Reg: inst.AX}
	}
	return inst.Operand{Kind: inst.OperandRegister, Reg: inst.AL}
}
