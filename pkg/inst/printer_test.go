package inst

import "testing"

func operand(kind OperandKind, reg Register) Operand {
	return Operand{Kind: kind, Reg: reg}
}

func TestDisassembleRegisterToRegister(t *testing.T) {
	src := operand(OperandRegister, BX)
	in := Instruction{
		Opcode:      Opcode{Family: FamilyMov},
		Destination: operand(OperandRegister, CX),
		Source:      &src,
	}
	got := Disassemble(in)
	if got != "mov cx, bx" {
		t.Errorf("got %q, want %q", got, "mov cx, bx")
	}
}

func TestDisassembleEffectiveAddressNegativeDisplacement(t *testing.T) {
	src := Operand{
		Kind: OperandMemory,
		Addr: EffectiveAddress{Kind: EAPlusConstant, Base: BX, Plus: SI, Disp: -30},
	}
	in := Instruction{
		Opcode:      Opcode{Family: FamilyMov},
		Destination: operand(OperandRegister, AX),
		Source:      &src,
	}
	got := Disassemble(in)
	want := "mov ax, [bx + si - 30]"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDisassembleEffectiveAddressPositiveDisplacement(t *testing.T) {
	src := Operand{
		Kind: OperandMemory,
		Addr: EffectiveAddress{Kind: EASingleRegPlus, Base: BP, Disp: 4},
	}
	in := Instruction{
		Opcode:      Opcode{Family: FamilyAdd},
		Destination: operand(OperandRegister, AX),
		Source:      &src,
	}
	got := Disassemble(in)
	want := "add ax, [bp + 4]"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDisassembleByteImmediateToMemory(t *testing.T) {
	src := Operand{Kind: OperandByteImmediate, Imm: 22}
	in := Instruction{
		Opcode: Opcode{Family: FamilyMov},
		Destination: Operand{
			Kind: OperandMemory,
			Addr: EffectiveAddress{Kind: EADirectAddress, Addr: 100},
		},
		Source: &src,
	}
	got := Disassemble(in)
	want := "mov [100], byte 22"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDisassembleJumpHasNoSourceOperand(t *testing.T) {
	in := Instruction{
		Opcode:      Opcode{Family: FamilyJump, SubForm: SubJne},
		Destination: Operand{Kind: OperandIPIncrement, IPDelta: -4},
	}
	got := Disassemble(in)
	want := "jne $-2"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestClocksAddsEffectiveAddressSurcharge(t *testing.T) {
	src := operand(OperandRegister, BX)
	regOnly := Instruction{
		Opcode:      Opcode{Family: FamilyMov},
		Destination: operand(OperandRegister, CX),
		Source:      &src,
	}
	if got := Clocks(regOnly); got != 2 {
		t.Errorf("reg-to-reg mov clocks = %d, want 2", got)
	}

	memSrc := Operand{
		Kind: OperandMemory,
		Addr: EffectiveAddress{Kind: EAPlus, Base: BX, Plus: SI},
	}
	memRead := Instruction{
		Opcode:      Opcode{Family: FamilyMov},
		Destination: operand(OperandRegister, CX),
		Source:      &memSrc,
	}
	// base 8 (mov reg<-mem) + pairCost(bx,si)=7
	if got := Clocks(memRead); got != 15 {
		t.Errorf("mov reg,[bx+si] clocks = %d, want 15", got)
	}
}
