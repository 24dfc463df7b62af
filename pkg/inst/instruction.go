package inst

// Register names one of the 8086's general-purpose registers: a byte half
// (al, ah, ...), a wide register those halves alias (ax, cx, dx, bx), or one
// of the wide-only pointer/index registers (sp, bp, si, di).
type Register uint8

const (
	AL Register = iota
	CL
	DL
	BL
	AH
	CH
	DH
	BH
	AX
	CX
	DX
	BX
	SP
	BP
	SI
	DI
)

var registerNames = [...]string{
	AL: "al", CL: "cl", DL: "dl", BL: "bl",
	AH: "ah", CH: "ch", DH: "dh", BH: "bh",
	AX: "ax", CX: "cx", DX: "dx", BX: "bx",
	SP: "sp", BP: "bp", SI: "si", DI: "di",
}

func (r Register) String() string {
	if int(r) < len(registerNames) {
		return registerNames[r]
	}
	return "?"
}

// regFieldByte maps the 3-bit REG/R-M field plus the W bit to a byte register.
var regFieldByte = [8]Register{AL, CL, DL, BL, AH, CH, DH, BH}

// regFieldWord maps the 3-bit REG/R-M field plus the W bit to a wide register.
var regFieldWord = [8]Register{AX, CX, DX, BX, SP, BP, SI, DI}

// RegisterFromField decodes a 3-bit register-field code given the W bit.
func RegisterFromField(code uint8, wide bool) Register {
	if wide {
		return regFieldWord[code&0x07]
	}
	return regFieldByte[code&0x07]
}

// EffectiveAddress describes one of the five memory-addressing shapes the
// MOD/R-M byte can select.
type EffectiveAddress struct {
	Kind Kind
	Base Register
	Plus Register // only meaningful for Kind == EAPlus / EAPlusConstant
	Disp int16    // only meaningful for Kind == EASingleRegPlus / EAPlusConstant
	Addr uint16   // only meaningful for Kind == EADirectAddress
}

// Kind discriminates the EffectiveAddress shapes.
type Kind uint8

const (
	EASingleReg Kind = iota
	EASingleRegPlus
	EAPlus
	EAPlusConstant
	EADirectAddress
)

// Operand is one source or destination of an instruction: a register, a
// memory reference, an immediate value, or (for jumps) a relative IP delta.
type Operand struct {
	Kind     OperandKind
	Reg      Register
	Addr     EffectiveAddress
	Imm      uint16
	IPDelta  int8
}

// OperandKind discriminates the Operand shapes.
type OperandKind uint8

const (
	OperandRegister OperandKind = iota
	OperandMemory
	OperandImmediate
	OperandByteImmediate
	OperandWordImmediate
	OperandIPIncrement
)

// Family names the instruction's mnemonic group.
type Family uint8

const (
	FamilyMov Family = iota
	FamilyAdd
	FamilySub
	FamilyCmp
	FamilyJump
)

// SubForm names the specific encoding of an instruction within its Family —
// the bit pattern that distinguishes, e.g., "mov reg,reg/mem" from
// "mov reg,immediate" from "mov accumulator,mem".
type SubForm uint8

const (
	// Mov
	SubMovRM SubForm = iota
	SubMovImmToReg
	SubMovImmToRegOrMem
	SubMovMemToAcc
	SubMovAccToMem

	// Add / Sub / Cmp share the same three-way shape
	SubArithRM
	SubArithImmToRegOrMem
	SubArithImmToAcc

	// Jump/loop variants — only Jne carries real execution semantics.
	SubJe
	SubJl
	SubJle
	SubJb
	SubJbe
	SubJp
	SubJo
	SubJs
	SubJne
	SubJnl
	SubJg
	SubJnb
	SubJa
	SubJnp
	SubJno
	SubJns
	SubLoop
	SubLoopz
	SubLoopnz
	SubJcxz
)

// Opcode tags an instruction with its mnemonic family and exact sub-form.
type Opcode struct {
	Family  Family
	SubForm SubForm
}

var jumpMnemonic = map[SubForm]string{
	SubJe: "je", SubJl: "jl", SubJle: "jle", SubJb: "jb", SubJbe: "jbe",
	SubJp: "jp", SubJo: "jo", SubJs: "js", SubJne: "jne", SubJnl: "jnl",
	SubJg: "jg", SubJnb: "jnb", SubJa: "ja", SubJnp: "jnp", SubJno: "jno",
	SubJns: "jns", SubLoop: "loop", SubLoopz: "loopz", SubLoopnz: "loopnz",
	SubJcxz: "jcxz",
}

func (o Opcode) String() string {
	switch o.Family {
	case FamilyMov:
		return "mov"
	case FamilyAdd:
		return "add"
	case FamilySub:
		return "sub"
	case FamilyCmp:
		return "cmp"
	case FamilyJump:
		return jumpMnemonic[o.SubForm]
	default:
		return "?"
	}
}

// Instruction is the decoded, addressing-mode-independent intermediate
// representation both the printer and the executor consume. Source is nil
// only for the single-operand jump and loop forms.
type Instruction struct {
	Opcode      Opcode
	Source      *Operand
	Destination Operand
}
