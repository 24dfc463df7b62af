// Package cpu models the 8086 register file, flat memory, and the
// instruction-execution semantics defined for this subset of the ISA.
package cpu

import "github.com/oisee/sim8086/pkg/inst"

// RegisterFile holds every piece of CPU state this simulator tracks: the
// four byte-aliasable wide registers, the four pointer/index registers,
// the instruction pointer, and the two flags this subset models (zero,
// sign). One value, cheap to copy, no heap allocation — snapshotting it
// for a before/after diff is just `old := rf`.
type RegisterFile struct {
	AX, BX, CX, DX inst.Word
	SP, BP, SI, DI uint16
	IP             uint16
	Zero, Sign     bool
}

// Read returns a register's current value, widened to 16 bits. Reading a
// byte half (al, ah, ...) never touches the other half of its parent word.
func (rf *RegisterFile) Read(r inst.Register) uint16 {
	switch r {
	case inst.AL:
		return uint16(rf.AX.Lo)
	case inst.AH:
		return uint16(rf.AX.Hi)
	case inst.CL:
		return uint16(rf.CX.Lo)
	case inst.CH:
		return uint16(rf.CX.Hi)
	case inst.DL:
		return uint16(rf.DX.Lo)
	case inst.DH:
		return uint16(rf.DX.Hi)
	case inst.BL:
		return uint16(rf.BX.Lo)
	case inst.BH:
		return uint16(rf.BX.Hi)
	case inst.AX:
		return rf.AX.ToU16()
	case inst.CX:
		return rf.CX.ToU16()
	case inst.DX:
		return rf.DX.ToU16()
	case inst.BX:
		return rf.BX.ToU16()
	case inst.SP:
		return rf.SP
	case inst.BP:
		return rf.BP
	case inst.SI:
		return rf.SI
	case inst.DI:
		return rf.DI
	default:
		panic("cpu: read of unknown register")
	}
}

// Write stores value into a register. Writing a byte half leaves the other
// half of its parent word untouched — there is no aliased pointer here,
// just a read-modify-write of the owning Word's matching byte.
func (rf *RegisterFile) Write(r inst.Register, value uint16) {
	switch r {
	case inst.AL:
		rf.AX.Lo = byte(value)
	case inst.AH:
		rf.AX.Hi = byte(value)
	case inst.CL:
		rf.CX.Lo = byte(value)
	case inst.CH:
		rf.CX.Hi = byte(value)
	case inst.DL:
		rf.DX.Lo = byte(value)
	case inst.DH:
		rf.DX.Hi = byte(value)
	case inst.BL:
		rf.BX.Lo = byte(value)
	case inst.BH:
		rf.BX.Hi = byte(value)
	case inst.AX:
		rf.AX = inst.WordFromU16(value)
	case inst.CX:
		rf.CX = inst.WordFromU16(value)
	case inst.DX:
		rf.DX = inst.WordFromU16(value)
	case inst.BX:
		rf.BX = inst.WordFromU16(value)
	case inst.SP:
		rf.SP = value
	case inst.BP:
		rf.BP = value
	case inst.SI:
		rf.SI = value
	case inst.DI:
		rf.DI = value
	default:
		panic("cpu: write of unknown register")
	}
}

// Equal reports whether two register files hold identical state.
func (rf RegisterFile) Equal(o RegisterFile) bool {
	return rf == o
}

// Diff describes one register or flag that changed between two snapshots.
type Diff struct {
	Name          string
	Before, After uint16
}

// wideRegs lists the general registers Diffs compares, in the order the
// worked examples print them: ax/bx/cx/dx/sp/bp/si/di. Diffs reports ip and
// the flags after them.
var wideRegs = [...]inst.Register{inst.AX, inst.BX, inst.CX, inst.DX, inst.SP, inst.BP, inst.SI, inst.DI}

// Diffs reports every register and flag that differs between before and
// after, in display order, for the "changed state" trailer printed after
// each executed instruction.
func Diffs(before, after RegisterFile) []Diff {
	var out []Diff
	for _, r := range wideRegs {
		b, a := before.Read(r), after.Read(r)
		if b != a {
			out = append(out, Diff{Name: r.String(), Before: b, After: a})
		}
	}
	if before.IP != after.IP {
		out = append(out, Diff{Name: "ip", Before: before.IP, After: after.IP})
	}
	if before.Zero != after.Zero || before.Sign != after.Sign {
		out = append(out, Diff{Name: "flags", Before: flagBits(before), After: flagBits(after)})
	}
	return out
}

func flagBits(rf RegisterFile) uint16 {
	var v uint16
	if rf.Zero {
		v |= 1
	}
	if rf.Sign {
		v |= 2
	}
	return v
}
