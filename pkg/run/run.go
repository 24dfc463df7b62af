// Package run drives the decoder, printer, and executor over a whole
// instruction stream — the orchestration layer cmd/sim8086 calls into for
// both disassembly and execution mode.
package run

import (
	"fmt"
	"strings"

	"github.com/oisee/sim8086/pkg/cpu"
	"github.com/oisee/sim8086/pkg/decode"
	"github.com/oisee/sim8086/pkg/inst"
)

// Disassemble decodes every instruction in buf and renders it as NASM text,
// one line per instruction, preceded by the "bits 16" directive. When
// clockEstimate is set each line gets a trailing "; Clocks: +n = total"
// comment.
func Disassemble(buf []byte, clockEstimate bool) []string {
	lines := []string{"bits 16", ""}
	trace := NewClockTrace()
	cur := decode.NewCursor(buf)

	for !cur.AtEnd() {
		in := decode.Decode(cur)
		text := inst.Disassemble(in)
		if clockEstimate {
			base, ea := inst.ClockBreakdown(in)
			entry := trace.Add(text, base, ea)
			text = fmt.Sprintf("%s ; %s", text, clockSuffix(entry))
		}
		lines = append(lines, text)
	}
	return lines
}

// Result is everything Execute produces: the decoded/executed trace lines,
// the final register state, and the final memory image (for --dump).
type Result struct {
	Lines []string
	Regs  cpu.RegisterFile
	Mem   cpu.Memory
}

// Execute decodes and runs every instruction in buf sequentially, starting
// from an all-zero register file and memory. It stops when the cursor
// reaches the end of buf — there is no halt instruction in this subset, so
// "ran off the end of the provided bytes" is the only termination
// condition.
func Execute(buf []byte, clockEstimate bool) Result {
	var regs cpu.RegisterFile
	var mem cpu.Memory
	trace := NewClockTrace()
	cur := decode.NewCursor(buf)

	var lines []string
	for !cur.AtEnd() {
		before := regs
		in := decode.Decode(cur)

		// IP reflects the offset immediately after the fetch, before the
		// instruction's own effects (including a taken jump) apply — this
		// ordering matters: a jump computes its target relative to this
		// post-fetch IP, not the instruction's own start offset.
		regs.IP = uint16(cur.Offset())

		taken := cpu.Exec(&regs, &mem, in)
		if taken {
			cur.Seek(int(regs.IP))
		}

		text := inst.Disassemble(in)
		diffs := cpu.Diffs(before, regs)

		if clockEstimate {
			base, ea := inst.ClockBreakdown(in)
			if in.Opcode.Family == inst.FamilyJump && !taken {
				base -= inst.NotTakenDiscount
			}
			entry := trace.Add(text, base, ea)
			text = fmt.Sprintf("%s ; %s", text, clockSuffix(entry))
			if len(diffs) > 0 {
				text = fmt.Sprintf("%s | %s", text, formatDiffs(diffs))
			}
		} else if len(diffs) > 0 {
			text = fmt.Sprintf("%s ; %s", text, formatDiffs(diffs))
		}
		lines = append(lines, text)
	}

	return Result{Lines: lines, Regs: regs, Mem: mem}
}

// clockSuffix renders "Clocks: +N = total", with a trailing "(base + Nea)"
// breakdown when the instruction carried an effective-address surcharge.
func clockSuffix(e ClockEntry) string {
	s := fmt.Sprintf("Clocks: +%d = %d", e.Cost, e.Total)
	if e.EA > 0 {
		s = fmt.Sprintf("%s (%d + %dea)", s, e.Base, e.EA)
	}
	return s
}

func formatDiffs(diffs []cpu.Diff) string {
	parts := make([]string, len(diffs))
	for i, d := range diffs {
		if d.Name == "flags" {
			parts[i] = fmt.Sprintf("flags:%s->%s", flagLetters(d.Before), flagLetters(d.After))
			continue
		}
		parts[i] = fmt.Sprintf("%s:0x%x->0x%x", d.Name, d.Before, d.After)
	}
	return strings.Join(parts, ", ")
}

// flagLetters renders the flag bitset Diffs packs (bit0 = zero, bit1 =
// sign) as the letter codes a register dump uses, sign before zero to
// match the FLAGS register's own bit ordering.
func flagLetters(bits uint16) string {
	var b []byte
	if bits&0x02 != 0 {
		b = append(b, 'S')
	}
	if bits&0x01 != 0 {
		b = append(b, 'Z')
	}
	return string(b)
}
