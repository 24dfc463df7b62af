package run

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisassembleEmitsBitsDirective(t *testing.T) {
	// mov cx, bx ; mov ax, 1
	buf := []byte{0x89, 0xD9, 0xB8, 0x01, 0x00}
	lines := Disassemble(buf, false)

	assert.Equal(t, "bits 16", lines[0])
	assert.Equal(t, "", lines[1])
	assert.Equal(t, "mov cx, bx", lines[2])
	assert.Equal(t, "mov ax, 1", lines[3])
}

func TestDisassembleWithClockEstimateAccumulatesTotal(t *testing.T) {
	buf := []byte{0x89, 0xD9, 0xB8, 0x01, 0x00} // mov cx,bx (2) ; mov ax,1 (4)
	lines := Disassemble(buf, true)

	assert.Contains(t, lines[2], "Clocks: +2 = 2")
	assert.Contains(t, lines[3], "Clocks: +4 = 6")
}

func TestExecuteAddsAndReportsRegisterDiff(t *testing.T) {
	// mov cx, 5 ; mov bx, 3 ; add cx, bx
	buf := []byte{
		0xB9, 0x05, 0x00, // mov cx, 5
		0xBB, 0x03, 0x00, // mov bx, 3
		0x01, 0xD9, // add cx, bx
	}
	result := Execute(buf, false)

	assert.EqualValues(t, 8, result.Regs.CX.ToU16())
	assert.EqualValues(t, 3, result.Regs.BX.ToU16())
	assert.False(t, result.Regs.Zero)
	assert.False(t, result.Regs.Sign)

	joined := strings.Join(result.Lines, "\n")
	assert.Contains(t, joined, "mov cx, 5 ; cx:0x0->0x5, ip:0x0->0x3")
	assert.Contains(t, joined, "add cx, bx ; cx:0x5->0x8, ip:0x6->0x8")
}

func TestExecuteJneLoopTerminatesAndTracksIP(t *testing.T) {
	// mov cx, 2                     ; B9 02 00
	// loop_start:
	//   sub cx, 1                   ; 83 E9 01
	//   jne loop_start (delta -5)   ; 75 FB
	buf := []byte{
		0xB9, 0x02, 0x00,
		0x83, 0xE9, 0x01,
		0x75, 0xFB,
	}
	result := Execute(buf, false)

	assert.EqualValues(t, 0, result.Regs.CX.ToU16())
	assert.True(t, result.Regs.Zero)
	assert.EqualValues(t, 8, result.Regs.IP, "final fallthrough past jne lands at end of stream")
}

func TestExecuteMemoryRoundTrip(t *testing.T) {
	// mov [1000], ax  after mov ax, 0x1234
	buf := []byte{
		0xB8, 0x34, 0x12, // mov ax, 0x1234
		0xA3, 0xE8, 0x03, // mov [1000], ax
	}
	result := Execute(buf, false)

	assert.EqualValues(t, 0x1234, result.Regs.AX.ToU16())
	assert.EqualValues(t, 0x1234, result.Mem.ReadWord(1000))
}
