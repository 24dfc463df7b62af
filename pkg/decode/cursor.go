// Package decode turns a raw 8086 instruction stream into the instruction
// intermediate representation defined in pkg/inst.
package decode

// Cursor is a forward-only reader over an instruction stream. R is the
// read offset: the position of the next unconsumed byte. W marks the start
// of the instruction currently being decoded, so callers can recover how
// many bytes a just-finished Decode call consumed, or report where the
// instruction began in diagnostics, without tracking that separately. Seek exists
// only to support the one operation that legitimately moves the cursor
// backwards relative to forward execution: a taken jump rewinding IP into
// bytes already scanned once for length.
type Cursor struct {
	buf []byte
	r   int
	w   int
}

// NewCursor wraps buf for sequential decoding.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// StartWindow marks the current read offset as the start of the next
// instruction to be decoded.
func (c *Cursor) StartWindow() {
	c.w = c.r
}

// WindowStart returns the offset at which the in-progress instruction began.
func (c *Cursor) WindowStart() int {
	return c.w
}

// Offset returns the current read offset.
func (c *Cursor) Offset() int {
	return c.r
}

// Len returns the total length of the underlying buffer.
func (c *Cursor) Len() int {
	return len(c.buf)
}

// AtEnd reports whether the cursor has consumed the entire buffer.
func (c *Cursor) AtEnd() bool {
	return c.r >= len(c.buf)
}

// NextByte consumes and returns the next byte. ok is false at end of input.
func (c *Cursor) NextByte() (b byte, ok bool) {
	if c.r >= len(c.buf) {
		return 0, false
	}
	b = c.buf[c.r]
	c.r++
	return b, true
}

// PeekByte returns the next byte without consuming it.
func (c *Cursor) PeekByte() (b byte, ok bool) {
	if c.r >= len(c.buf) {
		return 0, false
	}
	return c.buf[c.r], true
}

// NextWord consumes and returns the next two bytes as a little-endian pair,
// low byte first.
func (c *Cursor) NextWord() (lo, hi byte, ok bool) {
	lo, ok = c.NextByte()
	if !ok {
		return 0, 0, false
	}
	hi, ok = c.NextByte()
	if !ok {
		return 0, 0, false
	}
	return lo, hi, true
}

// Seek moves the read offset to an absolute position, used when executing a
// taken jump: IP becomes the new read offset for both execution and any
// subsequent disassembly pass.
func (c *Cursor) Seek(offset int) {
	c.r = offset
}
