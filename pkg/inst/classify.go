package inst

// Classify identifies the Opcode encoded by the first word of an instruction
// stream. first is the already-consumed opcode byte; second is the next
// byte in the stream (used to disambiguate the 0x80-0x83 immediate-group and
// never consumed by Classify itself — the caller re-reads it as needed).
//
// The match order mirrors the encoding's own precedence: six-bit prefixes
// are tried first (they're the widest, least ambiguous run of 1-bits a
// mnemonic can claim), then four-bit, then seven-bit, and only a full-byte
// match falls through to single-byte opcodes like the conditional jumps.
// A byte that matches none of these is not an instruction this decoder
// understands.
func Classify(first, second byte) (Opcode, bool) {
	firstSixBits := first >> 2
	firstFourBits := first >> 4
	firstSevenBits := first >> 1

	switch firstSixBits {
	case 0b100010:
		return Opcode{FamilyMov, SubMovRM}, true
	case 0b000000:
		return Opcode{FamilyAdd, SubArithRM}, true
	case 0b001010:
		return Opcode{FamilySub, SubArithRM}, true
	case 0b001110:
		return Opcode{FamilyCmp, SubArithRM}, true
	case 0b100000:
		switch (second & 0b00111000) >> 3 {
		case 0b000:
			return Opcode{FamilyAdd, SubArithImmToRegOrMem}, true
		case 0b101:
			return Opcode{FamilySub, SubArithImmToRegOrMem}, true
		case 0b111:
			return Opcode{FamilyCmp, SubArithImmToRegOrMem}, true
		default:
			return Opcode{}, false
		}
	}

	if firstFourBits == 0b1011 {
		return Opcode{FamilyMov, SubMovImmToReg}, true
	}

	switch firstSevenBits {
	case 0b1100011:
		return Opcode{FamilyMov, SubMovImmToRegOrMem}, true
	case 0b1010000:
		return Opcode{FamilyMov, SubMovMemToAcc}, true
	case 0b1010001:
		return Opcode{FamilyMov, SubMovAccToMem}, true
	case 0b0000010:
		return Opcode{FamilyAdd, SubArithImmToAcc}, true
	case 0b0010110:
		return Opcode{FamilySub, SubArithImmToAcc}, true
	case 0b0011110:
		return Opcode{FamilyCmp, SubArithImmToAcc}, true
	}

	switch first {
	case 0b01110101:
		return Opcode{FamilyJump, SubJne}, true
	case 0b01110100:
		return Opcode{FamilyJump, SubJe}, true
	case 0b01111100:
		return Opcode{FamilyJump, SubJl}, true
	case 0b01111110:
		return Opcode{FamilyJump, SubJle}, true
	case 0b01110010:
		return Opcode{FamilyJump, SubJb}, true
	case 0b01110110:
		return Opcode{FamilyJump, SubJbe}, true
	case 0b01111010:
		return Opcode{FamilyJump, SubJp}, true
	case 0b01110000:
		return Opcode{FamilyJump, SubJo}, true
	case 0b01111000:
		return Opcode{FamilyJump, SubJs}, true
	case 0b01111101:
		return Opcode{FamilyJump, SubJnl}, true
	case 0b01111111:
		return Opcode{FamilyJump, SubJg}, true
	case 0b01110011:
		return Opcode{FamilyJump, SubJnb}, true
	case 0b01110111:
		return Opcode{FamilyJump, SubJa}, true
	case 0b01111011:
		return Opcode{FamilyJump, SubJnp}, true
	case 0b01110001:
		return Opcode{FamilyJump, SubJno}, true
	case 0b01111001:
		return Opcode{FamilyJump, SubJns}, true
	case 0b11100010:
		return Opcode{FamilyJump, SubLoop}, true
	case 0b11100001:
		return Opcode{FamilyJump, SubLoopz}, true
	case 0b11100000:
		return Opcode{FamilyJump, SubLoopnz}, true
	case 0b11100011:
		return Opcode{FamilyJump, SubJcxz}, true
	}

	return Opcode{}, false
}
