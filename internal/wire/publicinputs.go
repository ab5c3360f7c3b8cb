// internal/wire/publicinputs.go
//
// Canonical public-input encoding. Both the proving party and this server
// must derive byte-identical output from the same logical values; the
// layout below is the contract between them and must never drift.
//
// Layout: six 32-byte fields, big-endian, right-aligned (leading zero
// padding), 192 bytes total:
//
//   [ session_id | guess_id | commitment | guess_packed | exact | partial ]
//
// guess_packed puts the four guess digits in the low four bytes of its
// field, digit[0] most significant, the same packing the committed
// secret uses for circuit consumption.

package wire

import "encoding/binary"

const (
	// FieldSize is the width of one public-input field.
	FieldSize = 32
	// NumPublicInputs is the field count of the canonical encoding.
	NumPublicInputs = 6
	// PublicInputsSize is the total canonical encoding length.
	PublicInputsSize = NumPublicInputs * FieldSize
)

// PublicInputs builds the 192-byte canonical encoding.
func PublicInputs(sessionID, guessID uint32, commitment [32]byte, guess [4]byte, exact, partial uint32) [PublicInputsSize]byte {
	var out [PublicInputsSize]byte
	putU32Field(out[0*FieldSize:], sessionID)
	putU32Field(out[1*FieldSize:], guessID)
	copy(out[2*FieldSize:], commitment[:])
	copy(out[3*FieldSize+FieldSize-len(guess):], guess[:])
	putU32Field(out[4*FieldSize:], exact)
	putU32Field(out[5*FieldSize:], partial)
	return out
}

// putU32Field writes v big-endian into the low 4 bytes of a 32-byte field.
func putU32Field(field []byte, v uint32) {
	binary.BigEndian.PutUint32(field[FieldSize-4:FieldSize], v)
}
