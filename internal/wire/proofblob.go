// internal/wire/proofblob.go
//
// Proof blob framing. A submitted blob packages the claimed public inputs
// together with the opaque proof bytes:
//
//   [ u32 big-endian field count | count * 32 bytes ]
//
// The first six fields after the header are the public inputs; the rest is
// the proof payload, which must itself be a whole number of 32-byte fields.

package wire

import (
	"encoding/binary"
	"errors"
)

// ErrMalformedBlob reports framing the codec cannot accept: a truncated
// header, a length inconsistent with the declared field count, fewer
// fields than the public-input layout requires, or a proof tail that is
// not 32-byte aligned. The state machine maps it to InvalidProofBlob.
var ErrMalformedBlob = errors.New("malformed proof blob")

const blobHeaderSize = 4

// EncodeBlob frames public inputs and proof bytes into one blob.
// The proof length must be a multiple of the field size.
func EncodeBlob(publicInputs [PublicInputsSize]byte, proof []byte) ([]byte, error) {
	if len(proof)%FieldSize != 0 {
		return nil, ErrMalformedBlob
	}
	fields := uint32(NumPublicInputs + len(proof)/FieldSize)
	out := make([]byte, 0, blobHeaderSize+PublicInputsSize+len(proof))
	var hdr [blobHeaderSize]byte
	binary.BigEndian.PutUint32(hdr[:], fields)
	out = append(out, hdr[:]...)
	out = append(out, publicInputs[:]...)
	out = append(out, proof...)
	return out, nil
}

// DecodeBlob splits a blob into its claimed public inputs and proof bytes.
// The returned slices alias the input.
func DecodeBlob(blob []byte) (publicInputs, proof []byte, err error) {
	if len(blob) < blobHeaderSize {
		return nil, nil, ErrMalformedBlob
	}
	fields := binary.BigEndian.Uint32(blob[:blobHeaderSize])
	if fields < NumPublicInputs {
		return nil, nil, ErrMalformedBlob
	}
	body := blob[blobHeaderSize:]
	if uint64(len(body)) != uint64(fields)*FieldSize {
		return nil, nil, ErrMalformedBlob
	}
	return body[:PublicInputsSize], body[PublicInputsSize:], nil
}
