// internal/verifier/groth16.go
//
// Groth16/BN254 Verifier backed by gnark. The circuit's constraint system
// is already fixed inside the verification key; this adapter only needs to
// deserialize the key and proof and rebuild the public witness from the
// canonical 192-byte public-input encoding.

package verifier

import (
	"bytes"
	"context"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/frontend"

	"github.com/zkmastermind/go-server/internal/wire"
)

// publicInputsCircuit binds an ordered list of public inputs into a gnark
// witness. It carries no constraints of its own (the real relation lives
// in the verification key); it only exists so the six field values can be
// shaped into the witness Verify expects.
type publicInputsCircuit struct {
	PublicInputs [wire.NumPublicInputs]frontend.Variable `gnark:",public"`
}

func (c *publicInputsCircuit) Define(api frontend.API) error {
	for _, in := range c.PublicInputs {
		api.AssertIsEqual(in, in)
	}
	return nil
}

// Groth16 is a Verifier holding one parsed verification key.
type Groth16 struct {
	vk groth16.VerifyingKey
}

// NewGroth16 parses a serialized BN254 verification key. A parse failure
// is a configuration bug (VkParseError), not an input error.
func NewGroth16(vkBytes []byte) (*Groth16, error) {
	if len(vkBytes) == 0 {
		return nil, ErrVkNotSet
	}
	vk := groth16.NewVerifyingKey(ecc.BN254)
	if _, err := vk.ReadFrom(bytes.NewReader(vkBytes)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVkParse, err)
	}
	return &Groth16{vk: vk}, nil
}

// Verify checks proof bytes against the stored key and the canonical
// public-input encoding.
func (g *Groth16) Verify(ctx context.Context, publicInputs, proof []byte) error {
	if g == nil || g.vk == nil {
		return ErrVkNotSet
	}
	if len(publicInputs) != wire.PublicInputsSize {
		return fmt.Errorf("%w: public inputs are %d bytes, want %d",
			ErrVerificationFailed, len(publicInputs), wire.PublicInputsSize)
	}

	proofObj := groth16.NewProof(ecc.BN254)
	if _, err := proofObj.ReadFrom(bytes.NewReader(proof)); err != nil {
		return fmt.Errorf("%w: %v", ErrProofParse, err)
	}

	publicWitness, err := publicWitnessFromBytes(publicInputs)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrVerificationFailed, err)
	}

	if err := groth16.Verify(proofObj, g.vk, publicWitness); err != nil {
		return fmt.Errorf("%w: %v", ErrVerificationFailed, err)
	}
	return nil
}

// publicWitnessFromBytes turns the six 32-byte big-endian fields into the
// public witness for Verify.
func publicWitnessFromBytes(publicInputs []byte) (witness.Witness, error) {
	var circuit publicInputsCircuit
	for i := 0; i < wire.NumPublicInputs; i++ {
		field := publicInputs[i*wire.FieldSize : (i+1)*wire.FieldSize]
		circuit.PublicInputs[i] = new(big.Int).SetBytes(field)
	}
	return frontend.NewWitness(&circuit, ecc.BN254.ScalarField(), frontend.PublicOnly())
}
