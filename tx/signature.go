package tx

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Signature is the raw (v, r, s) triple of a signed transaction.
type Signature struct {
	V uint64
	R [32]byte
	S [32]byte
}

// NewSignature combines v, r and s. r and s are left padded to 32 bytes.
func NewSignature(v uint64, r, s []byte) (*Signature, error) {
	if len(r) > 32 {
		return nil, fmt.Errorf("signature r is %d bytes, at most 32 allowed", len(r))
	}
	if len(s) > 32 {
		return nil, fmt.Errorf("signature s is %d bytes, at most 32 allowed", len(s))
	}
	sig := &Signature{V: v}
	copy(sig.R[:], common.LeftPadBytes(r, 32))
	copy(sig.S[:], common.LeftPadBytes(s, 32))
	return sig, nil
}

func (s *Signature) values() (v, r, ss *big.Int) {
	return new(big.Int).SetUint64(s.V), new(big.Int).SetBytes(s.R[:]), new(big.Int).SetBytes(s.S[:])
}

func (s *Signature) String() string {
	return fmt.Sprintf("v=%d r=0x%x s=0x%x", s.V, s.R, s.S)
}
