package tx

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Fields are shared by every transaction variant.
type Fields struct {
	Type                  TransactionType
	ChainID               uint64 // 0 when unknown
	Nonce                 *uint64
	Sender                *common.Address
	Receiver              *common.Address
	Gas                   *uint64 // nil lets the provider estimate
	Value                 *big.Int
	Data                  []byte
	RequiredConfirmations uint32
	Signature             *Signature
}

// Transaction is one of StaticFeeTransaction, AccessListTransaction or
// DynamicFeeTransaction.
type Transaction interface {
	TxType() TransactionType
	Common() *Fields
	// ToGethTx converts the transaction into its go-ethereum form. A missing
	// gas limit or nonce is encoded as zero.
	ToGethTx() (*types.Transaction, error)
}

func (f *Fields) TxType() TransactionType {
	return f.Type
}

func (f *Fields) Common() *Fields {
	return f
}

func (f *Fields) IsSigned() bool {
	return f.Signature != nil
}

func (f *Fields) gas() uint64 {
	if f.Gas == nil {
		return 0
	}
	return *f.Gas
}

func (f *Fields) nonce() uint64 {
	if f.Nonce == nil {
		return 0
	}
	return *f.Nonce
}

func (f *Fields) value() *big.Int {
	if f.Value == nil {
		return new(big.Int)
	}
	return f.Value
}

func (f *Fields) chainID() *big.Int {
	return new(big.Int).SetUint64(f.ChainID)
}

func (f *Fields) signatureValues() (v, r, s *big.Int) {
	if f.Signature == nil {
		return nil, nil, nil
	}
	return f.Signature.values()
}

type StaticFeeTransaction struct {
	Fields
	GasPrice *big.Int
}

func (t *StaticFeeTransaction) ToGethTx() (*types.Transaction, error) {
	v, r, s := t.signatureValues()
	return types.NewTx(&types.LegacyTx{
		Nonce:    t.nonce(),
		GasPrice: bigOrZero(t.GasPrice),
		Gas:      t.gas(),
		To:       t.Receiver,
		Value:    t.value(),
		Data:     t.Data,
		V:        v,
		R:        r,
		S:        s,
	}), nil
}

type AccessListTransaction struct {
	Fields
	GasPrice   *big.Int
	AccessList types.AccessList
}

func (t *AccessListTransaction) ToGethTx() (*types.Transaction, error) {
	v, r, s := t.signatureValues()
	return types.NewTx(&types.AccessListTx{
		ChainID:    t.chainID(),
		Nonce:      t.nonce(),
		GasPrice:   bigOrZero(t.GasPrice),
		Gas:        t.gas(),
		To:         t.Receiver,
		Value:      t.value(),
		Data:       t.Data,
		AccessList: t.AccessList,
		V:          v,
		R:          r,
		S:          s,
	}), nil
}

type DynamicFeeTransaction struct {
	Fields
	MaxFee         *big.Int
	MaxPriorityFee *big.Int
	AccessList     types.AccessList
}

func (t *DynamicFeeTransaction) ToGethTx() (*types.Transaction, error) {
	if t.MaxFee != nil && t.MaxPriorityFee != nil && t.MaxPriorityFee.Cmp(t.MaxFee) > 0 {
		return nil, fmt.Errorf("max priority fee %s is higher than max fee %s", t.MaxPriorityFee, t.MaxFee)
	}
	v, r, s := t.signatureValues()
	return types.NewTx(&types.DynamicFeeTx{
		ChainID:    t.chainID(),
		Nonce:      t.nonce(),
		GasTipCap:  bigOrZero(t.MaxPriorityFee),
		GasFeeCap:  bigOrZero(t.MaxFee),
		Gas:        t.gas(),
		To:         t.Receiver,
		Value:      t.value(),
		Data:       t.Data,
		AccessList: t.AccessList,
		V:          v,
		R:          r,
		S:          s,
	}), nil
}

// Encode returns the canonical binary encoding of tx: plain RLP for static
// fee transactions, the typed envelope otherwise.
func Encode(tx Transaction) ([]byte, error) {
	gtx, err := tx.ToGethTx()
	if err != nil {
		return nil, err
	}
	return gtx.MarshalBinary()
}

func bigOrZero(b *big.Int) *big.Int {
	if b == nil {
		return new(big.Int)
	}
	return b
}
