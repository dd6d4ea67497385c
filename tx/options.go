package tx

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"sort"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var (
	ErrUnknownField   = errors.New("unknown transaction field")
	ErrInvalidChainID = errors.New("invalid chain id")
)

// Converter turns loosely typed request values into concrete ones.
type Converter interface {
	ToWei(v any) (*big.Int, error)
	ToUint64(v any) (uint64, error)
	ToBytes(v any) ([]byte, error)
	ToAddress(v any) (common.Address, error)
	ToAccessList(v any) (types.AccessList, error)
}

// Field is an optional request value. Present is false when the key was not
// supplied at all; Null is true when it was supplied as nil.
type Field[T any] struct {
	Present bool
	Null    bool
	Value   T
}

// IsSet tells whether the field carries a usable value.
func (f Field[T]) IsSet() bool {
	return f.Present && !f.Null
}

func Set[T any](v T) Field[T] {
	return Field[T]{Present: true, Value: v}
}

func Null[T any]() Field[T] {
	return Field[T]{Present: true, Null: true}
}

// Options is the typed form of a Request after alias resolution and value
// coercion.
type Options struct {
	Type                  Field[TransactionType]
	ChainID               Field[uint64]
	Nonce                 Field[uint64]
	Sender                Field[common.Address]
	Receiver              Field[common.Address]
	Gas                   Field[uint64]
	GasPrice              Field[*big.Int]
	MaxFee                Field[*big.Int]
	MaxPriorityFee        Field[*big.Int]
	Value                 Field[*big.Int]
	Data                  Field[[]byte]
	AccessList            Field[types.AccessList]
	RequiredConfirmations Field[uint32]
	V                     Field[uint64]
	R                     Field[[]byte]
	S                     Field[[]byte]
}

// ParseOptions resolves the aliases of req and coerces every value. A nil
// value becomes 0 and a nil data becomes empty bytes; other nil values are
// kept as explicit nulls.
func ParseOptions(req Request, conv Converter) (Options, error) {
	data := ResolveAliases(req)
	opts := Options{}

	unknown := []string{}
	for key := range data {
		if !knownKeys[key] {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return opts, fmt.Errorf("%w: %s", ErrUnknownField, strings.Join(unknown, ", "))
	}

	var err error
	if opts.Type, err = parseField(data, KeyType, parseType(conv)); err != nil {
		return opts, err
	}
	if opts.ChainID, err = parseField(data, KeyChainID, parseChainID(conv)); err != nil {
		return opts, err
	}
	if opts.Nonce, err = parseField(data, KeyNonce, conv.ToUint64); err != nil {
		return opts, err
	}
	if opts.Sender, err = parseField(data, KeySender, conv.ToAddress); err != nil {
		return opts, err
	}
	if opts.Receiver, err = parseField(data, KeyReceiver, conv.ToAddress); err != nil {
		return opts, err
	}
	if opts.Gas, err = parseField(data, KeyGas, conv.ToUint64); err != nil {
		return opts, err
	}
	if opts.GasPrice, err = parseField(data, KeyGasPrice, conv.ToWei); err != nil {
		return opts, err
	}
	if opts.MaxFee, err = parseField(data, KeyMaxFee, conv.ToWei); err != nil {
		return opts, err
	}
	if opts.MaxPriorityFee, err = parseField(data, KeyMaxPriorityFee, conv.ToWei); err != nil {
		return opts, err
	}
	if opts.Value, err = parseField(data, KeyValue, conv.ToWei); err != nil {
		return opts, err
	}
	if opts.Value.Null {
		opts.Value = Set(new(big.Int))
	}
	if opts.Data, err = parseField(data, KeyData, conv.ToBytes); err != nil {
		return opts, err
	}
	if opts.Data.Null {
		opts.Data = Set([]byte{})
	}
	if opts.AccessList, err = parseField(data, KeyAccessList, conv.ToAccessList); err != nil {
		return opts, err
	}
	if opts.RequiredConfirmations, err = parseField(data, KeyRequiredConfirmations, parseUint32(conv)); err != nil {
		return opts, err
	}
	if opts.V, err = parseField(data, KeyV, conv.ToUint64); err != nil {
		return opts, err
	}
	if opts.R, err = parseField(data, KeyR, conv.ToBytes); err != nil {
		return opts, err
	}
	if opts.S, err = parseField(data, KeyS, conv.ToBytes); err != nil {
		return opts, err
	}
	return opts, nil
}

var knownKeys = map[string]bool{
	KeyType: true, KeyChainID: true, KeyNonce: true, KeySender: true,
	KeyReceiver: true, KeyGas: true, KeyGasPrice: true, KeyMaxFee: true,
	KeyMaxPriorityFee: true, KeyValue: true, KeyData: true, KeyAccessList: true,
	KeyRequiredConfirmations: true, KeyV: true, KeyR: true, KeyS: true,
}

func parseField[T any](data Request, key string, parse func(any) (T, error)) (Field[T], error) {
	raw, found := data[key]
	if !found {
		return Field[T]{}, nil
	}
	if raw == nil {
		return Null[T](), nil
	}
	v, err := parse(raw)
	if err != nil {
		return Field[T]{}, fmt.Errorf("field %s: %w", key, err)
	}
	return Set(v), nil
}

func parseType(conv Converter) func(any) (TransactionType, error) {
	return func(v any) (TransactionType, error) {
		switch t := v.(type) {
		case TransactionType:
			return t, nil
		case string:
			return ParseTransactionType(t)
		}
		n, err := conv.ToUint64(v)
		return TransactionType(n), err
	}
}

// parseChainID reads string chain ids as hex, with or without 0x prefix.
func parseChainID(conv Converter) func(any) (uint64, error) {
	return func(v any) (uint64, error) {
		s, ok := v.(string)
		if !ok {
			return conv.ToUint64(v)
		}
		s = strings.TrimSpace(s)
		s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
		id, err := strconv.ParseUint(s, 16, 64)
		if err != nil {
			return 0, fmt.Errorf("%w %q: %w", ErrInvalidChainID, v, err)
		}
		return id, nil
	}
}

func parseUint32(conv Converter) func(any) (uint32, error) {
	return func(v any) (uint32, error) {
		n, err := conv.ToUint64(v)
		if err != nil {
			return 0, err
		}
		if n > math.MaxUint32 {
			return 0, fmt.Errorf("%d overflows uint32", n)
		}
		return uint32(n), nil
	}
}
