package tx

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// TransactionType is the EIP-2718 type tag of a transaction.
type TransactionType uint64

const (
	TxTypeStatic     TransactionType = 0
	TxTypeAccessList TransactionType = 1
	TxTypeDynamic    TransactionType = 2
	// TxTypeSecondStatic is a second static-fee type tag. Transactions
	// carrying it are built as static-fee transactions.
	TxTypeSecondStatic TransactionType = 126
)

var ErrUnsupportedTransactionType = errors.New("unsupported transaction type")

// UnsupportedTransactionTypeError reports a type tag no variant handles.
type UnsupportedTransactionTypeError struct {
	Type TransactionType
}

func (e *UnsupportedTransactionTypeError) Error() string {
	return fmt.Sprintf("%s: %d (0x%x)", ErrUnsupportedTransactionType, uint64(e.Type), uint64(e.Type))
}

func (e *UnsupportedTransactionTypeError) Unwrap() error {
	return ErrUnsupportedTransactionType
}

func (t TransactionType) String() string {
	switch t {
	case TxTypeStatic:
		return "static"
	case TxTypeAccessList:
		return "access_list"
	case TxTypeDynamic:
		return "dynamic"
	case TxTypeSecondStatic:
		return "0x7e"
	}
	return fmt.Sprintf("0x%x", uint64(t))
}

// IsSupported tells whether a transaction variant exists for t.
func (t TransactionType) IsSupported() bool {
	switch t {
	case TxTypeStatic, TxTypeAccessList, TxTypeDynamic, TxTypeSecondStatic:
		return true
	}
	return false
}

// ParseTransactionType accepts a type name ("static", "dynamic",
// "access_list"), a decimal number or a 0x prefixed hex number.
func ParseTransactionType(s string) (TransactionType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "static", "legacy":
		return TxTypeStatic, nil
	case "dynamic", "eip1559":
		return TxTypeDynamic, nil
	case "access_list", "access-list", "accesslist", "eip2930":
		return TxTypeAccessList, nil
	}
	v, err := ParseUint64(s)
	if err != nil {
		return 0, fmt.Errorf("invalid transaction type %q: %w", s, err)
	}
	return TransactionType(v), nil
}

// ParseUint64 reads a decimal number, or a hex one when prefixed by 0x.
// Leading zeros never switch the base.
func ParseUint64(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return strconv.ParseUint(s[2:], 16, 64)
	}
	return strconv.ParseUint(s, 10, 64)
}

func (t *TransactionType) UnmarshalText(text []byte) error {
	v, err := ParseTransactionType(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func (t TransactionType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
