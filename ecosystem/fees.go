package ecosystem

import (
	"context"
	"fmt"
	"math/big"

	"github.com/sirupsen/logrus"

	"github.com/tranvictor/l2plugins/providers"
	"github.com/tranvictor/l2plugins/tx"
)

// FillFees sets the fee fields a transaction leaves empty from the levels
// the provider reports. Fees given in the request are kept.
//
// A missing max fee is twice the latest base fee plus the priority fee, so
// the transaction stays includable over a few blocks of rising base fee.
func FillFees(ctx context.Context, t tx.Transaction, s providers.FeeSuggester) error {
	switch v := t.(type) {
	case *tx.StaticFeeTransaction:
		if v.GasPrice != nil {
			return nil
		}
		price, err := s.SuggestGasPrice(ctx)
		if err != nil {
			return fmt.Errorf("couldn't suggest gas price: %w", err)
		}
		v.GasPrice = price
	case *tx.AccessListTransaction:
		if v.GasPrice != nil {
			return nil
		}
		price, err := s.SuggestGasPrice(ctx)
		if err != nil {
			return fmt.Errorf("couldn't suggest gas price: %w", err)
		}
		v.GasPrice = price
	case *tx.DynamicFeeTransaction:
		if v.MaxPriorityFee == nil {
			tip, err := s.SuggestGasTipCap(ctx)
			if err != nil {
				return fmt.Errorf("couldn't suggest priority fee: %w", err)
			}
			v.MaxPriorityFee = tip
		}
		if v.MaxFee != nil {
			return nil
		}
		baseFee, err := s.BaseFee(ctx)
		if err != nil {
			return fmt.Errorf("couldn't read base fee: %w", err)
		}
		if baseFee == nil {
			baseFee = new(big.Int)
		}
		v.MaxFee = new(big.Int).Add(new(big.Int).Mul(baseFee, big.NewInt(2)), v.MaxPriorityFee)
	default:
		return &tx.UnsupportedTransactionTypeError{Type: t.TxType()}
	}
	logrus.WithField("type", t.TxType().String()).Debug("filled fees from provider")
	return nil
}
