package ecosystem

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"github.com/tranvictor/l2plugins/conversion"
	"github.com/tranvictor/l2plugins/networks"
	"github.com/tranvictor/l2plugins/tx"
)

// CreateTransaction builds a transaction from a loosely spelled request.
//
// The type is taken from the request when given. Otherwise it is deduced
// from the fee fields: gas_price means static, max_fee or max_priority_fee
// means dynamic, access_list means access list, and anything else falls back
// to DefaultTransactionType. Confirmations, chain id and gas default to the
// active provider's network.
func (e *Ecosystem) CreateTransaction(req tx.Request) (tx.Transaction, error) {
	return e.create(req, e.activeTarget())
}

// CreateTransactionFor builds a transaction for n. Fields the request leaves
// out come from the active provider when it serves n, or from the ecosystem
// config of n when nothing is connected to it.
func (e *Ecosystem) CreateTransactionFor(n networks.Network, req tx.Request) (tx.Transaction, error) {
	if !strings.EqualFold(n.GetEcosystem(), e.name) {
		return nil, fmt.Errorf("%s:%s is not a network of %s", n.GetEcosystem(), n.GetName(), e.name)
	}
	return e.create(req, e.networkTarget(n))
}

// CreateTransactionFromOptions builds a transaction from already coerced
// options.
func (e *Ecosystem) CreateTransactionFromOptions(opts tx.Options) (tx.Transaction, error) {
	return e.fromOptions(opts, e.activeTarget())
}

func (e *Ecosystem) create(req tx.Request, t *target) (tx.Transaction, error) {
	var conv tx.Converter = conversion.NewManager()
	if t != nil {
		conv = t.converter()
	}
	opts, err := tx.ParseOptions(req, conv)
	if err != nil {
		return nil, err
	}
	return e.fromOptions(opts, t)
}

func (e *Ecosystem) fromOptions(opts tx.Options, t *target) (tx.Transaction, error) {
	version := e.deduceType(opts, t)

	fields := tx.Fields{
		Type:  version,
		Value: opts.Value.Value,
		Data:  opts.Data.Value,
	}

	switch {
	case opts.RequiredConfirmations.IsSet():
		fields.RequiredConfirmations = opts.RequiredConfirmations.Value
	case t != nil:
		fields.RequiredConfirmations = t.config.RequiredConfirmations
	}

	switch {
	case opts.ChainID.IsSet():
		fields.ChainID = opts.ChainID.Value
	case t != nil:
		fields.ChainID = t.chainID
	}

	switch {
	case opts.Gas.IsSet():
		gas := opts.Gas.Value
		fields.Gas = &gas
	case t != nil:
		fields.Gas = t.gasLimit()
	}

	if fields.Value == nil {
		fields.Value = new(big.Int)
	}
	if opts.Nonce.IsSet() {
		nonce := opts.Nonce.Value
		fields.Nonce = &nonce
	}
	if opts.Sender.IsSet() {
		fields.Sender = addressPtr(opts.Sender.Value)
	}
	if opts.Receiver.IsSet() {
		fields.Receiver = addressPtr(opts.Receiver.Value)
	}

	if opts.V.IsSet() && opts.R.IsSet() && opts.S.IsSet() {
		sig, err := tx.NewSignature(opts.V.Value, opts.R.Value, opts.S.Value)
		if err != nil {
			return nil, err
		}
		fields.Signature = sig
	} else if opts.V.IsSet() || opts.R.IsSet() || opts.S.IsSet() {
		logrus.Debug("incomplete signature values, building an unsigned transaction")
	}

	switch version {
	case tx.TxTypeStatic, tx.TxTypeSecondStatic:
		// a null gas_price only steered the type deduction
		return &tx.StaticFeeTransaction{
			Fields:   fields,
			GasPrice: opts.GasPrice.Value,
		}, nil
	case tx.TxTypeDynamic:
		return &tx.DynamicFeeTransaction{
			Fields:         fields,
			MaxFee:         opts.MaxFee.Value,
			MaxPriorityFee: opts.MaxPriorityFee.Value,
			AccessList:     opts.AccessList.Value,
		}, nil
	case tx.TxTypeAccessList:
		return &tx.AccessListTransaction{
			Fields:     fields,
			GasPrice:   opts.GasPrice.Value,
			AccessList: opts.AccessList.Value,
		}, nil
	}
	return nil, &tx.UnsupportedTransactionTypeError{Type: version}
}

func (e *Ecosystem) deduceType(opts tx.Options, t *target) tx.TransactionType {
	switch {
	case opts.Type.IsSet():
		return opts.Type.Value
	case opts.GasPrice.Present:
		return tx.TxTypeStatic
	case opts.MaxFee.Present || opts.MaxPriorityFee.Present:
		return tx.TxTypeDynamic
	case opts.AccessList.Present:
		return tx.TxTypeAccessList
	}
	return e.defaultTransactionType(t)
}

func addressPtr(a common.Address) *common.Address {
	return &a
}
