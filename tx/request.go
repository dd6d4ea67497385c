package tx

import (
	"github.com/sirupsen/logrus"
)

// Request is the loosely spelled keyword record a caller hands to the
// transaction builder.
type Request map[string]any

// Canonical field names.
const (
	KeyType                  = "type"
	KeyChainID               = "chain_id"
	KeyNonce                 = "nonce"
	KeySender                = "sender"
	KeyReceiver              = "receiver"
	KeyGas                   = "gas"
	KeyGasPrice              = "gas_price"
	KeyMaxFee                = "max_fee"
	KeyMaxPriorityFee        = "max_priority_fee"
	KeyValue                 = "value"
	KeyData                  = "data"
	KeyInput                 = "input"
	KeyAccessList            = "access_list"
	KeyRequiredConfirmations = "required_confirmations"
	KeyV                     = "v"
	KeyR                     = "r"
	KeyS                     = "s"
)

// Alias maps a canonical key to its other accepted spellings. When several
// spellings are supplied together the canonical key wins, then the aliases in
// the listed order.
type Alias struct {
	Key     string
	Aliases []string
}

// Aliases is applied in order by ResolveAliases.
var Aliases = []Alias{
	{KeyMaxPriorityFee, []string{"max_priority_fee_per_gas", "maxPriorityFeePerGas", "maxPriorityFee"}},
	{KeyMaxFee, []string{"max_fee_per_gas", "maxFeePerGas", "maxFee"}},
	{KeyGas, []string{"gas_limit", "gasLimit"}},
	{KeyGasPrice, []string{"gasPrice"}},
	{KeyType, []string{"txType", "tx_type", "txnType", "txn_type", "transactionType", "transaction_type"}},
	{KeyChainID, []string{"chainId", "chainID"}},
	{KeyAccessList, []string{"accessList"}},
	{KeyRequiredConfirmations, []string{"requiredConfirmations"}},
	{KeySender, []string{"from"}},
	{KeyReceiver, []string{"to"}},
}

// ResolveAliases returns a copy of req where every field is stored under its
// canonical key only. "input" is the one spelling that beats its canonical
// key: it replaces "data" when both are present.
func ResolveAliases(req Request) Request {
	res := make(Request, len(req))
	for k, v := range req {
		res[k] = v
	}

	for _, alias := range Aliases {
		resolveKey(res, alias.Key, alias.Aliases)
	}

	if input, found := res[KeyInput]; found {
		if _, hasData := res[KeyData]; hasData {
			logrus.WithField("dropped", KeyData).Debug("both input and data supplied, using input")
		}
		res[KeyData] = input
		delete(res, KeyInput)
	}
	return res
}

func resolveKey(data Request, key string, aliases []string) {
	_, winnerFound := data[key]
	winner := key
	for _, alt := range aliases {
		v, found := data[alt]
		if !found {
			continue
		}
		delete(data, alt)
		if winnerFound {
			logrus.WithFields(logrus.Fields{
				"field":   key,
				"used":    winner,
				"dropped": alt,
			}).Debug("conflicting spellings for transaction field")
			continue
		}
		data[key] = v
		winner = alt
		winnerFound = true
	}
}

// Has tells whether key is present, even with a nil value.
func (r Request) Has(key string) bool {
	_, found := r[key]
	return found
}

// HasNonNil tells whether key is present with a non-nil value.
func (r Request) HasNonNil(key string) bool {
	v, found := r[key]
	return found && v != nil
}
