package tx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tranvictor/l2plugins/tx"
)

func TestResolveAliasesRenamesSingleAlias(t *testing.T) {
	for _, alias := range tx.Aliases {
		for _, spelling := range alias.Aliases {
			got := tx.ResolveAliases(tx.Request{spelling: 5})
			assert.Equal(t, tx.Request{alias.Key: 5}, got, "spelling %s", spelling)
		}
	}
}

func TestResolveAliasesPrecedence(t *testing.T) {
	// canonical key beats every alias
	got := tx.ResolveAliases(tx.Request{
		"max_fee":      1,
		"maxFeePerGas": 2,
		"maxFee":       3,
	})
	assert.Equal(t, tx.Request{"max_fee": 1}, got)

	// without the canonical key the first listed alias wins
	got = tx.ResolveAliases(tx.Request{
		"maxPriorityFee":           3,
		"maxPriorityFeePerGas":     2,
		"max_priority_fee_per_gas": 1,
	})
	assert.Equal(t, tx.Request{"max_priority_fee": 1}, got)

	got = tx.ResolveAliases(tx.Request{
		"transaction_type": 2,
		"txn_type":         1,
	})
	assert.Equal(t, tx.Request{"type": 1}, got)
}

func TestResolveAliasesInputOverridesData(t *testing.T) {
	got := tx.ResolveAliases(tx.Request{"data": "0x01", "input": "0x02"})
	assert.Equal(t, tx.Request{"data": "0x02"}, got)

	got = tx.ResolveAliases(tx.Request{"input": nil})
	assert.Equal(t, tx.Request{"data": nil}, got)
}

func TestResolveAliasesDoesNotMutateInput(t *testing.T) {
	req := tx.Request{"gasPrice": 1}
	_ = tx.ResolveAliases(req)
	assert.Equal(t, tx.Request{"gasPrice": 1}, req)
}

func TestParseTransactionType(t *testing.T) {
	for in, want := range map[string]tx.TransactionType{
		"0":           tx.TxTypeStatic,
		"0x0":         tx.TxTypeStatic,
		"0x2":         tx.TxTypeDynamic,
		"1":           tx.TxTypeAccessList,
		"0x7e":        tx.TxTypeSecondStatic,
		"static":      tx.TxTypeStatic,
		"DYNAMIC":     tx.TxTypeDynamic,
		"access_list": tx.TxTypeAccessList,
		"02":          tx.TxTypeDynamic,
		"010":         tx.TransactionType(10),
	} {
		got, err := tx.ParseTransactionType(in)
		assert.NoError(t, err)
		assert.Equal(t, want, got, "input %s", in)
	}
	_, err := tx.ParseTransactionType("blob-ish")
	assert.Error(t, err)
	_, err = tx.ParseTransactionType("0b10")
	assert.Error(t, err)
}
