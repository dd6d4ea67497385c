package tx_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranvictor/l2plugins/tx"
)

func TestNewSignaturePadsValues(t *testing.T) {
	sig, err := tx.NewSignature(27, []byte{0x01}, []byte{0x02, 0x03})
	require.NoError(t, err)
	assert.Equal(t, uint64(27), sig.V)
	assert.Equal(t, byte(0x01), sig.R[31])
	assert.Equal(t, []byte{0x02, 0x03}, sig.S[30:])

	_, err = tx.NewSignature(27, make([]byte, 33), nil)
	assert.Error(t, err)
}

func TestStaticFeeToGethTx(t *testing.T) {
	gas := uint64(21000)
	to := common.HexToAddress("0x274b028b03A250cA03644E6c578D81f019eE1323")
	static := &tx.StaticFeeTransaction{
		Fields: tx.Fields{
			Type:     tx.TxTypeStatic,
			ChainID:  8453,
			Receiver: &to,
			Gas:      &gas,
			Value:    big.NewInt(10),
			Data:     []byte{},
		},
		GasPrice: big.NewInt(1_000_000_000),
	}

	gtx, err := static.ToGethTx()
	require.NoError(t, err)
	assert.Equal(t, uint8(types.LegacyTxType), gtx.Type())
	assert.Equal(t, gas, gtx.Gas())
	assert.Equal(t, &to, gtx.To())
	assert.Equal(t, int64(1_000_000_000), gtx.GasPrice().Int64())

	encoded, err := tx.Encode(static)
	require.NoError(t, err)
	assert.NotEmpty(t, encoded)
}

func TestDynamicFeeToGethTx(t *testing.T) {
	sig, err := tx.NewSignature(1, []byte{0xaa}, []byte{0xbb})
	require.NoError(t, err)
	dynamic := &tx.DynamicFeeTransaction{
		Fields: tx.Fields{
			Type:      tx.TxTypeDynamic,
			ChainID:   84532,
			Signature: sig,
		},
		MaxFee:         big.NewInt(100),
		MaxPriorityFee: big.NewInt(2),
	}

	gtx, err := dynamic.ToGethTx()
	require.NoError(t, err)
	assert.Equal(t, uint8(types.DynamicFeeTxType), gtx.Type())
	assert.Equal(t, int64(84532), gtx.ChainId().Int64())
	assert.Equal(t, int64(2), gtx.GasTipCap().Int64())
	assert.Equal(t, int64(100), gtx.GasFeeCap().Int64())

	v, r, s := gtx.RawSignatureValues()
	assert.Equal(t, int64(1), v.Int64())
	assert.Equal(t, int64(0xaa), r.Int64())
	assert.Equal(t, int64(0xbb), s.Int64())

	encoded, err := tx.Encode(dynamic)
	require.NoError(t, err)
	assert.Equal(t, byte(types.DynamicFeeTxType), encoded[0])
}

func TestDynamicFeeRejectsTipAboveFeeCap(t *testing.T) {
	dynamic := &tx.DynamicFeeTransaction{
		Fields:         tx.Fields{Type: tx.TxTypeDynamic},
		MaxFee:         big.NewInt(1),
		MaxPriorityFee: big.NewInt(2),
	}
	_, err := dynamic.ToGethTx()
	assert.Error(t, err)
}

func TestAccessListToGethTx(t *testing.T) {
	list := types.AccessList{{Address: common.HexToAddress("0x01"), StorageKeys: []common.Hash{{}}}}
	al := &tx.AccessListTransaction{
		Fields:     tx.Fields{Type: tx.TxTypeAccessList, ChainID: 81457},
		GasPrice:   big.NewInt(5),
		AccessList: list,
	}
	gtx, err := al.ToGethTx()
	require.NoError(t, err)
	assert.Equal(t, uint8(types.AccessListTxType), gtx.Type())
	assert.Equal(t, list, gtx.AccessList())
	assert.False(t, al.Common().IsSigned())
}
