package conversion

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/tranvictor/l2plugins/networks"
	"github.com/tranvictor/l2plugins/tx"
)

var ErrConversion = errors.New("conversion failed")

// units maps a denomination to its number of decimals relative to wei.
var units = map[string]uint64{
	"wei":        0,
	"kwei":       3,
	"babbage":    3,
	"mwei":       6,
	"lovelace":   6,
	"gwei":       9,
	"shannon":    9,
	"szabo":      12,
	"microether": 12,
	"finney":     15,
	"milliether": 15,
	"ether":      18,
}

// Manager converts loosely typed values such as "1 ether", "0x10" or 7 into
// the integer, byte and address forms transactions need.
type Manager struct {
	NativeTokenSymbol  string
	NativeTokenDecimal uint64
}

func NewManager() *Manager {
	return &Manager{NativeTokenSymbol: "ETH", NativeTokenDecimal: 18}
}

// ForNetwork returns a manager that also understands the native token symbol
// of n, e.g. "0.5 ETH".
func ForNetwork(n networks.Network) *Manager {
	return &Manager{
		NativeTokenSymbol:  n.GetNativeTokenSymbol(),
		NativeTokenDecimal: n.GetNativeTokenDecimal(),
	}
}

func fail(v any, target string, err error) error {
	if err == nil {
		return fmt.Errorf("%w: can't convert %v (%T) to %s", ErrConversion, v, v, target)
	}
	return fmt.Errorf("%w: can't convert %v (%T) to %s: %w", ErrConversion, v, v, target, err)
}

// ToWei converts an amount to wei. Strings may be plain integers, 0x hex or
// "<amount> <unit>" where unit is a denomination or the native token symbol.
func (m *Manager) ToWei(v any) (*big.Int, error) {
	switch t := v.(type) {
	case string:
		res, err := m.parseAmount(t)
		if err != nil {
			return nil, fail(v, "wei", err)
		}
		return res, nil
	case float64:
		if t < 0 || t != math.Trunc(t) {
			return nil, fail(v, "wei", fmt.Errorf("not a non-negative integer"))
		}
		res, _ := new(big.Float).SetFloat64(t).Int(nil)
		return res, nil
	}
	res, err := toBig(v)
	if err != nil {
		return nil, fail(v, "wei", err)
	}
	if res.Sign() < 0 {
		return nil, fail(v, "wei", fmt.Errorf("negative amount"))
	}
	return res, nil
}

func (m *Manager) parseAmount(str string) (*big.Int, error) {
	str = strings.TrimSpace(str)
	if str == "" {
		return nil, fmt.Errorf("empty string")
	}
	parts := strings.Fields(str)
	switch len(parts) {
	case 1:
		return parseInteger(str)
	case 2:
	default:
		return nil, fmt.Errorf("expected \"<amount> <unit>\"")
	}

	amount, unit := parts[0], strings.ToLower(parts[1])
	decimal, found := units[unit]
	if !found && strings.EqualFold(unit, m.NativeTokenSymbol) {
		decimal, found = m.NativeTokenDecimal, true
	}
	if !found {
		return nil, fmt.Errorf("unknown unit %q", parts[1])
	}
	res, err := RatStringToBig(amount, decimal)
	if err != nil {
		return nil, err
	}
	if res.Sign() < 0 {
		return nil, fmt.Errorf("negative amount")
	}
	return res, nil
}

func parseInteger(str string) (*big.Int, error) {
	var (
		res *big.Int
		ok  bool
	)
	if strings.HasPrefix(str, "0x") || strings.HasPrefix(str, "0X") {
		res, ok = new(big.Int).SetString(str[2:], 16)
	} else {
		res, ok = new(big.Int).SetString(str, 10)
	}
	if !ok {
		return nil, fmt.Errorf("invalid integer %q", str)
	}
	if res.Sign() < 0 {
		return nil, fmt.Errorf("negative amount")
	}
	return res, nil
}

func toBig(v any) (*big.Int, error) {
	switch t := v.(type) {
	case *big.Int:
		if t == nil {
			return nil, fmt.Errorf("nil big int")
		}
		return new(big.Int).Set(t), nil
	case big.Int:
		return new(big.Int).Set(&t), nil
	case *hexutil.Big:
		return new(big.Int).Set(t.ToInt()), nil
	case hexutil.Big:
		return new(big.Int).Set(t.ToInt()), nil
	case int:
		return big.NewInt(int64(t)), nil
	case int8:
		return big.NewInt(int64(t)), nil
	case int16:
		return big.NewInt(int64(t)), nil
	case int32:
		return big.NewInt(int64(t)), nil
	case int64:
		return big.NewInt(t), nil
	case uint:
		return new(big.Int).SetUint64(uint64(t)), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(t)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(t)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(t)), nil
	case uint64:
		return new(big.Int).SetUint64(t), nil
	case hexutil.Uint64:
		return new(big.Int).SetUint64(uint64(t)), nil
	}
	return nil, fmt.Errorf("unsupported type")
}

// ToUint64 converts integers and decimal or 0x hex strings.
func (m *Manager) ToUint64(v any) (uint64, error) {
	switch t := v.(type) {
	case string:
		res, err := tx.ParseUint64(t)
		if err != nil {
			return 0, fail(v, "uint64", err)
		}
		return res, nil
	case float64:
		if t < 0 || t != math.Trunc(t) || t > math.MaxUint64 {
			return 0, fail(v, "uint64", nil)
		}
		return uint64(t), nil
	}
	res, err := toBig(v)
	if err != nil {
		return 0, fail(v, "uint64", err)
	}
	if !res.IsUint64() {
		return 0, fail(v, "uint64", fmt.Errorf("out of range"))
	}
	return res.Uint64(), nil
}

// ToBytes converts 0x hex strings, quoted raw strings ("\"text\"") and
// fixed size byte values.
func (m *Manager) ToBytes(v any) ([]byte, error) {
	switch t := v.(type) {
	case []byte:
		return common.CopyBytes(t), nil
	case hexutil.Bytes:
		return common.CopyBytes(t), nil
	case [32]byte:
		return t[:], nil
	case common.Hash:
		return t.Bytes(), nil
	case common.Address:
		return t.Bytes(), nil
	case *big.Int:
		if t == nil || t.Sign() < 0 {
			return nil, fail(v, "bytes", nil)
		}
		return t.Bytes(), nil
	case string:
		str := strings.TrimSpace(t)
		if len(str) >= 2 && str[0] == '"' && str[len(str)-1] == '"' {
			return []byte(str[1 : len(str)-1]), nil
		}
		res, err := hexutil.Decode(str)
		if err != nil {
			return nil, fail(v, "bytes", err)
		}
		return res, nil
	}
	return nil, fail(v, "bytes", nil)
}

func (m *Manager) ToAddress(v any) (common.Address, error) {
	switch t := v.(type) {
	case common.Address:
		return t, nil
	case *common.Address:
		if t != nil {
			return *t, nil
		}
	case []byte:
		if len(t) == common.AddressLength {
			return common.BytesToAddress(t), nil
		}
	case string:
		str := strings.TrimSpace(t)
		if common.IsHexAddress(str) {
			return common.HexToAddress(str), nil
		}
	}
	return common.Address{}, fail(v, "address", nil)
}

// ToAccessList accepts a types.AccessList or any value with the JSON shape
// [{"address": ..., "storageKeys": [...]}], such as decoded YAML.
func (m *Manager) ToAccessList(v any) (types.AccessList, error) {
	switch t := v.(type) {
	case types.AccessList:
		return t, nil
	case []types.AccessTuple:
		return types.AccessList(t), nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fail(v, "access list", err)
	}
	res := types.AccessList{}
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fail(v, "access list", err)
	}
	return res, nil
}
