package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tranvictor/l2plugins/tx"
)

type GasLimitPolicy uint8

const (
	// GasLimitAuto lets the provider estimate the gas of each transaction.
	GasLimitAuto GasLimitPolicy = iota
	// GasLimitMax uses the block gas limit of the provider.
	GasLimitMax
	// GasLimitExact uses GasLimit.Value for every transaction.
	GasLimitExact
)

// GasLimit is "auto", "max" or an exact amount of gas.
type GasLimit struct {
	Policy GasLimitPolicy
	Value  uint64
}

var (
	AutoGasLimit = GasLimit{Policy: GasLimitAuto}
	MaxGasLimit  = GasLimit{Policy: GasLimitMax}
)

func ExactGasLimit(v uint64) GasLimit {
	return GasLimit{Policy: GasLimitExact, Value: v}
}

func (g GasLimit) String() string {
	switch g.Policy {
	case GasLimitAuto:
		return "auto"
	case GasLimitMax:
		return "max"
	}
	return strconv.FormatUint(g.Value, 10)
}

func ParseGasLimit(s string) (GasLimit, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "auto":
		return AutoGasLimit, nil
	case "max":
		return MaxGasLimit, nil
	}
	v, err := tx.ParseUint64(s)
	if err != nil {
		return GasLimit{}, fmt.Errorf("invalid gas limit %q, expected \"auto\", \"max\" or an integer", s)
	}
	return ExactGasLimit(v), nil
}

// gasLimitFromAny reads the values yaml and toml decoders produce.
func gasLimitFromAny(v any) (GasLimit, error) {
	switch t := v.(type) {
	case int:
		if t < 0 {
			return GasLimit{}, fmt.Errorf("gas limit can't be negative")
		}
		return ExactGasLimit(uint64(t)), nil
	case int64:
		if t < 0 {
			return GasLimit{}, fmt.Errorf("gas limit can't be negative")
		}
		return ExactGasLimit(uint64(t)), nil
	case uint64:
		return ExactGasLimit(t), nil
	case string:
		return ParseGasLimit(t)
	}
	return GasLimit{}, fmt.Errorf("invalid gas limit %v (%T)", v, v)
}

func (g GasLimit) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

func (g *GasLimit) UnmarshalText(text []byte) error {
	v, err := ParseGasLimit(string(text))
	if err != nil {
		return err
	}
	*g = v
	return nil
}
