package conversion

import (
	"fmt"
	"math/big"
	"strings"
)

// RatStringToBig converts a decimal amount string to a big int with the
// given number of decimals. The scaled amount has to be integral.
// Example:
// - RatStringToBig("1.5", 18) = 1500000000000000000
// - RatStringToBig("1.5", 0) fails
func RatStringToBig(value string, decimal uint64) (*big.Int, error) {
	r, success := new(big.Rat).SetString(value)
	if !success {
		return nil, fmt.Errorf("couldn't parse %q as a number", value)
	}
	r.Mul(r, new(big.Rat).SetInt(pow10(decimal)))
	if !r.IsInt() {
		return nil, fmt.Errorf("%s with %d decimals is not an integer", value, decimal)
	}
	return new(big.Int).Set(r.Num()), nil
}

// BigToFloatString converts a big int to its decimal representation with
// decimal digits after the point, trailing zeros trimmed.
// Example:
// - BigToFloatString(1100, 3) = "1.1"
// - BigToFloatString(1100, 2) = "11"
func BigToFloatString(value *big.Int, decimal uint64) string {
	r := new(big.Rat).SetFrac(value, pow10(decimal))
	res := r.FloatString(int(decimal))
	if strings.Contains(res, ".") {
		res = strings.TrimRight(res, "0")
		res = strings.TrimSuffix(res, ".")
	}
	return res
}

func pow10(n uint64) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), new(big.Int).SetUint64(n), nil)
}
