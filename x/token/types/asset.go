package types

import (
	"fmt"
	"strings"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
)

var unit = math.LegacyNewDec(10_000)

// FormatAmount renders an amount of 1/10000 units, e.g. 12345 -> "1.2345 SYS".
func FormatAmount(amount int64, symbol string) string {
	sign := ""
	abs := uint64(amount)
	if amount < 0 {
		sign = "-"
		abs = uint64(-amount)
	}
	return fmt.Sprintf("%s%d.%04d %s", sign, abs/10_000, abs%10_000, symbol)
}

// ParseAmount parses "1.2345 SYS" into units, checking the symbol.
func ParseAmount(s, symbol string) (int64, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 || fields[1] != symbol {
		return 0, errorsmod.Wrapf(ErrInvalidAmount, "%q is not a %s amount", s, symbol)
	}
	if i := strings.IndexByte(fields[0], '.'); i >= 0 && len(fields[0])-i-1 > Precision {
		return 0, errorsmod.Wrapf(ErrInvalidAmount, "%q has more than %d decimals", s, Precision)
	}

	dec, err := math.LegacyNewDecFromStr(fields[0])
	if err != nil {
		return 0, errorsmod.Wrapf(ErrInvalidAmount, "%q: %s", s, err)
	}
	units := dec.Mul(unit).TruncateInt()
	if !units.IsInt64() {
		return 0, errorsmod.Wrapf(ErrInvalidAmount, "%q out of range", s)
	}
	return units.Int64(), nil
}
