package ast

import (
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// IsHex reports whether the literal was written in 0x notation.
func (n *Number) IsHex() bool {
	return len(n.Raw) > 2 && n.Raw[0] == '0' && (n.Raw[1] == 'x' || n.Raw[1] == 'X')
}

// Decimal returns the exact value of the literal as written.
// Value is a float64 and loses precision for long literals; Decimal does not,
// for both decimal and hexadecimal notation.
func (n *Number) Decimal() decimal.Decimal {
	if n.IsHex() {
		if i, ok := new(big.Int).SetString(n.Raw[2:], 16); ok {
			return decimal.NewFromBigInt(i, 0)
		}
	}

	if n.Raw != "" {
		if d, err := decimal.NewFromString(normalizeDecimal(n.Raw)); err == nil {
			return d
		}
	}

	if math.IsNaN(n.Value) || math.IsInf(n.Value, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(n.Value)
}

// normalizeDecimal rewrites the lexer's accepted shapes (".5", "1.", "1.e3")
// into forms decimal.NewFromString accepts.
func normalizeDecimal(raw string) string {
	if strings.HasPrefix(raw, ".") {
		raw = "0" + raw
	}

	dot := strings.IndexByte(raw, '.')
	if dot < 0 {
		return raw
	}
	if dot == len(raw)-1 || raw[dot+1] == 'e' || raw[dot+1] == 'E' {
		raw = raw[:dot] + raw[dot+1:]
	}
	return raw
}
