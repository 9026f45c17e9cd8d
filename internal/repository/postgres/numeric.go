package postgres

import (
	"math/big"

	"github.com/jackc/pgx/v5/pgtype"
)

// numeric converts an amount to a NUMERIC parameter. Nil maps to zero.
func numeric(v *big.Int) pgtype.Numeric {
	if v == nil {
		v = big.NewInt(0)
	}
	return pgtype.Numeric{Int: new(big.Int).Set(v), Valid: true}
}

// bigFrom converts a scanned NUMERIC(…,0) value back to a big integer.
func bigFrom(n pgtype.Numeric) *big.Int {
	if !n.Valid || n.Int == nil {
		return big.NewInt(0)
	}
	v := new(big.Int).Set(n.Int)
	if n.Exp > 0 {
		v.Mul(v, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n.Exp)), nil))
	}
	return v
}
