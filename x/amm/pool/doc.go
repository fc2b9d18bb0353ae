// Package pool is the accounting engine behind every pair: constant-product
// swap pricing with commission and operator fee deduction, share issuance on
// deposit and share redemption on withdrawal.
//
// All functions are pure. Inputs and outputs are 128-bit amounts held in
// math.Int; intermediate products are computed on math/big and narrowed back,
// failing with types.ErrOverflow instead of wrapping.
package pool
