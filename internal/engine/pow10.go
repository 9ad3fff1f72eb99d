package engine

import "math/big"

// bpow10 is a cache of powers of 10, where bpow10[x] = 10^x.
var bpow10 = func() [128]*big.Int {
	var cache [128]*big.Int
	cache[0] = big.NewInt(1)
	ten := big.NewInt(10)
	for i := 1; i < len(cache); i++ {
		cache[i] = new(big.Int).Mul(cache[i-1], ten)
	}
	return cache
}()

// Pow10 returns 10^power. The result may be shared and must not be modified.
// If power is negative, the result is unpredictable.
func Pow10(power int) *big.Int {
	if power < len(bpow10) {
		return bpow10[power]
	}
	return new(big.Int).Exp(bpow10[1], big.NewInt(int64(power)), nil)
}
