// Package randompkg provides functionality for generating random test fixtures.
package randompkg

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/go-vendo/vending-machine/pkg/coinpkg"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// Intn is a shortcut for generating a random integer between 0 and max using crypto/rand.
func Intn(max int) int64 {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		panic(err)
	}

	return nBig.Int64()
}

// Int64Between generates a random integer between min and max.
func Int64Between(min, max int64) int64 {
	return min + Intn(int(max-min))
}

// String generates a random string of length n.
func String(n int) string {
	var sb strings.Builder

	k := len(alphabet)

	for i := 0; i < n; i++ {
		c := alphabet[Intn(k)]

		_ = sb.WriteByte(c) // The returned err is always nil.
	}

	return sb.String()
}

// Owner generates a random owner name.
func Owner() string {
	return String(6)
}

// Email generates a random email.
func Email() string {
	return fmt.Sprintf("%s@email.com", String(10))
}

// Coin generates a random accepted coin denomination.
func Coin() int64 {
	return coinpkg.Denominations[Intn(len(coinpkg.Denominations))]
}

// Coins generates n random accepted coins.
func Coins(n int) []int64 {
	coins := make([]int64, n)
	for i := range coins {
		coins[i] = Coin()
	}

	return coins
}

// Price generates a random product price between min and max that is a
// multiple of the smallest coin.
func Price(min, max int64) int64 {
	smallest := coinpkg.Denominations[len(coinpkg.Denominations)-1]
	steps := (max - min) / smallest

	return min + Intn(int(steps))*smallest
}
