package block

import (
	"math/big"

	"github.com/umbra-network/go-umbra/internal/crypto/hash"
)

// maxTarget is the target for difficulty 1: any 256-bit digest passes.
var maxTarget = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// CheckDifficulty reports whether a proof-of-work digest meets the given
// difficulty, interpreting the digest as a big-endian integer against
// target = maxTarget / difficulty.
func CheckDifficulty(h hash.Hash, difficulty uint64) bool {
	if difficulty == 0 {
		difficulty = 1
	}
	target := new(big.Int).Div(maxTarget, new(big.Int).SetUint64(difficulty))
	return new(big.Int).SetBytes(h[:]).Cmp(target) <= 0
}
