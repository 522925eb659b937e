package board

// Source is the random draw used for pair assignment. *math/rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// AssignPairValues returns the pair value (pool index) for each of totalCards
// positions in creation order.
//
// Values are drawn in rounds: within a round a value is never drawn twice, and
// the round resets once every value has been used. A draw equal to the
// immediately preceding one is always rejected, so no two cards adjacent in
// creation order share a value. Each value ends up used totalCards/poolSize times.
func AssignPairValues(totalCards, poolSize int, rng Source) ([]int, error) {
	if err := validatePool(totalCards, poolSize); err != nil {
		return nil, err
	}
	out := make([]int, 0, totalCards)
	used := make([]bool, poolSize)
	usedInRound := 0
	prev := -1
	for len(out) < totalCards {
		v := rng.Intn(poolSize)
		if used[v] || v == prev {
			continue
		}
		used[v] = true
		usedInRound++
		out = append(out, v)
		prev = v
		if usedInRound == poolSize {
			clear(used)
			usedInRound = 0
		}
	}
	return out, nil
}
