// internal/deck/deck.go
//
// Value pool management for the game board.
//
// Responsibilities:
//   - Load the pool of distinct card values (id + visual asset) from a file or
//     fall back to the embedded default in assets/values.txt.
//   - Validate that ids are unique and well formed.
//   - Supply helpers to size the pool for a given board.
//
// File format: one value per line, "<id> <asset>", whitespace separated.
// Blank lines and lines starting with # are ignored. The asset column is optional.

package deck

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/robalobadob/memory/apps/go-server/assets"
)

// Value is one distinct card face.
type Value struct {
	ID    string `json:"id"`
	Asset string `json:"asset,omitempty"`
}

// Pool is an ordered set of distinct values. A card's pair value is an index into it.
type Pool []Value

var (
	ErrEmptyPool   = errors.New("deck: value pool is empty")
	ErrDuplicateID = errors.New("deck: duplicate value id")
)

// Load reads a pool from path, or the embedded default when path is empty.
func Load(path string) (Pool, error) {
	var lines []string
	var err error
	if path == "" {
		lines, err = assets.ValueLines()
	} else {
		lines, err = readFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("deck: load %q: %w", path, err)
	}
	return Parse(lines)
}

// Parse converts "id asset" lines into a validated Pool.
func Parse(lines []string) (Pool, error) {
	pool := make(Pool, 0, len(lines))
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		v := Value{ID: strings.ToLower(fields[0])}
		if len(fields) > 1 {
			v.Asset = fields[1]
		}
		pool = append(pool, v)
	}
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}
	if err := pool.Validate(); err != nil {
		return nil, err
	}
	return pool, nil
}

// Validate reports duplicate ids.
func (p Pool) Validate() error {
	seen := make(map[string]struct{}, len(p))
	for _, v := range p {
		if _, ok := seen[v.ID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateID, v.ID)
		}
		seen[v.ID] = struct{}{}
	}
	return nil
}

// Take returns the first n values, or the whole pool when n exceeds its size.
func (p Pool) Take(n int) Pool {
	if n < 0 {
		n = 0
	}
	if n > len(p) {
		n = len(p)
	}
	return append(Pool(nil), p[:n]...)
}

// ForBoard picks the largest prefix of the pool that fills totalCards with
// whole pairs, i.e. the largest size k with totalCards % k == 0 and an even
// totalCards/k. It returns nil when no size of at least 2 fits.
func (p Pool) ForBoard(totalCards int) Pool {
	for k := len(p); k >= 2; k-- {
		if totalCards%k == 0 && (totalCards/k)%2 == 0 {
			return p.Take(k)
		}
	}
	return nil
}

// readFile loads the non-comment lines of a pool file.
func readFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			out = append(out, line)
		}
	}
	return out, sc.Err()
}
