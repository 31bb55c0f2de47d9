package queue

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/rand"
	"time"
)

// RNGFactory produces the pseudo-random generator used for new-item
// sampling. It must be a pure function of its inputs so a batch can be
// reproduced exactly for the debug trace; implementations must never touch
// package-global random state.
type RNGFactory func(learnerID string, day time.Time) *rand.Rand

// SeededRNG derives a generator from (learner, calendar date). The same
// learner gets the same sample all day; the sample rotates at midnight UTC.
func SeededRNG(learnerID string, day time.Time) *rand.Rand {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s:%s", learnerID, day.UTC().Format("2006-01-02"))))
	seed := int64(binary.BigEndian.Uint64(sum[:8]))
	return rand.New(rand.NewSource(seed))
}
