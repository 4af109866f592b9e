// Package refnum generates the human-readable reference numbers printed on
// quotes and support tickets, e.g. QT-M5X2K9ZQ-4F7A.
package refnum

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"
)

const (
	QuotePrefix  = "QT"
	TicketPrefix = "TK"

	suffixLen = 4
	alphabet  = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// Generator builds reference numbers from a clock and a random source.
type Generator struct {
	now func() time.Time
}

// New returns a Generator using the wall clock.
func New() *Generator {
	return &Generator{now: time.Now}
}

// NewWithClock returns a Generator reading time from now.
func NewWithClock(now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{now: now}
}

// Next returns "<prefix>-<BASE36(epoch millis)>-<4 random base36 chars>".
func (g *Generator) Next(prefix string) (string, error) {
	stamp := strings.ToUpper(strconv.FormatInt(g.now().UnixMilli(), 36))
	suffix, err := randomSuffix(suffixLen)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s-%s", prefix, stamp, suffix), nil
}

func randomSuffix(n int) (string, error) {
	max := big.NewInt(int64(len(alphabet)))
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate reference suffix: %w", err)
		}
		out[i] = alphabet[idx.Int64()]
	}
	return string(out), nil
}
