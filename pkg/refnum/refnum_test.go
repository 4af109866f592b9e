package refnum

import (
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quotePattern = regexp.MustCompile(`^QT-[A-Z0-9]+-[A-Z0-9]{4}$`)

func TestNextMatchesQuoteFormat(t *testing.T) {
	g := New()
	for i := 0; i < 50; i++ {
		got, err := g.Next(QuotePrefix)
		require.NoError(t, err)
		assert.Regexp(t, quotePattern, got)
	}
}

func TestNextEncodesClockInBase36(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	g := NewWithClock(func() time.Time { return fixed })

	got, err := g.Next(TicketPrefix)
	require.NoError(t, err)

	parts := strings.Split(got, "-")
	require.Len(t, parts, 3)
	assert.Equal(t, "TK", parts[0])

	millis, err := strconv.ParseInt(strings.ToLower(parts[1]), 36, 64)
	require.NoError(t, err)
	assert.Equal(t, fixed.UnixMilli(), millis)
}
