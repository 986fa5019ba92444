package shoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack-advisor/internal/card"
	"github.com/lox/blackjack-advisor/internal/count"
	"github.com/lox/blackjack-advisor/internal/randutil"
)

func TestNewShoe(t *testing.T) {
	s := New(6, randutil.New(1))
	assert.Equal(t, 312, s.Remaining())
	assert.Equal(t, 6, s.Decks())

	seen := map[card.Rank]int{}
	for {
		r, ok := s.Draw()
		if !ok {
			break
		}
		seen[r]++
	}
	assert.Len(t, seen, 13)
	for r, n := range seen {
		assert.Equal(t, 24, n, r)
	}
	assert.Equal(t, 0, s.Remaining())
}

func TestShuffleIsSeeded(t *testing.T) {
	a := New(2, randutil.New(99)).DrawN(20)
	b := New(2, randutil.New(99)).DrawN(20)
	c := New(2, randutil.New(100)).DrawN(20)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestDrawN(t *testing.T) {
	s := New(1, randutil.New(3))
	assert.Len(t, s.DrawN(50), 50)
	assert.Len(t, s.DrawN(10), 2)
	assert.Empty(t, s.DrawN(1))

	s.Reset()
	assert.Equal(t, 52, s.Remaining())
}

func TestZeroDecks(t *testing.T) {
	assert.Equal(t, 52, New(0, randutil.New(1)).Remaining())
}

// A balanced system returns to zero once the whole shoe has been counted
func TestFullShoeBalances(t *testing.T) {
	for _, decks := range []int{1, 6, 8} {
		s := New(decks, randutil.New(int64(decks)))
		c, err := count.NewCounter(decks, count.WongHalves())
		require.NoError(t, err)

		for _, r := range s.DrawN(s.Remaining()) {
			require.True(t, c.AddCard(r))
		}

		assert.InDelta(t, 0, c.RunningCount(), 1e-9)
		assert.Equal(t, 0.0, c.TrueCount())
		assert.Equal(t, 1.0, c.Penetration())
	}
}
