package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack-advisor/internal/card"
)

func dealPlayer(s *State, cards string) {
	for _, r := range ranks(cards) {
		s.AddPlayerCard(r)
	}
}

func totalCards(s *State) int {
	n := 0
	for _, h := range s.Hands() {
		n += h.Len()
	}
	return n
}

func TestNewState(t *testing.T) {
	s := NewState(DefaultRules())

	require.Len(t, s.Hands(), 1)
	assert.Equal(t, 0, s.CurrentHandIndex())
	assert.True(t, s.IsNewRound())
	assert.Empty(t, s.PlayerCards())

	_, ok := s.DealerUpCard()
	assert.False(t, ok)

	t.Run("zero max hands uses default", func(t *testing.T) {
		s := NewState(Rules{})
		assert.Equal(t, DefaultMaxHands, s.Rules().MaxHands)
	})
}

func TestStateDealerCards(t *testing.T) {
	s := NewState(DefaultRules())

	s.SetDealerCard(card.Nine)
	s.AddDealerCard(card.Five)
	s.AddDealerCard(card.King)

	up, ok := s.DealerUpCard()
	require.True(t, ok)
	assert.Equal(t, card.Nine, up)
	assert.Equal(t, ranks("9,5,K"), s.DealerCards())
	assert.False(t, s.IsNewRound())

	r, ok := s.RemoveLastDealerCard()
	require.True(t, ok)
	assert.Equal(t, card.King, r)

	s.SetDealerCard(card.Ace)
	assert.Equal(t, ranks("A"), s.DealerCards())

	s.RemoveLastDealerCard()
	_, ok = s.RemoveLastDealerCard()
	assert.False(t, ok)
}

func TestStateSplit(t *testing.T) {
	t.Run("pair splits into two one card hands", func(t *testing.T) {
		s := NewState(DefaultRules())
		dealPlayer(s, "8,8")

		require.True(t, s.CanSplitCurrentHand())
		require.True(t, s.SplitCurrentHand())

		hands := s.Hands()
		require.Len(t, hands, 2)
		for _, h := range hands {
			assert.Equal(t, ranks("8"), h.Cards())
			assert.True(t, h.IsSplitHand())
			assert.False(t, h.SplitAces())
			assert.Equal(t, Active, h.Status())
		}
		assert.Equal(t, 2, totalCards(s))
		assert.Equal(t, 0, s.CurrentHandIndex())
	})

	t.Run("new hand is inserted after the current hand", func(t *testing.T) {
		s := NewState(DefaultRules())
		dealPlayer(s, "8,8")
		require.True(t, s.SplitCurrentHand())

		require.True(t, s.SetCurrentHandIndex(1))
		s.AddPlayerCard(card.Three)

		// second card on the first hand makes another pair
		require.True(t, s.SetCurrentHandIndex(0))
		s.AddPlayerCard(card.Eight)
		require.True(t, s.SplitCurrentHand())

		hands := s.Hands()
		require.Len(t, hands, 3)
		assert.Equal(t, ranks("8"), hands[0].Cards())
		assert.Equal(t, ranks("8"), hands[1].Cards())
		assert.Equal(t, ranks("8,3"), hands[2].Cards())
	})

	t.Run("split aces are flagged and do not resplit", func(t *testing.T) {
		s := NewState(DefaultRules())
		dealPlayer(s, "A,A")
		require.True(t, s.SplitCurrentHand())

		for _, h := range s.Hands() {
			assert.True(t, h.SplitAces())
		}

		s.AddPlayerCard(card.Ace)
		assert.False(t, s.CanSplitCurrentHand())
		assert.False(t, s.SplitCurrentHand())
		assert.Len(t, s.Hands(), 2)
	})

	t.Run("resplit aces when the rules allow it", func(t *testing.T) {
		s := NewState(Rules{MaxHands: 4, ResplitAces: true})
		dealPlayer(s, "A,A")
		require.True(t, s.SplitCurrentHand())
		s.AddPlayerCard(card.Ace)
		assert.True(t, s.SplitCurrentHand())
		assert.Len(t, s.Hands(), 3)
	})

	t.Run("split ace plus ten is not blackjack", func(t *testing.T) {
		s := NewState(DefaultRules())
		dealPlayer(s, "A,A")
		require.True(t, s.SplitCurrentHand())
		s.AddPlayerCard(card.King)

		h, ok := s.HandAt(0)
		require.True(t, ok)
		assert.Equal(t, Active, h.Status())
		assert.Equal(t, 0, s.CurrentHandIndex())
	})

	t.Run("hand limit", func(t *testing.T) {
		s := NewState(Rules{MaxHands: 2})
		dealPlayer(s, "8,8")
		require.True(t, s.SplitCurrentHand())
		s.AddPlayerCard(card.Eight)

		assert.True(t, s.CurrentHand().CanBeSplit())
		assert.False(t, s.CanSplitCurrentHand())
		assert.False(t, s.SplitCurrentHand())
		assert.Len(t, s.Hands(), 2)
	})

	t.Run("refused without a pair", func(t *testing.T) {
		s := NewState(DefaultRules())
		dealPlayer(s, "10,K")
		assert.False(t, s.SplitCurrentHand())
		assert.Len(t, s.Hands(), 1)
		assert.Equal(t, ranks("10,K"), s.PlayerCards())
	})

	t.Run("cursor stays valid for every rank", func(t *testing.T) {
		for _, r := range card.Ranks() {
			s := NewState(DefaultRules())
			s.AddPlayerCard(r)
			s.AddPlayerCard(r)
			require.True(t, s.SplitCurrentHand(), "rank %s", r)

			assert.Len(t, s.Hands(), 2)
			assert.Equal(t, 2, totalCards(s))
			idx := s.CurrentHandIndex()
			assert.True(t, idx >= 0 && idx < len(s.Hands()))
		}
	})
}

func TestStateTurnProgression(t *testing.T) {
	t.Run("bust advances to the next hand", func(t *testing.T) {
		s := NewState(DefaultRules())
		dealPlayer(s, "8,8")
		require.True(t, s.SplitCurrentHand())

		dealPlayer(s, "10,10")
		assert.Equal(t, Busted, s.Hands()[0].Status())
		assert.Equal(t, 1, s.CurrentHandIndex())
	})

	t.Run("stand advances and wraps", func(t *testing.T) {
		s := NewState(DefaultRules())
		dealPlayer(s, "8,8")
		require.True(t, s.SplitCurrentHand())

		s.SetCurrentHandIndex(1)
		s.StandCurrentHand()
		assert.Equal(t, 0, s.CurrentHandIndex())
		assert.Equal(t, 1, s.ActiveHandCount())

		s.StandCurrentHand()
		assert.True(t, s.AllHandsComplete())
		assert.Equal(t, 0, s.ActiveHandCount())
		assert.False(t, s.MoveToNextActiveHand())
	})

	t.Run("double receives one card then moves on", func(t *testing.T) {
		s := NewState(DefaultRules())
		dealPlayer(s, "5,5")
		require.True(t, s.SplitCurrentHand())
		s.AddPlayerCard(card.Six)

		require.True(t, s.DoubleDownCurrentHand())
		assert.Equal(t, 0, s.CurrentHandIndex())

		s.AddPlayerCard(card.Nine)
		assert.Equal(t, 1, s.CurrentHandIndex())

		h, _ := s.HandAt(0)
		assert.Equal(t, Doubled, h.Status())
		assert.Equal(t, ranks("5,6,9"), h.Cards())
	})

	t.Run("double refused after three cards", func(t *testing.T) {
		s := NewState(DefaultRules())
		dealPlayer(s, "2,3,4")
		assert.False(t, s.DoubleDownCurrentHand())
		assert.Equal(t, Active, s.CurrentHand().Status())
	})

	t.Run("scan is left to right after the cursor", func(t *testing.T) {
		s := NewState(Rules{MaxHands: 8})
		dealPlayer(s, "8,8")
		require.True(t, s.SplitCurrentHand())
		s.AddPlayerCard(card.Eight)
		require.True(t, s.SplitCurrentHand())
		// hands: [8] [8] [8]
		s.SetCurrentHandIndex(1)
		s.StandCurrentHand()
		assert.Equal(t, 2, s.CurrentHandIndex())
		s.StandCurrentHand()
		assert.Equal(t, 0, s.CurrentHandIndex())
	})

	t.Run("single blackjack completes the round", func(t *testing.T) {
		s := NewState(DefaultRules())
		dealPlayer(s, "A,K")
		assert.True(t, s.AllHandsComplete())
		assert.Equal(t, 0, s.CurrentHandIndex())
	})
}

func TestStateCursor(t *testing.T) {
	t.Run("set valid index", func(t *testing.T) {
		s := NewState(DefaultRules())
		s.hands = append(s.hands, NewHand(), NewHand())

		assert.True(t, s.SetCurrentHandIndex(1))
		assert.Equal(t, 1, s.CurrentHandIndex())
		assert.True(t, s.SetCurrentHandIndex(2))
		assert.True(t, s.SetCurrentHandIndex(0))
		assert.Equal(t, 0, s.CurrentHandIndex())
	})

	t.Run("set invalid index", func(t *testing.T) {
		s := NewState(DefaultRules())
		for _, i := range []int{-1, 1, 10} {
			assert.False(t, s.SetCurrentHandIndex(i))
			assert.Equal(t, 0, s.CurrentHandIndex())
		}
	})

	t.Run("validate clamps", func(t *testing.T) {
		s := NewState(DefaultRules())
		s.current = 5
		s.ValidateCurrentHandIndex()
		assert.Equal(t, 0, s.CurrentHandIndex())

		s.current = -1
		s.ValidateCurrentHandIndex()
		assert.Equal(t, 0, s.CurrentHandIndex())

		s.hands = append(s.hands, NewHand())
		s.current = 1
		s.ValidateCurrentHandIndex()
		assert.Equal(t, 1, s.CurrentHandIndex())

		s.current = 7
		s.ValidateCurrentHandIndex()
		assert.Equal(t, 1, s.CurrentHandIndex())
	})

	t.Run("invalid cursor reads the first hand", func(t *testing.T) {
		s := NewState(DefaultRules())
		s.current = 3
		assert.Same(t, s.hands[0], s.CurrentHand())
	})

	t.Run("hand at", func(t *testing.T) {
		s := NewState(DefaultRules())
		first, ok := s.HandAt(0)
		require.True(t, ok)
		assert.Same(t, s.hands[0], first)

		for _, i := range []int{-1, 1, 100} {
			_, ok := s.HandAt(i)
			assert.False(t, ok)
		}
	})
}

func TestStateRemoveCards(t *testing.T) {
	s := NewState(DefaultRules())
	dealPlayer(s, "10,9,5")
	require.Equal(t, Busted, s.CurrentHand().Status())

	r, ok := s.RemoveLastCardFromCurrentHand()
	require.True(t, ok)
	assert.Equal(t, card.Five, r)
	assert.Equal(t, Active, s.CurrentHand().Status())

	r, ok = s.RemoveLastCardFromHand(0)
	require.True(t, ok)
	assert.Equal(t, card.Nine, r)

	_, ok = s.RemoveLastCardFromHand(4)
	assert.False(t, ok)
}

func TestStateClear(t *testing.T) {
	s := NewState(DefaultRules())
	s.SetDealerCard(card.Six)
	dealPlayer(s, "8,8")
	require.True(t, s.SplitCurrentHand())

	s.Clear()

	assert.Len(t, s.Hands(), 1)
	assert.Empty(t, s.PlayerCards())
	assert.Empty(t, s.DealerCards())
	assert.Equal(t, 0, s.CurrentHandIndex())
	assert.True(t, s.IsNewRound())
}
