// Package game tracks the player's side of a blackjack round.
//
// The main types are Hand, which owns one set of cards and its derived
// status, and State, which owns every hand produced by splitting together
// with the dealer's visible cards and a cursor pointing at the hand that is
// waiting for a decision.
//
// # Basic Usage
//
//	s := game.NewState(game.DefaultRules())
//	s.SetDealerCard(card.Ten)
//	s.AddPlayerCard(card.Eight)
//	s.AddPlayerCard(card.Eight)
//	if s.CanSplitCurrentHand() {
//	    s.SplitCurrentHand()
//	}
//	// s.Hands() now holds [8] and [8]; the cursor stays on the first.
//
// # Status Transitions
//
// A hand starts Active and moves forward to one of the terminal states
// Standing, Busted, Blackjack or Doubled. The only way back is removing
// cards (undo), in which case the status is recomputed from the remaining
// cards by the same function that computes it on insertion.
//
// State never returns errors: out of range cursors are clamped and
// impossible splits are refused with a false return, so an interactive
// session survives caller mistakes.
package game
