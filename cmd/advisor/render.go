package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/lox/blackjack-advisor/internal/card"
	"github.com/lox/blackjack-advisor/internal/count"
	"github.com/lox/blackjack-advisor/internal/session"
	"github.com/lox/blackjack-advisor/internal/strategy"
)

// decision renders "HIT  Take another card"
func (s *styles) decision(d strategy.Decision) string {
	label := d.Display
	if label == "" || !d.Action.Playable() {
		label = d.Action.String()
	}
	return fmt.Sprintf("%s  %s", s.action(d.Action).Render(strings.ToUpper(label)), s.Info.Render(d.Explanation))
}

// countStats is what the count and session views have in common
type countStats struct {
	System         string
	Running        float64
	True           float64
	DecksRemaining float64
	CardsSeen      int
	TotalCards     int
	Penetration    float64
	Trend          count.Trend
	Advantage      float64
	Betting        count.Suggestion
}

func statsFromCounter(c *count.Counter) countStats {
	return countStats{
		System:         c.System().Name,
		Running:        c.RunningCount(),
		True:           c.TrueCount(),
		DecksRemaining: c.DecksRemaining(),
		CardsSeen:      c.CardsSeen(),
		TotalCards:     c.TotalCards(),
		Penetration:    c.Penetration(),
		Trend:          c.Trend(),
		Advantage:      c.Advantage(),
		Betting:        c.BettingSuggestion(),
	}
}

func statsFromSnapshot(snap session.Snapshot) countStats {
	return countStats{
		System:         snap.System,
		Running:        snap.RunningCount,
		True:           snap.TrueCount,
		DecksRemaining: snap.DecksRemaining,
		CardsSeen:      snap.CardsSeen,
		TotalCards:     snap.TotalCards,
		Penetration:    snap.Penetration,
		Trend:          snap.Trend,
		Advantage:      snap.Advantage,
		Betting:        snap.Betting,
	}
}

func (s *styles) printStats(w io.Writer, st countStats) {
	fmt.Fprintf(w, "%s %+.1f   %s %+.2f   %s %.2f   %s %d/%d (%.0f%%)\n",
		s.Label.Render("Running"), st.Running,
		s.Label.Render("True"), st.True,
		s.Label.Render("Decks left"), st.DecksRemaining,
		s.Label.Render("Seen"), st.CardsSeen, st.TotalCards, st.Penetration*100)
	fmt.Fprintf(w, "%s %s  %s\n",
		s.Label.Render("Bet"),
		s.tier(st.Betting.Tier).Render(st.Betting.Label),
		s.Info.Render(st.Betting.Explanation))
	fmt.Fprintf(w, "%s %s   %s %.0f%%   %s\n",
		s.Label.Render("Trend"), st.Trend,
		s.Label.Render("Advantage"), st.Advantage*100,
		s.Info.Render(st.System))
}

func (s *styles) printInsurance(w io.Writer, take bool) {
	if take {
		fmt.Fprintf(w, "%s %s\n", s.Label.Render("Insurance"), s.Success.Render("take it"))
		return
	}
	fmt.Fprintf(w, "%s %s\n", s.Label.Render("Insurance"), s.Info.Render("decline"))
}

func (s *styles) printSnapshot(w io.Writer, snap session.Snapshot) {
	s.printStats(w, statsFromSnapshot(snap))

	dealer := "none"
	if len(snap.Dealer) > 0 {
		dealer = card.Join(snap.Dealer)
	}
	fmt.Fprintf(w, "%s %s\n", s.Label.Render("Dealer"), dealer)
	if len(snap.Dealer) > 0 && snap.Dealer[0].IsAce() {
		s.printInsurance(w, snap.Insurance)
	}

	for _, h := range snap.Hands {
		marker := "  "
		if h.Current {
			marker = s.Current.Render("> ")
		}
		line := fmt.Sprintf("%sHand %d: %s", marker, h.Index+1, h.Display)
		if h.Advice != nil {
			line += "   " + s.decision(*h.Advice)
		}
		fmt.Fprintln(w, line)
	}
}
