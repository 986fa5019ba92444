package count

// Trend buckets a true count for display
type Trend int

const (
	Neutral Trend = iota
	Positive
	StrongPositive
	Negative
	StrongNegative
)

// TrendOf classifies a true count
func TrendOf(tc float64) Trend {
	switch {
	case tc >= 2:
		return StrongPositive
	case tc >= 1:
		return Positive
	case tc <= -2:
		return StrongNegative
	case tc <= -1:
		return Negative
	default:
		return Neutral
	}
}

func (t Trend) String() string {
	switch t {
	case StrongPositive:
		return "strongly positive"
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	case StrongNegative:
		return "strongly negative"
	default:
		return "neutral"
	}
}

// Trend returns the trend of the current true count
func (c *Counter) Trend() Trend {
	return TrendOf(c.TrueCount())
}
