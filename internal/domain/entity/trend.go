package entity

// StepDirection ikki ketma-ket narx o'rtasidagi yo'nalish
type StepDirection int

const (
	StepFlat StepDirection = iota
	StepUp
	StepDown
)

// Step bitta ketma-ket o'zgarish (faqat ko'rsatish uchun)
type Step struct {
	Observation PriceObservation
	Change      int64
	Direction   StepDirection
}

// Trend is derived from a chassis history and never stored.
type Trend struct {
	History       []PriceObservation
	Steps         []Step
	OverallChange int64
	PercentChange float64
	HasChange     bool
}

// ComputeTrend derives step and overall changes from an ordered history.
func ComputeTrend(history []PriceObservation) Trend {
	tr := Trend{History: history}
	for i, obs := range history {
		st := Step{Observation: obs}
		if i > 0 {
			st.Change = obs.Price - history[i-1].Price
			st.Direction = directionOf(st.Change)
		}
		tr.Steps = append(tr.Steps, st)
	}
	if len(history) < 2 {
		return tr
	}
	first := history[0].Price
	last := history[len(history)-1].Price
	tr.HasChange = true
	tr.OverallChange = last - first
	if first != 0 {
		tr.PercentChange = float64(tr.OverallChange) / float64(first) * 100
	}
	return tr
}

func directionOf(change int64) StepDirection {
	switch {
	case change > 0:
		return StepUp
	case change < 0:
		return StepDown
	default:
		return StepFlat
	}
}
