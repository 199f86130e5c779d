package types

// Frequency is the interval at which a recurring transaction repeats.
type Frequency string

const (
	FrequencyDaily       Frequency = "daily"
	FrequencyWeekly      Frequency = "weekly"
	FrequencyMonthly     Frequency = "monthly"
	FrequencySemestrally Frequency = "semestrally"
	FrequencyYearly      Frequency = "yearly"
)

// Frequencies returns all valid frequencies.
func Frequencies() []Frequency {
	return []Frequency{FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencySemestrally, FrequencyYearly}
}

// Valid reports whether the frequency is one of the supported values.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencySemestrally, FrequencyYearly:
		return true
	}

	return false
}

// Monthly reports whether the frequency steps in whole calendar months
// and therefore uses the anchor day.
func (f Frequency) Monthly() bool {
	return f == FrequencyMonthly || f == FrequencySemestrally
}
