package trend

// #region bands
// Band is one grade threshold for a lower-is-better metric: values below Max
// earn Grade.
type Band struct {
	Max   float64
	Grade string
}

// gradeBands maps metric names to ordered threshold bands. The final band's
// grade applies when no threshold matches.
var gradeBands = map[string][]Band{
	"reaction_time": {
		{Max: 200, Grade: "S"},
		{Max: 230, Grade: "A"},
		{Max: 270, Grade: "B"},
		{Max: 350, Grade: "C"},
	},
	"stress": {
		{Max: 3, Grade: "S"},
		{Max: 5, Grade: "A"},
		{Max: 7, Grade: "B"},
		{Max: 9, Grade: "C"},
	},
}

// #endregion bands

// #region grade-sample
// GradeSample grades one value against the metric's bands. Values past the
// last band grade F. Unrecognized metrics default to grade B; that fallback
// hides missing band tables, so new metrics need an entry here.
func GradeSample(metric string, value float64) string {
	bands, ok := gradeBands[metric]
	if !ok {
		return "B"
	}
	for _, b := range bands {
		if value < b.Max {
			return b.Grade
		}
	}
	return "F"
}

// #endregion grade-sample
