package crypto

import (
	"math"

	zxcvbn "github.com/nbutton23/zxcvbn-go"
)

// Label is the discrete strength band a score falls into.
type Label string

const (
	LabelWeak       Label = "weak"
	LabelMedium     Label = "medium"
	LabelStrong     Label = "strong"
	LabelVeryStrong Label = "very_strong"
)

const (
	maxScore        = 100
	lengthWeight    = 25.0
	lengthSaturates = 8.0
	upperWeight     = 25
	lowerWeight     = 20
	digitWeight     = 15
	symbolWeight    = 15
)

// StrengthRating summarizes the heuristic strength of a password.
type StrengthRating struct {
	Score int
	Label Label
	Color string
}

// Estimate is an advisory zxcvbn estimate reported next to the rating.
type Estimate struct {
	Score     int
	Entropy   float64
	CrackTime string
}

// Score rates password against the length the user configured. Length
// credit grows linearly up to 8 characters; each class present in the
// password adds a fixed bonus. Classes follow the ASCII alphabets; any
// other rune counts as a symbol.
func Score(password string, configuredLength int) StrengthRating {
	if password == "" {
		return ratingFor(0)
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		default:
			hasSymbol = true
		}
	}

	l := math.Max(float64(configuredLength), 0)
	total := math.Min(l/lengthSaturates, 1) * lengthWeight
	if hasUpper {
		total += upperWeight
	}
	if hasLower {
		total += lowerWeight
	}
	if hasDigit {
		total += digitWeight
	}
	if hasSymbol {
		total += symbolWeight
	}

	score := int(math.Floor(total))
	if score > maxScore {
		score = maxScore
	}
	return ratingFor(score)
}

// LabelFor maps a score onto its band.
func LabelFor(score int) Label {
	switch {
	case score < 30:
		return LabelWeak
	case score < 60:
		return LabelMedium
	case score < 80:
		return LabelStrong
	default:
		return LabelVeryStrong
	}
}

// Color returns the meter colour for the band.
func (l Label) Color() string {
	switch l {
	case LabelWeak:
		return "red"
	case LabelMedium:
		return "yellow"
	case LabelStrong:
		return "blue"
	default:
		return "green"
	}
}

// EstimateStrength runs zxcvbn over password. It does not influence Score.
func EstimateStrength(password string) Estimate {
	if password == "" {
		return Estimate{}
	}
	m := zxcvbn.PasswordStrength(password, nil)
	return Estimate{
		Score:     m.Score,
		Entropy:   m.Entropy,
		CrackTime: m.CrackTimeDisplay,
	}
}

func ratingFor(score int) StrengthRating {
	label := LabelFor(score)
	return StrengthRating{Score: score, Label: label, Color: label.Color()}
}
