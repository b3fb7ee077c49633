// Package sentiment labels text with a coarse polarity.
package sentiment

import "github.com/jonreiter/govader"

// Label is the discrete polarity of a text.
type Label string

const (
	Positive Label = "Positive"
	Negative Label = "Negative"
	Neutral  Label = "Neutral"
)

const (
	positiveThreshold = 0.2
	negativeThreshold = -0.2
)

// Analyzer scores text with VADER.
type Analyzer struct {
	vader *govader.SentimentIntensityAnalyzer
}

// New builds an Analyzer. The VADER lexicon is loaded once here.
func New() *Analyzer {
	return &Analyzer{vader: govader.NewSentimentIntensityAnalyzer()}
}

// Score returns the compound polarity of text in [-1, 1].
func (a *Analyzer) Score(text string) float64 {
	return a.vader.PolarityScores(text).Compound
}

// Analyze returns the label for text.
func (a *Analyzer) Analyze(text string) Label {
	return FromScore(a.Score(text))
}

// FromScore maps a polarity score to a label. Both thresholds are exclusive.
func FromScore(score float64) Label {
	switch {
	case score > positiveThreshold:
		return Positive
	case score < negativeThreshold:
		return Negative
	default:
		return Neutral
	}
}
