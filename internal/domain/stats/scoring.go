package stats

import (
	"errors"
	"fmt"
)

// ErrMalformedUpload marks an upload that cannot be ingested. Nothing from the upload is applied.
var ErrMalformedUpload = errors.New("malformed upload")

// Weights stores the per-event fantasy point values.
type Weights struct {
	Single  float64
	Double  float64
	Triple  float64
	HomeRun float64
	Walk    float64
	Run     float64
	RBI     float64
	ROE     float64
	Out     float64
}

func DefaultWeights() Weights {
	return Weights{
		Single:  1.0,
		Double:  1.5,
		Triple:  2.5,
		HomeRun: 3.0,
		Walk:    0.5,
		Run:     1.0,
		RBI:     0.75,
		ROE:     1.0,
		Out:     -0.5,
	}
}

func (w Weights) Points(c Counts) float64 {
	return float64(c.Singles)*w.Single +
		float64(c.Doubles)*w.Double +
		float64(c.Triples)*w.Triple +
		float64(c.HR)*w.HomeRun +
		float64(c.BB)*w.Walk +
		float64(c.R)*w.Run +
		float64(c.RBI)*w.RBI +
		float64(c.ROE)*w.ROE +
		float64(c.Out())*w.Out
}

// Points scores a batting line with the league weights.
func Points(c Counts) float64 {
	return DefaultWeights().Points(c)
}

// Validate rejects batting lines that cannot happen in a game.
func (c Counts) Validate() error {
	if c.HR > c.AB {
		return fmt.Errorf("%w: HR (%d) exceeds AB (%d)", ErrMalformedUpload, c.HR, c.AB)
	}
	if c.Hits() > c.AB {
		return fmt.Errorf("%w: hits (%d) exceed AB (%d)", ErrMalformedUpload, c.Hits(), c.AB)
	}
	return nil
}
