package predict

import "context"

// Match is the optional request body. Both teams are currently ignored.
type Match struct {
	Home string `json:"home,omitempty"`
	Away string `json:"away,omitempty"`
}

type Prediction struct {
	HomeWinProb float64 `json:"home_win_prob"`
	AwayWinProb float64 `json:"away_win_prob"`
	DrawProb    float64 `json:"draw_prob"`
	Confidence  float64 `json:"confidence"`
}

type UseCase interface {
	Predict(ctx context.Context, m Match) Prediction
}

type stub struct{}

// NewStub returns an even-odds predictor with low confidence.
func NewStub() UseCase { return stub{} }

func (stub) Predict(context.Context, Match) Prediction {
	return Prediction{HomeWinProb: 0.5, AwayWinProb: 0.5, DrawProb: 0.0, Confidence: 0.2}
}
