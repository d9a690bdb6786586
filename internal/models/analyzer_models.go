package models

type PolarityRequest struct {
	Text string `json:"text"`
}

type PolarityResponse struct {
	Polarity float64 `json:"polarity"`
}
