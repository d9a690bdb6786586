package clients

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelPolarity(t *testing.T) {
	tests := []struct {
		name   string
		scores []LabelScore
		want   float64
	}{
		{"binary positive", []LabelScore{{"POSITIVE", 0.9}, {"NEGATIVE", 0.1}}, 0.8},
		{"binary negative", []LabelScore{{"POSITIVE", 0.05}, {"NEGATIVE", 0.95}}, -0.9},
		{"three way neutral", []LabelScore{{"negative", 0.1}, {"neutral", 0.8}, {"positive", 0.1}}, 0},
		{"indexed labels", []LabelScore{{"LABEL_0", 0.7}, {"LABEL_1", 0.2}, {"LABEL_2", 0.1}}, -0.6},
		{"five stars", []LabelScore{{"5 stars", 1}}, 1},
		{"one star", []LabelScore{{"1 star", 1}}, -1},
		{"star mix", []LabelScore{{"1 star", 0.5}, {"5 stars", 0.5}}, 0},
		{"unnormalized", []LabelScore{{"positive", 2}, {"negative", 2}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LabelPolarity(tt.scores)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, -1.0)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}

func TestLabelPolarity_UnknownLabels(t *testing.T) {
	_, err := LabelPolarity([]LabelScore{{"joy", 0.9}, {"anger", 0.1}})
	assert.Error(t, err)

	_, err = LabelPolarity(nil)
	assert.Error(t, err)
}
