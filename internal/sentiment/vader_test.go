package sentiment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVADER_Polarity(t *testing.T) {
	v := NewVADER()
	ctx := context.Background()

	positive, err := v.Polarity(ctx, "thanks, everything works great")
	require.NoError(t, err)
	assert.Greater(t, positive, 0.2)

	negative, err := v.Polarity(ctx, "I am furious, this is terrible and awful")
	require.NoError(t, err)
	assert.Less(t, negative, -0.2)
}

func TestConvertMarkdownToText(t *testing.T) {
	got := ConvertMarkdownToText("**Great** support, see [the docs](https://example.com/help) or https://example.com")
	assert.Equal(t, "Great support, see the docs or", got)

	assert.Equal(t, "I won't pay", ConvertMarkdownToText("I won't pay"))
}
