//go:build !hugot

package clients

import (
	"context"
	"errors"

	"github.com/spacesedan/sentidesk/config"
)

// ErrHugotDisabled is returned when the binary was built without the hugot
// tag, which links ONNX Runtime and the tokenizers library.
var ErrHugotDisabled = errors.New("hugot analyzer requires building with -tags hugot")

type HugotClient struct{}

func NewHugotClient(config.AnalyzerConfig) (*HugotClient, error) {
	return nil, ErrHugotDisabled
}

func (*HugotClient) Polarity(context.Context, string) (float64, error) {
	return 0, ErrHugotDisabled
}

func (*HugotClient) Close() error { return nil }
