//go:build hugot

package clients

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/options"
	"github.com/knights-analytics/hugot/pipelines"
	"github.com/spacesedan/sentidesk/config"
)

const hugotPipelineName = "sentideskPolarity"

// HugotClient scores polarity with a local ONNX text classification model.
// Only one ORT session may exist per process.
type HugotClient struct {
	session  *hugot.Session
	pipeline *pipelines.TextClassificationPipeline
}

func NewHugotClient(cfg config.AnalyzerConfig) (*HugotClient, error) {
	modelPath, err := ensureHugotModel(cfg.HugotModel, cfg.HugotModelDir)
	if err != nil {
		return nil, err
	}

	var opts []options.WithOption
	if cfg.ORTLibraryPath != "" {
		opts = append(opts, options.WithOnnxLibraryPath(cfg.ORTLibraryPath))
	}

	session, err := hugot.NewORTSession(opts...)
	if err != nil {
		return nil, fmt.Errorf("[HugotClient] failed to initialize Hugot session: %w", err)
	}

	pipeline, err := hugot.NewPipeline(session, hugot.TextClassificationConfig{
		ModelPath: modelPath,
		Name:      hugotPipelineName,
		Options: []hugot.TextClassificationOption{
			pipelines.WithSoftmax(),
			pipelines.WithMultiLabel(),
		},
	})
	if err != nil {
		_ = session.Destroy()
		return nil, fmt.Errorf("[HugotClient] failed to initialize pipeline: %w", err)
	}

	slog.Info("[HugotClient] Text classification pipeline ready",
		slog.String("model", cfg.HugotModel),
		slog.String("path", modelPath))
	return &HugotClient{session: session, pipeline: pipeline}, nil
}

func ensureHugotModel(model, dir string) (string, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("[HugotClient] failed to create model directory: %w", err)
	}

	modelPath := filepath.Join(dir, strings.ReplaceAll(model, "/", "_"))
	if _, err := os.Stat(modelPath); err == nil {
		slog.Info("[HugotClient] Using existing model", slog.String("path", modelPath))
		return modelPath, nil
	}

	slog.Info("[HugotClient] Model not found, downloading...", slog.String("model", model))
	modelPath, err := hugot.DownloadModel(model, dir, hugot.NewDownloadOptions())
	if err != nil {
		return "", fmt.Errorf("[HugotClient] failed to download %s: %w", model, err)
	}
	slog.Info("[HugotClient] Model downloaded successfully", slog.String("path", modelPath))
	return modelPath, nil
}

// Polarity implements sentiment.Analyzer. The pipeline call is synchronous,
// so ctx is only checked before running it.
func (h *HugotClient) Polarity(ctx context.Context, text string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	output, err := h.pipeline.RunPipeline([]string{text})
	if err != nil {
		return 0, fmt.Errorf("text classification failed: %w", err)
	}
	if len(output.ClassificationOutputs) == 0 {
		return 0, fmt.Errorf("text classification returned no output")
	}

	scores := make([]LabelScore, 0, len(output.ClassificationOutputs[0]))
	for _, c := range output.ClassificationOutputs[0] {
		scores = append(scores, LabelScore{Label: c.Label, Score: float64(c.Score)})
	}
	return LabelPolarity(scores)
}

func (h *HugotClient) Close() error {
	return h.session.Destroy()
}
