package extract

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"langtagger/internal/logging"
	"langtagger/internal/media/ffmpeg"
	"langtagger/internal/services"
)

// Result holds every code discovered for one video file.
type Result struct {
	Audio     []string
	Embedded  []string
	External  []string
	Inspected bool
}

// Subtitles returns embedded and sidecar subtitle codes merged without
// duplicates, embedded first.
func (r Result) Subtitles() []string {
	merged := make([]string, 0, len(r.Embedded)+len(r.External))
	merged = append(merged, r.Embedded...)
	merged = append(merged, r.External...)
	return dedupeCodes(merged)
}

// ExtractionError reports a failure scoped to one item.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract languages from %q: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() []error {
	return []error{services.ErrExtraction, e.Err}
}

// Options tunes the extractor.
type Options struct {
	// DetectSidecarContent classifies the text of sidecars whose name carries
	// no language code.
	DetectSidecarContent bool
}

// Extractor discovers language codes for video files.
type Extractor struct {
	prober ffmpeg.Prober
	opts   Options
	logger *slog.Logger
}

// New builds an Extractor around prober.
func New(prober ffmpeg.Prober, opts Options, logger *slog.Logger) *Extractor {
	return &Extractor{
		prober: prober,
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "extract"),
	}
}

// Extract runs ffmpeg once against path and collects audio, embedded
// subtitle, and sidecar subtitle codes.
func (e *Extractor) Extract(ctx context.Context, path string, sidecars []string) (Result, error) {
	if err := checkPath(path); err != nil {
		return Result{}, err
	}
	output, err := e.prober.Probe(ctx, path)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return Result{}, err
		}
		return Result{}, &ExtractionError{Path: path, Err: err}
	}
	audio, embedded := Streams(output)
	result := Result{
		Audio:     audio,
		Embedded:  embedded,
		External:  e.External(ctx, sidecars),
		Inspected: true,
	}
	e.logger.Debug("streams parsed",
		logging.String("path", path),
		logging.Strings("audio", result.Audio),
		logging.Strings("embedded_subtitles", result.Embedded),
		logging.Strings("external_subtitles", result.External),
	)
	return result, nil
}

// External resolves sidecar subtitle codes without invoking ffmpeg.
func (e *Extractor) External(ctx context.Context, sidecars []string) []string {
	codes := make([]string, 0, len(sidecars))
	for _, sidecar := range sidecars {
		if code, ok := SidecarCode(sidecar); ok {
			codes = append(codes, code)
			continue
		}
		if !e.opts.DetectSidecarContent || ctx.Err() != nil {
			continue
		}
		code, ok, err := DetectSidecarLanguage(sidecar)
		if err != nil {
			e.logger.Debug("sidecar detection failed", logging.String("path", sidecar), logging.Error(err))
			continue
		}
		if ok {
			e.logger.Debug("sidecar language detected", logging.String("path", sidecar), logging.String("code", code))
			codes = append(codes, code)
		}
	}
	return dedupeCodes(codes)
}

func checkPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return &ExtractionError{Path: path, Err: errors.New("item has no file path")}
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &ExtractionError{Path: path, Err: errors.New("file does not exist")}
		}
		return &ExtractionError{Path: path, Err: err}
	}
	if info.IsDir() {
		return &ExtractionError{Path: path, Err: errors.New("path is a directory")}
	}
	return nil
}
