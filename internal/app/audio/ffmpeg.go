package audio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/P0llen/speaker-detector/internal/app/apperrors"
)

// Processor is the transcoder boundary of the core. All audio entering the
// profile and meeting stores is assumed normalized to 16 kHz mono WAV.
type Processor interface {
	// ConvertToWAV converts any input container to 16 kHz mono WAV.
	ConvertToWAV(ctx context.Context, inputPath, outputPath string) error

	// Concat losslessly concatenates WAV files in the given order.
	Concat(ctx context.Context, inputPaths []string, outputPath string) error

	// ExtractSpan copies the [start, end] span (seconds) of a WAV file into
	// a new 16 kHz mono WAV file.
	ExtractSpan(ctx context.Context, inputPath string, start, end float64, outputPath string) error

	// Duration reports the rounded duration of an audio file in seconds.
	Duration(ctx context.Context, path string) (int, error)
}

const sampleRate = 16000

// FFmpeg implements Processor by shelling out to ffmpeg/ffprobe.
type FFmpeg struct{}

// NewFFmpeg creates an ffmpeg-backed processor.
func NewFFmpeg() *FFmpeg {
	return &FFmpeg{}
}

// ConvertToWAV converts any input audio blob (e.g. a WebM chunk) into a
// 16 kHz mono WAV file.
func (f *FFmpeg) ConvertToWAV(ctx context.Context, inputPath, outputPath string) error {
	cmd := exec.CommandContext(ctx, "ffmpeg", "-y",
		"-i", inputPath,
		"-ar", strconv.Itoa(sampleRate),
		"-ac", "1",
		outputPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg error: %v, stderr: %s", err, stderr.String())
	}
	if _, err := os.Stat(outputPath); err != nil {
		return fmt.Errorf("ffmpeg produced no output: %s", outputPath)
	}
	return nil
}

// Concat concatenates the inputs with the concat demuxer and stream copy, so
// no re-encoding happens at this stage.
func (f *FFmpeg) Concat(ctx context.Context, inputPaths []string, outputPath string) error {
	if len(inputPaths) == 0 {
		return apperrors.ErrNoAudio
	}

	listPath := outputPath + ".files.txt"
	if err := os.WriteFile(listPath, []byte(ConcatList(inputPaths)), 0o644); err != nil {
		return apperrors.Wrapf(apperrors.ErrMergeFailed, "write concat list: %v", err)
	}
	defer os.Remove(listPath)

	cmd := exec.CommandContext(ctx, "ffmpeg", "-y",
		"-f", "concat", "-safe", "0",
		"-i", listPath,
		"-c", "copy",
		outputPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return apperrors.Wrapf(apperrors.ErrMergeFailed, "ffmpeg concat: %v, stderr: %s", err, stderr.String())
	}
	return nil
}

// ExtractSpan slices out [start, end] seconds of the input.
func (f *FFmpeg) ExtractSpan(ctx context.Context, inputPath string, start, end float64, outputPath string) error {
	cmd := exec.CommandContext(ctx, "ffmpeg", "-y",
		"-i", inputPath,
		"-ss", formatSeconds(start),
		"-to", formatSeconds(end),
		"-ar", strconv.Itoa(sampleRate),
		"-ac", "1",
		outputPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg extract [%s, %s]: %v, stderr: %s",
			formatSeconds(start), formatSeconds(end), err, stderr.String())
	}
	return nil
}

// Duration reads the container duration via ffprobe.
func (f *FFmpeg) Duration(ctx context.Context, path string) (int, error) {
	cmd := exec.CommandContext(ctx, "ffprobe", "-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	output, err := cmd.Output()
	if err != nil {
		return 0, err
	}
	durationFloat, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, err
	}
	return int(math.Round(durationFloat)), nil
}

// probeOutput is the subset of ffprobe -show_streams JSON the validator needs.
type probeOutput struct {
	Streams []struct {
		CodecType  string `json:"codec_type"`
		CodecName  string `json:"codec_name"`
		SampleRate string `json:"sample_rate"`
	} `json:"streams"`
}

// IsNormalizedWAV reports whether the file is already 16 kHz pcm_s16le audio.
func (f *FFmpeg) IsNormalizedWAV(ctx context.Context, path string) (bool, error) {
	cmd := exec.CommandContext(ctx, "ffprobe", "-v", "quiet",
		"-print_format", "json", "-show_streams", path)
	output, err := cmd.Output()
	if err != nil {
		return false, err
	}

	var probe probeOutput
	if err := json.Unmarshal(output, &probe); err != nil {
		return false, err
	}

	for _, stream := range probe.Streams {
		if stream.CodecType == "audio" && stream.CodecName == "pcm_s16le" &&
			stream.SampleRate == strconv.Itoa(sampleRate) {
			return true, nil
		}
	}
	return false, nil
}

// ConcatList renders the concat demuxer file list for the given inputs,
// preserving order.
func ConcatList(inputPaths []string) string {
	var sb strings.Builder
	for _, p := range inputPaths {
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = p
		}
		fmt.Fprintf(&sb, "file '%s'\n", abs)
	}
	return sb.String()
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
