package transcriber

import (
	"context"

	"github.com/sashabaranov/go-openai"

	"github.com/P0llen/speaker-detector/internal/app/apperrors"
	"github.com/P0llen/speaker-detector/internal/app/model"
)

// WhisperTranscriber implements transcription through the OpenAI whisper API,
// requesting verbose JSON so segment timestamps come back with the text.
type WhisperTranscriber struct {
	client *openai.Client
}

// NewWhisperTranscriber creates a WhisperTranscriber instance.
func NewWhisperTranscriber(client *openai.Client) *WhisperTranscriber {
	return &WhisperTranscriber{client: client}
}

// Transcribe sends the merged audio to whisper-1 and maps the verbose
// response onto the core transcript model.
func (t *WhisperTranscriber) Transcribe(ctx context.Context, audioPath string) (*model.Transcript, error) {
	req := openai.AudioRequest{
		Model:       openai.Whisper1,
		FilePath:    audioPath,
		Format:      openai.AudioResponseFormatVerboseJSON,
		Temperature: 0,
	}
	resp, err := t.client.CreateTranscription(ctx, req)
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrTranscriptionFailed, "createTranscription: %v", err)
	}

	segments := make([]model.Segment, 0, len(resp.Segments))
	for _, seg := range resp.Segments {
		segments = append(segments, model.Segment{
			Start: seg.Start,
			End:   seg.End,
			Text:  seg.Text,
		})
	}

	return &model.Transcript{
		Text:     resp.Text,
		Segments: segments,
	}, nil
}
