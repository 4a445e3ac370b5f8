package assistant

import (
	"context"

	"iyan-ordering/internal/orderclient"
)

// TextToSpeech is the text to speech half of the order service.
type TextToSpeech interface {
	Synthesize(ctx context.Context, text string) (orderclient.Audio, error)
}

// RemoteVoice fetches audio for each utterance and hands it to Play.
type RemoteVoice struct {
	TTS  TextToSpeech
	Play func(ctx context.Context, audio orderclient.Audio) error
}

func (v RemoteVoice) Say(ctx context.Context, text string) error {
	audio, err := v.TTS.Synthesize(ctx, text)
	if err != nil {
		return err
	}
	if v.Play == nil {
		return nil
	}
	return v.Play(ctx, audio)
}
