package processor

import (
	"context"

	"captionfix/internal/diagnostics"
)

const (
	stepCover = "cover-screen"
	stepSync  = "sync-subtitles"
)

// Coverer repositions captions that would cover on-screen content.
type Coverer interface {
	CoverScreen(ctx context.Context, text string, diag *diagnostics.Collector) (string, error)
}

// Syncer realigns caption timing to the audio track.
type Syncer interface {
	SyncSubtitles(ctx context.Context, text string, diag *diagnostics.Collector) (string, error)
}

// identityCoverer returns its input; screen analysis needs video input that
// captionfix does not read.
type identityCoverer struct{}

func (identityCoverer) CoverScreen(_ context.Context, text string, diag *diagnostics.Collector) (string, error) {
	diag.Warnf(stepCover, "Screen covering not implemented; captions left unchanged")
	return text, nil
}

// identitySyncer returns its input; resync needs audio analysis.
type identitySyncer struct{}

func (identitySyncer) SyncSubtitles(_ context.Context, text string, diag *diagnostics.Collector) (string, error) {
	diag.Warnf(stepSync, "Subtitle synchronization not implemented; timing left unchanged")
	return text, nil
}
