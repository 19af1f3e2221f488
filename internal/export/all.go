package export

import (
	"context"

	"git.home.luguber.info/inful/plenar/internal/manifest"
	"git.home.luguber.info/inful/plenar/internal/wrapped"
)

// Summary reports an export-all run.
type Summary struct {
	RunID       string
	Speakers    SpeakerResult
	Manifest    *manifest.Manifest
	ContentHash string
}

// All writes every web export of d: wrapped.json, the speaker profiles, the
// interruption rankings, the neutral remarks and, unless skipSpeeches is
// set, speeches_db.json. The manifest is written last.
func (e *Exporter) All(ctx context.Context, d *wrapped.Data, skipSpeeches bool) (Summary, error) {
	if err := e.Wrapped(d); err != nil {
		return Summary{}, err
	}
	speakers, err := e.Speakers(ctx, d)
	if err != nil {
		return Summary{}, err
	}
	if err := e.Interruptions(d); err != nil {
		return Summary{}, err
	}
	if err := e.NeutralTexts(d); err != nil {
		return Summary{}, err
	}
	if !skipSpeeches {
		if err := ctx.Err(); err != nil {
			return Summary{}, err
		}
		if err := e.SpeechDB(d.Speeches); err != nil {
			return Summary{}, err
		}
	}
	m, err := e.Finish()
	if err != nil {
		return Summary{}, err
	}
	return Summary{RunID: m.RunID, Speakers: speakers, Manifest: m, ContentHash: m.ContentHash()}, nil
}
