package wrapped

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"text/tabwriter"
)

// Render sections.
const (
	SectionAll     = "all"
	SectionParty   = "party"
	SectionSpeaker = "speaker"
	SectionDrama   = "drama"
	SectionTopic   = "topic"
	SectionTone    = "tone"
)

// Sections lists the renderable sections in output order.
var Sections = []string{SectionParty, SectionSpeaker, SectionDrama, SectionTopic, SectionTone}

// RenderOptions select what Render prints.
type RenderOptions struct {
	// Parties limits the party cards; empty prints all.
	Parties []string
	// Section is one of Sections or SectionAll.
	Section string
	NoEmoji bool
}

// ReadWrapped decodes a wrapped.json file.
func ReadWrapped(path string) (*Wrapped, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var w Wrapped
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &w, nil
}

// Render writes a terminal summary of w.
func Render(out io.Writer, w *Wrapped, opts RenderOptions) error {
	r := &renderer{tw: tabwriter.NewWriter(out, 0, 0, 2, ' ', 0), opts: opts}
	r.header(w)
	show := func(s string) bool { return opts.Section == "" || opts.Section == SectionAll || opts.Section == s }
	if show(SectionParty) {
		for _, p := range w.Parties {
			if len(opts.Parties) == 0 || slices.Contains(opts.Parties, p.Party) {
				r.party(p)
			}
		}
	}
	if show(SectionSpeaker) {
		r.speakers(w)
	}
	if show(SectionDrama) {
		r.drama(w.Drama)
	}
	if show(SectionTopic) {
		r.topics(w.TopicAnalysis)
	}
	if show(SectionTone) {
		r.tone(w.ToneAnalysis)
	}
	return r.tw.Flush()
}

type renderer struct {
	tw   *tabwriter.Writer
	opts RenderOptions
}

func (r *renderer) emoji(e string) string {
	if r.opts.NoEmoji || e == "" {
		return ""
	}
	return e + " "
}

func (r *renderer) title(s string) {
	fmt.Fprintf(r.tw, "\n%s\n%s\n", s, strings.Repeat("=", len([]rune(s))))
}

func bar(value, maxValue float64, width int) string {
	filled := 0
	if maxValue > 0 {
		filled = min(width, int(value/maxValue*float64(width)))
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func (r *renderer) header(w *Wrapped) {
	m := w.Metadata
	r.title("BUNDESTAG WRAPPED")
	fmt.Fprintf(r.tw, "Wahlperiode %d, %d Sitzungen\n", m.Wahlperiode, m.Sitzungen)
	fmt.Fprintln(r.tw, germanPrinter.Sprintf("%d Reden | %d Wörter | %d Fraktionen | %d Redner:innen",
		m.TotalSpeeches, m.TotalWords, m.PartyCount, m.SpeakerCount))
}

func (r *renderer) party(p WebParty) {
	r.title(r.emoji(p.Emoji) + p.Party)
	fmt.Fprintln(r.tw, germanPrinter.Sprintf("Reden\t%d", p.Speeches))
	fmt.Fprintln(r.tw, germanPrinter.Sprintf("Wortbeiträge\t%d", p.Wortbeitraege))
	fmt.Fprintln(r.tw, germanPrinter.Sprintf("Wörter\t%d", p.TotalWords))
	fmt.Fprintf(r.tw, "Ø Redelänge\t%.0f Wörter\n", p.AvgSpeechLength)
	if p.TopSpeaker != nil {
		fmt.Fprintf(r.tw, "Top-Redner:in\t%s (%d)\n", p.TopSpeaker.Name, p.TopSpeaker.Count)
	}
	if len(p.TopWords) > 0 {
		fmt.Fprintln(r.tw, "Top-Wörter\t")
		top := float64(p.TopWords[0].Count)
		for _, wc := range p.TopWords[:min(10, len(p.TopWords))] {
			fmt.Fprintf(r.tw, "  %s\t%s %d\n", wc.Word, bar(float64(wc.Count), top, 12), wc.Count)
		}
	}
	if len(p.SignatureWords) > 0 {
		fmt.Fprintln(r.tw, "Signaturwörter\t")
		for _, s := range p.SignatureWords {
			fmt.Fprintf(r.tw, "  %s\t%.1fx\n", s.Word, s.Ratio)
		}
	}
	if len(p.KeyTopics) > 0 {
		fmt.Fprintf(r.tw, "Kernthemen\t%s\n", strings.Join(p.KeyTopics, ", "))
	}
}

func (r *renderer) ranking(title string, rows []RankedSpeaker) {
	if len(rows) == 0 {
		return
	}
	r.title(title)
	for i, s := range rows[:min(10, len(rows))] {
		fmt.Fprintf(r.tw, "%d.\t%s\t%s\t%d\n", i+1, s.Name, s.Party, s.Count)
	}
}

func (r *renderer) speakers(w *Wrapped) {
	r.ranking(r.emoji("🎤")+"Top-Redner:innen (Reden)", w.TopSpeakers)
	r.ranking(r.emoji("📝")+"Top-Redner:innen (Wörter)", w.TopSpeakersByWords)
	r.ranking(r.emoji("❓")+"Fragestunde", w.TopBefragungResponders)
}

func (r *renderer) drama(d WebDrama) {
	r.ranking(r.emoji("⚡")+"Zwischenrufer:innen", d.TopZwischenrufer)
	r.ranking(r.emoji("🎯")+"Meistunterbrochen", d.MostInterrupted)
	if len(d.ApplauseChampions) > 0 {
		r.title(r.emoji("👏") + "Beifall")
		top := float64(d.ApplauseChampions[0].Count)
		for _, p := range d.ApplauseChampions {
			fmt.Fprintf(r.tw, "%s\t%s %d\n", p.Party, bar(float64(p.Count), top, 12), p.Count)
		}
	}
	s := d.ZwischenrufStats
	if s.Total > 0 {
		r.title(r.emoji("💬") + "Zwischenrufe")
		fmt.Fprintf(r.tw, "Zustimmung\t%d (%.1f%%)\n", s.Positive, s.PositivePercent)
		fmt.Fprintf(r.tw, "Kritik\t%d (%.1f%%)\n", s.Negative, s.NegativePercent)
		fmt.Fprintf(r.tw, "Neutral\t%d (%.1f%%)\n", s.Neutral, s.NeutralPercent)
	}
}

func (r *renderer) topics(t WebTopicAnalysis) {
	if len(t.TopTopics) == 0 {
		return
	}
	r.title(r.emoji("🗂️") + "Themen")
	top := t.TopTopics[0].Score
	for _, rt := range t.TopTopics {
		name := string(rt.Topic)
		info, ok := t.Topics[rt.Topic]
		if ok && info.NameDE != "" {
			name = r.emoji(info.Emoji) + info.NameDE
		}
		fmt.Fprintf(r.tw, "%d.\t%s\t%s %.2f\n", rt.Rank, name, bar(rt.Score, top, 12), rt.Score)
	}
}

func (r *renderer) tone(t WebToneAnalysis) {
	if len(t.Parties) == 0 {
		return
	}
	r.title(r.emoji("🎭") + "Tonalität")
	fmt.Fprintln(r.tw, "Fraktion\tAggression\tKooperation\tLösungen\tAutorität")
	for _, p := range t.Parties {
		s := p.Scores
		fmt.Fprintf(r.tw, "%s\t%.1f\t%.1f\t%.1f\t%.1f\n", p.Party, s.Aggression, s.Collaboration, s.SolutionFocus, s.Authority)
	}
}
