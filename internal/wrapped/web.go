package wrapped

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"git.home.luguber.info/inful/plenar/internal/analysis"
	"git.home.luguber.info/inful/plenar/internal/lexicon"
	"git.home.luguber.info/inful/plenar/internal/protocol"
)

// WebMetadata is the header of wrapped.json.
type WebMetadata struct {
	TotalSpeeches      int `json:"totalSpeeches"`
	RedenCount         int `json:"redenCount"`
	WortbeitraegeCount int `json:"wortbeitraegeCount"`
	TotalWords         int `json:"totalWords"`
	PartyCount         int `json:"partyCount"`
	SpeakerCount       int `json:"speakerCount"`
	Wahlperiode        int `json:"wahlperiode"`
	Sitzungen          int `json:"sitzungen"`
}

// SignatureWord is a distinctive word with its ratio rounded for display.
type SignatureWord struct {
	Word  string  `json:"word"`
	Ratio float64 `json:"ratio"`
}

// WebParty is one party card of wrapped.json.
type WebParty struct {
	Party           string               `json:"party"`
	Emoji           string               `json:"emoji"`
	Speeches        int                  `json:"speeches"`
	Wortbeitraege   int                  `json:"wortbeitraege"`
	TotalWords      int                  `json:"totalWords"`
	UniqueSpeakers  int                  `json:"uniqueSpeakers"`
	TopWords        []analysis.WordCount `json:"topWords"`
	SignatureWords  []SignatureWord      `json:"signatureWords"`
	KeyTopics       []string             `json:"keyTopics"`
	AvgSpeechLength float64              `json:"avgSpeechLength"`
	Descriptiveness float64              `json:"descriptiveness"`
	TopSpeaker      *RankedSpeaker       `json:"topSpeaker,omitempty"`
}

// Classification explains the remark sentiment buckets.
type Classification struct {
	Positive string `json:"positive"`
	Negative string `json:"negative"`
	Neutral  string `json:"neutral"`
}

var remarkClassification = Classification{
	Positive: "Zustimmung (genau, richtig, bravo, stimmt, ...)",
	Negative: "Kritik (unsinn, quatsch, falsch, lüge, ...)",
	Neutral:  "Nicht klar zuordenbar (Fragen, Kommentare, ...)",
}

// ZwischenrufStats are the remark sentiment totals with their legend.
type ZwischenrufStats struct {
	SentimentStats
	Classification Classification `json:"classification"`
}

// WebDrama is the interjection section of wrapped.json.
type WebDrama struct {
	TopZwischenrufer  []RankedSpeaker  `json:"topZwischenrufer"`
	MostInterrupted   []RankedSpeaker  `json:"mostInterrupted"`
	ApplauseChampions []PartyCount     `json:"applauseChampions"`
	LoudestHecklers   []PartyCount     `json:"loudestHecklers"`
	ZwischenrufStats  ZwischenrufStats `json:"zwischenrufStats"`
}

// WebToneParty is one party's row of the tone analysis.
type WebToneParty struct {
	Party  string              `json:"party"`
	Scores analysis.ToneScores `json:"scores"`
}

// WebToneAnalysis is the tone section of wrapped.json.
type WebToneAnalysis struct {
	Parties       []WebToneParty            `json:"parties"`
	PartyProfiles map[string]PartyProfile   `json:"partyProfiles"`
	Rankings      map[string]any            `json:"rankings"`
	TopWords      map[string]map[string]any `json:"topWords"`
	StyleWords    map[string][]StyleWord    `json:"styleWords"`
}

// StyleWord is a frequent word that feeds several style dimensions.
type StyleWord struct {
	Word  string             `json:"word"`
	Count int                `json:"count"`
	Tags  []lexicon.Weighted `json:"tags"`
}

// RankedTopic is one entry of the overall topic ranking.
type RankedTopic struct {
	Topic lexicon.Category `json:"topic"`
	Score float64          `json:"score"`
	Rank  int              `json:"rank"`
}

// WebTopicAnalysis is the topic section of wrapped.json. Topics carries
// the display name, emoji and colour of every topic.
type WebTopicAnalysis struct {
	ByParty   map[string]map[lexicon.Category]float64 `json:"byParty"`
	Overall   map[lexicon.Category]float64            `json:"overall"`
	TopTopics []RankedTopic                           `json:"topTopics"`
	Topics    map[lexicon.Category]lexicon.Info       `json:"topics"`
}

// FunFact is a single headline number.
type FunFact struct {
	Emoji    string `json:"emoji"`
	Value    string `json:"value"`
	Label    string `json:"label"`
	Sublabel string `json:"sublabel,omitempty"`
	Category string `json:"category"`
}

// WebGenderParty is one party's gender split.
type WebGenderParty struct {
	Party       string  `json:"party"`
	Male        int     `json:"male"`
	Female      int     `json:"female"`
	FemaleRatio float64 `json:"femaleRatio"`
}

// WebInterruptionPatterns are interjection totals by gender.
type WebInterruptionPatterns struct {
	MaleInterruptions   int `json:"maleInterruptions"`
	FemaleInterruptions int `json:"femaleInterruptions"`
	MaleInterrupted     int `json:"maleInterrupted"`
	FemaleInterrupted   int `json:"femaleInterrupted"`
}

// WebGenderAnalysis is the gender section of wrapped.json. Reden counts
// formal speeches only; All counts every contribution.
type WebGenderAnalysis struct {
	Distribution          GenderDistribution      `json:"distribution"`
	ByParty               []WebGenderParty        `json:"byParty"`
	TopFemaleSpeakersRede []RankedSpeaker         `json:"topFemaleSpeakersReden"`
	TopMaleSpeakersRede   []RankedSpeaker         `json:"topMaleSpeakersReden"`
	TopFemaleSpeakersAll  []RankedSpeaker         `json:"topFemaleSpeakersAll"`
	TopMaleSpeakersAll    []RankedSpeaker         `json:"topMaleSpeakersAll"`
	InterruptionPatterns  WebInterruptionPatterns `json:"interruptionPatterns"`
	SpeechLength          GenderComparison        `json:"speechLength"`
	AcademicTitles        GenderComparison        `json:"academicTitles"`
}

// Wrapped is the content of wrapped.json.
type Wrapped struct {
	Metadata               WebMetadata       `json:"metadata"`
	Parties                []WebParty        `json:"parties"`
	Drama                  WebDrama          `json:"drama"`
	TopSpeakers            []RankedSpeaker   `json:"topSpeakers"`
	TopBefragungResponders []RankedSpeaker   `json:"topBefragungResponders"`
	TopSpeakersByWords     []RankedSpeaker   `json:"topSpeakersByWords"`
	TopSpeakersByAvgWords  []RankedSpeaker   `json:"topSpeakersByAvgWords"`
	HotTopics              []HotTopic        `json:"hotTopics"`
	ToneAnalysis           WebToneAnalysis   `json:"toneAnalysis"`
	TopicAnalysis          WebTopicAnalysis  `json:"topicAnalysis"`
	FunFacts               []FunFact         `json:"funFacts"`
	GenderAnalysis         WebGenderAnalysis `json:"genderAnalysis"`
	TopQuestionAskers      []RankedSpeaker   `json:"topQuestionAskers"`
}

// BuildWrapped computes wrapped.json.
func (d *Data) BuildWrapped() *Wrapped {
	w := &Wrapped{
		Metadata:               d.webMetadata(),
		Drama:                  d.webDrama(),
		TopSpeakers:            d.TopSpeakers("", 10),
		TopBefragungResponders: d.BefragungResponders(10),
		TopSpeakersByWords:     d.WordiestSpeakers(10),
		TopSpeakersByAvgWords:  d.SpeakersByAvgWords(10, 5),
		HotTopics:              d.HotTopics(15),
		ToneAnalysis:           d.webToneAnalysis(),
		TopicAnalysis:          d.webTopicAnalysis(),
		GenderAnalysis:         d.webGenderAnalysis(),
		TopQuestionAskers:      d.QuestionAskers("", 10),
	}
	for _, p := range d.Parties {
		w.Parties = append(w.Parties, d.webParty(p))
	}
	w.FunFacts = d.funFacts(w.Metadata)
	return w
}

func (d *Data) webMetadata() WebMetadata {
	m := WebMetadata{
		TotalSpeeches: d.Meta.TotalSpeeches,
		TotalWords:    d.Meta.TotalWords,
		PartyCount:    len(d.Parties),
		Wahlperiode:   d.Meta.Wahlperiode,
		Sitzungen:     d.Sessions,
	}
	speakers := map[string]struct{}{}
	for _, r := range d.Speeches {
		cat := r.Category
		if cat == "" {
			cat = protocol.CategoryFor(r.Type)
		}
		if cat == protocol.CategoryRede {
			m.RedenCount++
		} else {
			m.WortbeitraegeCount++
		}
	}
	for _, p := range d.Profiles {
		speakers[p.Name] = struct{}{}
	}
	m.SpeakerCount = len(speakers)
	return m
}

func (d *Data) webParty(party string) WebParty {
	stats, _ := d.PartyStats(party)
	style := d.CommunicationStyle(party)
	wp := WebParty{
		Party:           party,
		Emoji:           PartyEmoji(party),
		Speeches:        stats.RealSpeeches,
		Wortbeitraege:   stats.Wortbeitraege,
		TotalWords:      stats.TotalWords,
		UniqueSpeakers:  d.UniqueSpeakerCount(party),
		TopWords:        d.TopWords(party, analysis.KindNoun, 7),
		SignatureWords:  []SignatureWord{},
		KeyTopics:       d.KeyTopics(party, 5),
		AvgSpeechLength: style.AvgSpeechLength,
		Descriptiveness: style.Descriptiveness,
	}
	for _, dw := range d.DistinctiveWords(party, analysis.KindNoun, 5) {
		wp.SignatureWords = append(wp.SignatureWords, SignatureWord{Word: dw.Word, Ratio: round(dw.Ratio, 1)})
	}
	if champ, ok := d.PartyChampion(party); ok {
		wp.TopSpeaker = &champ
	}
	return wp
}

func (d *Data) webDrama() WebDrama {
	return WebDrama{
		TopZwischenrufer:  d.Drama.TopInterrupters(10),
		MostInterrupted:   d.Drama.MostInterrupted(10),
		ApplauseChampions: d.Drama.ApplauseRanking(0),
		LoudestHecklers:   d.Drama.HeckleRanking(0),
		ZwischenrufStats:  d.ZwischenrufStats(),
	}
}

// ZwischenrufStats returns remark sentiment totals with their legend.
func (d *Data) ZwischenrufStats() ZwischenrufStats {
	return ZwischenrufStats{SentimentStats: d.Drama.Sentiment(), Classification: remarkClassification}
}

func (d *Data) webToneAnalysis() WebToneAnalysis {
	ta := WebToneAnalysis{
		PartyProfiles: d.PartyProfiles(),
		Rankings:      map[string]any{},
		TopWords:      map[string]map[string]any{},
		StyleWords:    map[string][]StyleWord{},
	}
	for _, p := range d.Parties {
		if ts, ok := d.ToneScores(p); ok {
			ta.Parties = append(ta.Parties, WebToneParty{Party: p, Scores: ts})
		}
		ta.TopWords[p] = map[string]any{
			"aggressive": d.TopWordsByCategory(p, "adjectives", string(lexicon.Aggressive), 5),
			"labeling":   d.TopWordsByCategory(p, "adjectives", string(lexicon.Labeling), 5),
			"solution":   d.TopWordsByCategory(p, "verbs", string(lexicon.Solution), 5),
			"demanding":  d.TopWordsByCategory(p, "verbs", string(lexicon.Demanding), 5),
		}
		if sw := d.StyleWords(p, 10); len(sw) > 0 {
			ta.StyleWords[p] = sw
		}
	}
	for _, m := range analysis.ToneMetrics {
		ta.Rankings[m] = d.ToneRanking(m)
	}
	ta.Rankings["discriminatoryCounts"] = d.DiscriminatoryCounts()
	return ta
}

// StyleWords returns up to n of the party's top adjectives and verbs that
// carry weighted style tags, most frequent first.
func (d *Data) StyleWords(party string, n int) []StyleWord {
	r, ok := d.Results[party]
	if !ok {
		return nil
	}
	lex := lexicon.Default()
	var out []StyleWord
	for _, list := range [][]analysis.WordCount{r.TopAdjectives, r.TopVerbs} {
		for _, wc := range list {
			tags := lex.Tags(wc.Word)
			if len(tags) == 0 || slices.ContainsFunc(out, func(s StyleWord) bool { return s.Word == wc.Word }) {
				continue
			}
			out = append(out, StyleWord{Word: wc.Word, Count: wc.Count, Tags: tags})
		}
	}
	slices.SortStableFunc(out, func(a, b StyleWord) int { return cmp.Compare(b.Count, a.Count) })
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// webTopicAnalysis counts topic nouns in the speech texts of every party and
// returns per-1000-word frequencies. Words with several topic labels count
// for their first (primary) label.
func (d *Data) webTopicAnalysis() WebTopicAnalysis {
	lex := lexicon.Default()
	topics := lexicon.Categories(lexicon.GroupTopics)
	counts := map[string]map[lexicon.Category]int{}
	words := map[string]int{}
	for _, r := range d.Speeches {
		if r.Party == "" || r.Text == "" {
			continue
		}
		c, ok := counts[r.Party]
		if !ok {
			c = map[lexicon.Category]int{}
			counts[r.Party] = c
		}
		for _, tok := range Tokens(r.Text) {
			words[r.Party]++
			if labels := lex.Topics(tok); len(labels) > 0 {
				c[labels[0].Category]++
			}
		}
	}

	ta := WebTopicAnalysis{
		ByParty: map[string]map[lexicon.Category]float64{},
		Overall: map[lexicon.Category]float64{},
		Topics:  map[lexicon.Category]lexicon.Info{},
	}
	for _, t := range topics {
		if info, ok := lex.Info(lexicon.GroupTopics, t); ok {
			ta.Topics[t] = info
		}
	}
	totals := map[lexicon.Category]int{}
	allWords := 0
	for party, c := range counts {
		allWords += words[party]
		for _, t := range topics {
			totals[t] += c[t]
		}
		if words[party] == 0 {
			continue
		}
		scores := map[lexicon.Category]float64{}
		for _, t := range topics {
			scores[t] = round(float64(c[t])/float64(words[party])*1000, 2)
		}
		ta.ByParty[party] = scores
	}
	for _, t := range topics {
		ta.Overall[t] = round(safeDiv(float64(totals[t]), float64(allWords))*1000, 2)
	}
	ranked := make([]RankedTopic, 0, len(topics))
	for _, t := range topics {
		ranked = append(ranked, RankedTopic{Topic: t, Score: ta.Overall[t]})
	}
	slices.SortStableFunc(ranked, func(a, b RankedTopic) int { return cmp.Compare(b.Score, a.Score) })
	if len(ranked) > 6 {
		ranked = ranked[:6]
	}
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	ta.TopTopics = ranked
	return ta
}

func (d *Data) webGenderAnalysis() WebGenderAnalysis {
	ga := WebGenderAnalysis{
		Distribution:          d.GenderDistribution(),
		TopFemaleSpeakersRede: d.TopSpeakersByGender(GenderFemale, 10, true),
		TopMaleSpeakersRede:   d.TopSpeakersByGender(GenderMale, 10, true),
		TopFemaleSpeakersAll:  d.TopSpeakersByGender(GenderFemale, 10, false),
		TopMaleSpeakersAll:    d.TopSpeakersByGender(GenderMale, 10, false),
		SpeechLength:          d.SpeechLengthByGender(),
		AcademicTitles:        d.AcademicTitles(),
	}
	for _, p := range d.Parties {
		st, ok := d.Gender.ByParty[p]
		if !ok {
			continue
		}
		ga.ByParty = append(ga.ByParty, WebGenderParty{
			Party:       p,
			Male:        st.MaleSpeakers,
			Female:      st.FemaleSpeakers,
			FemaleRatio: st.FemaleShare,
		})
	}
	slices.SortStableFunc(ga.ByParty, func(a, b WebGenderParty) int { return cmp.Compare(b.FemaleRatio, a.FemaleRatio) })
	made, received := d.InterruptionPatterns()
	ga.InterruptionPatterns = WebInterruptionPatterns{
		MaleInterruptions:   int(made.Male),
		FemaleInterruptions: int(made.Female),
		MaleInterrupted:     int(received.Male),
		FemaleInterrupted:   int(received.Female),
	}
	return ga
}

var germanPrinter = message.NewPrinter(language.German)

func (d *Data) funFacts(meta WebMetadata) []FunFact {
	var facts []FunFact
	if meta.TotalWords > 0 && meta.Sitzungen > 0 {
		facts = append(facts, FunFact{
			Emoji: "📅", Value: germanPrinter.Sprintf("%d", meta.TotalWords/meta.Sitzungen),
			Label: "Wörter pro Sitzungstag", Category: "general",
		})
	}
	if meta.TotalWords > 0 && meta.TotalSpeeches > 0 {
		facts = append(facts, FunFact{
			Emoji: "🎤", Value: germanPrinter.Sprintf("%d", meta.TotalWords/meta.TotalSpeeches),
			Label: "Wörter pro Rede", Category: "general",
		})
	}
	if books := meta.TotalWords / 50000; books > 0 {
		facts = append(facts, FunFact{Emoji: "📚", Value: fmt.Sprint(books), Label: "Bücher-Äquivalent", Category: "general"})
	}
	facts = append(facts, d.toneFacts()...)
	facts = append(facts, d.genderFacts()...)
	return facts
}

func (d *Data) toneFacts() []FunFact {
	if len(d.Results) == 0 {
		return nil
	}
	var facts []FunFact
	if r := d.ToneRanking("aggression"); len(r) > 0 {
		facts = append(facts, FunFact{
			Emoji: "💢", Value: fmt.Sprintf("%.0f%%", r[0].Score),
			Label: fmt.Sprintf("Aggression (%s)", r[0].Party), Sublabel: "aggressivste Sprache", Category: "tone",
		})
	}
	if r := d.ToneRanking("labeling"); len(r) > 0 && r[0].Score > 1 {
		facts = append(facts, FunFact{
			Emoji: "🏷️", Value: fmt.Sprintf("%.0f%%", r[0].Score),
			Label: fmt.Sprintf("Etikettierung (%s)", r[0].Party), Sublabel: `"ideologisch", "radikal"...`, Category: "tone",
		})
	}
	if r := d.ToneRanking("collaboration"); len(r) > 0 {
		facts = append(facts, FunFact{
			Emoji: "🤝", Value: fmt.Sprintf("%.0f%%", r[0].Score),
			Label: fmt.Sprintf("Kooperation (%s)", r[0].Party), Sublabel: "kooperativste Sprache", Category: "tone",
		})
	}
	for _, c := range []struct{ category, emoji, sublabel string }{
		{string(lexicon.Labeling), "🎯", "häufigstes Label"},
		{string(lexicon.Aggressive), "🔥", "häufigstes Kampfwort"},
	} {
		var best analysis.WordCount
		var bestParty string
		for _, p := range d.Parties {
			if words := d.TopWordsByCategory(p, "adjectives", c.category, 1); len(words) > 0 && words[0].Count > best.Count {
				best, bestParty = words[0], p
			}
		}
		if bestParty != "" {
			facts = append(facts, FunFact{
				Emoji: c.emoji, Value: fmt.Sprintf("%q", best.Word),
				Label: fmt.Sprintf("%d× (%s)", best.Count, bestParty), Sublabel: c.sublabel, Category: "tone",
			})
		}
	}
	if r := d.ToneRanking("affirmative"); len(r) >= 2 {
		most, least := r[0], r[len(r)-1]
		if spread := most.Score - least.Score; spread > 10 {
			facts = append(facts, FunFact{
				Emoji: "📊", Value: fmt.Sprintf("%.0f%%", spread), Label: "Positivitäts-Spread",
				Sublabel: fmt.Sprintf("%s vs %s", most.Party, least.Party), Category: "tone",
			})
		}
	}
	return facts
}

func (d *Data) genderFacts() []FunFact {
	dist := d.GenderDistribution()
	known := dist.Male + dist.Female
	if known == 0 {
		return nil
	}
	facts := []FunFact{{
		Emoji: "👩", Value: fmt.Sprintf("%.0f%%", float64(dist.Female)/float64(known)*100),
		Label: "Rednerinnen", Sublabel: fmt.Sprintf("%d von %d", dist.Female, known), Category: "gender",
	}}
	if r := d.GenderRatioByParty(); len(r) > 0 {
		facts = append(facts, FunFact{
			Emoji: "🏆", Value: fmt.Sprintf("%.0f%%", r[0].Score),
			Label: fmt.Sprintf("Frauenanteil (%s)", r[0].Party), Sublabel: "höchster Frauenanteil", Category: "gender",
		})
	}
	if top := d.TopSpeakersByGender(GenderFemale, 1, true); len(top) > 0 {
		fields := strings.Fields(top[0].Name)
		facts = append(facts, FunFact{
			Emoji: "🎤", Value: fields[len(fields)-1],
			Label: fmt.Sprintf("%d Reden", top[0].Count), Sublabel: "Top-Rednerin", Category: "gender",
		})
	}
	made, _ := d.InterruptionPatterns()
	if made.Male > 0 && made.Female > 0 {
		facts = append(facts, FunFact{
			Emoji: "🗣️", Value: fmt.Sprintf("%.1fx", made.Male/made.Female), Label: "Männer unterbrechen mehr",
			Sublabel: germanPrinter.Sprintf("%d vs %d", int(made.Male), int(made.Female)), Category: "gender",
		})
	}
	return facts
}
