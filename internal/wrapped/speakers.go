package wrapped

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/plenar/internal/analysis"
	"git.home.luguber.info/inful/plenar/internal/lexicon"
	"git.home.luguber.info/inful/plenar/internal/protocol"
)

const (
	minVerbositySpeeches = 3
	maxSpeakerFacts      = 6
)

// SpeakerIndexEntry is one row of speakers/index.json.
type SpeakerIndexEntry struct {
	Name               string `json:"name"`
	Slug               string `json:"slug"`
	Party              string `json:"party"`
	Speeches           int    `json:"speeches"`
	Wortbeitraege      int    `json:"wortbeitraege"`
	BefragungResponses int    `json:"befragungResponses"`
	TotalInterventions int    `json:"totalInterventions"`
	TotalWords         int    `json:"totalWords"`
	AvgWords           int    `json:"avgWords"`
	MinWords           int    `json:"minWords"`
	MaxWords           int    `json:"maxWords"`
	AcademicTitle      string `json:"academicTitle,omitempty"`
	Gender             Gender `json:"gender"`
}

// SpeakerIndex is the content of speakers/index.json.
type SpeakerIndex struct {
	Speakers      []SpeakerIndexEntry `json:"speakers"`
	TotalSpeakers int                 `json:"totalSpeakers"`
	Parties       []string            `json:"parties"`
}

// SpeakerRankings places a speaker within the Bundestag and the party.
// Optional ranks are nil when the speaker does not qualify.
type SpeakerRankings struct {
	SpeechRank         int     `json:"speechRank"`
	WordsRank          int     `json:"wordsRank"`
	PartySpeechRank    int     `json:"partySpeechRank"`
	PartyWordsRank     int     `json:"partyWordsRank"`
	PartySize          int     `json:"partySize"`
	TotalSpeakers      int     `json:"totalSpeakers"`
	Percentile         float64 `json:"percentile"`
	VerbosityRank      *int    `json:"verbosityRank"`
	VerbosityTotal     *int    `json:"verbosityTotal"`
	PartyVerbosityRank *int    `json:"partyVerbosityRank"`
	LongestSpeechRank  int     `json:"longestSpeechRank"`
}

// SpeakerDrama are a speaker's interjection counts and ranks.
type SpeakerDrama struct {
	InterruptionsGiven    int  `json:"interruptionsGiven"`
	InterruptionsReceived int  `json:"interruptionsReceived"`
	InterrupterRank       *int `json:"interrupterRank"`
	InterruptedRank       *int `json:"interruptedRank"`
}

// WordStat is a word with its count.
type WordStat struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// SignatureStat is a word the speaker uses more than their party.
type SignatureStat struct {
	Word           string  `json:"word"`
	Count          int     `json:"count"`
	RatioParty     float64 `json:"ratioParty"`
	RatioBundestag float64 `json:"ratioBundestag"`
}

// SpeakerWords are the vocabulary highlights of a speaker.
type SpeakerWords struct {
	TopWords            []WordStat      `json:"topWords"`
	SignatureWords      []SignatureStat `json:"signatureWords"`
	SignatureAdjectives []SignatureStat `json:"signatureAdjectives"`
}

// SpeakerComparison relates a speaker's average speech length to the party
// and the whole parliament.
type SpeakerComparison struct {
	SpeakerAvgWords    int     `json:"speakerAvgWords"`
	PartyAvgWords      int     `json:"partyAvgWords"`
	ParliamentAvgWords int     `json:"parliamentAvgWords"`
	VsParty            float64 `json:"vsParty"`
	VsParliament       float64 `json:"vsParliament"`
}

// SpeakerFact is a fun fact on a speaker page.
type SpeakerFact struct {
	Emoji string `json:"emoji"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// SampleSize is the amount of text a tone profile is based on.
type SampleSize struct {
	Speeches   int `json:"speeches"`
	Words      int `json:"words"`
	Adjectives int `json:"adjectives"`
	Verbs      int `json:"verbs"`
}

// ToneProfile are a speaker's tone scores. Confidence is "sufficient" with
// at least three contributions and 300 words, "low" otherwise.
type ToneProfile struct {
	Scores     analysis.ToneScores `json:"scores"`
	Confidence string              `json:"confidence"`
	SampleSize SampleSize          `json:"sampleSize"`
}

// SpeakerTopics are a speaker's topic frequencies per 1000 words.
type SpeakerTopics struct {
	Scores     map[lexicon.Category]float64    `json:"scores"`
	TopTopics  []RankedTopic                   `json:"topTopics"`
	TopicWords map[lexicon.Category][]WordStat `json:"topicWords"`
}

// SpeakerPage is the content of speakers/<slug>.json.
type SpeakerPage struct {
	Name               string            `json:"name"`
	Party              string            `json:"party"`
	Slug               string            `json:"slug"`
	AcademicTitle      string            `json:"academicTitle,omitempty"`
	Gender             Gender            `json:"gender"`
	Speeches           int               `json:"speeches"`
	Wortbeitraege      int               `json:"wortbeitraege"`
	BefragungResponses int               `json:"befragungResponses"`
	TotalWords         int               `json:"totalWords"`
	AvgWords           int               `json:"avgWords"`
	MinWords           int               `json:"minWords"`
	MaxWords           int               `json:"maxWords"`
	Rankings           SpeakerRankings   `json:"rankings"`
	Drama              SpeakerDrama      `json:"drama"`
	Words              SpeakerWords      `json:"words"`
	Comparison         SpeakerComparison `json:"comparison"`
	FunFacts           []SpeakerFact     `json:"funFacts"`
	ToneProfile        ToneProfile       `json:"toneProfile"`
	Topics             *SpeakerTopics    `json:"topics,omitempty"`

	SignatureQuiz          *Quiz         `json:"signatureQuiz"`
	SignatureAdjectiveQuiz *Quiz         `json:"signatureAdjectiveQuiz"`
	SpiritAnimal           *SpiritAnimal `json:"spiritAnimal"`
}

// wordStats holds tokenised vocabulary of one speaker, party or the whole
// Bundestag.
type wordStats struct {
	words  protocol.Counter
	adjs   protocol.Counter
	verbs  protocol.Counter
	topics map[lexicon.Category]protocol.Counter
	total  int
}

func newWordStats() *wordStats {
	return &wordStats{
		words:  protocol.Counter{},
		adjs:   protocol.Counter{},
		verbs:  protocol.Counter{},
		topics: map[lexicon.Category]protocol.Counter{},
	}
}

func (w *wordStats) addText(lex *lexicon.Lexicon, text string) {
	for _, tok := range Tokens(text) {
		w.total++
		w.words[tok]++
		if lex.Contains(lexicon.GroupAdjectives, tok) {
			w.adjs[tok]++
		}
		if lex.Contains(lexicon.GroupVerbs, tok) {
			w.verbs[tok]++
		}
		if labels := lex.Topics(tok); len(labels) > 0 {
			t := labels[0].Category
			if w.topics[t] == nil {
				w.topics[t] = protocol.Counter{}
			}
			w.topics[t][tok]++
		}
	}
}

func (w *wordStats) merge(o *wordStats) {
	w.total += o.total
	for k, v := range o.words {
		w.words[k] += v
	}
	for k, v := range o.adjs {
		w.adjs[k] += v
	}
	for k, v := range o.verbs {
		w.verbs[k] += v
	}
	for t, c := range o.topics {
		if w.topics[t] == nil {
			w.topics[t] = protocol.Counter{}
		}
		for k, v := range c {
			w.topics[t][k] += v
		}
	}
}

type speakerEntry struct {
	SpeakerIndexEntry
	key   SpeakerKey
	ranks SpeakerRankings
	vocab *wordStats
}

// SpeakerSet computes the per-speaker export: index, rankings, signature
// words, tone and topic profiles.
type SpeakerSet struct {
	entries   []*speakerEntry
	bySlug    map[string]*speakerEntry
	party     map[string]*wordStats
	bundestag *wordStats
	partyAvg  map[string]int
	parlAvg   int
	drama     *Drama
	lex       *lexicon.Lexicon
	parties   []string

	interrupterRank map[SpeakerKey]int
	interruptedRank map[SpeakerKey]int

	sigOnce sync.Once
	sigs    map[*speakerEntry]speakerSignatures
}

// speakerSignatures are the signature words and adjectives of a speaker.
type speakerSignatures struct {
	words, adjs []SignatureStat
}

// BuildSpeakerSet aggregates every speaker of the loaded speeches.
func (d *Data) BuildSpeakerSet() *SpeakerSet {
	s := &SpeakerSet{
		bySlug:          map[string]*speakerEntry{},
		party:           map[string]*wordStats{},
		bundestag:       newWordStats(),
		partyAvg:        map[string]int{},
		drama:           d.Drama,
		lex:             lexicon.Default(),
		interrupterRank: map[SpeakerKey]int{},
		interruptedRank: map[SpeakerKey]int{},
	}
	genders := map[SpeakerKey]Gender{}
	for _, p := range d.Profiles {
		genders[p.Key()] = p.Gender.Gender
	}

	byKey := map[SpeakerKey]*speakerEntry{}
	for _, r := range d.Speeches {
		if r.Speaker == "" {
			continue
		}
		k := SpeakerKey{Name: r.Speaker, Party: r.Party}
		e, ok := byKey[k]
		if !ok {
			e = &speakerEntry{
				SpeakerIndexEntry: SpeakerIndexEntry{
					Name:          r.Speaker,
					Party:         r.Party,
					AcademicTitle: r.AcademicTitle,
					MinWords:      r.Words,
					MaxWords:      r.Words,
				},
				key:   k,
				vocab: newWordStats(),
			}
			byKey[k] = e
			s.entries = append(s.entries, e)
		}
		e.TotalWords += r.Words
		e.TotalInterventions++
		cat := r.Category
		if cat == "" {
			cat = protocol.CategoryFor(r.Type)
		}
		if cat == protocol.CategoryRede {
			e.Speeches++
		} else {
			e.Wortbeitraege++
		}
		if r.Type == protocol.TypeBefragung || r.Type == protocol.TypeFragestundeAntwort {
			e.BefragungResponses++
		}
		e.MinWords = min(e.MinWords, r.Words)
		e.MaxWords = max(e.MaxWords, r.Words)
		if r.Type != protocol.TypeOrtskraefte {
			e.vocab.addText(s.lex, r.Text)
		}
	}

	for _, e := range s.entries {
		e.Slug = Slug(e.Name)
		if total := e.Speeches + e.Wortbeitraege; total > 0 {
			e.AvgWords = int(round(float64(e.TotalWords)/float64(total), 0))
		}
		e.Gender = genders[e.key]
		if e.Gender == "" {
			e.Gender = GenderUnknown
		}
		ps, ok := s.party[e.Party]
		if !ok {
			ps = newWordStats()
			s.party[e.Party] = ps
			s.parties = append(s.parties, e.Party)
		}
		ps.merge(e.vocab)
		s.bundestag.merge(e.vocab)
	}
	slices.Sort(s.parties)
	s.resolveSlugCollisions()
	for _, e := range s.entries {
		s.bySlug[e.Slug] = e
	}
	s.computeAverages()
	s.computeRankings()
	return s
}

func (s *SpeakerSet) resolveSlugCollisions() {
	counts := map[string]int{}
	for _, e := range s.entries {
		counts[e.Slug]++
	}
	for _, e := range s.entries {
		if counts[e.Slug] > 1 {
			e.Slug = e.Slug + "-" + Slug(e.Party)
		}
	}
}

// computeAverages derives average words per formal speech for every party
// and the parliament.
func (s *SpeakerSet) computeAverages() {
	words, speeches := map[string]int{}, map[string]int{}
	var tw, ts int
	for _, e := range s.entries {
		words[e.Party] += e.TotalWords
		speeches[e.Party] += e.Speeches
		tw += e.TotalWords
		ts += e.Speeches
	}
	for p := range words {
		if speeches[p] > 0 {
			s.partyAvg[p] = int(round(float64(words[p])/float64(speeches[p]), 0))
		}
	}
	if ts > 0 {
		s.parlAvg = int(round(float64(tw)/float64(ts), 0))
	}
}

func sortedBy(entries []*speakerEntry, value func(*speakerEntry) int) []*speakerEntry {
	out := slices.Clone(entries)
	slices.SortStableFunc(out, func(a, b *speakerEntry) int { return cmp.Compare(value(b), value(a)) })
	return out
}

func intPtr(v int) *int { return &v }

func (s *SpeakerSet) computeRankings() {
	total := len(s.entries)
	speeches := func(e *speakerEntry) int { return e.Speeches }
	words := func(e *speakerEntry) int { return e.TotalWords }
	avg := func(e *speakerEntry) int { return e.AvgWords }
	longest := func(e *speakerEntry) int { return e.MaxWords }

	for i, e := range sortedBy(s.entries, speeches) {
		e.ranks.SpeechRank = i + 1
		e.ranks.TotalSpeakers = total
		e.ranks.Percentile = round((1-float64(i+1)/float64(total))*100, 1)
	}
	for i, e := range sortedBy(s.entries, words) {
		e.ranks.WordsRank = i + 1
	}
	verbose := sortedBy(qualifiedForVerbosity(s.entries), avg)
	for i, e := range verbose {
		e.ranks.VerbosityRank = intPtr(i + 1)
		e.ranks.VerbosityTotal = intPtr(len(verbose))
	}
	for i, e := range sortedBy(s.entries, longest) {
		e.ranks.LongestSpeechRank = i + 1
	}

	for _, party := range s.parties {
		var members []*speakerEntry
		for _, e := range s.entries {
			if e.Party == party {
				members = append(members, e)
			}
		}
		for i, e := range sortedBy(members, speeches) {
			e.ranks.PartySpeechRank = i + 1
			e.ranks.PartySize = len(members)
		}
		for i, e := range sortedBy(members, words) {
			e.ranks.PartyWordsRank = i + 1
		}
		for i, e := range sortedBy(qualifiedForVerbosity(members), avg) {
			e.ranks.PartyVerbosityRank = intPtr(i + 1)
		}
	}

	if s.drama != nil {
		for i, r := range s.drama.TopInterrupters(0) {
			s.interrupterRank[SpeakerKey{Name: r.Name, Party: r.Party}] = i + 1
		}
		for i, r := range s.drama.MostInterrupted(0) {
			s.interruptedRank[SpeakerKey{Name: r.Name, Party: r.Party}] = i + 1
		}
	}
}

func qualifiedForVerbosity(entries []*speakerEntry) []*speakerEntry {
	var out []*speakerEntry
	for _, e := range entries {
		if e.Speeches >= minVerbositySpeeches {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of speakers.
func (s *SpeakerSet) Len() int { return len(s.entries) }

// Slugs returns every speaker slug in index order.
func (s *SpeakerSet) Slugs() []string {
	idx := s.Index()
	out := make([]string, len(idx.Speakers))
	for i, e := range idx.Speakers {
		out[i] = e.Slug
	}
	return out
}

// Index returns the speaker index sorted by name in German collation order.
func (s *SpeakerSet) Index() SpeakerIndex {
	col := collate.New(language.German, collate.IgnoreCase)
	rows := make([]SpeakerIndexEntry, len(s.entries))
	for i, e := range s.entries {
		rows[i] = e.SpeakerIndexEntry
	}
	slices.SortStableFunc(rows, func(a, b SpeakerIndexEntry) int {
		if c := col.CompareString(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.Party, b.Party)
	})
	return SpeakerIndex{Speakers: rows, TotalSpeakers: len(rows), Parties: slices.Clone(s.parties)}
}

// Page builds the detail page of the speaker with slug.
func (s *SpeakerSet) Page(slug string) (*SpeakerPage, bool) {
	e, ok := s.bySlug[slug]
	if !ok {
		return nil, false
	}
	drama := s.speakerDrama(e)
	sig := s.signatureTable()[e]
	p := &SpeakerPage{
		Name:               e.Name,
		Party:              e.Party,
		Slug:               e.Slug,
		AcademicTitle:      e.AcademicTitle,
		Gender:             e.Gender,
		Speeches:           e.Speeches,
		Wortbeitraege:      e.Wortbeitraege,
		BefragungResponses: e.BefragungResponses,
		TotalWords:         e.TotalWords,
		AvgWords:           e.AvgWords,
		MinWords:           e.MinWords,
		MaxWords:           e.MaxWords,
		Rankings:           e.ranks,
		Drama:              drama,
		Words: SpeakerWords{
			TopWords:            s.topWords(e),
			SignatureWords:      sig.words,
			SignatureAdjectives: sig.adjs,
		},
		Comparison:  s.comparison(e),
		ToneProfile: s.toneProfile(e),
		Topics:      s.topics(e),
	}
	p.SignatureQuiz = buildQuiz(quizWord, e.Name, e.Party, e.Slug, sig.words,
		s.distractorPool(e, func(o speakerSignatures) []SignatureStat { return o.words }), fallbackWords)
	p.SignatureAdjectiveQuiz = buildQuiz(quizAdjective, e.Name, e.Party, e.Slug, sig.adjs,
		s.distractorPool(e, func(o speakerSignatures) []SignatureStat { return o.adjs }), fallbackAdjectives)
	p.SpiritAnimal = assignSpiritAnimal(s.animalMetrics(e, drama, sig.words, p.ToneProfile.Scores), e.Gender)
	p.FunFacts = s.funFacts(e, drama)
	return p, true
}

// signatureTable computes the signatures of every speaker once; quiz
// distractors need those of the other speakers.
func (s *SpeakerSet) signatureTable() map[*speakerEntry]speakerSignatures {
	s.sigOnce.Do(func() {
		s.sigs = make(map[*speakerEntry]speakerSignatures, len(s.entries))
		for _, e := range s.entries {
			s.sigs[e] = speakerSignatures{
				words: s.signatures(e, func(w *wordStats) protocol.Counter { return w.words }, 5, true),
				adjs:  s.signatures(e, func(w *wordStats) protocol.Counter { return w.adjs }, 3, false),
			}
		}
	})
	return s.sigs
}

func (s *SpeakerSet) distractorPool(e *speakerEntry, pick func(speakerSignatures) []SignatureStat) []string {
	var pool []string
	for o, sig := range s.signatureTable() {
		if o == e {
			continue
		}
		for _, w := range pick(sig) {
			pool = append(pool, w.Word)
		}
	}
	return pool
}

func (s *SpeakerSet) animalMetrics(e *speakerEntry, drama SpeakerDrama, sig []SignatureStat, tone analysis.ToneScores) *animalMetrics {
	m := &animalMetrics{
		wordsRank:       e.ranks.WordsRank,
		speechRank:      e.ranks.SpeechRank,
		partySpeechRank: e.ranks.PartySpeechRank,
		partySize:       e.ranks.PartySize,
		speeches:        e.Speeches + e.Wortbeitraege,
		totalWords:      e.TotalWords,
		avgWords:        e.AvgWords,
		party:           e.Party,
		given:           drama.InterruptionsGiven,
		received:        drama.InterruptionsReceived,
		tone:            tone,
	}
	if len(sig) > 0 {
		m.sigRatio = sig[0].RatioParty
		m.sigWord = cases.Title(language.German).String(sig[0].Word)
	}
	for _, w := range sig {
		if w.RatioParty >= 5 {
			m.sigWordCount++
		}
	}
	return m
}

func (s *SpeakerSet) speakerDrama(e *speakerEntry) SpeakerDrama {
	var d SpeakerDrama
	if s.drama != nil {
		d.InterruptionsGiven = s.drama.Interrupters[e.key]
		d.InterruptionsReceived = s.drama.Interrupted[e.key]
	}
	if r, ok := s.interrupterRank[e.key]; ok {
		d.InterrupterRank = intPtr(r)
	}
	if r, ok := s.interruptedRank[e.key]; ok {
		d.InterruptedRank = intPtr(r)
	}
	return d
}

func (s *SpeakerSet) topWords(e *speakerEntry) []WordStat {
	out := []WordStat{}
	for _, en := range e.vocab.words.MostCommon(50) {
		if IsStopword(en.Key) {
			continue
		}
		out = append(out, WordStat{Word: en.Key, Count: en.Count})
		if len(out) == 10 {
			break
		}
	}
	return out
}

// signatures finds words the speaker uses at least twice as often as the
// rest of the party. Party and Bundestag figures exclude the speaker; a word
// the party never uses counts ten times the speaker's frequency.
func (s *SpeakerSet) signatures(e *speakerEntry, pick func(*wordStats) protocol.Counter, minCount int, filterWords bool) []SignatureStat {
	out := []SignatureStat{}
	own := pick(e.vocab)
	if len(own) == 0 || e.vocab.total == 0 {
		return out
	}
	partyStats := s.party[e.Party]
	partyTotal := partyStats.total - e.vocab.total
	bundTotal := s.bundestag.total - e.vocab.total
	if partyTotal <= 0 || bundTotal <= 0 {
		return out
	}
	partyCounts, bundCounts := pick(partyStats), pick(s.bundestag)

	for w, n := range own {
		if n < minCount {
			continue
		}
		if filterWords && (IsStopword(w) || len([]rune(w)) < 5) {
			continue
		}
		freq := float64(n) / float64(e.vocab.total) * 1000
		partyFreq := float64(partyCounts[w]-n) / float64(partyTotal) * 1000
		bundFreq := float64(bundCounts[w]-n) / float64(bundTotal) * 1000
		ratioParty := freq * 10
		if partyFreq > 0 {
			ratioParty = freq / partyFreq
		}
		ratioBund := freq * 10
		if bundFreq > 0 {
			ratioBund = freq / bundFreq
		}
		if ratioParty >= 2 {
			out = append(out, SignatureStat{Word: w, Count: n, RatioParty: round(ratioParty, 1), RatioBundestag: round(ratioBund, 1)})
		}
	}
	slices.SortFunc(out, func(a, b SignatureStat) int {
		if c := cmp.Compare(b.RatioParty, a.RatioParty); c != 0 {
			return c
		}
		return cmp.Compare(a.Word, b.Word)
	})
	if len(out) > 5 {
		out = out[:5]
	}
	return out
}

func (s *SpeakerSet) comparison(e *speakerEntry) SpeakerComparison {
	c := SpeakerComparison{
		SpeakerAvgWords:    e.AvgWords,
		PartyAvgWords:      s.partyAvg[e.Party],
		ParliamentAvgWords: s.parlAvg,
		VsParty:            1,
		VsParliament:       1,
	}
	if c.PartyAvgWords > 0 {
		c.VsParty = round(float64(c.SpeakerAvgWords)/float64(c.PartyAvgWords), 2)
	}
	if c.ParliamentAvgWords > 0 {
		c.VsParliament = round(float64(c.SpeakerAvgWords)/float64(c.ParliamentAvgWords), 2)
	}
	return c
}

func (s *SpeakerSet) toneProfile(e *speakerEntry) ToneProfile {
	nouns := protocol.Counter{}
	for _, c := range e.vocab.topics {
		for w, n := range c {
			nouns[w] += n
		}
	}
	counts := analysis.NewCategorizer(s.lex).Categorize(e.vocab.adjs, e.vocab.verbs, e.vocab.words, nouns)
	contributions := e.Speeches + e.Wortbeitraege
	conf := "low"
	if contributions >= 3 && e.vocab.total >= 300 {
		conf = "sufficient"
	}
	return ToneProfile{
		Scores:     counts.ToneScores(),
		Confidence: conf,
		SampleSize: SampleSize{
			Speeches:   contributions,
			Words:      e.vocab.total,
			Adjectives: e.vocab.adjs.Total(),
			Verbs:      e.vocab.verbs.Total(),
		},
	}
}

func (s *SpeakerSet) topics(e *speakerEntry) *SpeakerTopics {
	if e.vocab.total == 0 {
		return nil
	}
	t := &SpeakerTopics{
		Scores:     map[lexicon.Category]float64{},
		TopicWords: map[lexicon.Category][]WordStat{},
	}
	var ranked []RankedTopic
	for _, topic := range lexicon.Categories(lexicon.GroupTopics) {
		c := e.vocab.topics[topic]
		score := round(float64(c.Total())/float64(e.vocab.total)*1000, 2)
		t.Scores[topic] = score
		if score > 0 {
			ranked = append(ranked, RankedTopic{Topic: topic, Score: score})
		}
		if c.Total() > 0 {
			for _, en := range c.MostCommon(5) {
				t.TopicWords[topic] = append(t.TopicWords[topic], WordStat{Word: en.Key, Count: en.Count})
			}
		}
	}
	slices.SortStableFunc(ranked, func(a, b RankedTopic) int { return cmp.Compare(b.Score, a.Score) })
	if len(ranked) > 5 {
		ranked = ranked[:5]
	}
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	t.TopTopics = ranked
	return t
}

func (s *SpeakerSet) funFacts(e *speakerEntry, drama SpeakerDrama) []SpeakerFact {
	r := e.ranks
	facts := []SpeakerFact{{Emoji: "🎤", Label: "Reden gehalten", Value: fmt.Sprint(e.Speeches)}}
	if e.TotalWords >= 1000 {
		facts = append(facts, SpeakerFact{Emoji: "📝", Label: "Wörter gesprochen", Value: germanPrinter.Sprintf("%d", e.TotalWords)})
	}
	if r.SpeechRank <= 20 {
		facts = append(facts, SpeakerFact{Emoji: "🏆", Label: "Rang (Reden)", Value: fmt.Sprintf("#%d von %d", r.SpeechRank, r.TotalSpeakers)})
	}
	if r.VerbosityRank != nil && *r.VerbosityRank <= 20 {
		facts = append(facts, SpeakerFact{Emoji: "📚", Label: "Wortreichster", Value: fmt.Sprintf("#%d von %d", *r.VerbosityRank, *r.VerbosityTotal)})
	}
	if r.LongestSpeechRank <= 10 && e.MaxWords > 0 {
		facts = append(facts, SpeakerFact{
			Emoji: "📏", Label: "Längste Rede",
			Value: germanPrinter.Sprintf("#%d (%d Wörter)", r.LongestSpeechRank, e.MaxWords),
		})
	}
	switch {
	case drama.InterrupterRank != nil && *drama.InterrupterRank <= 20:
		facts = append(facts, SpeakerFact{Emoji: "⚡", Label: "Zwischenrufer", Value: fmt.Sprintf("#%d (%dx)", *drama.InterrupterRank, drama.InterruptionsGiven)})
	case drama.InterruptionsGiven >= 10:
		facts = append(facts, SpeakerFact{Emoji: "⚡", Label: "Zwischenrufe", Value: fmt.Sprint(drama.InterruptionsGiven)})
	}
	if r.PartySpeechRank <= 5 && r.PartySize > 10 {
		facts = append(facts, SpeakerFact{Emoji: "🥇", Label: "Rang in " + e.Party, Value: fmt.Sprintf("#%d von %d", r.PartySpeechRank, r.PartySize)})
	}
	if r.Percentile >= 90 && r.SpeechRank > 20 {
		facts = append(facts, SpeakerFact{Emoji: "📊", Label: "Top-Redner", Value: fmt.Sprintf("Top %d%%", 100-int(r.Percentile))})
	}
	if len(facts) > maxSpeakerFacts {
		facts = facts[:maxSpeakerFacts]
	}
	return facts
}
