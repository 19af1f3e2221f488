package protocol

// SpeechType classifies a speech by its parliamentary role.
type SpeechType string

const (
	TypeRede               SpeechType = "rede"
	TypeBefragung          SpeechType = "befragung"
	TypeFragestunde        SpeechType = "fragestunde"
	TypeFragestundeAntwort SpeechType = "fragestunde_antwort"
	TypeZwischenfrage      SpeechType = "zwischenfrage"
	TypeAbstimmung         SpeechType = "abstimmung"
	TypeStatement          SpeechType = "statement"
	TypeProtokoll          SpeechType = "protokoll"
	TypeOrtskraefte        SpeechType = "ortskraefte"
	TypeSonstiges          SpeechType = "sonstiges"
)

// Category is the coarse split between formal speeches and everything else.
type Category string

const (
	CategoryRede        Category = "rede"
	CategoryWortbeitrag Category = "wortbeitrag"
)

// CategoryFor maps a speech type onto its category.
func CategoryFor(t SpeechType) Category {
	if t == TypeRede {
		return CategoryRede
	}
	return CategoryWortbeitrag
}

// Speech is one contribution extracted from a protocol.
type Speech struct {
	Speaker       string         `json:"speaker"`
	Party         string         `json:"party"`
	Text          string         `json:"text"`
	Type          SpeechType     `json:"type"`
	Category      Category       `json:"category"`
	Words         int            `json:"words"`
	FirstName     string         `json:"first_name"`
	LastName      string         `json:"last_name"`
	AcademicTitle string         `json:"acad_title,omitempty"`
	IsGovernment  bool           `json:"is_government"`
	Start         int            `json:"start"`
	End           int            `json:"end"`
	Interjections []Interjection `json:"interjections,omitempty"`
}

// InterjectionKind distinguishes the three interjection shapes in protocols.
type InterjectionKind string

const (
	KindApplause InterjectionKind = "applause" // (Beifall bei der SPD)
	KindHeckle   InterjectionKind = "heckle"   // (Zuruf von der AfD: ...)
	KindRemark   InterjectionKind = "remark"   // (Name [PARTY]: ...)
)

// Sentiment is the tone of a named remark.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Interjection is a bracketed reaction recorded inside a speech.
type Interjection struct {
	Kind      InterjectionKind `json:"kind"`
	Speaker   string           `json:"speaker,omitempty"`
	Party     string           `json:"party,omitempty"`
	Parties   []string         `json:"parties,omitempty"`
	Text      string           `json:"text,omitempty"`
	Sentiment Sentiment        `json:"sentiment,omitempty"`
}
