package source

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// PublisherBundestag marks protocols of the Bundestag (as opposed to the
// Bundesrat, "BR").
const PublisherBundestag = "BT"

// ID is a DIP document id. The server sends it as a number or a string.
type ID int

// UnmarshalJSON accepts 5713 and "5713".
func (id *ID) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*id = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid protocol id %s: %w", data, err)
	}
	*id = ID(n)
	return nil
}

// ProtocolRef is the metadata of a Plenarprotokoll.
type ProtocolRef struct {
	ID             ID     `json:"id"`
	DocumentNumber string `json:"dokumentnummer,omitempty"`
	Wahlperiode    int    `json:"wahlperiode,omitempty"`
	Date           string `json:"datum,omitempty"`
	Title          string `json:"titel,omitempty"`
	Publisher      string `json:"herausgeber,omitempty"`
}

// Protocol is a Plenarprotokoll with its full text.
type Protocol struct {
	ProtocolRef
	FullText string `json:"fullText"`
}

// SearchPage is one page of a cursor-paginated protocol search.
type SearchPage struct {
	Results      []ProtocolRef `json:"results"`
	Cursor       string        `json:"cursor"`
	HasMore      bool          `json:"hasMore"`
	TotalResults int           `json:"totalResults"`
}

// SpeechHit is a result of the semantic speech search.
type SpeechHit struct {
	Speaker     string  `json:"speaker"`
	Party       string  `json:"party"`
	Text        string  `json:"text"`
	Date        string  `json:"date"`
	Wahlperiode int     `json:"wahlperiode"`
	Score       float64 `json:"score"`
}

type speechSearchResult struct {
	Results []SpeechHit `json:"results"`
}

// decodeSpeechHits accepts {"results": [...]} as well as a bare list.
func decodeSpeechHits(data []byte) ([]SpeechHit, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var hits []SpeechHit
		if err := json.Unmarshal(data, &hits); err != nil {
			return nil, err
		}
		return hits, nil
	}
	var res speechSearchResult
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, err
	}
	return res.Results, nil
}
