package source

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	ferrors "git.home.luguber.info/inful/plenar/internal/foundation/errors"
	"git.home.luguber.info/inful/plenar/internal/logfields"
)

// Tool names of the bundestag-mcp server.
const (
	ToolSearchProtocols = "bundestag_search_plenarprotokolle"
	ToolGetProtocol     = "bundestag_get_plenarprotokoll"
	ToolSearchSpeeches  = "bundestag_search_speeches"
)

const (
	searchPageSize = 100
	maxEmptyPages  = 3
)

// Bundestag wraps the bundestag-mcp tools.
type Bundestag struct {
	caller ToolCaller
}

// NewBundestag returns a wrapper around caller.
func NewBundestag(caller ToolCaller) *Bundestag {
	return &Bundestag{caller: caller}
}

// Close closes the underlying caller.
func (b *Bundestag) Close() error { return b.caller.Close() }

func (b *Bundestag) call(ctx context.Context, tool string, args map[string]any, out any) error {
	data, err := b.caller.CallTool(ctx, tool, args)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return ferrors.WrapError(err, ferrors.CategorySource, "decode tool result").
			WithContext("tool", tool).
			Build()
	}
	return nil
}

// SearchProtocols returns one page of Plenarprotokolle of a Wahlperiode.
func (b *Bundestag) SearchProtocols(ctx context.Context, wahlperiode, limit int, cursor string) (SearchPage, error) {
	args := map[string]any{"wahlperiode": wahlperiode, "limit": limit}
	if cursor != "" {
		args["cursor"] = cursor
	}
	var page SearchPage
	if err := b.call(ctx, ToolSearchProtocols, args, &page); err != nil {
		return SearchPage{}, err
	}
	return page, nil
}

type getProtocolResult struct {
	Success  bool        `json:"success"`
	Data     ProtocolRef `json:"data"`
	FullText string      `json:"fullText"`
}

// GetProtocol fetches a protocol with its full text.
func (b *Bundestag) GetProtocol(ctx context.Context, id ID) (*Protocol, error) {
	var res getProtocolResult
	err := b.call(ctx, ToolGetProtocol, map[string]any{"id": int(id), "includeFullText": true}, &res)
	if err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, ferrors.NotFoundError("protocol not found").
			WithContext("id", int(id)).
			Build()
	}
	if res.Data.ID == 0 {
		res.Data.ID = id
	}
	return &Protocol{ProtocolRef: res.Data, FullText: res.FullText}, nil
}

// ProtocolIDs lists Bundestag protocols of a Wahlperiode via cursor
// pagination. Listing stops after three consecutive pages without a
// Bundestag protocol, when the server has no more pages, or when max
// protocols were found (max <= 0 lists all).
func (b *Bundestag) ProtocolIDs(ctx context.Context, wahlperiode, maxProtocols int) ([]ProtocolRef, error) {
	var (
		out    []ProtocolRef
		cursor string
		empty  int
	)
	for page := 1; ; page++ {
		slog.Debug("Fetching protocol list page",
			slog.Int("page", page),
			logfields.Count(len(out)))

		res, err := b.SearchProtocols(ctx, wahlperiode, searchPageSize, cursor)
		if err != nil {
			return nil, fmt.Errorf("protocol list page %d: %w", page, err)
		}

		found := 0
		for _, p := range res.Results {
			if p.Publisher == PublisherBundestag {
				out = append(out, p)
				found++
			}
		}
		if found == 0 {
			empty++
			if empty >= maxEmptyPages {
				break
			}
		} else {
			empty = 0
		}

		if maxProtocols > 0 && len(out) >= maxProtocols {
			return out[:maxProtocols], nil
		}
		if res.Cursor == "" || !res.HasMore {
			break
		}
		cursor = res.Cursor
	}
	return out, nil
}

// SearchSpeeches runs the semantic speech search. A zero wahlperiode
// searches all periods.
func (b *Bundestag) SearchSpeeches(ctx context.Context, query string, wahlperiode, limit int) ([]SpeechHit, error) {
	args := map[string]any{"query": query, "limit": limit}
	if wahlperiode > 0 {
		args["wahlperiode"] = wahlperiode
	}
	data, err := b.caller.CallTool(ctx, ToolSearchSpeeches, args)
	if err != nil {
		return nil, err
	}
	hits, err := decodeSpeechHits(data)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategorySource, "decode speech search").Build()
	}
	return hits, nil
}

// TestConnection reports whether the server answers a protocol search with
// at least one result.
func (b *Bundestag) TestConnection(ctx context.Context, wahlperiode int) (bool, error) {
	page, err := b.SearchProtocols(ctx, wahlperiode, 1, "")
	if err != nil {
		return false, err
	}
	return page.TotalResults > 0, nil
}
