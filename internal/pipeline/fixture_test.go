package pipeline

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/plenar/internal/source"
)

func sampleText(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("testdata/protocol.txt")
	require.NoError(t, err)
	return string(data)
}

type fakeSource struct {
	mu      sync.Mutex
	refs    []source.ProtocolRef
	text    string
	fail    map[source.ID]bool
	calls   map[source.ID]int
	listErr error
}

func newFakeSource(t *testing.T, ids ...int) *fakeSource {
	f := &fakeSource{text: sampleText(t), fail: map[source.ID]bool{}, calls: map[source.ID]int{}}
	for _, id := range ids {
		f.refs = append(f.refs, source.ProtocolRef{
			ID:             source.ID(id),
			DocumentNumber: "21/1",
			Date:           "2025-05-14",
			Publisher:      source.PublisherBundestag,
		})
	}
	return f
}

func (f *fakeSource) ProtocolIDs(_ context.Context, _, maxProtocols int) ([]source.ProtocolRef, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if maxProtocols > 0 && maxProtocols < len(f.refs) {
		return f.refs[:maxProtocols], nil
	}
	return f.refs, nil
}

func (f *fakeSource) GetProtocol(_ context.Context, id source.ID) (*source.Protocol, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[id]++
	if f.fail[id] {
		return nil, errors.New("server unavailable")
	}
	for _, r := range f.refs {
		if r.ID == id {
			return &source.Protocol{ProtocolRef: r, FullText: f.text}, nil
		}
	}
	return nil, nil
}

func (f *fakeSource) setFail(id int, fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[source.ID(id)] = fail
}

func (f *fakeSource) callCount(id int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[source.ID(id)]
}
