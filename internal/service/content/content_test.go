package content

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/glowandgrind/site-api/pkg/cache"
)

type fakeCMS struct {
	calls  int
	result string
	err    error
}

func (f *fakeCMS) Query(_ context.Context, groq string, _ map[string]any) (json.RawMessage, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(f.result), nil
}

func TestSection_CachesResult(t *testing.T) {
	cms := &fakeCMS{result: `[{"title":"Bridal"}]`}
	svc := New(cms, cache.NewMemory(), Config{CacheTTL: time.Minute}, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		got, err := svc.Section(ctx, SectionServices)
		if err != nil {
			t.Fatalf("Section() error = %v", err)
		}
		if string(got) != `[{"title":"Bridal"}]` {
			t.Errorf("Section() = %s", got)
		}
	}
	if cms.calls != 1 {
		t.Errorf("cms calls = %d, want 1", cms.calls)
	}
}

func TestSection_Errors(t *testing.T) {
	tests := []struct {
		name    string
		cms     Querier
		section string
		want    error
	}{
		{name: "unknown section", cms: &fakeCMS{}, section: "pricing", want: ErrUnknownSection},
		{name: "not configured", cms: nil, section: SectionHero, want: ErrUnavailable},
		{name: "upstream failure", cms: &fakeCMS{err: errors.New("status 500")}, section: SectionHero, want: ErrUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := New(tt.cms, nil, Config{}, nil)
			if _, err := svc.Section(context.Background(), tt.section); !errors.Is(err, tt.want) {
				t.Errorf("Section() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSections_HaveQueries(t *testing.T) {
	for _, s := range Sections() {
		if queries[s] == "" {
			t.Errorf("section %q has no query", s)
		}
	}
	if len(Sections()) != len(queries) {
		t.Errorf("Sections() = %d, queries = %d", len(Sections()), len(queries))
	}
}
