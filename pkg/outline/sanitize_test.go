package outline

import (
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		want     CleanStats
		contains []string
		excludes []string
	}{
		{
			name:     "removes tables",
			html:     `<body><table><tr><td>3 Hidden Heading</td></tr></table><p>1 Introduction</p></body>`,
			want:     CleanStats{TablesRemoved: 1},
			contains: []string{"1 Introduction"},
			excludes: []string{"Hidden Heading"},
		},
		{
			name: "nested tables count once",
			html: `<body><table><tr><td>
				<table><tr><td>1 Inner</td></tr></table>
			</td></tr></table></body>`,
			want:     CleanStats{TablesRemoved: 1},
			excludes: []string{"Inner"},
		},
		{
			name: "removes images",
			html: `<body><p>1 Scope</p><img src="a.png"><p><img src="b.png"></p></body>`,
			want: CleanStats{ImagesRemoved: 2},
		},
		{
			name:     "removes scripts and styles",
			html:     `<html><head><style>p{color:red}</style></head><body><script>var x = "1 Fake";</script><p>1 Real</p></body></html>`,
			want:     CleanStats{ScriptsRemoved: 2},
			contains: []string{"1 Real"},
			excludes: []string{"Fake", "color:red"},
		},
		{
			name:     "removes rendering-only nodes uncounted",
			html:     `<html><head><title>2 Doc Title</title><meta charset="utf-8"></head><body><svg><text>4 Label</text></svg><canvas>5 Canvas</canvas><p>1 Body</p></body></html>`,
			want:     CleanStats{},
			contains: []string{"1 Body"},
			excludes: []string{"Doc Title", "Label", "Canvas"},
		},
		{
			name:     "removes captions",
			html:     `<body><p>图1.1 Layout Diagram</p><p>Table 2 Results</p><p>1 Layout</p></body>`,
			want:     CleanStats{CaptionsRemoved: 2},
			contains: []string{"1 Layout"},
			excludes: []string{"Diagram", "Results"},
		},
		{
			name:     "caption container removed with its children",
			html:     `<body><div><p>Fig 3 Setup</p></div></body>`,
			want:     CleanStats{CaptionsRemoved: 1},
			excludes: []string{"Setup"},
		},
		{
			name:     "removes long paragraphs",
			html:     `<body><p>` + strings.Repeat("字", 201) + `</p><p>` + strings.Repeat("a", 200) + `</p></body>`,
			want:     CleanStats{LongParagraphsRemoved: 1},
			contains: []string{strings.Repeat("a", 200)},
			excludes: []string{"字"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, stats := NewSanitizer(nil).Sanitize(newDoc(t, tt.html))
			if stats != tt.want {
				t.Errorf("stats = %+v, want %+v", stats, tt.want)
			}

			html, err := doc.Html()
			if err != nil {
				t.Fatalf("failed to render: %v", err)
			}
			for _, s := range tt.contains {
				if !strings.Contains(html, s) {
					t.Errorf("expected output to contain %q, got:\n%s", s, html)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(html, s) {
					t.Errorf("expected output to not contain %q, got:\n%s", s, html)
				}
			}
		})
	}
}

func TestSanitizeCustomConfig(t *testing.T) {
	cfg := DefaultConfig().Merge(&Config{CaptionLabels: []string{"Abb."}, MaxBlockRunes: 10})
	_, stats := NewSanitizer(cfg).Sanitize(newDoc(t,
		`<body><p>Abb. 1 Aufbau</p><p>1 Einleitung und Motivation</p><p>2 Ziele</p></body>`))

	want := CleanStats{CaptionsRemoved: 1, LongParagraphsRemoved: 1}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
}

func TestSanitizeStatsPerRun(t *testing.T) {
	s := NewSanitizer(nil)
	html := `<body><table></table><img src="x.png"><p>1 Intro</p></body>`

	_, first := s.Sanitize(newDoc(t, html))
	_, second := s.Sanitize(newDoc(t, html))
	if first != second {
		t.Errorf("stats differ between runs: %+v vs %+v", first, second)
	}
	if first.Total() != 2 {
		t.Errorf("total = %d, want 2", first.Total())
	}
}
