package splitter

import (
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		s := New()
		if s.ChunkSize() != DefaultChunkSize {
			t.Errorf("expected chunkSize %d, got %d", DefaultChunkSize, s.ChunkSize())
		}
		if s.Overlap() != DefaultChunkOverlap {
			t.Errorf("expected overlap %d, got %d", DefaultChunkOverlap, s.Overlap())
		}
	})

	t.Run("custom values", func(t *testing.T) {
		s := New(WithChunkSize(500), WithOverlap(100))
		if s.ChunkSize() != 500 {
			t.Errorf("expected chunkSize 500, got %d", s.ChunkSize())
		}
		if s.Overlap() != 100 {
			t.Errorf("expected overlap 100, got %d", s.Overlap())
		}
	})

	t.Run("overlap clamped below chunk size", func(t *testing.T) {
		s := New(WithChunkSize(100), WithOverlap(150))
		if s.Overlap() >= s.ChunkSize() {
			t.Errorf("overlap %d should be below chunk size %d", s.Overlap(), s.ChunkSize())
		}
	})

	t.Run("zero values ignored", func(t *testing.T) {
		s := New(WithChunkSize(0), WithOverlap(-1))
		if s.ChunkSize() != DefaultChunkSize {
			t.Errorf("expected default chunkSize, got %d", s.ChunkSize())
		}
		if s.Overlap() != DefaultChunkOverlap {
			t.Errorf("expected default overlap, got %d", s.Overlap())
		}
	})
}

func TestSplit_Empty(t *testing.T) {
	s := New()
	if windows := s.Split(""); len(windows) != 0 {
		t.Errorf("expected no windows for empty text, got %d", len(windows))
	}
}

func TestSplit_SingleWindow(t *testing.T) {
	s := New(WithChunkSize(100), WithOverlap(20))
	text := "shorter than one window"

	windows := s.Split(text)
	if len(windows) != 1 {
		t.Fatalf("expected 1 window, got %d", len(windows))
	}
	if windows[0] != text {
		t.Errorf("expected window to equal the text, got %q", windows[0])
	}
}

func TestSplit_WindowBounds(t *testing.T) {
	s := New(WithChunkSize(10), WithOverlap(3))
	text := "0123456789ABCDEFGHIJ" // 20 chars, step 7

	windows := s.Split(text)
	if len(windows) != 3 {
		t.Fatalf("expected 3 windows, got %d", len(windows))
	}

	want := []string{"0123456789", "789ABCDEFG", "EFGHIJ"}
	for i, w := range want {
		if windows[i] != w {
			t.Errorf("window %d: expected %q, got %q", i, w, windows[i])
		}
	}

	for _, w := range windows {
		if len(w) > 10 {
			t.Errorf("window %q exceeds chunk size", w)
		}
	}
}

// Stripping the overlap from every window after the first must reconstruct
// the source exactly: the overlap is redundancy, not loss.
func TestSplit_Coverage(t *testing.T) {
	cases := []struct {
		name    string
		size    int
		overlap int
		text    string
	}{
		{"ascii", 10, 3, "the quick brown fox jumps over the lazy dog"},
		{"exact multiple", 50, 0, strings.Repeat("a", 100)},
		{"long with overlap", 100, 20, strings.Repeat("0123456789", 37)},
		{"unicode", 7, 2, "héllø wörld — ünïcode tèxt splïts on rünes"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := New(WithChunkSize(tc.size), WithOverlap(tc.overlap))
			windows := s.Split(tc.text)

			var b strings.Builder
			for i, w := range windows {
				runes := []rune(w)
				if i == 0 {
					b.WriteString(w)
					continue
				}
				if len(runes) <= s.Overlap() {
					// Window fully contained in the previous one's tail.
					continue
				}
				b.WriteString(string(runes[s.Overlap():]))
			}

			if b.String() != tc.text {
				t.Errorf("reconstruction mismatch:\nwant %q\ngot  %q", tc.text, b.String())
			}
		})
	}
}

// The 2500-character document from the end-to-end scenario must produce
// exactly 3 windows with the default 1000/200 configuration.
func TestSplit_ScenarioWindowCount(t *testing.T) {
	s := New()
	windows := s.Split(strings.Repeat("x", 2500))
	if len(windows) != 3 {
		t.Errorf("expected 3 windows for 2500 chars, got %d", len(windows))
	}

	windows = s.Split(strings.Repeat("y", 500))
	if len(windows) != 1 {
		t.Errorf("expected 1 window for 500 chars, got %d", len(windows))
	}
}
