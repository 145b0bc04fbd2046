// Package splitter provides fixed-size overlapping text windows for chunking.
package splitter

// DefaultChunkSize is the default number of characters per window.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 200

// Splitter splits text into ordered, overlapping windows. Window sizes are
// measured in runes so multi-byte text never splits mid-character.
type Splitter struct {
	chunkSize int
	overlap   int
}

// Option configures the splitter.
type Option func(*Splitter)

// WithChunkSize sets the window size in characters.
func WithChunkSize(size int) Option {
	return func(s *Splitter) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between windows in characters.
func WithOverlap(overlap int) Option {
	return func(s *Splitter) {
		if overlap >= 0 {
			s.overlap = overlap
		}
	}
}

// New creates a splitter with the given options.
func New(opts ...Option) *Splitter {
	s := &Splitter{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(s)
	}

	// Overlap must stay strictly below the chunk size or the window
	// start would never advance.
	if s.overlap >= s.chunkSize {
		s.overlap = s.chunkSize / 4
	}

	return s
}

// ChunkSize returns the configured window size.
func (s *Splitter) ChunkSize() int { return s.chunkSize }

// Overlap returns the configured window overlap.
func (s *Splitter) Overlap() int { return s.overlap }

// Split produces ordered windows covering text. Consecutive windows share
// the configured overlap; stripping that overlap from every window after
// the first reconstructs the source exactly. Text shorter than one window
// yields a single window equal to the text. Empty input yields nothing.
func (s *Splitter) Split(text string) []string {
	if text == "" {
		return nil
	}

	runes := []rune(text)
	total := len(runes)
	step := s.chunkSize - s.overlap

	windows := make([]string, 0, total/step+1)
	for start := 0; start < total; start += step {
		end := start + s.chunkSize
		if end > total {
			end = total
		}

		windows = append(windows, string(runes[start:end]))

		// The final window reaches the end of the text; anything after
		// it would be pure overlap.
		if end == total {
			break
		}
	}

	return windows
}
