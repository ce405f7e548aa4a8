package story

import (
	"fmt"
	"os"
	"time"

	"github.com/jorge-barreto/fater/internal/log"
)

// Load reads a story file and parses it. I/O failures are wrapped; parse
// failures are returned as *ParseError.
func Load(path string, opts Options) (*Story, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading story: %w", err)
	}

	start := time.Now()
	st, err := ParseWithOptions(string(data), opts)
	if err != nil {
		return nil, err
	}
	log.WithComponent("story").Debug("parsed story",
		"path", path,
		"sections", st.Len(),
		"took", time.Since(start),
	)
	return st, nil
}
