// Package scaffold creates a starter story project.
package scaffold

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jorge-barreto/fater/internal/config"
	"github.com/jorge-barreto/fater/internal/ux"
)

const configTemplate = `name: %s
ifid: %s
story: story.fater
start: START
require-start: true

logging:
  level: info
  format: console

serve:
  addr: 127.0.0.1:8080
  cors: false
`

const storyTemplate = `# Lines starting with '#' are comments.
START:
You wake in a small boat drifting on a grey sea.

Fog hides the shore.

row toward the bell -> BELL
wait for the fog to lift -> WAIT
---
BELL:
The bell hangs from a rotten buoy. Something below the water pulls on its chain.

-> DEEP
---
DEEP:
The boat tips. The sea is colder than you expected.

-> END
---
WAIT:
The fog lifts at noon. The shore is closer than you feared.

-> END
---
`

// Init writes fater.yaml and story.fater into dir. Existing files are never
// overwritten.
func Init(dir string, w io.Writer) error {
	configPath := filepath.Join(dir, config.FileName)
	storyPath := filepath.Join(dir, "story.fater")
	for _, p := range []string{configPath, storyPath} {
		if _, err := os.Stat(p); err == nil {
			return fmt.Errorf("%s already exists in %s", filepath.Base(p), dir)
		}
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	name := filepath.Base(dir)
	if abs, err := filepath.Abs(dir); err == nil {
		name = filepath.Base(abs)
	}
	ifid := strings.ToUpper(uuid.NewString())
	if err := os.WriteFile(configPath, []byte(fmt.Sprintf(configTemplate, name, ifid)), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", config.FileName, err)
	}
	if err := os.WriteFile(storyPath, []byte(storyTemplate), 0644); err != nil {
		return fmt.Errorf("writing story.fater: %w", err)
	}

	fmt.Fprintf(w, "\n%s%s✓ Initialized story project%s\n\n", ux.Bold, ux.Green, ux.Reset)
	fmt.Fprintf(w, "  Created:\n")
	fmt.Fprintf(w, "    %s%s%s  project settings\n", ux.Cyan, config.FileName, ux.Reset)
	fmt.Fprintf(w, "    %sstory.fater%s example story\n\n", ux.Cyan, ux.Reset)
	fmt.Fprintf(w, "  Next steps:\n")
	fmt.Fprintf(w, "    1. Run %sfater check%s to validate the story\n", ux.Cyan, ux.Reset)
	fmt.Fprintf(w, "    2. Run %sfater play%s to walk it in the terminal\n", ux.Cyan, ux.Reset)
	fmt.Fprintf(w, "    3. Run %sfater serve --watch%s to play-test in a browser\n\n", ux.Cyan, ux.Reset)
	return nil
}
