// Package opener hands a file to the operating system's default handler.
package opener

import (
	"fmt"
	"os"

	"github.com/skratchdot/open-golang/open"
)

// Func opens path with the platform handler.
type Func func(path string) error

// start is replaced in tests so no external application is launched.
var start = open.Start

// Open launches the default application for path and returns once the
// handler process has been started.
func Open(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	if err := start(path); err != nil {
		return fmt.Errorf("start handler for %s: %w", path, err)
	}
	return nil
}
