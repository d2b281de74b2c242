// Package obslog configures the single package-level logger shared by
// the CLI, config loader, and trace producers.
package obslog

import "github.com/sirupsen/logrus"

// L is the shared logger. cmd/cachesim configures its level once at
// startup, before any other package is given a chance to log through
// it.
var L = logrus.New()

// SetVerbose switches L to Debug level; the default is Info.
func SetVerbose(verbose bool) {
	if verbose {
		L.SetLevel(logrus.DebugLevel)
		return
	}
	L.SetLevel(logrus.InfoLevel)
}
