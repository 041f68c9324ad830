// Package lifecycle holds timing constants shared by fx start/stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds how long a single start or stop hook may run.
const DefaultTimeout = 15 * time.Second
