package probe

import "time"

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// Dashboard polling constants.
const (
	PollInterval = 250 * time.Millisecond
	PollTimeout  = 30 * time.Second
)
