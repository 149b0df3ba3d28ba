package interps

import "time"

// Interrupt is a suspension point: the VM resumes once Wait has elapsed.
type Interrupt struct {
	Wait time.Duration
}
