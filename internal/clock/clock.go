// Package clock abstracts time so record stamping stays deterministic in
// tests.
package clock

import (
	"time"

	"go.uber.org/fx"
)

// Clock supplies the current local time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// NewSystem returns a Clock backed by the wall clock.
func NewSystem() Clock { return systemClock{} }

// Module provides the system clock.
var Module = fx.Module("clock",
	fx.Provide(NewSystem),
)
