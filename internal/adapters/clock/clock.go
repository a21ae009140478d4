package clock

import (
	"time"

	"github.com/trebuchet-org/cep78-cli/internal/usecase"
)

// SystemClock reads the wall clock in UTC
type SystemClock struct{}

var _ usecase.Clock = SystemClock{}

// NewSystemClock creates a new system clock
func NewSystemClock() SystemClock {
	return SystemClock{}
}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
