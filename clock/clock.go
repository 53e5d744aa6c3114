package clock

import "time"

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func NewRealClock() Clock {
	return RealClock{}
}

func (RealClock) Now() time.Time {
	return time.Now()
}

// MockClock returns a fixed instant until moved with Advance or SetTime.
type MockClock struct {
	time time.Time
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{time: t}
}

func (c *MockClock) Now() time.Time {
	return c.time
}

func (c *MockClock) SetTime(t time.Time) {
	c.time = t
}

func (c *MockClock) Advance(d time.Duration) {
	c.time = c.time.Add(d)
}
