package panel

import (
	"time"

	"github.com/mj1618/bridgectl/internal/host"
	"go.uber.org/zap"
)

// Scheduler fires best-effort clicks on the host's refresh control after a
// successful action, letting the host re-sync its element tree.
type Scheduler struct {
	host host.Host
	log  *zap.Logger

	// sleep is swappable in tests.
	sleep func(time.Duration)
}

// NewScheduler creates a scheduler bound to a host attachment.
func NewScheduler(h host.Host, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{host: h, log: log, sleep: time.Sleep}
}

// Schedule spawns a task that clicks the refresh control up to times times,
// intervalMs apart, starting after an initial intervalMs delay. A tick that
// cannot locate the control is counted and silently absorbed — the control
// may simply not have rendered yet, so later ticks still try. There is no
// cancellation handle; overlapping invocations run independently and may
// interleave, which is accepted best-effort behavior.
func (s *Scheduler) Schedule(times, intervalMs int) {
	if times <= 0 {
		return
	}
	interval := time.Duration(intervalMs) * time.Millisecond
	go s.run(times, interval)
}

func (s *Scheduler) run(times int, interval time.Duration) {
	for i := 0; i < times; i++ {
		s.sleep(interval)
		ctrl, ok := s.host.FindRefreshControl()
		if !ok {
			continue
		}
		if err := s.host.Click(ctrl); err != nil {
			s.log.Debug("refresh click failed", zap.Int("tick", i+1), zap.Error(err))
		}
	}
}

// RunBlocking is the synchronous form of Schedule, used where the caller
// owns the goroutine.
func (s *Scheduler) RunBlocking(times, intervalMs int) {
	if times <= 0 {
		return
	}
	s.run(times, time.Duration(intervalMs)*time.Millisecond)
}
