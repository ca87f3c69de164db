package pkg

import (
	"sync"
	"time"
)

// Task - a scheduled callback that can be cancelled before it runs.
type Task interface {
	Stop() bool
}

type Scheduler interface {
	Schedule(delay time.Duration, fn func()) Task
}

// TimerScheduler - runs callbacks on their own goroutine via time.AfterFunc.
type TimerScheduler struct{}

func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{}
}

func (that *TimerScheduler) Schedule(delay time.Duration, fn func()) Task {
	return time.AfterFunc(delay, fn)
}

// ManualScheduler - queues callbacks until RunPending is called. Used by tests to drive delayed moves synchronously.
type ManualScheduler struct {
	mu      sync.Mutex
	tasks   []*manualTask
	history []time.Duration
}

type manualTask struct {
	owner   *ManualScheduler
	fn      func()
	stopped bool
}

func (that *manualTask) Stop() bool {
	that.owner.mu.Lock()
	defer that.owner.mu.Unlock()

	if that.stopped {
		return false
	}
	that.stopped = true
	return true
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (that *ManualScheduler) Schedule(delay time.Duration, fn func()) Task {
	that.mu.Lock()
	defer that.mu.Unlock()

	task := &manualTask{owner: that, fn: fn}
	that.tasks = append(that.tasks, task)
	that.history = append(that.history, delay)

	return task
}

// Pending - number of queued tasks that were not stopped.
func (that *ManualScheduler) Pending() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	count := 0
	for _, task := range that.tasks {
		if !task.stopped {
			count++
		}
	}
	return count
}

// Delays - delays of every task ever scheduled, in order.
func (that *ManualScheduler) Delays() []time.Duration {
	that.mu.Lock()
	defer that.mu.Unlock()

	return append([]time.Duration(nil), that.history...)
}

// RunPending - runs queued tasks that were not stopped. Tasks scheduled while running wait for the next call.
func (that *ManualScheduler) RunPending() int {
	that.mu.Lock()
	tasks := that.tasks
	that.tasks = nil
	that.mu.Unlock()

	ran := 0
	for _, task := range tasks {
		if !task.Stop() {
			continue
		}
		task.fn()
		ran++
	}
	return ran
}
