package service

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// Interval for cleaning up stale mutexes
	lockCleanupInterval = 10 * time.Minute

	// How long a mutex must be unused before cleanup
	lockStaleThreshold = 10 * time.Minute
)

// AssignmentLocker serializes the read-check-insert of doctor assignments for
// one (patient, date) pair inside this process. The database transaction
// alone does not stop two concurrent requests from both passing the daily
// cap check under READ COMMITTED.
//
// Lock ordering: acquire the pair mutex FIRST, then open the transaction.
type AssignmentLocker struct {
	log *logrus.Logger

	locks sync.Map // map[string]*mutexWithTimestamp

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

// mutexWithTimestamp tracks mutex usage for cleanup
type mutexWithTimestamp struct {
	mu       sync.Mutex
	lastUsed atomic.Int64 // Unix timestamp
}

// NewAssignmentLocker starts the background cleanup goroutine.
// Call Stop() during graceful shutdown.
func NewAssignmentLocker(log *logrus.Logger) *AssignmentLocker {
	l := &AssignmentLocker{
		log:      log,
		stopChan: make(chan struct{}),
	}

	l.wg.Add(1)
	go l.cleanupLoop()

	return l
}

// Lock blocks until the (patient, date) pair is free and returns its unlock func.
func (l *AssignmentLocker) Lock(patientID uint, date time.Time) func() {
	key := fmt.Sprintf("%d:%s", patientID, date.Format("2006-01-02"))
	mt := l.getMutex(key)
	mt.mu.Lock()
	return func() {
		mt.lastUsed.Store(time.Now().Unix())
		mt.mu.Unlock()
	}
}

// Stop gracefully shuts down the cleanup goroutine.
// Safe to call multiple times.
func (l *AssignmentLocker) Stop() {
	if l.stopped.CompareAndSwap(false, true) {
		close(l.stopChan)
		l.wg.Wait()
		l.log.Info("AssignmentLocker stopped")
	}
}

func (l *AssignmentLocker) getMutex(key string) *mutexWithTimestamp {
	mt, _ := l.locks.LoadOrStore(key, &mutexWithTimestamp{})
	result := mt.(*mutexWithTimestamp)
	result.lastUsed.Store(time.Now().Unix())
	return result
}

func (l *AssignmentLocker) cleanupLoop() {
	defer l.wg.Done()

	ticker := time.NewTicker(lockCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-l.stopChan:
			return
		case <-ticker.C:
			l.cleanupStale(time.Now().Add(-lockStaleThreshold))
		}
	}
}

// cleanupStale drops mutexes idle since before cutoff. TryLock skips any
// mutex in use; lastUsed is re-read under the lock.
func (l *AssignmentLocker) cleanupStale(cutoff time.Time) int {
	var cleaned int

	l.locks.Range(func(key, value any) bool {
		mt, ok := value.(*mutexWithTimestamp)
		if !ok {
			return true
		}

		if mt.mu.TryLock() {
			if mt.lastUsed.Load() < cutoff.Unix() {
				l.locks.Delete(key)
				cleaned++
			}
			mt.mu.Unlock()
		}
		return true
	})

	if cleaned > 0 {
		l.log.Debugf("Cleaned up %d stale assignment locks", cleaned)
	}
	return cleaned
}
