package worker

import (
	"log"
	"time"

	"societyhub/repository"
)

// ReconcileWorker is a background worker that periodically repairs upvote
// counters that have drifted from the vote ledger.
type ReconcileWorker struct {
	complaintRepo *repository.ComplaintRepository
	interval      time.Duration
	stopChan      chan struct{}
	running       bool
}

// NewReconcileWorker creates a new reconcile worker
func NewReconcileWorker(
	complaintRepo *repository.ComplaintRepository,
	interval time.Duration,
) *ReconcileWorker {
	return &ReconcileWorker{
		complaintRepo: complaintRepo,
		interval:      interval,
		stopChan:      make(chan struct{}),
		running:       false,
	}
}

// Start starts the reconcile worker
// The worker runs in a separate goroutine and repairs counters periodically
func (w *ReconcileWorker) Start() {
	if w.running {
		log.Println("Reconcile worker is already running")
		return
	}

	w.running = true
	log.Printf("Reconcile worker started (interval: %v)", w.interval)

	go w.run()
}

// Stop stops the reconcile worker
func (w *ReconcileWorker) Stop() {
	if !w.running {
		return
	}

	log.Println("Stopping reconcile worker...")
	close(w.stopChan)
	w.running = false
	log.Println("Reconcile worker stopped")
}

// run is the main worker loop
func (w *ReconcileWorker) run() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// Reconcile immediately on start
	w.reconcile()

	for {
		select {
		case <-ticker.C:
			w.reconcile()
		case <-w.stopChan:
			return
		}
	}
}

// reconcile recounts upvote mirrors from the vote ledger.
// This method is idempotent - safe to call multiple times.
func (w *ReconcileWorker) reconcile() {
	startTime := time.Now()

	repaired, err := w.complaintRepo.RecountUpvotes()
	if err != nil {
		log.Printf("Error reconciling upvote counters: %v", err)
		return
	}

	duration := time.Since(startTime)
	if repaired > 0 {
		log.Printf("Reconciled upvote counters: %d complaints repaired in %v", repaired, duration)
	} else {
		log.Printf("Upvote counters consistent (checked in %v)", duration)
	}
}
