package main

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// dotProgress prints a 40 dot bar as drafts complete
type dotProgress struct {
	mu          sync.Mutex
	w           io.Writer
	dotsPrinted int
	startTime   time.Time
}

const progressDots = 40

func newDotProgress(w io.Writer, total int) *dotProgress {
	fmt.Fprintf(w, "Simulating %d drafts: ", total)
	return &dotProgress{w: w, startTime: time.Now()}
}

// OnDraft is called after each draft completes
func (p *dotProgress) OnDraft(done, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if total <= 0 {
		total = 1
	}
	target := done * progressDots / total
	if target > progressDots {
		target = progressDots
	}
	for ; p.dotsPrinted < target; p.dotsPrinted++ {
		fmt.Fprint(p.w, ".")
	}

	if done >= total {
		duration := time.Since(p.startTime)
		fmt.Fprintf(p.w, " done: %d drafts in %.1fs (%.0f/sec)\n", total, duration.Seconds(), float64(total)/duration.Seconds())
	}
}
