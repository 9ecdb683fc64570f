package crawl

// Worklist is a FIFO queue of asset URLs pending a download-and-rescan pass.
// Each URL is enqueued at most once and processed at most once, which breaks
// reference cycles (A imports B imports A). Membership is exact — a missed
// asset here would silently vanish from the mirror, so no probabilistic
// dedup is used.
type Worklist struct {
	queue     []string
	enqueued  map[string]bool
	processed map[string]bool
}

// NewWorklist creates an empty worklist.
func NewWorklist() *Worklist {
	return &Worklist{
		enqueued:  make(map[string]bool),
		processed: make(map[string]bool),
	}
}

// Push adds a URL to the queue. Returns false if the URL was ever enqueued
// before.
func (w *Worklist) Push(url string) bool {
	if w.enqueued[url] {
		return false
	}
	w.enqueued[url] = true
	w.queue = append(w.queue, url)
	return true
}

// Pop removes and returns the oldest queued URL.
// The bool result is false when the queue is empty.
func (w *Worklist) Pop() (string, bool) {
	if len(w.queue) == 0 {
		return "", false
	}
	url := w.queue[0]
	w.queue = w.queue[1:]
	return url, true
}

// MarkProcessed records that a URL's download-and-rescan pass completed.
func (w *Worklist) MarkProcessed(url string) {
	w.processed[url] = true
}

// Processed reports whether the URL already completed its pass.
func (w *Worklist) Processed(url string) bool {
	return w.processed[url]
}

// Known reports whether the URL was ever enqueued.
func (w *Worklist) Known(url string) bool {
	return w.enqueued[url]
}

// Len returns the number of URLs still queued.
func (w *Worklist) Len() int {
	return len(w.queue)
}
