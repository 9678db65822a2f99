package console

// history keeps the most recent recognized command lines.
type history struct {
	size    int
	entries []string
}

func newHistory(size int) *history {
	return &history{size: size, entries: make([]string, 0, size)}
}

// record appends line, dropping the oldest entry once size is reached.
func (h *history) record(line string) {
	if h.size <= 0 {
		return
	}
	if len(h.entries) == h.size {
		copy(h.entries, h.entries[1:])
		h.entries = h.entries[:h.size-1]
	}
	h.entries = append(h.entries, line)
}

// lines returns the retained entries, oldest first.
func (h *history) lines() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}
