package ui

// History is a scrollable window over transcript lines. While it follows, new
// lines keep the last one in view. Scrolling up stops following; scrolling
// back to the bottom resumes it.
type History struct {
	lines  []string
	rows   int
	top    int
	follow bool
}

func NewHistory(rows int) *History {
	if rows < 1 {
		rows = 1
	}
	return &History{rows: rows, follow: true}
}

func (h *History) SetLines(lines []string) {
	h.lines = lines
	if h.follow {
		h.top = h.maxTop()
		return
	}
	h.clamp()
}

// Scroll moves the window by delta lines, negative is up.
func (h *History) Scroll(delta int) {
	h.top += delta
	h.clamp()
	h.follow = h.top == h.maxTop()
}

func (h *History) Following() bool {
	return h.follow
}

func (h *History) Top() int {
	return h.top
}

// Visible returns the lines inside the window.
func (h *History) Visible() []string {
	end := h.top + h.rows
	if end > len(h.lines) {
		end = len(h.lines)
	}
	return h.lines[h.top:end]
}

func (h *History) maxTop() int {
	if len(h.lines) <= h.rows {
		return 0
	}
	return len(h.lines) - h.rows
}

func (h *History) clamp() {
	if h.top > h.maxTop() {
		h.top = h.maxTop()
	}
	if h.top < 0 {
		h.top = 0
	}
}
