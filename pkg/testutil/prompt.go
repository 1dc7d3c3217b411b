package testutil

import (
	"fmt"
	"strings"
	"sync"
)

// ScriptedConfirmer answers questions from Answers in order. Once the
// queue is empty Default is returned. Every question is recorded.
type ScriptedConfirmer struct {
	mu        sync.Mutex
	Answers   []bool
	Default   bool
	Err       error
	Questions []string
}

// NewScriptedConfirmer creates a confirmer answering with answers in order
func NewScriptedConfirmer(answers ...bool) *ScriptedConfirmer {
	return &ScriptedConfirmer{Answers: answers}
}

// Confirm implements types.Confirmer
func (c *ScriptedConfirmer) Confirm(question string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Questions = append(c.Questions, question)
	if c.Err != nil {
		return false, c.Err
	}
	if len(c.Answers) == 0 {
		return c.Default, nil
	}
	answer := c.Answers[0]
	c.Answers = c.Answers[1:]
	return answer, nil
}

// Asked reports whether any recorded question contains substr
func (c *ScriptedConfirmer) Asked(substr string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, q := range c.Questions {
		if strings.Contains(q, substr) {
			return true
		}
	}
	return false
}

// RecordingReporter keeps every reported line and progress value
type RecordingReporter struct {
	mu       sync.Mutex
	Lines    []string
	Percents []int
	Labels   []string
}

// Report implements types.Reporter
func (r *RecordingReporter) Report(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Lines = append(r.Lines, line)
}

// Progress implements types.Reporter
func (r *RecordingReporter) Progress(label string, percent int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Labels = append(r.Labels, label)
	r.Percents = append(r.Percents, percent)
}

// Contains reports whether any line contains substr
func (r *RecordingReporter) Contains(substr string) bool {
	return r.Index(substr) >= 0
}

// Index returns the position of the first line containing substr, or -1
func (r *RecordingReporter) Index(substr string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, l := range r.Lines {
		if strings.Contains(l, substr) {
			return i
		}
	}
	return -1
}

// String joins all lines for failure messages
func (r *RecordingReporter) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fmt.Sprintf("%q", r.Lines)
}
