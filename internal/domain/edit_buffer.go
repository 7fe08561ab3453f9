package domain

// EditBuffer holds the digits typed while editing the countdown.
// It never touches a Clock; the service wires the two together.
type EditBuffer struct {
	buffer  EditText
	editing bool
	def     PackedTime
}

// NewEditBuffer creates a buffer holding the padded default value
func NewEditBuffer(def PackedTime) *EditBuffer {
	return &EditBuffer{
		buffer: PadPackedTo6Digits(def),
		def:    def,
	}
}

// Buffer returns the current 6 digit buffer
func (b *EditBuffer) Buffer() EditText {
	return b.buffer
}

// Editing reports whether an edit is in progress
func (b *EditBuffer) Editing() bool {
	return b.editing
}

// Begin loads remaining seconds into the buffer and enters editing.
// Negative remaining values load as zero.
func (b *EditBuffer) Begin(remaining int64) {
	if remaining < 0 {
		remaining = 0
	}
	b.buffer = PadPackedTo6Digits(SecondsToPacked(remaining, true))
	b.editing = true
}

// OnDigitsChanged replaces the buffer with the padded raw input
func (b *EditBuffer) OnDigitsChanged(raw string) {
	b.buffer = PadTo6Digits(raw)
}

// AppendDigit types one digit at the right end, pushing the oldest out
func (b *EditBuffer) AppendDigit(d rune) {
	b.OnDigitsChanged(string(b.buffer) + string(d))
}

// Backspace removes the rightmost digit, shifting the rest right
func (b *EditBuffer) Backspace() {
	s := string(b.buffer)
	if s == "" {
		return
	}
	b.OnDigitsChanged(s[:len(s)-1])
}

// Commit leaves editing and returns the buffer as a packed value.
// ok is false when no edit was in progress.
func (b *EditBuffer) Commit() (packed PackedTime, ok bool) {
	if !b.editing {
		return 0, false
	}
	b.editing = false
	return b.buffer.Packed(), true
}

// Reset restores the padded default value. Editing is left as is.
func (b *EditBuffer) Reset() {
	b.buffer = PadPackedTo6Digits(b.def)
}

// Cancel leaves editing without producing a value
func (b *EditBuffer) Cancel() {
	b.editing = false
}
