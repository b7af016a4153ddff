package model

// Entry is the domain model for one row of the list.
// Entries are values: an edit produces a new Entry, it never changes an old one.
type Entry struct {
	ID      int    `json:"id" yaml:"id"`
	Text    string `json:"text" yaml:"text"`
	Checked bool   `json:"checked" yaml:"checked"`
}

// WithChecked returns a copy of e with Checked set to checked.
func (e Entry) WithChecked(checked bool) Entry {
	e.Checked = checked
	return e
}

// WithText returns a copy of e with Text replaced.
func (e Entry) WithText(text string) Entry {
	e.Text = text
	return e
}
