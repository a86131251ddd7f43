package tui

// RowUpdateMsg changes one install row's fields, keyed by column header.
// Unknown row keys are ignored so the reconciler can emit events for steps
// the table never registered.
type RowUpdateMsg struct {
	Key    string
	Fields map[string]string
}

// WorkDoneMsg tells the program the reconciliation finished.
type WorkDoneMsg struct{}

// ErrorMsg carries a fatal reconciliation error; the program quits and the
// CLI surfaces the error after teardown.
type ErrorMsg struct {
	Err error
}
