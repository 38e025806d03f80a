// Package progress displays generation progress, as an interactive bar
// on a terminal and as periodic log lines otherwise.
package progress

// Tracker interface implementation should display progress of one
// generation run.
type Tracker interface {
	// Start declares the total amount of work.
	Start(title string, total int)
	// Update reports work finished so far.
	Update(done int)
	// Wait blocks until the display settled.
	Wait()
}
