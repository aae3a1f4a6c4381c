package model

// Task statuses reported by the server. The set is open-ended; the client
// only branches on these two.
const (
	TaskRunning     = "running"
	TaskRestartable = "restartable"
)

// Task is a background job on the server, read-only from the client apart
// from restarting restartable tasks. Refreshed wholesale by polling.
type Task struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Status   string `json:"status"`
	Progress int    `json:"progress"`
}

// Restartable reports whether the restart action applies to this task.
func (t Task) Restartable() bool {
	return t.Status == TaskRestartable
}
