package dashboard

import "time"

// LoadStatus distinguishes "never fetched" from "fetched and empty".
type LoadStatus string

const (
	NotLoaded LoadStatus = "not-loaded"
	Loading   LoadStatus = "loading"
	Loaded    LoadStatus = "loaded"
	Failed    LoadStatus = "failed"
)

// Resource is one remote dataset owned by a tab.
type Resource[T any] struct {
	Status   LoadStatus `json:"status"`
	Data     T          `json:"data"`
	Error    string     `json:"error,omitempty"`
	LoadedAt *time.Time `json:"loadedAt,omitempty"`
}

// NeedsLoad reports whether the resource has never been fetched or was
// invalidated.
func (r *Resource[T]) NeedsLoad() bool {
	return r.Status == NotLoaded
}

// resettable is the status side of a Resource, independent of its data type.
type resettable interface {
	reset()
	invalidate()
	retryFailed()
}

func (r *Resource[T]) reset() {
	r.Status = NotLoaded
}

func (r *Resource[T]) start() {
	r.Status = Loading
	r.Error = ""
}

func (r *Resource[T]) succeed(data T, at time.Time) {
	r.Status = Loaded
	r.Data = data
	r.Error = ""
	r.LoadedAt = &at
}

// fail keeps previously loaded data so the tab can still show it.
func (r *Resource[T]) fail(err error) {
	r.Status = Failed
	r.Error = err.Error()
}

func (r *Resource[T]) invalidate() {
	if r.Status != Loading {
		r.Status = NotLoaded
	}
}

// retryFailed queues a failed resource for the next load.
func (r *Resource[T]) retryFailed() {
	if r.Status == Failed {
		r.Status = NotLoaded
	}
}
