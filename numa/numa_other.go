//go:build !linux

package numa

func platformBinder(Mode) Worker {
	return noopWorker{}
}
