//go:build !windows

package console

// LaunchedFromDesktop is always false outside Windows; a desktop launcher
// there runs through a shell or a service manager.
func LaunchedFromDesktop() bool { return false }
