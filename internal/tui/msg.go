package tui

import "github.com/papapumpkin/sysbrowse/internal/settings"

// MsgSettingsChanged is sent when the settings file changes on disk.
type MsgSettingsChanged struct {
	Change settings.Change
}

// MsgWatchClosed is sent when the settings change channel is closed.
type MsgWatchClosed struct{}
