package testutil

import (
	"fmt"
	"path/filepath"
)

// SDCard builds an SD card tree in a MockFilesystemManager.
type SDCard struct {
	FS        *MockFilesystemManager
	Root      string
	ProjectID string
	ConfigID  string
}

// NewSDCard creates a tree at root with a config.json for projectID/configID
// and an empty audio/<projectID> folder.
func NewSDCard(root, projectID, configID string) *SDCard {
	card := &SDCard{
		FS:        NewMockFilesystemManager(),
		Root:      root,
		ProjectID: projectID,
		ConfigID:  configID,
	}
	card.FS.AddFile(filepath.Join(root, "config.json"), []byte(fmt.Sprintf(
		`{"type": "service_account", "device": {"project_id": %q, "config_id": %q}}`, projectID, configID)))
	card.FS.AddDirectory(card.ProjectDir())
	return card
}

// ProjectDir returns <root>/audio/<projectID>.
func (c *SDCard) ProjectDir() string {
	return filepath.Join(c.Root, "audio", c.ProjectID)
}

// ConfigDir returns the conf_<configID> folder of a device.
func (c *SDCard) ConfigDir(deviceID string) string {
	return filepath.Join(c.ProjectDir(), deviceID, "conf_"+c.ConfigID)
}

// AddDevice adds a device folder with its config folder.
func (c *SDCard) AddDevice(deviceID string) {
	c.FS.AddDirectory(c.ConfigDir(deviceID))
}

// AddRecording adds a recording under a device's config folder and returns its path.
func (c *SDCard) AddRecording(deviceID, name string, content []byte) string {
	path := filepath.Join(c.ConfigDir(deviceID), name)
	c.FS.AddFile(path, content)
	return path
}
