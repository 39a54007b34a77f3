package bugg

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// AudioDirName is the folder under the root holding all recordings.
	AudioDirName = "audio"

	// DevicePrefix marks a device folder; the full folder name is the device ID.
	DevicePrefix = "bugg_"

	// ConfigPrefix is prepended to the config ID to name a device's config folder.
	ConfigPrefix = "conf_"

	// ProjectPrefix is prepended to the project ID in remote keys.
	ProjectPrefix = "proj_"
)

// ConfigFolder is the conf_<config_id> directory of one device.
type ConfigFolder struct {
	DeviceID string
	Path     string
}

// ValidateLayout checks that root contains audio/<project_id>/ and that every
// bugg_* device folder in it has a conf_<config_id> folder. The first missing
// folder aborts validation. Folders are returned in directory-listing order.
func ValidateLayout(fsmgr FilesystemManager, root string, cfg *DeviceConfig) ([]ConfigFolder, error) {
	audioPath := filepath.Join(root, AudioDirName)
	if !isDir(fsmgr, audioPath) {
		return nil, &ValidationError{
			Kind: LayoutMismatch,
			Path: audioPath,
			Message: fmt.Sprintf("Cannot find audio folder in the directory %s.\n"+
				"You can specify a folder containing the SD card data with the --folder option.", root),
		}
	}

	projectPath := filepath.Join(audioPath, cfg.ProjectID)
	if !isDir(fsmgr, projectPath) {
		return nil, &ValidationError{
			Kind: LayoutMismatch,
			Path: projectPath,
			Message: fmt.Sprintf("Cannot find project folder %s.\n"+
				"The project folder needs to match the ID in the config file.", projectPath),
		}
	}

	entries, err := fsmgr.ReadDir(projectPath)
	if err != nil {
		return nil, &ValidationError{
			Kind:    LayoutMismatch,
			Path:    projectPath,
			Message: fmt.Sprintf("Cannot list project folder %s.", projectPath),
			Err:     err,
		}
	}

	configName := ConfigPrefix + cfg.ConfigID

	var folders []ConfigFolder
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, DevicePrefix) {
			continue
		}
		if !isDir(fsmgr, filepath.Join(projectPath, name)) {
			continue
		}

		configPath := filepath.Join(projectPath, name, configName)
		if !isDir(fsmgr, configPath) {
			return nil, &ValidationError{
				Kind: LayoutMismatch,
				Path: configPath,
				Message: fmt.Sprintf("Expected to find folder\n %s\nbut it does not exist. "+
					"Each device folder needs a folder named after the config ID, "+
					"and the config ID needs to match the one in the config file (%s).", configPath, configName),
			}
		}

		folders = append(folders, ConfigFolder{DeviceID: name, Path: configPath})
	}

	return folders, nil
}
