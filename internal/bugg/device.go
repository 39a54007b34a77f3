package bugg

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
)

// ConfigFileName is the device configuration written to the SD card root.
const ConfigFileName = "config.json"

// DeviceConfig holds the identifiers from config.json that the folder layout
// must match. Path is where it was read from.
type DeviceConfig struct {
	ProjectID string
	ConfigID  string
	Path      string
}

type deviceDocument struct {
	Device *struct {
		ProjectID *string `json:"project_id"`
		ConfigID  *string `json:"config_id"`
	} `json:"device"`
}

// LoadDeviceConfig reads <root>/config.json and extracts the project and
// config identifiers. Missing or empty identifiers are a ConfigMalformed error.
func LoadDeviceConfig(fsmgr FilesystemManager, root string) (*DeviceConfig, error) {
	path := filepath.Join(root, ConfigFileName)

	info, err := fsmgr.Stat(path)
	if err != nil || info.IsDir() {
		verr := &ValidationError{
			Kind: ConfigMissing,
			Path: path,
			Message: fmt.Sprintf("Cannot find config.json in the directory %s.\n"+
				"You can specify a folder containing the SD card data with the --folder option.", root),
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			verr.Err = err
		}
		return nil, verr
	}

	data, err := fsmgr.ReadFile(path)
	if err != nil {
		return nil, &ValidationError{
			Kind:    ConfigMalformed,
			Path:    path,
			Message: fmt.Sprintf("Cannot read %s.", path),
			Err:     err,
		}
	}

	var doc deviceDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ValidationError{
			Kind:    ConfigMalformed,
			Path:    path,
			Message: fmt.Sprintf("Cannot parse %s.", path),
			Err:     err,
		}
	}

	malformed := func(field string) error {
		return &ValidationError{
			Kind:    ConfigMalformed,
			Path:    path,
			Message: fmt.Sprintf("%s has no %s. The SD card config needs a device object with project_id and config_id.", path, field),
		}
	}

	if doc.Device == nil {
		return nil, malformed("device object")
	}
	if doc.Device.ProjectID == nil || *doc.Device.ProjectID == "" {
		return nil, malformed("device.project_id")
	}
	if doc.Device.ConfigID == nil || *doc.Device.ConfigID == "" {
		return nil, malformed("device.config_id")
	}

	return &DeviceConfig{
		ProjectID: *doc.Device.ProjectID,
		ConfigID:  *doc.Device.ConfigID,
		Path:      path,
	}, nil
}
