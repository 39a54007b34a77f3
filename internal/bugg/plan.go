package bugg

import (
	"fmt"
	"path/filepath"
	"strings"
)

// AudioContentType is sent with every uploaded recording.
const AudioContentType = "audio/mpeg"

// UploadTask maps one local recording to its remote object key.
type UploadTask struct {
	LocalPath   string
	RemoteKey   string
	DeviceID    string
	ContentType string
}

// DeviceCount is the number of planned files for one device.
type DeviceCount struct {
	DeviceID string
	Files    int
}

// Plan is the ordered unit of work handed to the Uploader.
type Plan struct {
	Root    string
	Config  *DeviceConfig
	Tasks   []UploadTask
	Devices []DeviceCount
}

// RemoteKey derives the object key for a recording at localPath. The path
// relative to root must be audio/<project>/<device>/conf_<config>/<file>;
// the key is proj_<project>/<device>/conf_<config>/<file>.
func RemoteKey(root, projectID, configID, localPath string) (string, error) {
	rel, err := filepath.Rel(root, localPath)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrUnexpectedPath, localPath, err)
	}

	segs := strings.Split(filepath.ToSlash(rel), "/")
	if len(segs) != 5 ||
		segs[0] != AudioDirName ||
		segs[1] != projectID ||
		!strings.HasPrefix(segs[2], DevicePrefix) ||
		segs[3] != ConfigPrefix+configID ||
		segs[4] == "" {
		return "", fmt.Errorf("%w: %s is not under %s", ErrUnexpectedPath, localPath,
			filepath.Join(root, AudioDirName, projectID, DevicePrefix+"*", ConfigPrefix+configID))
	}

	return strings.Join([]string{ProjectPrefix + projectID, segs[2], segs[3], segs[4]}, "/"), nil
}

// DeviceFromKey returns the device segment of a remote key, or "" if the key
// has fewer than two segments.
func DeviceFromKey(key string) string {
	segs := strings.Split(key, "/")
	if len(segs) < 2 {
		return ""
	}
	return segs[1]
}

// NewPlan builds upload tasks for files in discovery order and counts them
// per device. Every device in folders is listed, including devices with no
// recordings.
func NewPlan(root string, cfg *DeviceConfig, folders []ConfigFolder, files []AudioFile) (*Plan, error) {
	plan := &Plan{Root: root, Config: cfg}

	counts := make(map[string]int, len(folders))
	for _, f := range files {
		key, err := RemoteKey(root, cfg.ProjectID, cfg.ConfigID, f.Path)
		if err != nil {
			return nil, err
		}
		deviceID := DeviceFromKey(key)
		plan.Tasks = append(plan.Tasks, UploadTask{
			LocalPath:   f.Path,
			RemoteKey:   key,
			DeviceID:    deviceID,
			ContentType: AudioContentType,
		})
		counts[deviceID]++
	}

	for _, folder := range folders {
		plan.Devices = append(plan.Devices, DeviceCount{DeviceID: folder.DeviceID, Files: counts[folder.DeviceID]})
	}

	return plan, nil
}

// FileCount returns the number of planned uploads.
func (p *Plan) FileCount() int { return len(p.Tasks) }
