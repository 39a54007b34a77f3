package bugg

import (
	"context"
	"fmt"
	"io"
)

// DefaultLocationURL is where an operator sets a device's location; %s is the device ID.
const DefaultLocationURL = "https://app.bugg.xyz/?bugg=%s&tab=location"

// LocationLink formats the location page link for deviceID.
func LocationLink(template, deviceID string) string {
	if template == "" {
		template = DefaultLocationURL
	}
	return fmt.Sprintf(template, deviceID)
}

// Uploader pushes planned recordings to a BlobStore one at a time.
type Uploader struct {
	store       BlobStore
	bucket      string
	fsmgr       FilesystemManager
	progress    Progress
	confirmer   Confirmer
	out         io.Writer
	logger      Logger
	locationURL string
}

// NewUploader creates an Uploader writing to bucket in store.
// Operator-facing text goes to out; locationURL may be empty for the default.
func NewUploader(store BlobStore, bucket string, fsmgr FilesystemManager, progress Progress, confirmer Confirmer, out io.Writer, logger Logger, locationURL string) *Uploader {
	return &Uploader{
		store:       store,
		bucket:      bucket,
		fsmgr:       fsmgr,
		progress:    progress,
		confirmer:   confirmer,
		out:         out,
		logger:      logger,
		locationURL: locationURL,
	}
}

// UploadSummary is what an Upload call got through.
type UploadSummary struct {
	Uploaded   int
	NewDevices []string
}

// Upload uploads every task in plan order. The first device is covered by the
// pre-upload confirmation; each later device triggers a new-device prompt after
// its first file, unless the plan has a single task. Any store error stops the
// run; objects already uploaded stay in place.
func (u *Uploader) Upload(ctx context.Context, plan *Plan) (*UploadSummary, error) {
	summary := &UploadSummary{}
	seen := make(map[string]bool)

	for _, task := range plan.Tasks {
		if err := u.uploadTask(ctx, task); err != nil {
			return summary, err
		}
		summary.Uploaded++

		deviceID := DeviceFromKey(task.RemoteKey)
		if seen[deviceID] {
			continue
		}
		seen[deviceID] = true
		if len(seen) == 1 || plan.FileCount() <= 1 {
			continue
		}

		summary.NewDevices = append(summary.NewDevices, deviceID)
		u.logger.Info("new device seen", "device", deviceID)

		prompt := fmt.Sprintf("\nNew device Id seen: '%s'\n\n"+
			"You may need to set the location for this device here: %s\n\n"+
			"Do you want to continue? (y/n)", deviceID, LocationLink(u.locationURL, deviceID))
		decision, err := u.confirmer.Confirm(prompt)
		if err != nil {
			return summary, err
		}
		if decision != DecisionConfirmed {
			return summary, ErrDeclined
		}
	}

	return summary, nil
}

// uploadTask streams one file to the store. The file is closed on every path.
func (u *Uploader) uploadTask(ctx context.Context, task UploadTask) error {
	info, err := u.fsmgr.Stat(task.LocalPath)
	if err != nil {
		return &UploadError{Key: task.RemoteKey, Err: fmt.Errorf("stat %s: %w", task.LocalPath, err)}
	}

	f, err := u.fsmgr.Open(task.LocalPath)
	if err != nil {
		return &UploadError{Key: task.RemoteKey, Err: fmt.Errorf("opening %s: %w", task.LocalPath, err)}
	}
	defer f.Close()

	r := u.progress.Wrap("uploading to "+task.RemoteKey, f, info.Size())
	obj, err := u.store.UploadObject(ctx, u.bucket, task.RemoteKey, r, info.Size(), task.ContentType)
	r.Close()
	if err != nil {
		u.logger.Error("upload failed", "key", task.RemoteKey, "path", task.LocalPath, "error", err)
		return &UploadError{Key: task.RemoteKey, Err: err}
	}

	u.logger.Info("file uploaded", "key", obj.Key, "bucket", obj.Bucket, "size", obj.Size)
	return nil
}
