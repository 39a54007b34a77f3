package bugg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Clock supplies the time used to measure a run.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// IDGenerator names runs so log entries of one upload can be grouped.
type IDGenerator interface {
	New() string
}

// UUIDGenerator issues random UUIDs as run IDs.
type UUIDGenerator struct{}

func (UUIDGenerator) New() string { return uuid.New().String() }

// Options are the operator settings the service needs.
type Options struct {
	Bucket      string
	LocationURL string
}

// Service runs the validate, confirm and upload pipeline for one SD card folder.
type Service struct {
	opts      Options
	fsmgr     FilesystemManager
	store     BlobStore
	confirmer Confirmer
	progress  Progress
	out       io.Writer
	logger    Logger
	clock     Clock
	idgen     IDGenerator
}

// Result describes a completed run.
type Result struct {
	RunID      string
	Uploaded   int
	NewDevices []string
	Duration   time.Duration
}

// NewService creates a Service with the provided dependencies. store may be nil
// when only Check is used.
func NewService(opts Options, fsmgr FilesystemManager, store BlobStore, confirmer Confirmer, progress Progress, out io.Writer, logger Logger, clock Clock, idgen IDGenerator) *Service {
	return &Service{
		opts:      opts,
		fsmgr:     fsmgr,
		store:     store,
		confirmer: confirmer,
		progress:  progress,
		out:       out,
		logger:    logger,
		clock:     clock,
		idgen:     idgen,
	}
}

// Prepare validates root and builds the upload plan. Checks run in a fixed
// order (config, audio folder, project folder, device config folders, file
// names) and the first failure is returned.
func (s *Service) Prepare(root string) (*Plan, error) {
	cfg, err := LoadDeviceConfig(s.fsmgr, root)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("device config loaded", "path", cfg.Path, "project", cfg.ProjectID, "config", cfg.ConfigID)

	folders, err := ValidateLayout(s.fsmgr, root, cfg)
	if err != nil {
		return nil, err
	}

	files, err := ValidateFileNames(s.fsmgr, folders)
	if err != nil {
		return nil, err
	}

	plan, err := NewPlan(root, cfg, folders, files)
	if err != nil {
		return nil, fmt.Errorf("planning uploads: %w", err)
	}

	s.logger.Info("folder validated", "root", root, "devices", len(plan.Devices), "files", plan.FileCount())
	return plan, nil
}

// Check validates root and prints the summary without uploading.
func (s *Service) Check(root string) (*Plan, error) {
	plan, err := s.Prepare(root)
	if err != nil {
		s.logger.Error("validation failed", "root", root, "error", err)
		return nil, err
	}
	fmt.Fprint(s.out, s.Summary(plan))
	return plan, nil
}

// Run validates root, asks for confirmation and uploads every planned file.
// An operator decline returns ErrDeclined after printing an exit notice.
func (s *Service) Run(ctx context.Context, root string) (*Result, error) {
	start := s.clock.Now()
	result := &Result{RunID: s.idgen.New()}
	s.logger.Info("run started", "run_id", result.RunID, "root", root)

	plan, err := s.Prepare(root)
	if err != nil {
		s.logger.Error("validation failed", "root", root, "error", err)
		return nil, err
	}

	fmt.Fprint(s.out, s.Summary(plan))

	if err := s.store.ValidateSetup(ctx); err != nil {
		return nil, fmt.Errorf("blob store setup: %w", err)
	}

	prompt := fmt.Sprintf("\nYou are about to upload %d %s. Are you sure you want to continue? (y/n)",
		plan.FileCount(), plural(plan.FileCount(), "file"))
	if err := s.confirm(prompt); err != nil {
		return nil, err
	}

	uploader := NewUploader(s.store, s.opts.Bucket, s.fsmgr, s.progress, s.confirmer, s.out, s.logger, s.opts.LocationURL)
	summary, err := uploader.Upload(ctx, plan)
	result.Uploaded = summary.Uploaded
	result.NewDevices = summary.NewDevices
	result.Duration = s.clock.Now().Sub(start)
	if errors.Is(err, ErrDeclined) {
		s.logger.Info("run declined", "run_id", result.RunID, "uploaded", result.Uploaded)
		fmt.Fprintln(s.out, "Exiting...")
		return result, err
	}
	if err != nil {
		s.logger.Error("run failed", "run_id", result.RunID, "uploaded", result.Uploaded, "error", err)
		return result, err
	}

	s.logger.Info("run finished", "run_id", result.RunID, "uploaded", result.Uploaded, "duration", result.Duration)
	fmt.Fprintln(s.out, "\nFiles uploaded successfully! 🚀")
	return result, nil
}

// confirm asks the pre-upload question and maps a decline to ErrDeclined.
func (s *Service) confirm(prompt string) error {
	decision, err := s.confirmer.Confirm(prompt)
	if err != nil {
		return err
	}
	if decision != DecisionConfirmed {
		s.logger.Info("upload declined before start")
		fmt.Fprintln(s.out, "Exiting...")
		return ErrDeclined
	}
	return nil
}

// Summary renders the pre-upload overview of a plan.
func (s *Service) Summary(plan *Plan) string {
	var b strings.Builder

	b.WriteString("\n  Bugg Audio Uploader\n\n")
	fmt.Fprintf(&b, " ✔ Project: %s\n", plan.Config.ProjectID)
	fmt.Fprintf(&b, " ✔ Config : %s\n", plan.Config.ConfigID)
	fmt.Fprintf(&b, " ✔ %s:\n", capitalize(plural(len(plan.Devices), "device")))
	for _, d := range plan.Devices {
		fmt.Fprintf(&b, "   -  %s    %d %s\n", d.DeviceID, d.Files, plural(d.Files, "file"))
		fmt.Fprintf(&b, "      location: %s\n", LocationLink(s.opts.LocationURL, d.DeviceID))
	}
	fmt.Fprintf(&b, " ✔ Total  : %d %s\n", plan.FileCount(), plural(plan.FileCount(), "file"))

	return b.String()
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
