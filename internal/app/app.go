package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"bugg-go/internal/blobstore"
	"bugg-go/internal/bugg"
	"bugg-go/internal/config"
	"bugg-go/internal/fs"
	"bugg-go/internal/progress"
)

// BuggApp is the application layer between the CLI and bugg.Service.
// It builds all dependencies from the operator settings for one SD card
// folder and owns the log file and blob store until Close.
type BuggApp struct {
	cfg     *config.Config
	root    string
	fsmgr   bugg.FilesystemManager
	in      io.Reader
	out     *os.File
	logger  bugg.Logger
	logFile *os.File
	store   bugg.BlobStore
	op      *Operation
}

// NewBuggApp creates a BuggApp for the SD card data in folder, talking to the
// operator on stdin and stdout. operation names the CLI command being run
// (e.g. "Upload", "Check"). The caller must call Close when done.
func NewBuggApp(cfg *config.Config, folder, operation string, verbose bool) (*BuggApp, error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return newBuggApp(cfg, folder, operation, level, os.Stdin, os.Stdout)
}

func newBuggApp(cfg *config.Config, folder, operation string, level slog.Level, in io.Reader, out *os.File) (*BuggApp, error) {
	root, err := filepath.Abs(folder)
	if err != nil {
		return nil, fmt.Errorf("resolving folder: %w", err)
	}

	opID := time.Now().UTC().Format("20060102T150405Z")
	logger, logFile, err := newLogger(cfg.LogDir, opID, level)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	op := NewOperation(operation, root)
	logger.Info("operation started", "operation", op.Name, "folder", op.Folder, "store", cfg.Store.Type, "bucket", cfg.Store.Bucket)

	return &BuggApp{
		cfg:     cfg,
		root:    root,
		fsmgr:   fs.NewOSFilesystemManager(),
		in:      in,
		out:     out,
		logger:  &slogAdapter{l: logger},
		logFile: logFile,
		op:      op,
	}, nil
}

// Root returns the absolute SD card folder.
func (a *BuggApp) Root() string { return a.root }

// newService wires a bugg.Service. store may be nil for commands that never upload.
func (a *BuggApp) newService(store bugg.BlobStore) *bugg.Service {
	opts := bugg.Options{
		Bucket:      a.cfg.Store.Bucket,
		LocationURL: a.cfg.LocationURL,
	}
	return bugg.NewService(opts, a.fsmgr, store, bugg.NewLineConfirmer(a.in, a.out), progress.New(a.out),
		a.out, a.logger, bugg.RealClock{}, bugg.UUIDGenerator{})
}

// openStore creates the configured blob store. The gcs backend authenticates
// with the config.json on the SD card.
func (a *BuggApp) openStore(ctx context.Context) (bugg.BlobStore, error) {
	if a.store != nil {
		return a.store, nil
	}
	store, err := blobstore.NewStoreFromConfig(ctx, a.cfg.Store, filepath.Join(a.root, bugg.ConfigFileName))
	if err != nil {
		return nil, fmt.Errorf("creating blob store: %w", err)
	}
	a.store = store
	return store, nil
}

// Upload validates the folder, asks for confirmation and uploads every recording.
// The blob store is only built once the folder has passed validation.
func (a *BuggApp) Upload(ctx context.Context) (*bugg.Result, error) {
	result, err := a.newService(&deferredStore{open: a.openStore}).Run(ctx, a.root)
	a.op.Finish(err)
	return result, err
}

// Check validates the folder and prints the upload summary without uploading.
func (a *BuggApp) Check() (*bugg.Plan, error) {
	plan, err := a.newService(nil).Check(a.root)
	a.op.Finish(err)
	return plan, err
}

// Close logs the outcome of the operation and releases the store and log file.
func (a *BuggApp) Close() error {
	var firstErr error

	if closer, ok := a.store.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			firstErr = fmt.Errorf("closing blob store: %w", err)
		}
	}

	if a.op.Failed() {
		a.logger.Error("operation finished", "operation", a.op.Name, "status", a.op.Status, "error", a.op.Err)
	} else {
		a.logger.Info("operation finished", "operation", a.op.Name, "status", a.op.Status)
	}

	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing log file: %w", err)
		}
	}

	return firstErr
}

// deferredStore builds the configured store on first use, so settings errors
// surface after the SD card diagnostics.
type deferredStore struct {
	open func(ctx context.Context) (bugg.BlobStore, error)
}

func (d *deferredStore) ValidateSetup(ctx context.Context) error {
	store, err := d.open(ctx)
	if err != nil {
		return err
	}
	return store.ValidateSetup(ctx)
}

func (d *deferredStore) UploadObject(ctx context.Context, bucket, key string, r io.Reader, size int64, contentType string) (*bugg.ObjectInfo, error) {
	store, err := d.open(ctx)
	if err != nil {
		return nil, err
	}
	return store.UploadObject(ctx, bucket, key, r, size, contentType)
}
