package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"bugg-go/internal/app"
	"bugg-go/internal/bugg"
	"bugg-go/internal/config"

	"github.com/spf13/cobra"
)

var (
	folder  string
	verbose bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if errors.Is(err, bugg.ErrDeclined) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "\nError: %v\n", err)
		os.Exit(1)
	}
}

// newApp reads the settings and creates a BuggApp for --folder.
// operation identifies the CLI command being run (e.g. "Upload", "Check").
// The caller must defer app.Close().
func newApp(operation string) (*app.BuggApp, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults.ConfigPath, defaults.BaseDir)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewBuggApp(cfg, folder, operation, verbose)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}
	return a, nil
}

var rootCmd = &cobra.Command{
	Use:   "bugg",
	Short: "Upload Bugg SD card recordings to the cloud",
	Long: `bugg validates the audio recorded by Bugg devices on an SD card and
uploads it to the project drop-box bucket, one file at a time.

Run it from the root of the SD card or point --folder at it.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Upload")
		if err != nil {
			return err
		}
		defer a.Close()

		_, err = a.Upload(cmd.Context())
		return err
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the SD card folder and show what would be uploaded",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Check")
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.Check(); err != nil {
			return err
		}
		fmt.Printf("\n%s is ready to upload.\n", a.Root())
		return nil
	},
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage operator settings",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a settings file with the default values",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults.BaseDir)
		if err := config.Init(defaults.ConfigPath, cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults.ConfigPath)
		fmt.Printf("Store:   %s\n", cfg.Store.Type)
		fmt.Printf("Bucket:  %s\n", cfg.Store.Bucket)
		fmt.Printf("Log Dir: %s\n", cfg.LogDir)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View operator settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults.ConfigPath, defaults.BaseDir)
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults.ConfigPath)
		fmt.Printf("Store:        %s\n", cfg.Store.Type)
		fmt.Printf("Bucket:       %s\n", cfg.Store.Bucket)
		switch cfg.Store.Type {
		case "s3":
			fmt.Printf("S3 Region:    %s\n", cfg.Store.S3Region)
			fmt.Printf("S3 Endpoint:  %s\n", cfg.Store.S3Endpoint)
		case "filesystem":
			fmt.Printf("FS Root:      %s\n", cfg.Store.FSRoot)
		}
		fmt.Printf("Location URL: %s\n", cfg.LocationURL)
		fmt.Printf("Log Dir:      %s\n", cfg.LogDir)
		return nil
	},
}

func init() {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}

	rootCmd.PersistentFlags().StringVar(&folder, "folder", cwd, "folder containing the SD card data")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "write debug entries to the log file")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)
}
