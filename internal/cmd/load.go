package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yschen25/apprank/internal/report"
	"github.com/yschen25/apprank/internal/snapshot"
	"github.com/yschen25/apprank/internal/storage"
)

var loadCmd = &cobra.Command{
	Use:   "load [snapshot.json]",
	Short: "Import a ranking snapshot into the SQLite database",
	Long: `Imports a snapshot JSON file into the database, replacing any rows
already stored for the same batch date, then prints the top-ranked apps
and the most recent error records.

Without an argument the most recently modified file in the snapshot
directory is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := setupLogging(cfg); err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}

	var path string
	if len(args) > 0 {
		path = args[0]
	} else {
		path, err = snapshot.Latest(cfg.SnapshotDir)
		if errors.Is(err, snapshot.ErrNoSnapshot) {
			// Resolution failure is reported to the operator; the
			// database is not touched.
			slog.Error("no snapshot file found", "dir", cfg.SnapshotDir)
			fmt.Println("錯誤: 未找到 JSON 文件")
			return nil
		}
		if err != nil {
			return err
		}
	}

	slog.Info("loading snapshot", "path", path)
	snap, err := snapshot.Read(path)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(cfg.DatabasePath); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	store, err := storage.Open(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.LoadSnapshot(snap); err != nil {
		return fmt.Errorf("failed to load snapshot %s: %w", path, err)
	}
	slog.Info("snapshot loaded", "path", path, "records", len(snap.Apps))

	apps, err := store.TopApps(cfg.TopLimit)
	if err != nil {
		return err
	}
	errRows, err := store.RecentErrors(cfg.ErrorLimit)
	if err != nil {
		return err
	}

	report.RenderApps(os.Stdout, apps)
	report.RenderErrors(os.Stdout, errRows)

	fmt.Printf("\n數據已成功導入到資料庫: %s\n", cfg.DatabasePath)
	return nil
}
