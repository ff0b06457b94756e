package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/lumina/app/models"
	"github.com/shashiranjanraj/lumina/config"
	"github.com/shashiranjanraj/lumina/pkg/storage"
	"github.com/shashiranjanraj/lumina/pkg/workerpool"
)

// lumina catalog:sync-images uploads product images to the storage disk.
//
// Reads the catalogue file, collects every image path, and copies the
// matching file from IMAGE_DIR onto the configured storage disk (local or
// S3). Uploads run through a bounded worker pool so a big catalogue does
// not open hundreds of connections at once.
var syncImagesCmd = &cobra.Command{
	Use:   "catalog:sync-images",
	Short: "Upload catalogue images to the configured storage disk",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}
		storage.Connect()

		raw, err := os.ReadFile(config.CatalogPath())
		if err != nil {
			return fmt.Errorf("read catalogue: %w", err)
		}
		var products []models.Product
		if err := json.Unmarshal(raw, &products); err != nil {
			return fmt.Errorf("parse catalogue: %w", err)
		}

		seen := map[string]bool{}
		var paths []string
		for _, p := range products {
			for _, img := range append([]string{p.Image}, p.Images...) {
				if img != "" && !seen[img] {
					seen[img] = true
					paths = append(paths, img)
				}
			}
		}

		imageDir := config.ImageDirectory()
		pool := workerpool.New(8)
		defer pool.Shutdown()

		var (
			mu       sync.Mutex
			uploaded int
			missing  int
			failed   int
		)

		start := time.Now()
		for _, path := range paths {
			path := path
			err := pool.SubmitWait(func() {
				src := filepath.Join(imageDir, filepath.FromSlash(path))
				data, err := os.ReadFile(src)
				if err != nil {
					mu.Lock()
					missing++
					mu.Unlock()
					fmt.Printf("  ⚠ missing: %s\n", src)
					return
				}
				if err := storage.Put(path, data); err != nil {
					mu.Lock()
					failed++
					mu.Unlock()
					fmt.Printf("  ✗ failed: %s (%v)\n", path, err)
					return
				}
				mu.Lock()
				uploaded++
				mu.Unlock()
			})
			if err != nil {
				return err
			}
		}

		pool.Shutdown()
		fmt.Printf("Synced %d images (%d missing, %d failed) in %s\n",
			uploaded, missing, failed, time.Since(start).Round(time.Millisecond))
		if failed > 0 {
			return fmt.Errorf("%d uploads failed", failed)
		}
		return nil
	},
}
