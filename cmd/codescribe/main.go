package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"codescribe/internal/analyzer"
	"codescribe/internal/config"
	"codescribe/internal/crawler"
	"codescribe/internal/git"
	"codescribe/internal/report"
	"codescribe/internal/storage"
	"codescribe/internal/watch"
)

var (
	rootCmd = &cobra.Command{
		Use:   "codescribe",
		Short: "Heuristic codebase analyzer and README generator",
	}
	dbPath     string
	configPath string
	dryRun     bool
	format     string
	quiet      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Path to the local scan database (SQLite)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to the config file")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress progress output")

	generateCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview without writing any files")
	generateCmd.Flags().StringVar(&format, "format", "", "Output format: markdown or json")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(watchCmd)
}

func loadConfig() *config.Config {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if dbPath != "" {
		cfg.Output.DBPath = dbPath
	}
	if format != "" {
		cfg.Output.Format = format
	}
	return cfg
}

func initStore(cfg *config.Config) *storage.SQLiteStore {
	store, err := storage.NewSQLiteStore(cfg.Output.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	return store
}

func resolveRoot(cfg *config.Config, args []string) string {
	root := cfg.Project.Root
	if len(args) > 0 {
		root = args[0]
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		log.Fatalf("Failed to resolve path %s: %v", root, err)
	}
	return abs
}

// newCrawler builds the crawler for a scan root, excluding the snapshot
// database (and its journal files) so the tool never analyzes its own
// output.
func newCrawler(cfg *config.Config, root string) (*crawler.Crawler, error) {
	patterns := append([]string{}, cfg.Project.Excludes...)
	patterns = append(patterns, dbExcludes(root, cfg.Output.DBPath)...)
	return crawler.New(patterns)
}

// dbExcludes returns glob patterns covering the database path when it lives
// inside the scan root, or nil when it does not.
func dbExcludes(root, dbPath string) []string {
	abs, err := filepath.Abs(dbPath)
	if err != nil {
		return nil
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return nil
	}
	rel = filepath.ToSlash(rel)
	return []string{rel, rel + "-*"}
}

// runScan walks the tree once and returns the summary, showing progress
// unless quiet.
func runScan(cfg *config.Config, root string) analyzer.ModuleSummary {
	c, err := newCrawler(cfg, root)
	if err != nil {
		log.Fatalf("Invalid exclude pattern: %v", err)
	}

	var bar *progressbar.ProgressBar
	if !quiet {
		bar = progressbar.Default(-1, "analyzing files")
	}

	var records []analyzer.FileRecord
	err = c.ScanProject(root, func(rec analyzer.FileRecord) {
		records = append(records, rec)
		if bar != nil {
			bar.Add(1)
		}
	})
	if bar != nil {
		bar.Finish()
		fmt.Println()
	}
	if err != nil {
		log.Fatalf("Scan failed: %v", err)
	}
	return analyzer.SummarizeRecords(records)
}

func printStats(sum analyzer.ModuleSummary) {
	fmt.Printf("✅ Analyzed %d files\n", sum.FileCount)
	for _, lc := range sortedCounts(sum.LanguageCounts) {
		fmt.Printf("   %-12s %d\n", lc.lang, lc.count)
	}
}

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Scan a directory tree and save the analysis snapshot",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		root := resolveRoot(cfg, args)

		store := initStore(cfg)
		defer store.Close()

		fmt.Printf("📂 Scanning %s...\n", root)
		sum := runScan(cfg, root)

		if _, err := store.SaveScan(context.Background(), root, sum); err != nil {
			log.Fatalf("Failed to save scan: %v", err)
		}

		printStats(sum)
		fmt.Printf("💾 Snapshot saved to %s\n", cfg.Output.DBPath)
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate [path]",
	Short: "Generate per-directory README reports from the last scan",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		store := initStore(cfg)
		defer store.Close()

		root, sum, err := store.LoadLatestScan(context.Background())
		if err == storage.ErrNoScans {
			// No snapshot yet: scan fresh instead of failing.
			root = resolveRoot(cfg, args)
			fmt.Printf("📂 No snapshot found, scanning %s...\n", root)
			sum = runScan(cfg, root)
		} else if err != nil {
			log.Fatalf("Failed to load scan: %v", err)
		}

		if cfg.Output.Format == "json" {
			data, err := report.RenderJSON(sum)
			if err != nil {
				log.Fatalf("Failed to render JSON: %v", err)
			}
			fmt.Println(string(data))
			return
		}

		gen := report.NewGenerator(dryRun)
		written, err := gen.WriteAll(root, sum)
		if err != nil {
			log.Fatalf("Failed to write reports: %v", err)
		}
		if dryRun {
			for _, path := range written {
				fmt.Printf("[preview] would write %s\n", path)
			}
			return
		}
		fmt.Printf("📝 Wrote %d README files under %s\n", len(written), root)
	},
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Re-analyze files changed since the last commit and refresh reports",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		store := initStore(cfg)
		defer store.Close()

		ctx := context.Background()
		root, sum, err := store.LoadLatestScan(ctx)
		if err == storage.ErrNoScans {
			log.Fatalf("No scan snapshot yet. Run 'codescribe scan' first.")
		}
		if err != nil {
			log.Fatalf("Failed to load scan: %v", err)
		}

		changes, err := git.GetChangedFiles(root, "HEAD")
		if err != nil {
			log.Fatalf("Failed to get git changes: %v", err)
		}
		if len(changes) == 0 {
			fmt.Println("✅ No changes detected.")
			return
		}
		fmt.Printf("🔍 Detected %d changed files.\n", len(changes))

		c, err := newCrawler(cfg, root)
		if err != nil {
			log.Fatalf("Invalid exclude pattern: %v", err)
		}
		sum = applyChanges(root, c, sum, changes)
		if _, err := store.SaveScan(ctx, root, sum); err != nil {
			log.Fatalf("Failed to save updated scan: %v", err)
		}

		gen := report.NewGenerator(false)
		written, err := gen.WriteAll(root, sum)
		if err != nil {
			log.Fatalf("Failed to refresh reports: %v", err)
		}
		fmt.Printf("📝 Refreshed %d README files.\n", len(written))
	},
}

// applyChanges merges git changes into an existing snapshot: deleted paths
// drop out, modified paths are re-analyzed in place, new paths append.
// Paths the crawler would never scan are dropped too, so an incremental
// update converges to the same snapshot a fresh scan would produce.
func applyChanges(root string, c *crawler.Crawler, sum analyzer.ModuleSummary, changes []git.ChangedFile) analyzer.ModuleSummary {
	index := make(map[string]int, len(sum.Records))
	records := make([]analyzer.FileRecord, len(sum.Records))
	copy(records, sum.Records)
	for i, rec := range records {
		index[filepath.ToSlash(rec.Path)] = i
	}

	removed := make(map[string]bool)
	for _, change := range changes {
		if crawler.IgnoredPath(change.Path) || c.Excluded(change.Path) {
			continue
		}
		if change.Deleted() {
			removed[change.Path] = true
			continue
		}

		data, err := os.ReadFile(filepath.Join(root, change.Path))
		if err != nil {
			removed[change.Path] = true
			continue
		}
		rec := analyzer.AnalyzeFile(change.Path, data)
		if i, ok := index[change.Path]; ok {
			records[i] = rec
		} else {
			index[change.Path] = len(records)
			records = append(records, rec)
		}
	}

	kept := records[:0]
	for _, rec := range records {
		if !removed[filepath.ToSlash(rec.Path)] {
			kept = append(kept, rec)
		}
	}
	return analyzer.SummarizeRecords(kept)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show language statistics from the last scan",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		store := initStore(cfg)
		defer store.Close()

		root, sum, err := store.LoadLatestScan(context.Background())
		if err == storage.ErrNoScans {
			log.Fatalf("No scan snapshot yet. Run 'codescribe scan' first.")
		}
		if err != nil {
			log.Fatalf("Failed to load scan: %v", err)
		}

		fmt.Printf("📊 %s\n", root)
		printStats(sum)
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Watch a directory tree and refresh reports on change",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		root := resolveRoot(cfg, args)

		store := initStore(cfg)
		defer store.Close()

		refresh := func() {
			sum := runScan(cfg, root)
			if _, err := store.SaveScan(context.Background(), root, sum); err != nil {
				log.Printf("Failed to save scan: %v", err)
				return
			}
			gen := report.NewGenerator(false)
			if _, err := gen.WriteAll(root, sum); err != nil {
				log.Printf("Failed to write reports: %v", err)
				return
			}
			fmt.Printf("📝 Reports refreshed (%d files analyzed)\n", sum.FileCount)
		}

		w, err := watch.New(root, refresh, filepath.Base(cfg.Output.DBPath))
		if err != nil {
			log.Fatalf("Failed to start watcher: %v", err)
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		fmt.Printf("👀 Watching %s (Ctrl-C to stop)...\n", root)
		refresh()
		w.Start(ctx)
		<-ctx.Done()
		w.Stop()
	},
}

type langCount struct {
	lang  analyzer.Language
	count int
}

func sortedCounts(counts map[analyzer.Language]int) []langCount {
	out := make([]langCount, 0, len(counts))
	for lang, n := range counts {
		out = append(out, langCount{lang, n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].lang < out[j].lang
	})
	return out
}
