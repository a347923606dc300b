package cmd

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/finchat-dev/finchat/internal/config"
	"github.com/finchat-dev/finchat/internal/corpus"
	"github.com/finchat-dev/finchat/internal/db"
	"github.com/finchat-dev/finchat/internal/progress"
	"github.com/finchat-dev/finchat/internal/vectordb"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the knowledge base from the corpus directory",
	Long:  `Loads documents from the corpus directory, splits them into chunks, embeds them, and stores everything in the snapshot database. Documents whose content has not changed are skipped.`,
	RunE:  runIndex,
}

func init() {
	indexCmd.Flags().Int("concurrency", 0, "max parallel embedding calls (overrides config)")
	indexCmd.Flags().Bool("rebuild", false, "re-embed every document even when unchanged")
	indexCmd.Flags().Bool("quiet", false, "suppress progress output")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	start := time.Now()
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := initLogger(cfg)

	concurrency, _ := cmd.Flags().GetInt("concurrency")
	if concurrency > 0 {
		cfg.MaxConcurrency = concurrency
	}
	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = 1
	}
	rebuild, _ := cmd.Flags().GetBool("rebuild")
	quiet, _ := cmd.Flags().GetBool("quiet")

	// Load the corpus.
	source := corpus.NewDirSource(cfg.CorpusDir, cfg.Include, cfg.Exclude)
	docs, err := source.Documents(ctx)
	if err != nil {
		return fmt.Errorf("loading corpus: %w", err)
	}
	if len(docs) == 0 {
		fmt.Printf("No documents found under %s. Add markdown or text files and rerun.\n", cfg.CorpusDir)
		return nil
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Found %d document(s) under %s\n", len(docs), cfg.CorpusDir)
	}

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}

	database, err := db.Open(cfg.DatabasePath())
	if err != nil {
		return fmt.Errorf("opening snapshot database: %w", err)
	}
	defer database.Close()
	store := db.NewStore(database)

	hashes, err := store.Hashes(ctx)
	if err != nil {
		return fmt.Errorf("reading stored hashes: %w", err)
	}

	splitter := corpus.NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap)

	reporter := progress.NewReporter()
	if quiet {
		reporter = progress.NewQuiet()
	}
	reporter.Start(len(docs))

	// Embed changed documents concurrently. SQLite serializes the writes;
	// the embedding calls are the slow part worth parallelizing.
	var (
		mu        sync.Mutex
		done      int
		processed int
		skipped   int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.MaxConcurrency)

	for _, doc := range docs {
		g.Go(func() error {
			if !rebuild && hashes[doc.ID] == doc.ContentHash() {
				mu.Lock()
				skipped++
				done++
				reporter.Update(done, doc.ID+" (unchanged)")
				mu.Unlock()
				return nil
			}

			chunks := splitter.Split(doc.ID, doc.Text)
			var vectors [][]float32
			if len(chunks) > 0 {
				texts := make([]string, len(chunks))
				for i, c := range chunks {
					texts[i] = c.Text
				}
				vecs, err := embedder.Embed(gctx, texts)
				if err != nil {
					return fmt.Errorf("embedding %s: %w", doc.ID, err)
				}
				vectors = vecs
			}

			if err := store.SaveDocument(gctx, doc, chunks, vectors); err != nil {
				return err
			}

			mu.Lock()
			processed++
			done++
			reporter.Update(done, doc.ID)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		reporter.Finish()
		return fmt.Errorf("indexing: %w", err)
	}
	reporter.Finish()

	// Drop documents that left the corpus since the last build.
	keep := make([]string, len(docs))
	for i, doc := range docs {
		keep[i] = doc.ID
	}
	pruned, err := store.Prune(ctx, keep)
	if err != nil {
		return fmt.Errorf("pruning removed documents: %w", err)
	}

	chunkCount, err := store.ChunkCount(ctx)
	if err != nil {
		return fmt.Errorf("counting chunks: %w", err)
	}

	// The chromem backend persists a ready-to-load collection next to the
	// database; the memory backend rebuilds from the database at startup
	// and needs no artifact.
	if cfg.IndexProvider == config.IndexChromem {
		chunks, vectors, err := store.LoadAll(ctx)
		if err != nil {
			return fmt.Errorf("loading snapshot: %w", err)
		}
		index, err := vectordb.NewChromem(embedder)
		if err != nil {
			return err
		}
		if err := index.Add(ctx, chunks, vectors); err != nil {
			return fmt.Errorf("building index: %w", err)
		}
		if err := index.Persist(ctx, cfg.DataDir); err != nil {
			return fmt.Errorf("persisting index: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Persisted chromem index to %s\n", cfg.DataDir)
		}
	}

	log.Debug("index build finished",
		"documents", len(docs), "embedded", processed, "skipped", skipped, "pruned", pruned)

	duration := time.Since(start)
	fmt.Println()
	fmt.Println("Knowledge base indexed!")
	fmt.Printf("  Documents embedded: %d\n", processed)
	fmt.Printf("  Documents skipped:  %d (unchanged)\n", skipped)
	if pruned > 0 {
		fmt.Printf("  Documents pruned:   %d (removed from corpus)\n", pruned)
	}
	fmt.Printf("  Chunks stored:      %d\n", chunkCount)
	fmt.Printf("  Database:           %s\n", cfg.DatabasePath())
	fmt.Printf("  Duration:           %s\n", duration.Round(time.Millisecond))

	return nil
}
