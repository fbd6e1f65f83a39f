// Command clocq-query is a single-question CLI driving the Pipeline
// Coordinator. Flag layout and one-shot/interactive split adapted from
// the teacher's cmd/chat-cli.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/PhilippChr/CLOCQ/pkg/clocq/candidates"
	"github.com/PhilippChr/CLOCQ/pkg/clocq/config"
	"github.com/PhilippChr/CLOCQ/pkg/clocq/embedding"
	"github.com/PhilippChr/CLOCQ/pkg/clocq/kbindex"
	"github.com/PhilippChr/CLOCQ/pkg/clocq/pipeline"
)

func main() {
	var (
		indexDir    = flag.String("index", "", "Path to the on-disk KB index directory (required)")
		optionsPath = flag.String("options", "", "Optional YAML parameter file (h_match/h_rel/h_conn/h_coh/d/k/p_setting/bm25_limit/parallel)")
		question    = flag.String("query", "", "One-shot question (non-interactive mode)")
		pLimit      = flag.Int("p", 0, "Neighborhood pruning limit (0 = use p_setting from options)")
	)
	flag.Parse()

	if *indexDir == "" {
		log.Fatal("--index required")
	}

	ctx := context.Background()

	coordinator, err := buildCoordinator(*indexDir, *optionsPath)
	if err != nil {
		log.Fatal(err)
	}

	if *question != "" {
		if err := runQuery(ctx, coordinator, *question, *pLimit); err != nil {
			log.Fatal(err)
		}
		return
	}

	fmt.Println("===========================================")
	fmt.Println("  CLOCQ Query CLI")
	fmt.Println("  Question -> KB context resolution")
	fmt.Println("===========================================")
	fmt.Println()
	fmt.Println("Type your question (Ctrl+D to exit):")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		q := strings.TrimSpace(scanner.Text())
		if q == "" {
			continue
		}
		if err := runQuery(ctx, coordinator, q, *pLimit); err != nil {
			fmt.Println("Error:", err)
		}
	}
	fmt.Println("\nGoodbye!")
}

func runQuery(ctx context.Context, c *pipeline.Coordinator, question string, p int) error {
	result, err := c.Run(ctx, question, p, true, false)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func buildCoordinator(indexDir, optionsPath string) (*pipeline.Coordinator, error) {
	index, err := kbindex.Load(indexDir)
	if err != nil {
		return nil, fmt.Errorf("load index: %w", err)
	}

	loader := &config.Loader{OptionsPath: optionsPath}
	components, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return pipeline.New(pipeline.CoordinatorOptions{
		Index:         index,
		Search:        noopLexicalSearch{},
		Model:         noopEmbeddingModel{},
		VariantGroups: components.VariantGroups,
		Parameters:    optionsToRaw(components.Options),
	})
}

// noopLexicalSearch is the default wired-in LexicalSearch when no real
// backend is configured: it returns no results rather than blocking, so
// a caller that forgot to plug in a real search service fails soft
// (spec.md §7 class 3's "exhaustion -> empty result for the call") and
// gets an empty context tuple instead of a stuck CLI.
type noopLexicalSearch struct{}

func (noopLexicalSearch) Search(ctx context.Context, term string, limit int) ([]string, error) {
	return nil, nil
}

// noopEmbeddingModel mirrors noopLexicalSearch for the embedding side:
// no real model configured means every relevance/coherence contribution
// is 0, not a panic.
type noopEmbeddingModel struct{}

func (noopEmbeddingModel) WordVector(string) (embedding.Vector, bool)   { return nil, false }
func (noopEmbeddingModel) EntityVector(string) (embedding.Vector, bool) { return nil, false }

// optionsToRaw round-trips a resolved config.Options back into a
// config.RawOptions so it can be passed through CoordinatorOptions.Parameters,
// which always merges over config.Default() rather than assigning
// wholesale (spec.md §9's resolved Open Question) -- even here, where
// every field is already fully resolved.
func optionsToRaw(o config.Options) config.RawOptions {
	k := any("AUTO")
	if !o.K.Auto {
		k = o.K.Fixed
	}
	return config.RawOptions{
		"h_match":    o.HMatch,
		"h_rel":      o.HRel,
		"h_conn":     o.HConn,
		"h_coh":      o.HCoh,
		"d":          o.D,
		"k":          k,
		"p_setting":  o.PSetting,
		"bm25_limit": o.BM25Limit,
		"parallel":   o.Parallel,
	}
}

var _ = candidates.LexicalSearch(noopLexicalSearch{})
