// Command clocq-kb-build is the offline index builder of spec.md §6's
// on-disk binary index: it reads a CSV triple stream and writes the
// dense code-indexed artifacts kbindex.Load expects. Flag layout and
// JSON report emission adapted from the teacher's cmd/korel-analytics.
package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/PhilippChr/CLOCQ/pkg/clocq/kbbuild"
	"github.com/PhilippChr/CLOCQ/pkg/clocq/kbbuild/memstage"
	"github.com/PhilippChr/CLOCQ/pkg/clocq/kbbuild/sqlitestage"
)

type report struct {
	RunID           string   `json:"run_id"`
	CSVPath         string   `json:"csv_path"`
	OutDir          string   `json:"out_dir"`
	StagingBackend  string   `json:"staging_backend"`
	StopwordsOutput string   `json:"stopwords_output,omitempty"`
	AutoStopwords   []string `json:"auto_stopwords,omitempty"`
}

func main() {
	var (
		csvPath      = flag.String("csv", "", "Path to the triple/qualifier CSV stream (required)")
		outDir       = flag.String("out", "", "Output directory for the on-disk index (required)")
		labelsPath   = flag.String("labels", "", "Optional CSV label file: external_id,label,aliases (|-separated),description")
		stagingDB    = flag.String("staging-db", "", "Use a SQLite staging store at this path instead of the default in-memory one (useful for CSVs too large to fit in memory)")
		stopwordsOut = flag.String("stopwords-out", "", "Optional path to write AutoStopwords-derived supplementary stopwords as a YAML terms file")
	)
	flag.Parse()

	if *csvPath == "" {
		log.Fatal("--csv required")
	}
	if *outDir == "" {
		log.Fatal("--out required")
	}

	ctx := context.Background()
	runID := uuid.NewString()

	var staging kbbuild.StagingStore
	backend := "memstage"
	if *stagingDB != "" {
		store, err := sqlitestage.Open(ctx, *stagingDB)
		if err != nil {
			log.Fatalf("open staging db: %v", err)
		}
		defer store.Close()
		staging = store
		backend = "sqlitestage"
	} else {
		staging = memstage.New()
	}

	csvFile, err := os.Open(*csvPath)
	if err != nil {
		log.Fatalf("open csv: %v", err)
	}
	defer csvFile.Close()

	var labels kbbuild.LabelSource
	if *labelsPath != "" {
		ls, err := loadCSVLabels(*labelsPath)
		if err != nil {
			log.Fatalf("load labels: %v", err)
		}
		labels = ls
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("create out dir: %v", err)
	}

	if err := kbbuild.Build(ctx, csvFile, staging, labels, *outDir); err != nil {
		log.Fatalf("build: %v", err)
	}

	rep := report{
		RunID:          runID,
		CSVPath:        *csvPath,
		OutDir:         *outDir,
		StagingBackend: backend,
	}

	if *stopwordsOut != "" {
		stats, err := kbbuild.CollectLabelStats(staging, labels)
		if err != nil {
			log.Fatalf("collect label stats: %v", err)
		}
		words := kbbuild.AutoStopwords(stats, kbbuild.DefaultStopwordThresholds())
		if err := writeStopwordsYAML(*stopwordsOut, words); err != nil {
			log.Fatalf("write stopwords: %v", err)
		}
		rep.StopwordsOutput = *stopwordsOut
		rep.AutoStopwords = words
	}

	out, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		log.Fatalf("marshal report: %v", err)
	}
	fmt.Println(string(out))
}

// csvLabelSource implements kbbuild.LabelSource over a flat CSV file:
// external_id,label,aliases,description, where aliases is a
// pipe-separated list.
type csvLabelSource struct {
	entries map[string]labelEntry
}

type labelEntry struct {
	labels      []string
	aliases     []string
	description string
}

func (s csvLabelSource) Label(externalID string) (labels, aliases []string, description string, ok bool) {
	e, found := s.entries[externalID]
	if !found {
		return nil, nil, "", false
	}
	return e.labels, e.aliases, e.description, true
}

func loadCSVLabels(path string) (csvLabelSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return csvLabelSource{}, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	entries := make(map[string]labelEntry)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return csvLabelSource{}, err
		}
		if len(record) < 2 {
			continue
		}
		entry := labelEntry{labels: []string{record[1]}}
		if len(record) >= 3 && record[2] != "" {
			entry.aliases = splitPipe(record[2])
		}
		if len(record) >= 4 {
			entry.description = record[3]
		}
		entries[record[0]] = entry
	}
	return csvLabelSource{entries: entries}, nil
}

func splitPipe(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '|' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}

func writeStopwordsYAML(path string, words []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := fmt.Fprintln(f, "terms:"); err != nil {
		return err
	}
	for _, w := range words {
		if _, err := fmt.Fprintf(f, "  - %s\n", w); err != nil {
			return err
		}
	}
	return nil
}
