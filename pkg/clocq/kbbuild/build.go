package kbbuild

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/PhilippChr/CLOCQ/pkg/clocq/kbindex"
)

// maxLiteralLen mirrors the original CSV pipeline's "skip strings with
// >= 40 chars" rule (extract_distinct_nodes.py, create_KB_list.py):
// overlong values are neither valid Wikidata ids nor compact literals.
const maxLiteralLen = 40

// Build reads one fact per CSV row -- subject,predicate,object[,
// qualifier-predicate,qualifier-object]* -- stages its distinct nodes
// and resolved fact through staging, then assembles and dumps the
// binary index to outDir (spec.md §6's "offline path"). Subject fields
// must be entity ids ("Q..."); predicate fields are always registered as
// predicates; object and qualifier-object fields are entities when they
// match the entity-id pattern, literals otherwise. A row whose main
// object is an over-long non-entity literal is dropped entirely; a
// qualifier pair with an over-long literal object is dropped on its
// own, matching the original pipeline's per-field skip.
func Build(ctx context.Context, r io.Reader, staging StagingStore, labels LabelSource, outDir string) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("kbbuild: reading fact row: %w", err)
		}
		if len(record) < 3 || len(record)%2 != 1 {
			return fmt.Errorf("kbbuild: fact row has %d fields, want odd length >= 3", len(record))
		}
		if err := stageFact(staging, record); err != nil {
			return err
		}
	}

	return emit(ctx, staging, labels, outDir)
}

func stageFact(staging StagingStore, record []string) error {
	objectField := record[2]
	if !kbindex.IsEntityID(objectField) && len(objectField) >= maxLiteralLen {
		return nil // whole fact dropped: over-long non-entity object
	}

	subjectCode, err := staging.RegisterEntity(record[0])
	if err != nil {
		return fmt.Errorf("kbbuild: staging subject %q: %w", record[0], err)
	}
	predCode, err := staging.RegisterPredicate(record[1])
	if err != nil {
		return fmt.Errorf("kbbuild: staging predicate %q: %w", record[1], err)
	}

	objectCode, err := stageEntityOrLiteral(staging, objectField)
	if err != nil {
		return fmt.Errorf("kbbuild: staging object %q: %w", objectField, err)
	}

	codes := []kbindex.Code{subjectCode, predCode, objectCode}
	for i := 3; i+1 < len(record); i += 2 {
		qualField := record[i+1]
		if !kbindex.IsEntityID(qualField) && len(qualField) >= maxLiteralLen {
			continue // this qualifier pair dropped, rest of the fact kept
		}
		qualPredCode, err := staging.RegisterPredicate(record[i])
		if err != nil {
			return fmt.Errorf("kbbuild: staging qualifier predicate %q: %w", record[i], err)
		}
		qualObjCode, err := stageEntityOrLiteral(staging, qualField)
		if err != nil {
			return fmt.Errorf("kbbuild: staging qualifier object %q: %w", qualField, err)
		}
		codes = append(codes, qualPredCode, qualObjCode)
	}

	return staging.AddFact(codes)
}

func stageEntityOrLiteral(staging StagingStore, field string) (kbindex.Code, error) {
	if kbindex.IsEntityID(field) {
		return staging.RegisterEntity(field)
	}
	return staging.RegisterLiteral(field)
}

// emit performs the final assembly: every staged node becomes a
// kbindex.Builder entry (decorated with labels when a LabelSource is
// given), every staged fact is replayed through AddFact, and the result
// is dumped to outDir.
func emit(ctx context.Context, staging StagingStore, labels LabelSource, outDir string) error {
	entities, err := staging.Entities()
	if err != nil {
		return fmt.Errorf("kbbuild: reading staged entities: %w", err)
	}
	predicates, err := staging.Predicates()
	if err != nil {
		return fmt.Errorf("kbbuild: reading staged predicates: %w", err)
	}
	literals, err := staging.Literals()
	if err != nil {
		return fmt.Errorf("kbbuild: reading staged literals: %w", err)
	}
	facts, err := staging.Facts()
	if err != nil {
		return fmt.Errorf("kbbuild: reading staged facts: %w", err)
	}

	highestID := int64(kbindex.EntityMin)
	for _, code := range entities {
		if int64(code) > highestID {
			highestID = int64(code)
		}
	}

	builder := kbindex.NewBuilder(highestID)
	for externalID, code := range entities {
		l, aliases, description := lookupLabel(labels, externalID)
		builder.AddEntity(code, externalID, l, aliases, description)
	}
	for externalID, code := range predicates {
		l, aliases, description := lookupLabel(labels, externalID)
		builder.AddPredicate(code, externalID, l, aliases, description)
	}
	for value, code := range literals {
		builder.AddLiteral(code, value)
	}
	for _, codes := range facts {
		if err := ctx.Err(); err != nil {
			return err
		}
		builder.AddFact(kbindex.Fact(codes))
	}

	return kbindex.Dump(builder.Build(), outDir)
}

func lookupLabel(labels LabelSource, externalID string) (l, aliases []string, description string) {
	if labels == nil {
		return nil, nil, ""
	}
	if ls, aliasList, desc, ok := labels.Label(externalID); ok {
		return ls, aliasList, desc
	}
	return nil, nil, ""
}
