package kbindex

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/PhilippChr/CLOCQ/pkg/clocq/internalerr"
)

// On-disk artifact names, one per item named in spec.md §6: a plain text
// HIGHEST_ID.txt sizing the dense arrays, and a fixed set of gob-encoded
// dictionaries/lists carrying the same data as the rest of the Index. This
// is a deliberate divergence from §6's literal wire format (the dense-array
// dictionaries and the "fact boundary inferred from a consecutive-integer
// code prefix" KB_list text encoding) -- see DESIGN.md for the
// justification. No third-party binary-serialization library appears
// anywhere in the reference corpus, so this loader uses encoding/gob, the
// standard library's closest analogue to the original pickle-based dumps.
const (
	highestIDFile      = "HIGHEST_ID.txt"
	entityNodesFile    = "entity_nodes"
	predNodesFile      = "pred_nodes"
	literalsFile       = "literals"
	invEntityNodesFile = "inverse_entity_nodes"
	invPredNodesFile   = "inverse_pred_nodes"
	invLiteralsFile    = "inverse_literals"
	labelsFile         = "labels"
	aliasesFile        = "aliases"
	descriptionsFile   = "descriptions"
	kbListFile         = "KB_list"
	typePredicatesFile = "type_predicates"
)

// itemRecordSnapshot is the gob-encodable projection of itemRecord; the
// shared FactArena is serialized once (as kbListFile) and referenced by
// index, not duplicated per item.
type itemRecordSnapshot struct {
	FactsAsSubject []FactRef
	FactsAsObject  []FactRef
	Neighbors      []Code
}

// Dump writes idx to dir as gob-encoded files under the artifact names of
// spec.md §6 (HIGHEST_ID.txt excepted, which is ASCII decimal); the files
// are not byte-compatible with §6's own wire format.
// It is the counterpart to Load and is used by the offline KB index
// builder once staging has produced a finished Index.
func Dump(idx *Index, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("kbindex: create output dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, highestIDFile), []byte(strconv.FormatInt(idx.highestID, 10)), 0o644); err != nil {
		return fmt.Errorf("kbindex: write %s: %w", highestIDFile, err)
	}

	writers := []struct {
		name string
		v    any
	}{
		{entityNodesFile, idx.entityExternal},
		{predNodesFile, idx.predicateExternal},
		{literalsFile, idx.literalExternal},
		{invEntityNodesFile, idx.inverseEntity},
		{invPredNodesFile, idx.inversePredicate},
		{invLiteralsFile, idx.inverseLiteral},
		{typePredicatesFile, idx.typePredicateIDs},
	}
	for _, w := range writers {
		if err := writeGob(filepath.Join(dir, w.name), w.v); err != nil {
			return err
		}
	}

	labels := make(map[Code][]string)
	aliases := make(map[Code][]string)
	descriptions := make(map[Code]string)
	records := make(map[Code]itemRecordSnapshot)

	collect := func(code Code, rec *itemRecord) {
		if rec == nil {
			return
		}
		if len(rec.labels) > 0 {
			labels[code] = rec.labels
		}
		if len(rec.aliases) > 0 {
			aliases[code] = rec.aliases
		}
		if rec.description != "" {
			descriptions[code] = rec.description
		}
		neighbors := make([]Code, 0, len(rec.neighbors))
		for n := range rec.neighbors {
			neighbors = append(neighbors, n)
		}
		records[code] = itemRecordSnapshot{
			FactsAsSubject: rec.factsAsSubject,
			FactsAsObject:  rec.factsAsObject,
			Neighbors:      neighbors,
		}
	}
	for code, rec := range idx.dense {
		collect(Code(code), rec)
	}
	for code, rec := range idx.literals {
		collect(code, rec)
	}

	if err := writeGob(filepath.Join(dir, labelsFile), labels); err != nil {
		return err
	}
	if err := writeGob(filepath.Join(dir, aliasesFile), aliases); err != nil {
		return err
	}
	if err := writeGob(filepath.Join(dir, descriptionsFile), descriptions); err != nil {
		return err
	}

	kbList := struct {
		Facts   []Fact
		Records map[Code]itemRecordSnapshot
	}{Facts: idx.arena.facts, Records: records}
	return writeGob(filepath.Join(dir, kbListFile), kbList)
}

// Load reads an Index previously written by Dump from dir, rebuilding the
// dense predicate/entity array, the literal map, and every inverse
// dictionary. Per spec.md §4.1's failure semantics, a missing or corrupt
// required dictionary is fatal at load time (the Index itself never
// throws once loaded).
func Load(dir string) (*Index, error) {
	raw, err := os.ReadFile(filepath.Join(dir, highestIDFile))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", internalerr.ErrLoadFailed, highestIDFile, err)
	}
	highestID, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", internalerr.ErrLoadFailed, highestIDFile, err)
	}

	idx := newIndex(highestID)

	if err := readGob(filepath.Join(dir, entityNodesFile), &idx.entityExternal); err != nil {
		return nil, err
	}
	if err := readGob(filepath.Join(dir, predNodesFile), &idx.predicateExternal); err != nil {
		return nil, err
	}
	if err := readGob(filepath.Join(dir, literalsFile), &idx.literalExternal); err != nil {
		return nil, err
	}
	if err := readGob(filepath.Join(dir, invEntityNodesFile), &idx.inverseEntity); err != nil {
		return nil, err
	}
	if err := readGob(filepath.Join(dir, invPredNodesFile), &idx.inversePredicate); err != nil {
		return nil, err
	}
	if err := readGob(filepath.Join(dir, invLiteralsFile), &idx.inverseLiteral); err != nil {
		return nil, err
	}
	if err := readGob(filepath.Join(dir, typePredicatesFile), &idx.typePredicateIDs); err != nil {
		return nil, err
	}

	var labels, aliases map[Code][]string
	var descriptions map[Code]string
	if err := readGob(filepath.Join(dir, labelsFile), &labels); err != nil {
		return nil, err
	}
	if err := readGob(filepath.Join(dir, aliasesFile), &aliases); err != nil {
		return nil, err
	}
	if err := readGob(filepath.Join(dir, descriptionsFile), &descriptions); err != nil {
		return nil, err
	}

	var kbList struct {
		Facts   []Fact
		Records map[Code]itemRecordSnapshot
	}
	if err := readGob(filepath.Join(dir, kbListFile), &kbList); err != nil {
		return nil, err
	}
	idx.arena.facts = kbList.Facts

	for code, snap := range kbList.Records {
		rec := idx.record(code, true)
		rec.factsAsSubject = snap.FactsAsSubject
		rec.factsAsObject = snap.FactsAsObject
		for _, n := range snap.Neighbors {
			rec.addNeighbor(n)
		}
		rec.labels = labels[code]
		rec.aliases = aliases[code]
		rec.description = descriptions[code]
	}

	idx.resolveTypePredicates()
	return idx, nil
}

func writeGob(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("kbindex: create %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(v); err != nil {
		return fmt.Errorf("kbindex: encode %s: %w", filepath.Base(path), err)
	}
	return nil
}

func readGob(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", internalerr.ErrLoadFailed, filepath.Base(path), err)
	}
	defer f.Close()
	if err := gob.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("%w: decode %s: %v", internalerr.ErrLoadFailed, filepath.Base(path), err)
	}
	return nil
}
