package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ppiankov/compoundscan/internal/model"
)

// Categories holds what the six category fetches returned.
// A nil slice is a category that failed or had nothing.
type Categories struct {
	Vendors          []model.Vendor
	Structures       []model.Structure
	Assays           []model.AssaySummary
	Patents          []model.Patent
	DepositorPatents []string
	Literature       []model.LiteratureLink
}

// Merge folds the compound and its categories into one flat record.
// Equal inputs give byte-identical rows.
func Merge(c *model.Compound, cats Categories, assayLimit int) (*model.Record, error) {
	if c == nil {
		return nil, fmt.Errorf("no compound to merge")
	}

	r := &model.Record{CID: c.CID, Name: c.QueryName}

	r.Add(model.ColCID, strconv.Itoa(c.CID))
	r.Add(model.ColCompoundName, c.QueryName)
	r.Add(model.ColIUPACName, c.IUPACName)
	r.Add(model.ColMolecularFormula, c.MolecularFormula)
	r.Add(model.ColMolecularWeight, c.MolecularWeight)
	r.Add(model.ColCanonicalSMILES, c.CanonicalSMILES)
	r.Add(model.ColIsomericSMILES, c.IsomericSMILES)
	r.Add(model.ColInChI, c.InChI)
	r.Add(model.ColInChIKey, c.InChIKey)
	r.Add(model.ColXLogP, c.XLogP)
	r.Add(model.ColTPSA, c.TPSA)
	r.Add(model.ColExactMass, c.ExactMass)
	r.Add(model.ColComplexity, c.Complexity)
	r.Add(model.ColRotatableBonds, intCell(c.RotatableBonds))
	r.Add(model.ColHBondDonors, intCell(c.HBondDonors))
	r.Add(model.ColHBondAcceptors, intCell(c.HBondAcceptors))
	r.Add(model.ColCharge, intCell(c.Charge))
	r.Add(model.ColHeavyAtomCount, intCell(c.HeavyAtomCount))
	r.Add(model.ColDefinedAtomStereo, intCell(c.DefinedAtomStereo))
	r.Add(model.ColUndefinedAtomStereo, intCell(c.UndefinedAtomStereo))
	r.Add(model.ColDefinedBondStereo, intCell(c.DefinedBondStereo))
	r.Add(model.ColUndefinedBondStereo, intCell(c.UndefinedBondStereo))
	r.Add(model.ColCovalentUnitCount, intCell(c.CovalentUnitCount))
	r.Add(model.ColCoordinateType, c.CoordinateType)
	r.Add(model.ColSynonyms, strings.Join(c.Synonyms, "; "))
	r.Add(model.ColChEMBLID, c.ChEMBLID)

	r.Add(model.ColVendors, VendorNames(cats.Vendors))

	assays := cats.Assays
	if assayLimit > 0 && len(assays) > assayLimit {
		assays = assays[:assayLimit]
	}

	for _, col := range []struct {
		name  string
		value any
	}{
		{model.ColStructures, nonNil(cats.Structures)},
		{model.ColBioAssay, nonNil(assays)},
		{model.ColPatent, nonNil(cats.Patents)},
		{model.ColDepositorPatent, nonNil(cats.DepositorPatents)},
		{model.ColLiterature, nonNil(cats.Literature)},
	} {
		text, err := EncodeJSON(col.value)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", col.name, err)
		}
		r.Add(col.name, text)
	}

	return r, nil
}

// VendorNames is the sorted, de-duplicated, "; "-joined set of non-empty vendor names
func VendorNames(vendors []model.Vendor) string {
	seen := make(map[string]bool, len(vendors))
	names := make([]string, 0, len(vendors))
	for _, v := range vendors {
		if v.SourceName == "" || seen[v.SourceName] {
			continue
		}
		seen[v.SourceName] = true
		names = append(names, v.SourceName)
	}
	sort.Strings(names)
	return strings.Join(names, "; ")
}

// EncodeJSON renders v with two-space indent and without HTML escaping
func EncodeJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// EvidenceURLs lists the links a summary may cite: structures, patents, then literature
func EvidenceURLs(cats Categories) []string {
	var urls []string
	seen := make(map[string]bool)
	add := func(u string) {
		if u != "" && !seen[u] {
			seen[u] = true
			urls = append(urls, u)
		}
	}
	for _, s := range cats.Structures {
		add(s.URL)
	}
	for _, p := range cats.Patents {
		add(p.URL)
	}
	for _, l := range cats.Literature {
		add(l.AllURL)
		add(l.URL)
	}
	return urls
}

func intCell(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

// nonNil makes an empty category serialize as [] rather than null
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
