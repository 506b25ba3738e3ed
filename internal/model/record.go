package model

import "time"

// Column names of the output row, in order
const (
	ColCID                 = "CID"
	ColCompoundName        = "Compound Name"
	ColIUPACName           = "IUPAC Name"
	ColMolecularFormula    = "Molecular Formula"
	ColMolecularWeight     = "Molecular Weight"
	ColCanonicalSMILES     = "Canonical SMILES"
	ColIsomericSMILES      = "Isomeric SMILES"
	ColInChI               = "InChI"
	ColInChIKey            = "InChIKey"
	ColXLogP               = "XLogP"
	ColTPSA                = "TPSA"
	ColExactMass           = "Exact Mass"
	ColComplexity          = "Complexity"
	ColRotatableBonds      = "Rotatable Bonds"
	ColHBondDonors         = "H-Bond Donors"
	ColHBondAcceptors      = "H-Bond Acceptors"
	ColCharge              = "Charge"
	ColHeavyAtomCount      = "Heavy Atom Count"
	ColDefinedAtomStereo   = "Defined Atom Stereo Count"
	ColUndefinedAtomStereo = "Undefined Atom Stereo Count"
	ColDefinedBondStereo   = "Defined Bond Stereo Count"
	ColUndefinedBondStereo = "Undefined Bond Stereo Count"
	ColCovalentUnitCount   = "Covalent Unit Count"
	ColCoordinateType      = "Coordinate Type"
	ColSynonyms            = "Synonyms"
	ColChEMBLID            = "ChEMBL ID"

	ColVendors         = "Chemical Vendors"
	ColStructures      = "Protein 3D Structures"
	ColBioAssay        = "BioAssay"
	ColPatent          = "Patent"
	ColDepositorPatent = "Depositor-Supplied Patent"
	ColLiterature      = "Literature"
	ColSummary         = "Summary"
)

// Field is one column of a record
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Record is the merged, flat row for one compound.
// Fields keep insertion order; an empty Value is written as an empty cell.
type Record struct {
	CID       int       `json:"cid"`
	Name      string    `json:"name"`
	RunID     string    `json:"run_id"`
	FetchedAt time.Time `json:"fetched_at"`
	Fields    []Field   `json:"fields"`
}

// Add appends a column
func (r *Record) Add(name, value string) {
	r.Fields = append(r.Fields, Field{Name: name, Value: value})
}

// Get returns the value of a column and whether it exists
func (r *Record) Get(name string) (string, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Header returns the column names in order
func (r *Record) Header() []string {
	out := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		out[i] = f.Name
	}
	return out
}

// Row returns the values in column order
func (r *Record) Row() []string {
	out := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		out[i] = f.Value
	}
	return out
}

// Map returns the record as column -> value
func (r *Record) Map() map[string]string {
	out := make(map[string]string, len(r.Fields))
	for _, f := range r.Fields {
		out[f.Name] = f.Value
	}
	return out
}
