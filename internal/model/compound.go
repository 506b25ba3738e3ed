package model

import (
	"bytes"
	"encoding/json"
)

// Compound holds the descriptive attributes resolved by the primary lookup.
// Attributes that PubChem may omit are pointers or empty strings; nil/"" means absent.
type Compound struct {
	CID       int    `json:"cid"`
	QueryName string `json:"compound_name"` // Name the user asked for, not a PubChem title

	IUPACName        string `json:"iupac_name,omitempty"`
	MolecularFormula string `json:"molecular_formula,omitempty"`
	MolecularWeight  string `json:"molecular_weight,omitempty"`
	CanonicalSMILES  string `json:"canonical_smiles,omitempty"`
	IsomericSMILES   string `json:"isomeric_smiles,omitempty"`
	InChI            string `json:"inchi,omitempty"`
	InChIKey         string `json:"inchikey,omitempty"`
	XLogP            string `json:"xlogp,omitempty"`
	TPSA             string `json:"tpsa,omitempty"`
	ExactMass        string `json:"exact_mass,omitempty"`
	Complexity       string `json:"complexity,omitempty"`

	RotatableBonds      *int `json:"rotatable_bonds,omitempty"`
	HBondDonors         *int `json:"h_bond_donors,omitempty"`
	HBondAcceptors      *int `json:"h_bond_acceptors,omitempty"`
	Charge              *int `json:"charge,omitempty"`
	HeavyAtomCount      *int `json:"heavy_atom_count,omitempty"`
	DefinedAtomStereo   *int `json:"defined_atom_stereo_count,omitempty"`
	UndefinedAtomStereo *int `json:"undefined_atom_stereo_count,omitempty"`
	DefinedBondStereo   *int `json:"defined_bond_stereo_count,omitempty"`
	UndefinedBondStereo *int `json:"undefined_bond_stereo_count,omitempty"`
	CovalentUnitCount   *int `json:"covalent_unit_count,omitempty"`

	CoordinateType string   `json:"coordinate_type,omitempty"` // "2d" or "3d"
	Synonyms       []string `json:"synonyms,omitempty"`
	ChEMBLID       string   `json:"chembl_id,omitempty"`
}

// Vendor is one commercial source listed under "Chemical Vendors"
type Vendor struct {
	CID             int    `json:"CID"`
	SID             string `json:"SID"`
	SourceName      string `json:"SourceName"`
	SourceURL       string `json:"SourceURL"`
	RegistryID      string `json:"RegistryID"`
	SourceRecordURL string `json:"SourceRecordURL"`
}

// Structure is a protein-bound 3-D structure referencing the compound
type Structure struct {
	PDBID        string `json:"PDB_ID"`
	MMDBID       *int   `json:"MMDB_ID"`
	Description  string `json:"Description"`
	TaxonomyName string `json:"Taxonomy_Name"`
	URL          string `json:"URL"`
}

// AssaySummary is one row of the bioassay summary table.
// Cells are kept as upstream text; PubChem mixes numbers and strings in the same column.
type AssaySummary struct {
	AID             string `json:"AID"`
	SID             string `json:"SID"`
	ActivityOutcome string `json:"Activity Outcome"`
	AssayType       string `json:"Assay Type"`
	ActivityValue   string `json:"Activity Value [uM]"`
	AssayName       string `json:"Assay Name"`
}

// Patent is a patent title with its PubChem link
type Patent struct {
	Patent string `json:"Patent"`
	URL    string `json:"URL"`
}

// LiteratureLink is either the "all literature" link or one subheading link.
// JSON output keeps the two shapes distinct: {"AllURL": u} or {"Heading": h, "URL": u},
// where a missing heading or URL is null rather than dropped.
type LiteratureLink struct {
	AllURL  string
	Heading string
	URL     string
}

// MarshalJSON writes the entry's shape without HTML escaping
func (l LiteratureLink) MarshalJSON() ([]byte, error) {
	var v any
	if l.IsAll() {
		v = struct {
			AllURL string `json:"AllURL"`
		}{l.AllURL}
	} else {
		v = struct {
			Heading *string `json:"Heading"`
			URL     *string `json:"URL"`
		}{optionalString(l.Heading), optionalString(l.URL)}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// IsAll reports whether this is the leading AllURL entry
func (l LiteratureLink) IsAll() bool {
	return l.AllURL != ""
}

// IntPtr returns a pointer to v
func IntPtr(v int) *int {
	return &v
}
