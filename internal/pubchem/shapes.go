package pubchem

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Upstream payload shapes. Every field PubChem may omit is optional here; the
// accessor methods below are the only place that decides what "missing" means.

// scalar accepts a JSON string, number or bool and keeps its text.
// PubChem mixes numbers and strings in the same column across records.
type scalar string

func (s *scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = scalar(str)
		return nil
	}
	var n json.Number
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&n); err == nil {
		*s = scalar(n.String())
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err != nil {
		return err
	}
	*s = scalar(strconv.FormatBool(b))
	return nil
}

func (s scalar) String() string { return string(s) }

// compoundsResponse is /pug/compound/name/{name}/JSON
type compoundsResponse struct {
	PCCompounds []pcCompound `json:"PC_Compounds"`
}

type pcCompound struct {
	ID struct {
		ID struct {
			CID int `json:"cid"`
		} `json:"id"`
	} `json:"id"`
	Charge *int       `json:"charge"`
	Coords []pcCoords `json:"coords"`
	Props  []pcProp   `json:"props"`
	Count  *pcCount   `json:"count"`
}

type pcCoords struct {
	Type []int `json:"type"`
}

type pcProp struct {
	URN struct {
		Label string `json:"label"`
		Name  string `json:"name"`
	} `json:"urn"`
	Value struct {
		Sval *string  `json:"sval"`
		Fval *float64 `json:"fval"`
		Ival *int     `json:"ival"`
	} `json:"value"`
}

type pcCount struct {
	HeavyAtom       *int `json:"heavy_atom"`
	AtomChiralDef   *int `json:"atom_chiral_def"`
	AtomChiralUndef *int `json:"atom_chiral_undef"`
	BondChiralDef   *int `json:"bond_chiral_def"`
	BondChiralUndef *int `json:"bond_chiral_undef"`
	CovalentUnit    *int `json:"covalent_unit"`
}

// text renders whichever value slot is set
func (p pcProp) text() (string, bool) {
	switch {
	case p.Value.Sval != nil:
		return *p.Value.Sval, true
	case p.Value.Ival != nil:
		return strconv.Itoa(*p.Value.Ival), true
	case p.Value.Fval != nil:
		return strconv.FormatFloat(*p.Value.Fval, 'f', -1, 64), true
	default:
		return "", false
	}
}

// prop returns the first property with the given label and, if names are
// given, one of those names
func (c pcCompound) prop(label string, names ...string) (string, bool) {
	for _, p := range c.Props {
		if p.URN.Label != label {
			continue
		}
		if len(names) > 0 && !containsString(names, p.URN.Name) {
			continue
		}
		if v, ok := p.text(); ok {
			return v, true
		}
	}
	return "", false
}

func (c pcCompound) propString(label string, names ...string) string {
	v, _ := c.prop(label, names...)
	return v
}

func (c pcCompound) propInt(label string, names ...string) *int {
	v, ok := c.prop(label, names...)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}

// coordinateType is "2d" or "3d" from the first conformer's type codes
func (c pcCompound) coordinateType() string {
	if len(c.Coords) == 0 {
		return ""
	}
	for _, t := range c.Coords[0].Type {
		switch t {
		case 1:
			return "2d"
		case 2:
			return "3d"
		}
	}
	return ""
}

// synonymsResponse is /pug/compound/cid/{cid}/synonyms/JSON
type synonymsResponse struct {
	InformationList struct {
		Information []struct {
			CID     int      `json:"CID"`
			Synonym []string `json:"Synonym"`
		} `json:"Information"`
	} `json:"InformationList"`
}

func (r synonymsResponse) synonyms() []string {
	if len(r.InformationList.Information) == 0 {
		return nil
	}
	return r.InformationList.Information[0].Synonym
}

// vendorsResponse is /pug_view/categories/compound/{cid}/JSON
type vendorsResponse struct {
	SourceCategories *struct {
		Categories []struct {
			Category string         `json:"Category"`
			Sources  []vendorSource `json:"Sources"`
		} `json:"Categories"`
	} `json:"SourceCategories"`
}

type vendorSource struct {
	SID             scalar `json:"SID"`
	SourceName      string `json:"SourceName"`
	SourceURL       string `json:"SourceURL"`
	RegistryID      scalar `json:"RegistryID"`
	SourceRecordURL string `json:"SourceRecordURL"`
}

// sources follows SourceCategories.Categories[0].Sources; a missing step yields nil
func (r vendorsResponse) sources() []vendorSource {
	if r.SourceCategories == nil || len(r.SourceCategories.Categories) == 0 {
		return nil
	}
	return r.SourceCategories.Categories[0].Sources
}

// structuresResponse is /pug_view/structure/compound/{cid}/JSON
type structuresResponse struct {
	Structure *struct {
		Structures []structureEntry `json:"Structures"`
	} `json:"Structure"`
}

type structureEntry struct {
	PDBID       string `json:"PDB_ID"`
	MMDBID      *int   `json:"MMDB_ID"`
	Description string `json:"Description"`
	Taxonomy    *struct {
		Name string `json:"Name"`
	} `json:"Taxonomy"`
	URL string `json:"URL"`
}

func (r structuresResponse) entries() []structureEntry {
	if r.Structure == nil {
		return nil
	}
	return r.Structure.Structures
}

func (e structureEntry) taxonomyName() string {
	if e.Taxonomy == nil {
		return ""
	}
	return e.Taxonomy.Name
}

// assaySummaryResponse is /pug/compound/cid/{cid}/assaysummary/JSON
type assaySummaryResponse struct {
	Table *struct {
		Columns *struct {
			Column []string `json:"Column"`
		} `json:"Columns"`
		Row []struct {
			Cell []scalar `json:"Cell"`
		} `json:"Row"`
	} `json:"Table"`
}

// patentsResponse is /pug_view/data/compound/{cid}/JSON?heading=Patents
type patentsResponse struct {
	Record *struct {
		Section []viewSection `json:"Section"`
	} `json:"Record"`
}

type viewSection struct {
	TOCHeading  string            `json:"TOCHeading"`
	Information []viewInformation `json:"Information"`
	Section     []viewSection     `json:"Section"`
}

type viewInformation struct {
	Value *struct {
		StringWithMarkup []stringWithMarkup `json:"StringWithMarkup"`
	} `json:"Value"`
}

type stringWithMarkup struct {
	String string `json:"String"`
	Markup []struct {
		URL string `json:"URL"`
	} `json:"Markup"`
}

func (r patentsResponse) sections() []viewSection {
	if r.Record == nil {
		return nil
	}
	return r.Record.Section
}

func (i viewInformation) strings() []stringWithMarkup {
	if i.Value == nil {
		return nil
	}
	return i.Value.StringWithMarkup
}

// firstURL is the URL of the first markup entry, or ""
func (s stringWithMarkup) firstURL() string {
	if len(s.Markup) == 0 {
		return ""
	}
	return s.Markup[0].URL
}

// literatureResponse is /pug_view/literature/compound/{cid}/JSON
type literatureResponse struct {
	Literature *struct {
		AllURL      string `json:"AllURL"`
		Subheadings []struct {
			Subheading    string `json:"Subheading"`
			SubheadingURL string `json:"SubheadingURL"`
		} `json:"Subheadings"`
	} `json:"Literature"`
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
