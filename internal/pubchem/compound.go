package pubchem

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ppiankov/compoundscan/internal/model"
)

// LookupCompound resolves name to the first compound PubChem returns and
// flattens its descriptive attributes. A name with no match yields an error
// wrapping ErrNotFound. Synonyms come from a second request; if that fails the
// compound is still returned without them.
func (c *Client) LookupCompound(ctx context.Context, name string) (*model.Compound, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &FetchError{Kind: Shape, Endpoint: EndpointCompound, Field: "name", Err: errors.New("empty compound name")}
	}

	var resp compoundsResponse
	if err := c.getJSON(ctx, EndpointCompound, c.compoundURL(name), &resp); err != nil {
		var fe *FetchError
		if errors.As(err, &fe) && fe.Kind == HTTPStatus && fe.StatusCode == 404 {
			return nil, &FetchError{Kind: HTTPStatus, Endpoint: EndpointCompound, StatusCode: 404, Err: notFound(name, fe.Err)}
		}
		return nil, err
	}
	if len(resp.PCCompounds) == 0 {
		return nil, &FetchError{Kind: Shape, Endpoint: EndpointCompound, Field: "PC_Compounds", Err: notFound(name, nil)}
	}

	pc := resp.PCCompounds[0]
	if pc.ID.ID.CID <= 0 {
		return nil, shapeError(EndpointCompound, "id.id.cid", errors.New("missing compound id"))
	}

	if n := len(resp.PCCompounds); n > 1 {
		c.logger.InfoContext(ctx, "name matched several compounds, using the first",
			"name", name, "cid", pc.ID.ID.CID, "matches", n)
	}

	compound := flattenCompound(pc, name)

	synonyms, err := c.Synonyms(ctx, compound.CID)
	if err != nil {
		c.logger.LogDegraded(ctx, model.ColSynonyms, err)
	} else {
		compound.Synonyms = synonyms
		compound.ChEMBLID = firstChEMBL(synonyms)
	}

	return compound, nil
}

// Synonyms lists every name PubChem knows for cid
func (c *Client) Synonyms(ctx context.Context, cid int) ([]string, error) {
	var resp synonymsResponse
	if err := c.getJSON(ctx, EndpointSynonyms, c.synonymsURL(cid), &resp); err != nil {
		return nil, err
	}
	out := resp.synonyms()
	if out == nil {
		out = []string{}
	}
	return out, nil
}

func flattenCompound(pc pcCompound, queryName string) *model.Compound {
	out := &model.Compound{
		CID:       pc.ID.ID.CID,
		QueryName: queryName,

		IUPACName:        pc.propString("IUPAC Name", "Preferred"),
		MolecularFormula: pc.propString("Molecular Formula"),
		MolecularWeight:  pc.propString("Molecular Weight"),
		CanonicalSMILES:  pc.propString("SMILES", "Canonical", "Connectivity"),
		IsomericSMILES:   pc.propString("SMILES", "Isomeric", "Absolute"),
		InChI:            pc.propString("InChI"),
		InChIKey:         pc.propString("InChIKey"),
		XLogP:            pc.propString("Log P"),
		TPSA:             pc.propString("Topological", "Polar Surface Area"),
		ExactMass:        pc.propString("Mass", "Exact"),
		Complexity:       pc.propString("Compound Complexity"),

		RotatableBonds: pc.propInt("Count", "Rotatable Bond"),
		HBondDonors:    pc.propInt("Count", "Hydrogen Bond Donor"),
		HBondAcceptors: pc.propInt("Count", "Hydrogen Bond Acceptor"),
		Charge:         pc.Charge,

		CoordinateType: pc.coordinateType(),
	}
	if pc.Count != nil {
		out.HeavyAtomCount = pc.Count.HeavyAtom
		out.DefinedAtomStereo = pc.Count.AtomChiralDef
		out.UndefinedAtomStereo = pc.Count.AtomChiralUndef
		out.DefinedBondStereo = pc.Count.BondChiralDef
		out.UndefinedBondStereo = pc.Count.BondChiralUndef
		out.CovalentUnitCount = pc.Count.CovalentUnit
	}
	return out
}

func firstChEMBL(synonyms []string) string {
	for _, s := range synonyms {
		if strings.HasPrefix(s, "CHEMBL") {
			return s
		}
	}
	return ""
}

func notFound(name string, cause error) error {
	if cause != nil {
		return fmt.Errorf("%w: %q: %v", ErrNotFound, name, cause)
	}
	return fmt.Errorf("%w: %q", ErrNotFound, name)
}
