package pubchemtest

// NotFoundFault is the PUG REST body for an unknown name
const NotFoundFault = `{"Fault":{"Code":"PUGREST.NotFound","Message":"No CID found","Details":["No CID found that matches the given name"]}}`

const AspirinCompound = `{"PC_Compounds":[{
  "id":{"id":{"cid":2244}},
  "charge":0,
  "coords":[{"type":[1,5,255]}],
  "props":[
    {"urn":{"label":"IUPAC Name","name":"Allowed"},"value":{"sval":"2-acetoxybenzoic acid"}},
    {"urn":{"label":"IUPAC Name","name":"Preferred"},"value":{"sval":"2-acetyloxybenzoic acid"}},
    {"urn":{"label":"Molecular Formula"},"value":{"sval":"C9H8O4"}},
    {"urn":{"label":"Molecular Weight"},"value":{"sval":"180.16"}},
    {"urn":{"label":"SMILES","name":"Absolute"},"value":{"sval":"CC(=O)OC1=CC=CC=C1C(=O)O"}},
    {"urn":{"label":"SMILES","name":"Connectivity"},"value":{"sval":"CC(=O)OC1=CC=CC=C1C(=O)O"}},
    {"urn":{"label":"InChI","name":"Standard"},"value":{"sval":"InChI=1S/C9H8O4/c1-6(10)13-8-5-3-2-4-7(8)9(11)12/h2-5H,1H3,(H,11,12)"}},
    {"urn":{"label":"InChIKey","name":"Standard"},"value":{"sval":"BSYNRYMUTXBXSQ-UHFFFAOYSA-N"}},
    {"urn":{"label":"Log P","name":"XLogP3"},"value":{"fval":1.2}},
    {"urn":{"label":"Topological","name":"Polar Surface Area"},"value":{"fval":63.6}},
    {"urn":{"label":"Mass","name":"Exact"},"value":{"sval":"180.04225873"}},
    {"urn":{"label":"Compound Complexity"},"value":{"fval":212}},
    {"urn":{"label":"Count","name":"Rotatable Bond"},"value":{"ival":3}},
    {"urn":{"label":"Count","name":"Hydrogen Bond Donor"},"value":{"ival":1}},
    {"urn":{"label":"Count","name":"Hydrogen Bond Acceptor"},"value":{"ival":4}}
  ],
  "count":{"heavy_atom":13,"atom_chiral":0,"atom_chiral_def":0,"atom_chiral_undef":0,"bond_chiral":0,"bond_chiral_def":0,"bond_chiral_undef":0,"isotope_atom":0,"covalent_unit":1,"tautomers":-1}
}]}`

const AspirinSynonyms = `{"InformationList":{"Information":[{"CID":2244,"Synonym":["aspirin","ACETYLSALICYLIC ACID","50-78-2","CHEMBL25","CHEMBL1697753"]}]}}`

// AspirinVendors lists "Sigma-Aldrich" twice and mixes numeric and string SIDs
const AspirinVendors = `{"SourceCategories":{"Categories":[{"Category":"Chemical Vendors","Sources":[
  {"SID":"481107","SourceName":"Sigma-Aldrich","SourceURL":"https://www.sigmaaldrich.com","RegistryID":"A5376","SourceRecordURL":"https://www.sigmaaldrich.com/A5376"},
  {"SID":57654389,"SourceName":"Acros Organics","SourceURL":"https://www.acros.com","RegistryID":"AC15818","SourceRecordURL":"https://www.acros.com/AC15818"},
  {"SID":"24899928","SourceName":"Sigma-Aldrich","SourceURL":"https://www.sigmaaldrich.com","RegistryID":"A2093","SourceRecordURL":"https://www.sigmaaldrich.com/A2093"},
  {"SID":"99999","SourceName":"","SourceURL":"","RegistryID":"","SourceRecordURL":""}
]}]}}`

const AspirinStructures = `{"Structure":{"Structures":[
  {"PDB_ID":"1OXR","MMDB_ID":24480,"Description":"Aspirin acetylates <i>Ser530</i> of cyclooxygenase","Taxonomy":{"Name":"Ovis aries"},"URL":"https://www.ncbi.nlm.nih.gov/Structure/pdb/1OXR"},
  {"PDB_ID":"3GCL","Description":"Phospholipase A2 complex","URL":"https://www.ncbi.nlm.nih.gov/Structure/pdb/3GCL"}
]}}`

// AspirinAssaySummary puts the required columns out of their usual order and
// adds an unused column
const AspirinAssaySummary = `{"Table":{"Columns":{"Column":["Assay Name","AID","Target GI","SID","Activity Value [uM]","Assay Type","Activity Outcome"]},"Row":[
  {"Cell":["COX-1 inhibition",1000,"",103164874,0.5,"Confirmatory","Active"]},
  {"Cell":["Cytotoxicity screen",2000,"",103164874,"","Screening","Inactive"]}
]}}`

const AspirinPatents = `{"Record":{"RecordType":"CID","RecordNumber":2244,"Section":[{"TOCHeading":"Patents","Information":[{"Value":{"StringWithMarkup":[
  {"String":"US-2003040432-A1","Markup":[{"Start":0,"Length":16,"URL":"https://pubchem.ncbi.nlm.nih.gov/patent/US-2003040432-A1"}]},
  {"String":"US-NO-LINK-A1"},
  {"String":"","Markup":[{"URL":"https://pubchem.ncbi.nlm.nih.gov/patent/EMPTY"}]},
  {"String":"EP-1234567-B1","Markup":[{"URL":"https://pubchem.ncbi.nlm.nih.gov/patent/EP-1234567-B1"}]}
]}}]}]}}`

const AspirinDepositorPatents = "AU-2017374860-A1\nAU-2017374860-B2\n"

const AspirinLiterature = `{"Literature":{"AllURL":"https://www.ncbi.nlm.nih.gov/pubmed/?term=aspirin","Subheadings":[
  {"Subheading":"Adverse Effects","SubheadingURL":"https://www.ncbi.nlm.nih.gov/pubmed/?term=aspirin/adverse+effects"},
  {"Subheading":"Pharmacology","SubheadingURL":"https://www.ncbi.nlm.nih.gov/pubmed/?term=aspirin/pharmacology"}
]}}`
