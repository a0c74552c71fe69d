package profile

import (
	"powderteam/oaiprofile/internal/portal"
	"powderteam/oaiprofile/internal/util"
)

// Parameter names.
const (
	ParamSDRNodeType = "sdr_nodetype"
	ParamCNNodeType  = "cn_nodetype"
	ParamBenchID     = "bench_id"
	ParamRANHash     = "oai_ran_commit_hash"
	ParamCNHash      = "oai_cn_commit_hash"
	ParamSDRImage    = "sdr_compute_image"
)

var nodeTypes = []portal.LegalValue{
	{Value: "d430", Label: "Emulab, d430"},
	{Value: "d740", Label: "Emulab, d740"},
}

// NewContext returns the parameter schema of the profile.
func NewContext() *portal.Context {
	pc := portal.NewContext()

	pc.MustDefineParameter(portal.Parameter{
		Name:        ParamSDRNodeType,
		Description: "Type of compute node paired with the SDRs",
		Type:        portal.TypeEnum,
		Default:     nodeTypes[1].Value,
		LegalValues: nodeTypes,
	})
	pc.MustDefineParameter(portal.Parameter{
		Name:        ParamCNNodeType,
		Description: "Type of compute node to use for CN node (if included)",
		Type:        portal.TypeEnum,
		Default:     nodeTypes[0].Value,
		LegalValues: nodeTypes,
	})

	benches := make([]portal.LegalValue, len(Benches))
	for i, b := range Benches {
		benches[i] = portal.LegalValue{Value: b.ID, Label: b.Label}
	}
	pc.MustDefineParameter(portal.Parameter{
		Name:        ParamBenchID,
		Description: "Which workbench bench to use",
		Type:        portal.TypeEnum,
		Default:     Benches[0].ID,
		LegalValues: benches,
	})

	pc.MustDefineParameter(portal.Parameter{
		Name:        ParamRANHash,
		Description: "Commit hash for OAI RAN",
		Type:        portal.TypeString,
		Advanced:    true,
		Validate:    util.ValidateCommitRef,
	})
	pc.MustDefineParameter(portal.Parameter{
		Name:        ParamCNHash,
		Description: "Commit hash for OAI (5G)CN",
		Type:        portal.TypeString,
		Advanced:    true,
		Validate:    util.ValidateCommitRef,
	})
	pc.MustDefineParameter(portal.Parameter{
		Name:        ParamSDRImage,
		Description: "Image to use for compute connected to SDRs",
		Type:        portal.TypeString,
		Advanced:    true,
		Validate:    util.ValidateImageURN,
	})

	return pc
}

// Params is the typed view of the bound parameters with every default
// substitution already applied.
type Params struct {
	SDRNodeType string
	CNNodeType  string
	Bench       Workbench
	RANHash     string
	CNHash      string
	SDRImage    string
}

// ParamsFromBindings resolves the optional overrides against the profile
// defaults: an override is used verbatim when supplied, otherwise the
// hard-coded default applies.
func ParamsFromBindings(b *portal.Bindings) (Params, error) {
	bench, err := LookupBench(b.Get(ParamBenchID))
	if err != nil {
		return Params{}, err
	}
	return Params{
		SDRNodeType: b.Get(ParamSDRNodeType),
		CNNodeType:  b.Get(ParamCNNodeType),
		Bench:       bench,
		RANHash:     b.Or(ParamRANHash, DefaultRANHash),
		CNHash:      b.Or(ParamCNHash, DefaultCNHash),
		SDRImage:    b.Or(ParamSDRImage, UbuntuImage),
	}, nil
}
