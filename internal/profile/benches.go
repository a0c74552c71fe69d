package profile

import (
	"fmt"

	"powderteam/oaiprofile/internal/util"
)

// Workbench is a physically paired set of SDR units sharing a clock
// reference. The first unit serves the gNodeB, the second the UE.
type Workbench struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	GNBRadio  string `json:"gnb_radio"`
	UERadio   string `json:"ue_radio"`
	StaffOnly bool   `json:"staff_only,omitempty"`
}

// Benches lists the selectable workbenches.
var Benches = []Workbench{
	{ID: "bench_a", Label: "Paired Radio Workbench A", GNBRadio: "oai-wb-a1", UERadio: "oai-wb-a2"},
	{ID: "bench_b", Label: "Paired Radio Workbench B", GNBRadio: "oai-wb-b1", UERadio: "oai-wb-b2"},
	{ID: "bench_c", Label: "Paired Radio Workbench C (Powder staff only)", GNBRadio: "alex-3", UERadio: "alex-4", StaffOnly: true},
}

// LookupBench returns the workbench with the given id.
func LookupBench(id string) (Workbench, error) {
	id = util.NormalizeKey(id)
	for _, b := range Benches {
		if b.ID == id {
			return b, nil
		}
	}
	return Workbench{}, fmt.Errorf("profile: unknown workbench %q", id)
}
