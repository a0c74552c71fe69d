package profile

import "path"

const (
	// BinPath is where the profile repository's scripts live on each node.
	BinPath = "/local/repository/bin"

	// EtcPath holds the RAN configuration files shipped with the repository.
	EtcPath = "/local/repository/etc"

	// UbuntuImage is the default disk image for compute nodes.
	UbuntuImage = "urn:publicid:IDN+emulab.net+image+emulab-ops//UBUNTU22-64-STD"

	// ComponentManagerID is the aggregate that owns every node.
	ComponentManagerID = "urn:publicid:IDN+emulab.net+authority+cm"

	// DefaultRANHash is the OAI RAN commit deployed when none is given (2023.wk19).
	DefaultRANHash = "1268b27c91be3a568dd352f2e9a21b3963c97432"

	// DefaultCNHash is the OAI 5G core release deployed when none is given.
	DefaultCNHash = "v1.5.0"

	// LinkBandwidth is the capacity of every link, in kbps.
	LinkBandwidth int64 = 10 * 1000 * 1000
)

var (
	// DeployScript installs and configures OAI for a role: deploy-oai.sh <version> <role>.
	DeployScript = path.Join(BinPath, "deploy-oai.sh")

	// TuneCPUScript pins CPU frequency scaling for the soft-modems.
	TuneCPUScript = path.Join(BinPath, "tune-cpu.sh")

	// TuneSDRIfaceScript tunes the host NIC facing the SDR.
	TuneSDRIfaceScript = path.Join(BinPath, "tune-sdr-iface.sh")
)
