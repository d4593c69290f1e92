// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

const (
	// DefaultResidueName is the molecule name written to the [ molecules ]
	// section. Ligand generators name the molecule UNK in [ moleculetype ].
	DefaultResidueName = "UNK"

	// DefaultSystemName is the title written to the [ system ] section.
	DefaultSystemName = "OPLSAA UNK"

	// DefaultPython is the interpreter used by the parmed backend.
	DefaultPython = "python3"

	// DefaultImage is the container image used by the container backend.
	// It must provide python3 with ParmEd installed.
	DefaultImage = "parmed:latest"
)

// PatchConfig holds settings for the topology patch step.
type PatchConfig struct {
	// ResidueName is the compound name in the [ molecules ] section. It must
	// match the name declared in the [ moleculetype ] section of the input.
	ResidueName string `json:"resname" yaml:"resname"`

	// SystemName is the single title line of the [ system ] section.
	SystemName string `json:"system_name" yaml:"system_name"`
}

// ToolkitBackend identifies how the chemistry toolkit is invoked.
type ToolkitBackend string

const (
	BackendParmEd    ToolkitBackend = "parmed"
	BackendContainer ToolkitBackend = "container"
)

// BridgeConfig holds settings for the Amber conversion step.
type BridgeConfig struct {
	// Backend selects the toolkit backend: parmed or container.
	Backend ToolkitBackend `json:"backend" yaml:"backend"`

	// Python is the interpreter binary for the parmed backend.
	Python string `json:"python" yaml:"python"`

	// Image is the container image for the container backend.
	Image string `json:"image" yaml:"image"`
}

// Config groups all settings for a conversion run.
type Config struct {
	Patch  PatchConfig  `json:"patch" yaml:"patch"`
	Bridge BridgeConfig `json:"bridge" yaml:"bridge"`
}

// DefaultConfig returns the settings that reproduce the stock conversion.
func DefaultConfig() Config {
	return Config{
		Patch: PatchConfig{
			ResidueName: DefaultResidueName,
			SystemName:  DefaultSystemName,
		},
		Bridge: BridgeConfig{
			Backend: BackendParmEd,
			Python:  DefaultPython,
			Image:   DefaultImage,
		},
	}
}

// WithDefaults fills zero-valued fields of c from DefaultConfig.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.Patch.ResidueName == "" {
		c.Patch.ResidueName = d.Patch.ResidueName
	}
	if c.Patch.SystemName == "" {
		c.Patch.SystemName = d.Patch.SystemName
	}
	if c.Bridge.Backend == "" {
		c.Bridge.Backend = d.Bridge.Backend
	}
	if c.Bridge.Python == "" {
		c.Bridge.Python = d.Bridge.Python
	}
	if c.Bridge.Image == "" {
		c.Bridge.Image = d.Bridge.Image
	}
	return c
}
