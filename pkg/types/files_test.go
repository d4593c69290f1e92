// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilesFor(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Files
	}{
		{
			name: "itp in current directory",
			in:   "lig.itp",
			want: Files{Base: "lig", ITP: "lig.itp", Top: "lig.top", Gro: "lig.gro", Parm7: "lig.parm7", Rst7: "lig.rst7"},
		},
		{
			name: "nested path keeps directory",
			in:   "work/ligands/benzene.itp",
			want: Files{
				Base: "work/ligands/benzene", ITP: "work/ligands/benzene.itp",
				Top: "work/ligands/benzene.top", Gro: "work/ligands/benzene.gro",
				Parm7: "work/ligands/benzene.parm7", Rst7: "work/ligands/benzene.rst7",
			},
		},
		{
			name: "extension is not checked",
			in:   "mol.txt",
			want: Files{Base: "mol", ITP: "mol.txt", Top: "mol.top", Gro: "mol.gro", Parm7: "mol.parm7", Rst7: "mol.rst7"},
		},
		{
			name: "short name yields empty base",
			in:   ".itp",
			want: Files{Base: "", ITP: ".itp", Top: ".top", Gro: ".gro", Parm7: ".parm7", Rst7: ".rst7"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilesFor(tt.in))
		})
	}
}

func TestConfigWithDefaults(t *testing.T) {
	got := Config{Patch: PatchConfig{ResidueName: "LIG"}}.WithDefaults()

	assert.Equal(t, "LIG", got.Patch.ResidueName)
	assert.Equal(t, DefaultSystemName, got.Patch.SystemName)
	assert.Equal(t, BackendParmEd, got.Bridge.Backend)
	assert.Equal(t, DefaultPython, got.Bridge.Python)
	assert.Equal(t, DefaultImage, got.Bridge.Image)
	assert.Equal(t, DefaultConfig(), Config{}.WithDefaults())
}
