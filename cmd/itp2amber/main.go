// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the itp2amber CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/itp2amber/internal/bridge"
	"github.com/pdiddy/itp2amber/internal/convert"
	"github.com/pdiddy/itp2amber/internal/runner"
	"github.com/pdiddy/itp2amber/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd converts one ligand topology.
var rootCmd = &cobra.Command{
	Use:   "itp2amber -i <ligand.itp>",
	Short: "Convert a LigParGen .itp topology into Amber parm7/rst7 files",
	Long: `itp2amber turns a ligand include topology (.itp) from LigParGen into a
complete GROMACS topology (.top) by adding the [ defaults ], [ system ] and
[ molecules ] sections, then uses ParmEd to save the topology and the
coordinate file next to it (.gro) as Amber .parm7 and .rst7 files.

All files share the input name minus its last four characters:
lig.itp -> lig.top, lig.gro, lig.parm7, lig.rst7. Existing outputs are
overwritten.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runConvert,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./itp2amber.yaml or ~/.config/itp2amber/config.yaml)")

	rootCmd.Flags().StringP("itp", "i", "", "initial .itp filename")
	_ = rootCmd.MarkFlagRequired("itp")

	rootCmd.Flags().String("resname", types.DefaultResidueName, "compound name written to [ molecules ]")
	rootCmd.Flags().String("system-name", types.DefaultSystemName, "title written to [ system ]")
	rootCmd.Flags().String("backend", string(types.BackendParmEd), "toolkit backend: parmed or container")
	rootCmd.Flags().String("python", types.DefaultPython, "python interpreter with ParmEd installed (parmed backend)")
	rootCmd.Flags().String("image", types.DefaultImage, "container image with ParmEd installed (container backend)")

	for key, flag := range map[string]string{
		"patch.resname":     "resname",
		"patch.system_name": "system-name",
		"bridge.backend":    "backend",
		"bridge.python":     "python",
		"bridge.image":      "image",
	} {
		_ = viper.BindPFlag(key, rootCmd.Flags().Lookup(flag))
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("itp2amber")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "itp2amber"))
		}
	}

	// patch.resname -> ITP2AMBER_PATCH_RESNAME
	viper.SetEnvPrefix("ITP2AMBER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the effective configuration from flags, environment
// and config file.
func loadConfig() types.Config {
	cfg := types.Config{
		Patch: types.PatchConfig{
			ResidueName: viper.GetString("patch.resname"),
			SystemName:  viper.GetString("patch.system_name"),
		},
		Bridge: types.BridgeConfig{
			Backend: types.ToolkitBackend(viper.GetString("bridge.backend")),
			Python:  viper.GetString("bridge.python"),
			Image:   viper.GetString("bridge.image"),
		},
	}
	return cfg.WithDefaults()
}

func runConvert(cmd *cobra.Command, args []string) error {
	itpPath, _ := cmd.Flags().GetString("itp")
	cfg := loadConfig()

	tk, err := bridge.New(cfg.Bridge, runner.OSExecutor{})
	if err != nil {
		return err
	}

	_, err = convert.Run(cmd.Context(), cfg, itpPath, tk, cmd.OutOrStdout())
	return err
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
