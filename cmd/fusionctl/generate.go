package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fabricware/fusiongen/pkg/bordernode"
	"github.com/fabricware/fusiongen/pkg/fusion"
	"github.com/fabricware/fusiongen/pkg/ioscfg"
)

// intent is the YAML generation request consumed by 'fusionctl generate'.
// Border node facts come from the referenced config exports; everything else
// mirrors the HTTP generate request.
type intent struct {
	BorderConfigs []string `yaml:"border_configs"`

	FusionRouters []fusion.RouterParams `yaml:"fusion_routers"`
	Handoffs      []fusion.Handoff      `yaml:"handoffs"`
	VRFConfigs    []fusion.VRFSpec      `yaml:"vrf_configs"`

	IBGP *fusion.IBGPParams `yaml:"ibgp"`
	OSPF *fusion.OSPFParams `yaml:"ospf"`
}

var generateFlags struct {
	intentPath string
	outputDir  string
	stdout     bool
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate fusion router configurations from an intent file",
	Long: `Generate reads a YAML intent file describing the fusion routers, the
handoffs towards the border nodes, and optional VRF, iBGP, and OSPF
parameters. Border node facts are parsed from the config exports listed
under border_configs. One .cfg file is written per fusion router.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := loadIntent(generateFlags.intentPath)
		if err != nil {
			return err
		}

		borderNodes := make([]*bordernode.Model, 0, len(in.BorderConfigs))
		for _, path := range in.BorderConfigs {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read border config %s: %w", path, err)
			}
			model, err := bordernode.Parse(string(data))
			if err != nil {
				return fmt.Errorf("parse border config %s: %w", path, err)
			}
			borderNodes = append(borderNodes, model)
		}

		ibgpConfigs, err := fusion.BuildIBGPConfigs(in.FusionRouters, in.IBGP)
		if err != nil {
			return err
		}
		ospfConfigs, err := fusion.BuildOSPFConfigs(in.FusionRouters, in.OSPF)
		if err != nil {
			return err
		}

		configs := make(map[string]string, len(in.FusionRouters))
		for _, params := range in.FusionRouters {
			model, err := fusion.Synthesize(params, borderNodes, in.Handoffs,
				in.VRFConfigs, ibgpConfigs[params.RouterID], ospfConfigs[params.RouterID])
			if err != nil {
				return err
			}
			text, err := ioscfg.Generate(model)
			if err != nil {
				return fmt.Errorf("generate config for %s: %w", params.Hostname, err)
			}
			configs[params.Hostname] = text
		}

		if generateFlags.stdout {
			hostnames := make([]string, 0, len(configs))
			for h := range configs {
				hostnames = append(hostnames, h)
			}
			sort.Strings(hostnames)
			for _, h := range hostnames {
				fmt.Fprint(cmd.OutOrStdout(), configs[h])
			}
			return nil
		}

		if err := os.MkdirAll(generateFlags.outputDir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
		for hostname, text := range configs {
			path := filepath.Join(generateFlags.outputDir, hostname+".cfg")
			if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		}
		return nil
	},
}

// loadIntent reads the intent file with strict field checking so typos in
// keys surface as errors.
func loadIntent(path string) (*intent, error) {
	if path == "" {
		return nil, fmt.Errorf("intent file is required (use -f)")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read intent file: %w", err)
	}

	var in intent
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&in); err != nil {
		return nil, fmt.Errorf("parse intent file %s: %w", path, err)
	}

	if len(in.BorderConfigs) == 0 {
		return nil, fmt.Errorf("intent file %s: border_configs is empty", path)
	}
	if len(in.FusionRouters) == 0 {
		return nil, fmt.Errorf("intent file %s: fusion_routers is empty", path)
	}
	if len(in.Handoffs) == 0 {
		return nil, fmt.Errorf("intent file %s: handoffs is empty", path)
	}
	return &in, nil
}

func init() {
	generateCmd.Flags().StringVarP(&generateFlags.intentPath, "file", "f", "",
		"Path to the YAML intent file")
	generateCmd.Flags().StringVarP(&generateFlags.outputDir, "output-dir", "d", ".",
		"Directory to write the generated .cfg files to")
	generateCmd.Flags().BoolVar(&generateFlags.stdout, "stdout", false,
		"Print configurations to stdout instead of writing files")
	rootCmd.AddCommand(generateCmd)
}
