// fusionctl is the operator CLI for fusiongen: parse border node configs,
// generate fusion router configs from an intent file, diff rendered configs,
// and inspect the generation history.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "fusionctl",
	Short: "Generate Cisco SDA fusion router configurations",
	Long: `fusionctl parses Cisco IOS running configurations exported from SDA
border nodes and generates matching fusion router configurations: eBGP
handoff interfaces and sessions per VRF, plus optional iBGP and OSPF
underlay between the two fusion routers.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
