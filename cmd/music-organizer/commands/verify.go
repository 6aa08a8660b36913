package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"music-organizer/internal/shared"
)

// NewVerifyCommand creates the FLAC integrity command
func NewVerifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify [path]",
		Short: "Check that the FLAC files of a library have a valid container.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runVerifyCommand,
	}
}

func runVerifyCommand(cmd *cobra.Command, args []string) error {
	cfg, container, err := initConfigAndServices(cmd)
	if err != nil {
		return err
	}
	root := cfg.DefaultScanPath
	if len(args) == 1 {
		root = args[0]
	}

	checks, err := container.Library.VerifyFLAC(root)
	if err != nil {
		return err
	}
	if len(checks) == 0 {
		container.Logger.Warning("No FLAC files in %s.", root)
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"File", "Sample rate", "Bits", "Channels", "Status"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	failed := 0
	for _, c := range checks {
		status := "ok"
		if c.Err != nil {
			failed++
			status = shared.TruncateString(c.Err.Error(), 40)
			container.WarningCollector.AddFLACIntegrityWarning(c.Record.AbsPath, c.Err.Error())
		}
		table.Append([]string{
			shared.TruncateString(c.Record.RelPath, 60),
			rateOrDash(c.SampleRate),
			rateOrDash(c.BitDepth),
			rateOrDash(c.Channels),
			status,
		})
	}
	table.Render()

	fmt.Printf("\n")
	shared.ColorInfo.Println("📊 Verify Summary:")
	shared.ColorSuccess.Printf("✅ Valid: %d\n", len(checks)-failed)
	if failed > 0 {
		shared.ColorError.Printf("❌ Failed: %d\n", failed)
	}
	printWarnings(cfg, container)
	return nil
}

func rateOrDash(v int) string {
	if v == 0 {
		return "-"
	}
	return strconv.Itoa(v)
}
