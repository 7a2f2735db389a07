package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/tipline/tipline/internal/version"
)

// VersionCmd represents the version command.
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show tipline version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tipline %s\n", version.Version)
		fmt.Printf("Database schema: %s\n", version.DatabaseVersion)
		fmt.Printf("Platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		fmt.Printf("Go: %s\n", runtime.Version())
	},
}
