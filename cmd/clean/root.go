package clean

import (
	"errors"
	"fmt"
	"os"

	"github.com/shmlock/shmlock/cmd/util"
	"github.com/shmlock/shmlock/lib/segment"
	"github.com/spf13/cobra"
)

var (
	// CleanCmd force-removes a leaked segment
	CleanCmd = &cobra.Command{
		Use:   "clean [name]",
		Short: "Force-remove a leaked lock segment",
		Long: util.WrapString("Remove the named segment from the shared-memory namespace without " +
			"acquiring it. Only use this on segments left behind by crashed processes: cleaning " +
			"a segment that is still legitimately held releases the lock under its holder."),
		Args: cobra.ExactArgs(1),
		RunE: runClean,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitConfig)
}

// runClean handles the clean command
func runClean(cmd *cobra.Command, args []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	name := args[0]
	if err := segment.Unlink(name); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Printf("segment %q does not exist, nothing to clean\n", name)
			return nil
		}
		return fmt.Errorf("failed to clean segment: %v", err)
	}

	fmt.Printf("cleaned segment %q\n", name)
	return nil
}
