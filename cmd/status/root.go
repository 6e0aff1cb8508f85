package status

import (
	"fmt"

	"github.com/shmlock/shmlock/cmd/util"
	"github.com/shmlock/shmlock/lib/shmlock"
	"github.com/spf13/cobra"
)

var (
	// StatusCmd inspects the state of a named lock
	StatusCmd = &cobra.Command{
		Use:   "status [name]",
		Short: "Show whether the named lock is held and by which token",
		Args:  cobra.ExactArgs(1),
		RunE:  runStatus,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitConfig)

	util.SetupLockFlags(StatusCmd)
}

// runStatus handles the status command
func runStatus(cmd *cobra.Command, args []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	cfg, err := util.GetLockConfig(args[0])
	if err != nil {
		return err
	}

	lock, err := shmlock.New(cfg)
	if err != nil {
		return fmt.Errorf("invalid lock: %v", err)
	}

	token, held, err := lock.HolderToken()
	if err != nil {
		return fmt.Errorf("failed to inspect lock: %v", err)
	}

	if !held {
		fmt.Printf("held=false\n")
		return nil
	}
	fmt.Printf("held=true, holder=%s\n", token)
	return nil
}
