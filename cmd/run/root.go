package run

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/shmlock/shmlock/cmd/util"
	"github.com/shmlock/shmlock/lib/shmlock"
	"github.com/shmlock/shmlock/lib/tracking"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// exitCodeBusy is the exit code when the lock could not be acquired
// within the timeout. Distinct from command failures so callers can
// retry contention specifically.
const exitCodeBusy = 3

var (
	// RunCmd runs an arbitrary command while holding a lock
	RunCmd = &cobra.Command{
		Use:   "run [name] -- command [args...]",
		Short: "Run a command while holding the named lock",
		Long: util.WrapString("Acquire the named lock, run the given command, and release the " +
			"lock when the command finishes. If the lock is held by another process the " +
			"acquisition waits according to the timeout flags and exits with code 3 on timeout."),
		Args: cobra.MinimumNArgs(2),
		RunE: runLocked,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add lock construction and timeout flags
	util.SetupLockFlags(RunCmd)
	util.SetupTimeoutFlags(RunCmd)

	RunCmd.Flags().Bool("track-leaks", false,
		util.WrapString("Enable the process-wide resource tracker and report leaked segments on exit"))
}

// runLocked handles the run command
func runLocked(cmd *cobra.Command, args []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	cfg, err := util.GetLockConfig(args[0])
	if err != nil {
		return err
	}

	// SIGINT/SIGTERM abort a pending acquisition instead of killing the
	// process mid-create, which could leak the segment
	event := shmlock.NewExitEvent()
	cfg.ExitEvent = event
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signals)
	go func() {
		<-signals
		event.Set()
	}()

	lock, err := shmlock.New(cfg)
	if err != nil {
		return fmt.Errorf("invalid lock: %v", err)
	}

	if viper.GetBool("track-leaks") {
		tracking.Init(cfg.Logger)
		defer tracking.Deinit()
	}

	acquired, err := lock.Acquire(util.GetTimeout())
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %v", err)
	}
	if !acquired {
		fmt.Fprintf(os.Stderr, "lock %q is busy\n", lock.Name())
		os.Exit(exitCodeBusy)
	}
	defer func() {
		if err := lock.Release(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to release lock %q: %v\n", lock.Name(), err)
		}
	}()

	// Run the command with pass-through stdio while the lock is held
	child := exec.Command(args[1], args[2:]...)
	child.Stdin = os.Stdin
	child.Stdout = os.Stdout
	child.Stderr = os.Stderr

	if err := child.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// Release before propagating the child's exit code
			_ = lock.Release()
			os.Exit(exitErr.ExitCode())
		}
		return fmt.Errorf("failed to run command: %v", err)
	}
	return nil
}
