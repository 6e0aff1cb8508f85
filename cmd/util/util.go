package util

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/shmlock/shmlock/lib/logging"
	"github.com/shmlock/shmlock/lib/shmlock"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		// Add the word
		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	// Add any remaining text
	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// InitConfig initializes configuration from environment variables
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("shmlock")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// SetupLockFlags adds the common lock construction flags to a command
func SetupLockFlags(cmd *cobra.Command) {
	key := "poll-interval"
	cmd.PersistentFlags().Duration(key, shmlock.DefaultPollInterval, WrapString("Sleep between failed acquisition attempts"))

	key = "log-level"
	cmd.PersistentFlags().String(key, "info", WrapString("Log level (debug, info, warn, error)"))

	key = "no-track"
	cmd.PersistentFlags().Bool(key, false, WrapString("Do not record the lock's segments with the lifecycle hooks / resource tracker"))
}

// SetupTimeoutFlags adds the acquisition timeout flags to a command
func SetupTimeoutFlags(cmd *cobra.Command) {
	key := "timeout"
	cmd.Flags().Duration(key, 0, WrapString("Max wait for the lock. 0 selects the default window of one second"))

	key = "no-wait"
	cmd.Flags().Bool(key, false, WrapString("Make exactly one acquisition attempt without waiting"))

	key = "wait-forever"
	cmd.Flags().Bool(key, false, WrapString("Poll until the lock is acquired, ignoring --timeout"))
}

// GetLogger builds the logger selected by the log-level flag
func GetLogger(name string) (logging.ILogger, error) {
	level, err := logging.ParseLevel(viper.GetString("log-level"))
	if err != nil {
		return nil, err
	}
	return logging.NewWithLevel(name, level), nil
}

// GetLockConfig reads the lock construction parameters from viper
func GetLockConfig(name string) (shmlock.Config, error) {
	logger, err := GetLogger("shmlock")
	if err != nil {
		return shmlock.Config{}, err
	}
	return shmlock.Config{
		Name:         name,
		PollInterval: viper.GetDuration("poll-interval"),
		Logger:       logger,
		NoTrack:      viper.GetBool("no-track"),
	}, nil
}

// GetTimeout reads the acquisition timeout flags from viper
func GetTimeout() shmlock.Timeout {
	switch {
	case viper.GetBool("no-wait"):
		return shmlock.NoWait
	case viper.GetBool("wait-forever"):
		return shmlock.Indefinite
	case viper.GetDuration("timeout") == 0:
		return shmlock.DefaultWait
	default:
		return shmlock.After(viper.GetDuration("timeout"))
	}
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}
