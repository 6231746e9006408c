// Package cli implements the cobra command tree for the digest binary.
//
// Commands hold no business logic. They parse flags, call the injected
// services, and format output. Services are injected from main via the
// Set* functions before Execute runs.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/shaphero/digest-cli/internal/core/ports/driven"
	"github.com/shaphero/digest-cli/internal/core/ports/driving"
	"github.com/shaphero/digest-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Injected services. Nil until main wires them.
var (
	composeService driving.ComposeService
	libraryService driving.LibraryService
	configStore    driven.ConfigStore
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "digest",
	Short: "Compose and manage markdown research digests",
	Long: `Digest pulls evidence from articles and reddit threads, distils it
into statistic-anchored findings, and renders the result as a portable
markdown record. Digests can be stored, bundled, re-imported, validated
and exported for publishing.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose progress output on stderr")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string shown by the version command.
func SetVersion(v string) {
	version = v
}

// SetComposeService injects the compose service.
func SetComposeService(s driving.ComposeService) {
	composeService = s
}

// SetLibraryService injects the library service.
func SetLibraryService(s driving.LibraryService) {
	libraryService = s
}

// SetConfigStore injects the configuration store.
func SetConfigStore(s driven.ConfigStore) {
	configStore = s
}
