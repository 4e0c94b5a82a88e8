// Package cmd implements the command line interface of Reel.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/reelplayer/reel/res"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// Execute parses the command line and calls run with the media
// locators given as arguments.
func Execute(run func(locators []string) error) {
	rootCmd := newRootCmd(run)
	if os.Getenv("NO_COLOR") == "" {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(run func([]string) error) *cobra.Command {
	return &cobra.Command{
		Use:     res.AppName + " [file|url]...",
		Short:   res.DisplayName + " is a desktop video player built on libmpv",
		Example: res.AppName + " ~/Videos/holiday.mkv https://example.com/stream.m3u8",
		Version: res.AppVersion,
		Args:    cobra.ArbitraryArgs,
		// errors past argument parsing come from the GUI, not from usage
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(Locators(args))
		},
	}
}

// Locators turns command line arguments into locators the engine can open
// from any working directory: local paths become absolute, URLs are kept.
func Locators(args []string) []string {
	return lo.FilterMap(args, func(arg string, _ int) (string, bool) {
		arg = strings.TrimSpace(arg)
		if arg == "" {
			return "", false
		}
		if isURL(arg) {
			return arg, true
		}
		if abs, err := filepath.Abs(arg); err == nil {
			return abs, true
		}
		return arg, true
	})
}

func isURL(s string) bool {
	scheme, _, ok := strings.Cut(s, "://")
	if !ok || len(scheme) < 2 {
		// single letter schemes are Windows drive letters
		return false
	}
	return !strings.ContainsAny(scheme, `/\`)
}
