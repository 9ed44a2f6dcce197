package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"arcstream/cmcd/pkg/cli"
	"arcstream/cmcd/pkg/cmcd"
	"arcstream/cmcd/pkg/headers"
	"arcstream/cmcd/pkg/policy"
)

var renderFlags struct {
	file       string
	sessionID  string
	contentID  string
	bitrate    int
	buffer     int
	throughput int
	watch      bool
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the CMCD headers a player would send",
	Long: `Render the CMCD request headers a player would attach for the given
playback state, offline. Without --file the permissive default policy is
used; with --file the policy document decides which keys appear.

With --watch the command keeps running, re-rendering whenever the policy
file changes, until interrupted. This is useful for tuning a policy while
watching its effect.

Examples:
  # Headers under the default policy
  cmcdctl render --bitrate 3200 --buffer 12000

  # Headers under a policy file
  cmcdctl render --file policy.yaml --bitrate 3200 --buffer 12000

  # Re-render on every policy change
  cmcdctl render --file policy.yaml --bitrate 3200 --watch`,
	RunE: renderHeaders,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderFlags.file, "file", "f", "", "policy file to apply")
	renderCmd.Flags().StringVar(&renderFlags.sessionID, "session-id", "", "session id (generated when empty)")
	renderCmd.Flags().StringVar(&renderFlags.contentID, "content-id", "demo-content", "content id")
	renderCmd.Flags().IntVar(&renderFlags.bitrate, "bitrate", 0, "encoded bitrate of the requested object, in kbps")
	renderCmd.Flags().IntVar(&renderFlags.buffer, "buffer", -1, "buffer length in ms (-1 leaves bl out)")
	renderCmd.Flags().IntVar(&renderFlags.throughput, "throughput", 0, "observed object throughput, in kbps")
	renderCmd.Flags().BoolVarP(&renderFlags.watch, "watch", "w", false, "re-render when the policy file changes")
}

func renderHeaders(cmd *cobra.Command, args []string) error {
	if renderFlags.bitrate < 0 {
		return cli.NewFlagError("--bitrate", "must not be negative")
	}
	if renderFlags.buffer < -1 {
		return cli.NewFlagError("--buffer", "must be -1 (absent) or non-negative")
	}
	if renderFlags.throughput < 0 {
		return cli.NewFlagError("--throughput", "must not be negative")
	}
	if renderFlags.watch && renderFlags.file == "" {
		return cli.NewFlagError("--watch", "requires --file")
	}

	sessionID := renderFlags.sessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	if renderFlags.watch {
		return renderWatch(sessionID)
	}

	rc := cmcd.DefaultRequestConfig
	if renderFlags.file != "" {
		pol, err := policy.Load(renderFlags.file)
		if err != nil {
			return cli.NewCommandError("render", err)
		}
		rc = pol
	}

	cfg, err := cmcd.NewConfiguration(sessionID, renderFlags.contentID, rc)
	if err != nil {
		return cli.NewCommandError("render", err)
	}

	printLines(renderLines(cfg, playbackRequest()))
	return nil
}

func renderWatch(sessionID string) error {
	ctx, stop := cli.SetupSignalHandler()
	defer stop()

	var cfg *cmcd.Configuration

	fp, err := policy.OpenFile(renderFlags.file, &policy.FileOptions{
		OnReload: func(*policy.Static) {
			fmt.Printf("--- reloaded %s ---\n", renderFlags.file)
			printLines(renderLines(cfg, playbackRequest()))
		},
		OnError: func(err error) {
			fmt.Fprintf(os.Stderr, "reload failed: %v\n", err)
		},
	})
	if err != nil {
		return cli.NewCommandError("render", err)
	}

	cfg, err = cmcd.NewConfiguration(sessionID, renderFlags.contentID, fp)
	if err != nil {
		return cli.NewCommandError("render", err)
	}

	printLines(renderLines(cfg, playbackRequest()))
	fmt.Fprintf(os.Stderr, "watching %s (interrupt to stop)\n", renderFlags.file)

	if err := fp.Watch(ctx); err != nil {
		return cli.NewCommandError("render", err)
	}
	return nil
}

// playbackRequest translates the playback-state flags into a header request.
func playbackRequest() *headers.Request {
	req := headers.NewRequest().
		WithBitrateKbps(renderFlags.bitrate).
		WithObjectThroughputKbps(renderFlags.throughput)
	if renderFlags.buffer >= 0 {
		req.WithBufferedDuration(time.Duration(renderFlags.buffer) * time.Millisecond)
	}
	return req
}

// renderLines assembles the headers and returns one "Name: value" line per
// populated header, in the CTA-5004 group order.
func renderLines(cfg *cmcd.Configuration, req *headers.Request) []string {
	built := headers.NewAssembler(cfg).Build(req)

	lines := make([]string, 0, len(built))
	for _, name := range cmcd.HeaderNames() {
		if value, ok := built[name]; ok {
			lines = append(lines, fmt.Sprintf("%s: %s", name, value))
		}
	}
	return lines
}

func printLines(lines []string) {
	if len(lines) == 0 {
		fmt.Println("(no CMCD headers)")
		return
	}
	for _, line := range lines {
		fmt.Println(line)
	}
}
