/*
Package cli provides command-line interface utilities for cmcdctl.

The cli package includes output formatters, progress reporters, and common CLI
helpers used by the cmcdctl command.

Output Formatting:

The cli package supports multiple output formats (text, JSON, CSV) for
displaying command results:

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, result); err != nil {
		return err
	}

Tabular results, like the key vocabulary listing, can also be emitted as CSV
by passing [][]string rows to a CSVFormatter.

Progress Reporting:

For long-running operations, use the progress reporter:

	progress := cli.NewProgressReporter(os.Stdout)
	progress.Start(totalItems)
	for i := 0; i < totalItems; i++ {
		// Do work
		progress.Update(int64(i + 1))
	}
	progress.Finish()

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SetupSignalHandler()
	defer stop()
	// Use ctx for operations that should end on shutdown, like watching
	// a policy file for changes.
*/
package cli
