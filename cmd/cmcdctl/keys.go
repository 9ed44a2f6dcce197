package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"arcstream/cmcd/pkg/cli"
	"arcstream/cmcd/pkg/cmcd"
	"arcstream/cmcd/pkg/headers"
)

var keysFlags struct {
	format string
}

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the supported CMCD keys",
	Long: `List the CTA-5004 keys this library can attach to outgoing requests,
together with the request header each key travels in.

These are the keys a policy document's denied_keys section may name.

Examples:
  # Human-readable table
  cmcdctl keys

  # JSON for scripting
  cmcdctl keys --format json

  # CSV for spreadsheets
  cmcdctl keys --format csv`,
	RunE: listKeys,
}

func init() {
	rootCmd.AddCommand(keysCmd)

	keysCmd.Flags().StringVar(&keysFlags.format, "format", "text", "output format: text, json, csv")
}

// keyInfo describes one vocabulary entry for machine-readable output.
type keyInfo struct {
	Key         string `json:"key"`
	Header      string `json:"header"`
	Description string `json:"description"`
}

func keyTable() []keyInfo {
	descriptions := map[string]string{
		cmcd.KeyBitrate:                    "Encoded bitrate of the requested object, in kbps",
		cmcd.KeyBufferLength:               "Buffer length when the request is made, in ms (nearest 100ms)",
		cmcd.KeyContentID:                  "Content identifier, constant for the media asset",
		cmcd.KeySessionID:                  "Session identifier, constant for the playback session",
		cmcd.KeyMaximumRequestedThroughput: "Requested maximum throughput, in kbps (nearest 100kbps)",
	}

	keys := cmcd.WellKnownKeys()
	table := make([]keyInfo, 0, len(keys))
	for _, key := range keys {
		header, _ := headers.GroupFor(key)
		table = append(table, keyInfo{
			Key:         key,
			Header:      header,
			Description: descriptions[key],
		})
	}
	return table
}

func listKeys(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(keysFlags.format)
	if err != nil {
		return err
	}

	table := keyTable()

	switch format {
	case cli.FormatJSON:
		formatter := &cli.JSONFormatter{Indent: true}
		return formatter.FormatTo(os.Stdout, table)

	case cli.FormatCSV:
		rows := make([][]string, 0, len(table))
		for _, info := range table {
			rows = append(rows, []string{info.Key, info.Header, info.Description})
		}
		formatter := &cli.CSVFormatter{Headers: []string{"key", "header", "description"}}
		return formatter.FormatTo(os.Stdout, rows)

	default:
		fmt.Printf("%-5s %-13s %s\n", "KEY", "HEADER", "DESCRIPTION")
		for _, info := range table {
			fmt.Printf("%-5s %-13s %s\n", info.Key, info.Header, info.Description)
		}
		return nil
	}
}
