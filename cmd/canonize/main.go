// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/canonize"
	"github.com/poiesic/canonize/adapter"
	"github.com/poiesic/canonize/core"
	"github.com/poiesic/canonize/hubclient"
	"github.com/poiesic/canonize/ingestion"
	"github.com/poiesic/canonize/tabular"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "canonize",
		Usage: "Normalize support conversations into a canonical store",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory",
				EnvVars: []string{"CANONIZE_DB"},
				Value:   "./canonize.db",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "ensure-indexes",
				Usage:  "Rebuild secondary and token indexes from stored records",
				Action: ensureIndexesCommand,
			},
			{
				Name:      "ingest-hub",
				Usage:     "Ingest remote datasets through their dedicated adapters",
				ArgsUsage: "dataset [dataset ...]",
				Action:    ingestHubCommand,
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:  "split",
						Usage: "Dataset splits to ingest (repeatable)",
						Value: cli.NewStringSlice("train"),
					},
					&cli.StringFlag{
						Name:  "endpoint",
						Usage: "Dataset hub base URL",
						Value: hubclient.DefaultEndpoint,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of records per bulk write",
						Value: ingestion.DefaultBatchSize,
					},
					&cli.IntFlag{
						Name:  "concurrency",
						Usage: "Number of sources ingested in parallel",
						Value: 2,
					},
				},
			},
			{
				Name:      "ingest-csv",
				Usage:     "Ingest local CSV files using column-keyword guessing",
				ArgsUsage: "dataset=path [dataset=path ...]",
				Action:    ingestCSVCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "split",
						Usage: "Split name recorded for all files",
						Value: "train",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of records per bulk write",
						Value: ingestion.DefaultBatchSize,
					},
				},
			},
			{
				Name:      "ingest-csv-special",
				Usage:     "Ingest local CSV files through their dedicated adapters",
				ArgsUsage: "dataset=path [dataset=path ...]",
				Action:    ingestCSVSpecialCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "split",
						Usage: "Split name recorded for all files",
						Value: "train",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of records per bulk write",
						Value: ingestion.DefaultBatchSize,
					},
				},
			},
			{
				Name:   "export",
				Usage:  "Export stored conversations to a file",
				Action: exportCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "out",
						Aliases:  []string{"o"},
						Usage:    "Output file path",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Output format (jsonl, csv)",
						Value: "jsonl",
					},
					&cli.StringFlag{
						Name:  "dataset",
						Usage: "Only export this dataset (requires --split)",
					},
					&cli.StringFlag{
						Name:  "split",
						Usage: "Only export this split (requires --dataset)",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Find conversations by message text",
				ArgsUsage: "term",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results",
						Value: 10,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func ensureIndexesCommand(c *cli.Context) error {
	db, err := canonize.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	count, err := db.Conversations().RebuildIndexes(context.Background())
	if err != nil {
		return fmt.Errorf("index rebuild failed: %w", err)
	}
	fmt.Fprintf(os.Stderr, "reindexed %d conversations\n", count)
	return nil
}

func ingestHubCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one dataset argument is required")
	}

	db, err := canonize.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	pipeline, err := db.NewIngestionPipeline(
		ingestion.WithBatchSize(c.Int("batch-size")),
		ingestion.WithPoolSize(c.Int("concurrency")),
	)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Release()

	var sources []ingestion.Source
	for _, dataset := range c.Args().Slice() {
		for _, split := range c.StringSlice("split") {
			sources = append(sources, hubclient.NewClient(dataset, split,
				hubclient.WithEndpoint(c.String("endpoint"))))
		}
	}

	// Per-source failures are logged by the pipeline; the run moves on.
	for _, report := range pipeline.RunAll(context.Background(), sources) {
		fmt.Println(report)
	}
	return nil
}

func ingestCSVCommand(c *cli.Context) error {
	return runCSVIngestion(c, false)
}

func ingestCSVSpecialCommand(c *cli.Context) error {
	return runCSVIngestion(c, true)
}

// runCSVIngestion processes dataset=path arguments sequentially. With
// dedicated=false every file goes through a generic adapter built from
// its own header; with dedicated=true the registry decides, and unknown
// datasets are reported without stopping the run.
func runCSVIngestion(c *cli.Context, dedicated bool) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one dataset=path argument is required")
	}

	db, err := canonize.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	pipeline, err := db.NewIngestionPipeline(
		ingestion.WithBatchSize(c.Int("batch-size")),
	)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Release()

	ctx := context.Background()
	split := c.String("split")

	for _, arg := range c.Args().Slice() {
		dataset, path, ok := strings.Cut(arg, "=")
		if !ok || dataset == "" || path == "" {
			return fmt.Errorf("invalid argument %q: expected dataset=path", arg)
		}
		src := tabular.NewFile(path, dataset, split)

		var report *ingestion.Report
		if dedicated {
			report, err = pipeline.Run(ctx, src)
		} else {
			columns, colErr := src.Columns()
			if colErr != nil {
				slog.Error("cannot read file header", "path", path, "err", colErr)
				continue
			}
			report, err = pipeline.RunWith(ctx, src, adapter.NewGeneric(dataset, columns))
		}
		if err != nil {
			slog.Error("ingestion failed", "dataset", dataset, "path", path, "err", err)
		}
		if report != nil {
			fmt.Println(report)
		}
	}
	return nil
}

func exportCommand(c *cli.Context) error {
	format := c.String("format")
	if format != "jsonl" && format != "csv" {
		return fmt.Errorf("invalid format %q: must be jsonl or csv", format)
	}
	dataset, split := c.String("dataset"), c.String("split")
	if (dataset == "") != (split == "") {
		return fmt.Errorf("--dataset and --split must be used together")
	}

	db, err := canonize.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	out, err := os.Create(c.String("out"))
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	ctx := context.Background()
	count := 0

	var writeRecord func(*core.CanonicalRecord) error
	var finish func() error

	switch format {
	case "jsonl":
		encoder := json.NewEncoder(out)
		writeRecord = func(record *core.CanonicalRecord) error {
			return encoder.Encode(record)
		}
		finish = func() error { return nil }
	case "csv":
		writer := csv.NewWriter(out)
		header := []string{"conversation_id", "user_text", "agent_text", "intent", "category", "tags"}
		if err := writer.Write(header); err != nil {
			return err
		}
		writeRecord = func(record *core.CanonicalRecord) error {
			return writer.Write(flattenRecord(record))
		}
		finish = func() error {
			writer.Flush()
			return writer.Error()
		}
	}

	if dataset != "" {
		records, err := db.Conversations().FindBySource(ctx, dataset, split)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		for _, record := range records {
			if err := writeRecord(record); err != nil {
				return err
			}
			count++
		}
	} else {
		for record, err := range db.Conversations().All(ctx) {
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}
			if err := writeRecord(record); err != nil {
				return err
			}
			count++
		}
	}

	if err := finish(); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "exported %d conversations to %s\n", count, c.String("out"))
	return nil
}

// flattenRecord maps a conversation to one CSV line, first user and agent
// message only.
func flattenRecord(record *core.CanonicalRecord) []string {
	var userText, agentText string
	for _, msg := range record.Messages {
		switch {
		case msg.Role == core.RoleUser && userText == "":
			userText = msg.Text
		case msg.Role == core.RoleAgent && agentText == "":
			agentText = msg.Text
		}
	}
	var intent, category string
	if record.Labels.Intent != nil {
		intent = *record.Labels.Intent
	}
	if record.Labels.Category != nil {
		category = *record.Labels.Category
	}
	return []string{
		record.ConversationID,
		userText,
		agentText,
		intent,
		category,
		strings.Join(record.Meta.Tags, ","),
	}
}

func searchCommand(c *cli.Context) error {
	term := c.Args().First()
	if term == "" {
		return fmt.Errorf("a search term is required")
	}

	db, err := canonize.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	records, err := db.Conversations().SearchText(context.Background(), term, c.Int("limit"))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	for _, record := range records {
		preview := ""
		if len(record.Messages) > 0 {
			preview = record.Messages[0].Text
			if len(preview) > 80 {
				preview = preview[:77] + "..."
			}
		}
		fmt.Printf("%s\t%s\n", record.ConversationID, preview)
	}
	fmt.Fprintf(os.Stderr, "%d results\n", len(records))
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
