package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/docbridge/docbridge/pkg/docstore"
	"github.com/docbridge/docbridge/pkg/logger"

	_ "github.com/docbridge/docbridge/internal/database/riak"
)

var (
	version   = "0.1.0"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

var (
	configFile string
	log        = logger.New("docbridge", version)
)

var rootCmd = &cobra.Command{
	Use:   "docbridge",
	Short: "Document store bridge CLI",
	Long: "Inspect and manage documents stored through the docbridge adapters: " +
		"ping backends, count and list documents, and clear collections.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Lookup("version").Changed {
			printVersionInfo()
			return nil
		}
		return cmd.Help()
	},
}

func printVersionInfo() {
	fmt.Printf("docbridge v%s (build %s)\n", version, BuildTime)
	fmt.Printf("Commit: %s\n", GitCommit)
	fmt.Printf("Go version: %s\n", runtime.Version())
	fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

// connect loads the config and opens the backend connection.
func connect(ctx context.Context) (*Config, docstore.Connection, error) {
	cfg, err := LoadConfig(configFile)
	if err != nil {
		return nil, nil, err
	}

	conn, err := docstore.Connect(ctx, cfg.ConnectionConfig())
	if err != nil {
		return nil, nil, err
	}
	return cfg, conn, nil
}

// docsFor opens the per-schema document surface named on the command line.
func docsFor(ctx context.Context, schemaName string) (docstore.Docs, docstore.Connection, error) {
	cfg, conn, err := connect(ctx)
	if err != nil {
		return nil, nil, err
	}

	schema, err := cfg.Schema(schemaName)
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return conn.Docs(schema), conn, nil
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the configured backend is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		_, conn, err := connect(ctx)
		if err != nil {
			return err
		}
		defer conn.Close()

		start := time.Now()
		if err := conn.Ping(ctx); err != nil {
			return err
		}
		fmt.Printf("%s is reachable (%s, connection %s)\n", conn.Type(), time.Since(start).Round(time.Millisecond), conn.ID())
		return nil
	},
}

var countCmd = &cobra.Command{
	Use:   "count <schema>",
	Short: "Count the documents in a schema's collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		docs, conn, err := docsFor(ctx, args[0])
		if err != nil {
			return err
		}
		defer conn.Close()

		count, err := docs.CountBy(ctx, nil)
		if err != nil {
			return err
		}
		fmt.Printf("%d\n", count)
		return nil
	},
}

var findCmd = &cobra.Command{
	Use:   "find <schema>",
	Short: "List documents in a schema's collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		docs, conn, err := docsFor(ctx, args[0])
		if err != nil {
			return err
		}
		defer conn.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")

		results, err := docs.FindBy(ctx, nil, docstore.FindOptions{Limit: limit, Offset: offset})
		if docstore.IsStreamPartial(err) {
			log.Warnf("Listing ended early, showing %d documents: %v", len(results), err)
			err = nil
		}
		if err != nil {
			return err
		}

		for _, doc := range results {
			fmt.Printf("%v\n", doc.Fields)
		}
		fmt.Printf("%d document(s)\n", len(results))
		return nil
	},
}

var deleteAllCmd = &cobra.Command{
	Use:   "delete-all <schema>",
	Short: "Delete every document in a schema's collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		confirmed, _ := cmd.Flags().GetBool("yes")
		if !confirmed {
			return fmt.Errorf("refusing to delete without --yes")
		}

		ctx := cmd.Context()
		docs, conn, err := docsFor(ctx, args[0])
		if err != nil {
			return err
		}
		defer conn.Close()

		deleted, err := docs.DeleteAll(ctx)
		if docstore.IsStreamPartial(err) {
			log.Warnf("Deletion ended early after %d documents: %v", deleted, err)
			err = nil
		}
		if err != nil {
			return err
		}
		fmt.Printf("deleted %d document(s)\n", deleted)
		return nil
	},
}

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "List the registered backend adapters",
	Run: func(cmd *cobra.Command, args []string) {
		for _, id := range docstore.ListRegistered() {
			adapter, err := docstore.Get(id)
			if err != nil {
				continue
			}
			caps := adapter.Capabilities()
			fmt.Printf("%-10s %s (default port %d)\n", id, caps.Name, caps.DefaultPort)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", os.ExpandEnv("$HOME/.docbridge/config.yaml"), "Path to config file")
	rootCmd.Flags().Bool("version", false, "Show version information and exit")

	findCmd.Flags().Int("limit", 0, "Maximum number of documents to return (0 = all)")
	findCmd.Flags().Int("offset", 0, "Number of matches to skip")
	deleteAllCmd.Flags().Bool("yes", false, "Confirm the deletion")

	rootCmd.AddCommand(pingCmd, countCmd, findCmd, deleteAllCmd, backendsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
