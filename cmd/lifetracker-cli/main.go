package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/DominikBanach/Bono/internal/version"
)

var (
	cfgFile   string
	apiURL    string
	verbose   bool
	outputFmt string
	timeout   time.Duration
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lifetracker-cli",
	Short: "Life Tracker CLI - register event types and log occurrences",
	Long: `lifetracker-cli talks to the Life Tracker API.
Register event definitions, log timestamped events and list both from the terminal.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.lifetracker-cli.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Life Tracker API base URL")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "table", "output format (table, json, yaml)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "request timeout")

	_ = viper.BindPFlag("api_url", rootCmd.PersistentFlags().Lookup("api-url"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))

	definitionsCmd.AddCommand(definitionsCreateCmd, definitionsListCmd)
	eventsCmd.AddCommand(eventsLogCmd, eventsListCmd)

	definitionsCreateCmd.Flags().StringP("description", "d", "", "optional description")
	eventsLogCmd.Flags().StringP("timestamp", "t", "", "occurrence time (ISO-8601, UTC when no offset is given)")

	rootCmd.AddCommand(definitionsCmd, eventsCmd, healthCmd, configCmd, versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".lifetracker-cli")
	}

	viper.SetEnvPrefix("LIFETRACKER")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	viper.SetDefault("api_url", "http://localhost:8080")
	viper.SetDefault("output", "table")

	if err := viper.ReadInConfig(); err == nil {
		logVerbose("Using config file: %s", viper.ConfigFileUsed())
	}

	apiURL = viper.GetString("api_url")
	outputFmt = viper.GetString("output")
}

func newClient() (*Client, error) {
	switch outputFmt {
	case "table", "json", "yaml":
	default:
		return nil, fmt.Errorf("unsupported output format %q", outputFmt)
	}
	c := NewClient(apiURL, outputFmt)
	c.HTTP.Timeout = timeout
	c.Out = rootCmd.OutOrStdout()
	return c, nil
}

var definitionsCmd = &cobra.Command{
	Use:     "definitions",
	Aliases: []string{"defs"},
	Short:   "Manage event definitions",
}

var definitionsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Register a new event definition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		desc, _ := cmd.Flags().GetString("description")
		def, err := c.CreateDefinition(cmd.Context(), args[0], desc)
		if err != nil {
			return err
		}
		return c.printDefinitions([]DefinitionResponse{def})
	},
}

var definitionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List event definitions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		defs, err := c.ListDefinitions(cmd.Context())
		if err != nil {
			return err
		}
		return c.printDefinitions(defs)
	},
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Log and list events",
}

var eventsLogCmd = &cobra.Command{
	Use:   "log <event-type>",
	Short: "Record an occurrence of a registered event type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		ts, _ := cmd.Flags().GetString("timestamp")
		ev, err := c.LogEvent(cmd.Context(), args[0], ts)
		if err != nil {
			return err
		}
		return c.printEvents([]EventResponse{ev})
	},
}

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List logged events",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		evs, err := c.ListEvents(cmd.Context())
		if err != nil {
			return err
		}
		return c.printEvents(evs)
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check API health",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		h, err := c.CheckHealth(cmd.Context())
		if err != nil {
			return err
		}
		if outputFmt != "table" {
			return c.formatOutput(h)
		}
		fmt.Fprintf(c.Out, "Status:  %s\nDB:      %s\nCache:   %s\nVersion: %s\n", h.Status, h.DB, h.Cache, h.Version)
		if h.Status != "ok" {
			return fmt.Errorf("api is %s", h.Status)
		}
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective CLI configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Current Configuration:")
		fmt.Fprintf(out, "API URL: %s\n", apiURL)
		fmt.Fprintf(out, "Output:  %s\n", outputFmt)
		if viper.ConfigFileUsed() != "" {
			fmt.Fprintf(out, "Config file: %s\n", viper.ConfigFileUsed())
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the CLI version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.String())
	},
}

func logVerbose(format string, args ...interface{}) {
	if verbose {
		log.Printf("[VERBOSE] "+format, args...)
	}
}
