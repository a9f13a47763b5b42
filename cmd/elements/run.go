package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/demersaj/elements/internal/chain"
	"github.com/demersaj/elements/internal/classify"
	"github.com/demersaj/elements/internal/docstore"
	"github.com/demersaj/elements/internal/element"
	"github.com/demersaj/elements/internal/frame"
	"github.com/demersaj/elements/internal/llm"
	"github.com/demersaj/elements/internal/llm/providers"
	"github.com/demersaj/elements/internal/route"
	"github.com/demersaj/elements/internal/rules"
)

var (
	settingsFile string
	frameFile    string
)

// ruleCacheBytes bounds the router's parsed-rule cache for a CLI run.
const ruleCacheBytes = 1 << 20

var runCmd = &cobra.Command{
	Use:   "run <element>",
	Short: "Run a single element against a frame",
	Long: `Run executes one element. The input frame is read from --frame as
JSON (or an empty frame is synthesized when omitted), settings come
from the --settings YAML file, and every emission is printed to stdout
as a {"port": ..., "frame": ...} JSON line.`,
	Args: cobra.ExactArgs(1),
	RunE: runElement,
}

func init() {
	runCmd.Flags().StringVarP(&settingsFile, "settings", "s", "", "YAML settings file")
	runCmd.Flags().StringVarP(&frameFile, "frame", "f", "", "Input frame JSON file")
}

// buildElement constructs a named element with its default wiring. LLM-backed
// elements resolve providers from environment credentials at call time.
func buildElement(name string) (element.Element, error) {
	switch name {
	case "chain":
		return chain.NewExecutor(chain.NewDispatcher(defaultRegistry())), nil
	case "classifier":
		return classify.NewClassifier(defaultRegistry()), nil
	case "conditional":
		return route.NewConditional(), nil
	case "routing":
		cache, err := rules.NewCache(ruleCacheBytes)
		if err != nil {
			return nil, err
		}
		return route.NewRouter(cache), nil
	case "document_saver":
		return docstore.NewSaver(), nil
	default:
		return nil, fmt.Errorf("unknown element %q (try 'elements list')", name)
	}
}

// defaultRegistry registers any provider whose credentials are present in
// the environment. Elements fall back to per-call construction when a
// backend is missing here.
func defaultRegistry() llm.Registry {
	registry := llm.NewRegistry()
	for _, pt := range []llm.ProviderType{llm.ProviderOpenAI, llm.ProviderAnthropic} {
		p, err := providers.NewProvider(llm.ProviderConfig{Type: pt})
		if err != nil {
			continue
		}
		_ = registry.Register(p)
	}
	return registry
}

func runElement(cmd *cobra.Command, args []string) error {
	log := newLogger()

	el, err := buildElement(args[0])
	if err != nil {
		return err
	}

	settings := element.NewSettings()
	if settingsFile != "" {
		settings, err = element.LoadSettings(settingsFile)
		if err != nil {
			return err
		}
	}

	in := frame.New(nil)
	if frameFile != "" {
		data, err := os.ReadFile(frameFile)
		if err != nil {
			return fmt.Errorf("failed to read frame file: %w", err)
		}
		in = &frame.Frame{}
		if err := json.Unmarshal(data, in); err != nil {
			return fmt.Errorf("failed to parse frame file: %w", err)
		}
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	sink := element.FuncSink(func(port string, f *frame.Frame) error {
		return enc.Encode(map[string]any{"port": port, "frame": f})
	})

	ec := &element.Context{
		Logger:   log.With("element", el.Name()),
		Settings: settings,
		Sink:     sink,
	}

	return el.Run(cmd.Context(), ec, in)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available elements",
	Run: func(cmd *cobra.Command, args []string) {
		names := []string{"chain", "classifier", "conditional", "routing", "document_saver"}
		sort.Strings(names)
		for _, n := range names {
			fmt.Fprintln(cmd.OutOrStdout(), n)
		}
	},
}
