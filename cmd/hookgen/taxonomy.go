package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jonathan/hookgen/internal/observability"
	"github.com/jonathan/hookgen/internal/taxonomy"
	"github.com/jonathan/hookgen/internal/types"
)

var taxonomyCmd = &cobra.Command{
	Use:   "taxonomy",
	Short: "Print the hook category catalog",
	Long:  "Prints every hook category with its formulas. With --topic, also shows how the topic is classified and which categories generation would favour.",
	RunE:  runTaxonomy,
}

var (
	taxonomyJSON      bool
	taxonomyTopic     string
	taxonomyObjective string
)

func init() {
	taxonomyCmd.Flags().BoolVar(&taxonomyJSON, "json", false, "Print the catalog as JSON")
	taxonomyCmd.Flags().StringVarP(&taxonomyTopic, "topic", "t", "", "Classify this topic and show the selected categories")
	taxonomyCmd.Flags().StringVar(&taxonomyObjective, "objective", string(types.ObjectiveWatchTime), "Objective used with --topic")

	rootCmd.AddCommand(taxonomyCmd)
}

func runTaxonomy(cmd *cobra.Command, _ []string) error {
	return printTaxonomy(cmd.OutOrStdout(), taxonomyTopic, taxonomyObjective, taxonomyJSON)
}

func printTaxonomy(w io.Writer, topic, objective string, asJSON bool) error {
	categories := taxonomy.Categories()

	if asJSON {
		jsonBytes, err := json.MarshalIndent(categories, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal taxonomy: %w", err)
		}
		_, _ = fmt.Fprintln(w, string(jsonBytes))
		return nil
	}

	observability.NewPrinter(w).PrintTaxonomy(categories)

	if topic != "" {
		o, err := types.ParseObjective(objective)
		if err != nil {
			return err
		}
		contentType := taxonomy.ClassifyContent(topic, o)
		_, _ = fmt.Fprintf(w, "\nTopic %q is %s; favoured categories: %v\n",
			topic, contentType, taxonomy.SelectCategories(contentType, o))
	}
	return nil
}
