package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/reqplan/reqplan/pkg/infrastructure/telemetry"
	"github.com/reqplan/reqplan/pkg/interfaces/cli/commands"
)

var rootCmd = &cobra.Command{
	Use:   "reqplan",
	Short: "Proposed-order planning",
	Long: `reqplan turns projected product shortages into proposed purchase and
manufacturing orders. Manufactured products are backward scheduled through
their routing on working-time calendars; procured products are offset by
their supplier lead time. Each proposal is recorded as a requirement pending
promotion to a real order.`,
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Propose orders for a shortage scenario",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := telemetry.SetupLogger()
		config := commands.Config{
			ScenarioDir:      viper.GetString("scenario"),
			ProductsFile:     viper.GetString("products"),
			FacilitiesFile:   viper.GetString("facilities"),
			RoutingsFile:     viper.GetString("routings"),
			StepsFile:        viper.GetString("steps"),
			ShortagesFile:    viper.GetString("shortages"),
			CalendarsFile:    viper.GetString("calendars"),
			DBPath:           viper.GetString("db"),
			SupplierCalendar: viper.GetString("supplier-calendar"),
			PlanName:         viper.GetString("plan-name"),
			OutputDir:        viper.GetString("output"),
			Format:           viper.GetString("format"),
			Verbose:          viper.GetBool("verbose"),
		}
		return commands.NewPlanCommand(config, logger).Execute(context.Background())
	},
}

func main() {
	cobra.OnInitialize(initConfig)
	addFlags()
	rootCmd.AddCommand(planCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("REQPLAN")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func addFlags() {
	flags := planCmd.Flags()
	flags.String("scenario", "", "path to scenario directory containing CSV files and calendars.yml")
	flags.String("products", "", "path to products CSV file")
	flags.String("facilities", "", "path to product facilities CSV file")
	flags.String("routings", "", "path to routings CSV file")
	flags.String("steps", "", "path to routing steps CSV file")
	flags.String("shortages", "", "path to shortages CSV file")
	flags.String("calendars", "", "path to calendars YAML file")
	flags.String("db", "", "SQLite database path for requirement persistence (in-memory store when empty)")
	flags.String("supplier-calendar", "SUPPLIER", "calendar id used for procured products")
	flags.String("plan-name", "", "name tag recorded on generated requirements")
	flags.String("output", "", "output directory for results")
	flags.String("format", "text", "output format: text, json, csv")
	flags.Bool("verbose", false, "enable verbose output")
	_ = viper.BindPFlags(flags)
}
