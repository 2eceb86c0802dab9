package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/datascribe/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set DataScribe configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := effectiveConfig()
		fmt.Printf("max_unique: %d\n", c.MaxUnique)
		fmt.Printf("hist_bins: %d\n", c.HistBins)
		fmt.Printf("density_points: %d\n", c.DensityPoints)
		fmt.Printf("table_max_rows: %d\n", c.TableMaxRows)
		fmt.Printf("chart_dpi: %d\n", c.ChartDPI)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		n, err := strconv.Atoi(val)
		if err != nil || n <= 0 {
			return fmt.Errorf("value for %s must be a positive integer, got %q", key, val)
		}
		c := effectiveConfig()
		switch key {
		case "max_unique":
			c.MaxUnique = n
		case "hist_bins":
			c.HistBins = n
		case "density_points":
			c.DensityPoints = n
		case "table_max_rows":
			c.TableMaxRows = n
		case "chart_dpi":
			c.ChartDPI = n
		default:
			return fmt.Errorf("unknown config key: %s", key)
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		cfg = c
		fmt.Printf("✓ Set %s = %d\n", key, n)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
