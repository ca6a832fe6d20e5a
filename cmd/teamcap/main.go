package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"teamcap/internal/app"
	"teamcap/internal/config"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates an App. The caller must defer app.Close().
func newApp() (*app.App, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewApp(cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

var rootCmd = &cobra.Command{
	Use:   "teamcap",
	Short: "Team capacity calculator backed by the company HR directory",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		reader := bufio.NewReader(os.Stdin)
		fmt.Print("Company domain: ")
		domain, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading domain: %w", err)
		}

		fmt.Print("API key (input hidden): ")
		keyBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("reading api key: %w", err)
		}

		cfg := config.NewConfig(uuid.New().String(), defaults["base_dir"])
		cfg.Domain = strings.TrimSpace(domain)
		cfg.APIKey = strings.TrimSpace(string(keyBytes))

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Client ID: %s\n", cfg.ClientID)
		fmt.Printf("Base Dir:  %s\n", cfg.BaseDir)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		// The API key is deliberately not printed.
		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Client ID:       %s\n", cfg.ClientID)
		fmt.Printf("Domain:          %s\n", cfg.Domain)
		fmt.Printf("Base Dir:        %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:         %s\n", cfg.LogDir)
		fmt.Printf("Database:        %s\n", cfg.Database.Type)
		fmt.Printf("Elevated access: %v\n", cfg.Provider.ElevatedAccess)
		return nil
	},
}

// capacity command
var (
	capacityStart       string
	capacityEnd         string
	capacitySectors     []string
	capacityFocusFactor float64
)

var capacityCmd = &cobra.Command{
	Use:   "capacity",
	Short: "Calculate sprint capacity in person-hours",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		result, err := a.CalculateCapacity(cmd.Context(), capacityStart, capacityEnd, capacityFocusFactor, capacitySectors)
		if err != nil {
			return fmt.Errorf("calculating capacity: %w", err)
		}

		fmt.Printf("Sprint capacity: %.1f hours\n", result.Hours)
		fmt.Printf("Working days:    %d\n", result.WorkingDays)
		fmt.Printf("Employees:       %d\n", result.Employees)
		if result.DroppedRecords > 0 {
			fmt.Printf("Dropped records: %d (see log)\n", result.DroppedRecords)
		}
		return nil
	},
}

// available command
var (
	availableStart   string
	availableEnd     string
	availableSectors []string
	availableOnlyIDs bool
)

var availableCmd = &cobra.Command{
	Use:   "available",
	Short: "List employees available in a date range (defaults to today)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		start, end := availableStart, availableEnd
		if start == "" {
			start = a.Today()
		}
		if end == "" {
			end = start
		}

		result, err := a.AvailableEmployees(cmd.Context(), start, end, availableSectors, availableOnlyIDs)
		if err != nil {
			return fmt.Errorf("resolving available employees: %w", err)
		}

		if availableOnlyIDs {
			for _, id := range result.IDs {
				fmt.Println(id)
			}
			return nil
		}
		printEmployees(result.Employees)
		return nil
	},
}

// whosout command
var (
	whosoutStart string
	whosoutEnd   string
)

var whosoutCmd = &cobra.Command{
	Use:   "whosout",
	Short: "List out-of-office entries for a date range (defaults to today)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		start, end := whosoutStart, whosoutEnd
		if start == "" {
			start = a.Today()
		}
		if end == "" {
			end = start
		}

		records, err := a.WhosOut(cmd.Context(), start, end)
		if err != nil {
			return fmt.Errorf("resolving who is out: %w", err)
		}
		printOutOfOffice(records)
		return nil
	},
}

// cache command
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the local employee cache",
}

var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show cache size and location",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		count, err := a.CacheCount()
		if err != nil {
			return fmt.Errorf("counting cached employees: %w", err)
		}
		fmt.Printf("Cached employees: %d\n", count)
		fmt.Printf("Cache database:   %s\n", a.CachePath())
		return nil
	},
}

var cacheRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Reload the cache from the remote directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		count, err := a.RefreshCache(cmd.Context())
		if err != nil {
			return fmt.Errorf("refreshing cache: %w", err)
		}
		fmt.Printf("Cache refreshed: %d employees\n", count)
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cache (it refills on next use)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.ClearCache(); err != nil {
			return fmt.Errorf("clearing cache: %w", err)
		}
		fmt.Println("Cache cleared")
		return nil
	},
}

// menu command
var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Interactive menu",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		runMenu(cmd.Context(), a, os.Stdin, os.Stdout)
		return nil
	},
}

func init() {
	capacityCmd.Flags().StringVar(&capacityStart, "start", "", "sprint start date (YYYY-MM-DD)")
	capacityCmd.Flags().StringVar(&capacityEnd, "end", "", "sprint end date (YYYY-MM-DD)")
	capacityCmd.Flags().StringSliceVar(&capacitySectors, "sector", nil, "sector codes to include (e.g. BE,QA)")
	capacityCmd.Flags().Float64Var(&capacityFocusFactor, "focus-factor", 0, "fraction of nominal hours expected to be productive (default 0.75)")
	capacityCmd.MarkFlagRequired("start")
	capacityCmd.MarkFlagRequired("end")

	availableCmd.Flags().StringVar(&availableStart, "start", "", "range start date (YYYY-MM-DD)")
	availableCmd.Flags().StringVar(&availableEnd, "end", "", "range end date (YYYY-MM-DD)")
	availableCmd.Flags().StringSliceVar(&availableSectors, "sector", nil, "sector codes to include")
	availableCmd.Flags().BoolVar(&availableOnlyIDs, "only-ids", false, "print employee ids only")

	whosoutCmd.Flags().StringVar(&whosoutStart, "start", "", "range start date (YYYY-MM-DD)")
	whosoutCmd.Flags().StringVar(&whosoutEnd, "end", "", "range end date (YYYY-MM-DD)")

	configCmd.AddCommand(configInitCmd, configListCmd)
	cacheCmd.AddCommand(cacheStatusCmd, cacheRefreshCmd, cacheClearCmd)
	rootCmd.AddCommand(configCmd, capacityCmd, availableCmd, whosoutCmd, cacheCmd, menuCmd)
}
