package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"dirsweep/internal/config"
	"dirsweep/internal/disk"
	"dirsweep/internal/history"
)

var (
	histDBPath string
	histLimit  int
	histAction string
	histStats  bool
	histDays   int
	histJSON   bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Query the removal audit log",
	Long: `history reads the SQLite removal log written by sweeps that ran with
--history-db and prints recent events or aggregate statistics.`,
	Example: `  # Show the 20 most recent events
  dirsweep history --db ~/.dirsweep/removals.db

  # Only failed removals, as JSON
  dirsweep history --db removals.db --action ERROR --json

  # Totals for the last week
  dirsweep history --db removals.db --stats --days 7`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&histDBPath, "db", "", "path to the removal log database")
	historyCmd.Flags().IntVar(&histLimit, "limit", 20, "maximum number of events to show")
	historyCmd.Flags().StringVar(&histAction, "action", "", "filter by action (REMOVE, DRY_RUN, SKIP, ERROR)")
	historyCmd.Flags().BoolVar(&histStats, "stats", false, "show aggregate statistics instead of events")
	historyCmd.Flags().IntVar(&histDays, "days", 30, "number of days covered by --stats")
	historyCmd.Flags().BoolVar(&histJSON, "json", false, "output in JSON format")
}

func runHistory(cmd *cobra.Command, args []string) error {
	dbPath := histDBPath
	if dbPath == "" && configPath != "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		dbPath = cfg.HistoryDB
	}
	if dbPath == "" {
		return errors.New("no removal log given (--db or history_db in config)")
	}

	db, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if histStats {
		return showStats(db)
	}

	var records []history.Record
	if histAction != "" {
		records, err = db.RemovalsByAction(histAction, histLimit)
	} else {
		records, err = db.RecentRemovals(histLimit)
	}
	if err != nil {
		return err
	}

	if histJSON {
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	printRecords(records)
	return nil
}

func showStats(db *history.DB) error {
	stats, err := db.GetStats(histDays)
	if err != nil {
		return err
	}

	if histJSON {
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Removal statistics (last %d days)\n", histDays)
	fmt.Printf("Period: %s to %s\n\n",
		stats.StartDate.Format("2006-01-02"), stats.EndDate.Format("2006-01-02"))
	fmt.Printf("Space freed: %s\n\n", disk.FormatSize(stats.BytesFreed))

	if len(stats.ByAction) > 0 {
		fmt.Println("By action:")
		for action, count := range stats.ByAction {
			fmt.Printf("  %-10s %d\n", action, count)
		}
	}
	return nil
}

func printRecords(records []history.Record) {
	if len(records) == 0 {
		fmt.Println("No events found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tACTION\tSIZE\tPATH\tERROR")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			r.Timestamp.Format("2006-01-02 15:04:05"),
			r.Action,
			disk.FormatSize(r.Size),
			r.Path,
			r.ErrorMessage,
		)
	}
	w.Flush()
}
