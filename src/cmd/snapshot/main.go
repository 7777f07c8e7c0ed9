package main

import (
	"context"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/quantpulse/option-snapshot/src/models"
	"github.com/quantpulse/option-snapshot/src/services"
	"github.com/quantpulse/option-snapshot/src/store"
	"github.com/quantpulse/option-snapshot/src/utils"
)

type RunArgs struct {
	GoEnv           string
	UnderlyingsFile string
	DownloadsDir    string
	SkipEnrichment  bool
	Wait            bool
}

var runCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Build and persist today's structural option chain snapshot",
	Run: func(cmd *cobra.Command, args []string) {
		goEnv, err := cmd.Flags().GetString("go-env")
		if err != nil {
			log.Fatalf("error getting go-env: %v", err)
		}

		underlyingsFile, err := cmd.Flags().GetString("underlyings-file")
		if err != nil {
			log.Fatalf("error getting underlyings-file: %v", err)
		}

		downloadsDir, err := cmd.Flags().GetString("downloads-dir")
		if err != nil {
			log.Fatalf("error getting downloads-dir: %v", err)
		}

		skipEnrichment, err := cmd.Flags().GetBool("skip-enrichment")
		if err != nil {
			log.Fatalf("error getting skip-enrichment: %v", err)
		}

		wait, err := cmd.Flags().GetBool("wait")
		if err != nil {
			log.Fatalf("error getting wait: %v", err)
		}

		if err := Run(RunArgs{
			GoEnv:           goEnv,
			UnderlyingsFile: underlyingsFile,
			DownloadsDir:    downloadsDir,
			SkipEnrichment:  skipEnrichment,
			Wait:            wait,
		}); err != nil {
			log.Fatalf("Error: %v", err)
		}
	},
}

// marketOpenTime is when the venue starts serving live chain data.
var marketOpenTime = struct{ hour, minute int }{9, 15}

func waitUntilRunTime(now time.Time) {
	nowIST := now.In(utils.IST)
	runAt := time.Date(nowIST.Year(), nowIST.Month(), nowIST.Day(), marketOpenTime.hour, marketOpenTime.minute, 0, 0, utils.IST)

	if nowIST.Before(runAt) {
		log.Infof("waiting until %s to run", runAt.Format("15:04 MST"))
		time.Sleep(runAt.Sub(nowIST))
	}
}

func Run(args RunArgs) error {
	ctx := context.Background()

	if err := utils.InitEnvironmentVariables(args.GoEnv); err != nil {
		return err
	}

	mongoURL := os.Getenv("MONGO_URL")
	if mongoURL == "" {
		log.Fatalf("MONGO_URL not found")
	}

	underlyings := models.DefaultUnderlyings()
	if args.UnderlyingsFile != "" {
		var err error
		if underlyings, err = models.LoadUnderlyings(args.UnderlyingsFile); err != nil {
			return err
		}
	}

	if args.Wait {
		waitUntilRunTime(time.Now())
	}

	now := time.Now().UTC()

	cache := services.NewInstrumentCache(args.DownloadsDir)

	instruments, err := cache.Fetch(ctx, now)
	if err != nil {
		log.Fatalf("failed to load bulk instrument dataset: %v", err)
	}

	index := services.NewReferenceIndex(instruments)
	log.Infof("reference index ready with %d symbols", index.Len())

	htmlClient := utils.NewClient(15*time.Second, 4, utils.HTMLHeaders())
	apiClient := utils.NewClient(10*time.Second, 8, utils.APIHeaders())

	var resolver *services.SearchResolver
	var quotes *services.QuoteFetcher

	if !args.SkipEnrichment {
		resolver = services.NewSearchResolver(apiClient)
		quotes = services.NewQuoteFetcher(apiClient)
	}

	mongoStore, err := store.Connect(ctx, mongoURL)
	if err != nil {
		return err
	}

	defer func() {
		if err := mongoStore.Close(ctx); err != nil {
			log.Errorf("failed to close mongo connection: %v", err)
		}
	}()

	orchestrator := services.NewOrchestrator(
		underlyings,
		services.NewScraper(htmlClient),
		services.NewLiveIndexService(apiClient),
		services.NewSymbolBuilder(index, resolver, quotes),
		mongoStore,
	)

	doc, err := orchestrator.Run(ctx, now)
	if err != nil {
		return err
	}

	printSummary(doc)

	return nil
}

func printSummary(doc *models.SnapshotDocument) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Underlying", "Expiries", "Symbols", "Resolved"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	names := make([]string, 0, len(doc.Data))
	for name := range doc.Data {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		expiries := doc.Data[name]

		symbols, resolved := 0, 0
		for _, bucket := range expiries {
			symbols += len(bucket.Symbols)

			for _, record := range bucket.Symbols {
				if record.InstrumentKey != nil {
					resolved++
				}
			}
		}

		table.Append([]string{
			name,
			strconv.Itoa(len(expiries)),
			strconv.Itoa(symbols),
			strconv.Itoa(resolved),
		})
	}

	table.Render()
}

func main() {
	runCmd.PersistentFlags().String("go-env", "development", "The go environment to run the command in")
	runCmd.PersistentFlags().String("underlyings-file", "", "Optional YAML file replacing the built-in underlying table")
	runCmd.PersistentFlags().String("downloads-dir", "downloads", "Directory for the cached bulk instrument dataset")
	runCmd.PersistentFlags().Bool("skip-enrichment", false, "Skip per-symbol search resolution and quote enrichment")
	runCmd.PersistentFlags().Bool("wait", false, "Wait until market open (09:15 IST) before running")

	if err := runCmd.Execute(); err != nil {
		log.Fatalf("error executing command: %v", err)
	}
}
