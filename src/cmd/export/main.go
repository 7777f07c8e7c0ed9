package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/quantpulse/option-snapshot/src/models"
	"github.com/quantpulse/option-snapshot/src/store"
	"github.com/quantpulse/option-snapshot/src/utils"
)

type RunArgs struct {
	GoEnv  string
	OutDir string
}

var runCmd = &cobra.Command{
	Use:   "export",
	Short: "Export today's snapshot schema sample and symbol CSV",
	Run: func(cmd *cobra.Command, args []string) {
		goEnv, err := cmd.Flags().GetString("go-env")
		if err != nil {
			log.Fatalf("error getting go-env: %v", err)
		}

		outDir, err := cmd.Flags().GetString("out-dir")
		if err != nil {
			log.Fatalf("error getting out-dir: %v", err)
		}

		if err := Run(RunArgs{GoEnv: goEnv, OutDir: outDir}); err != nil {
			log.Fatalf("Error: %v", err)
		}
	},
}

// schemaExport keeps the document structure with one sample symbol per
// underlying's first expiry, for eyeballing the persisted shape.
type schemaExport struct {
	TradeDate string                                    `json:"trade_date"`
	Data      map[string]map[string]models.ExpiryBucket `json:"data"`
	UpdatedAt string                                    `json:"updated_at"`
}

// symbolCSVRow flattens one record with its position in the document.
type symbolCSVRow struct {
	Underlying string `csv:"underlying"`
	ExpiryKey  string `csv:"expiry_key"`
	models.OptionSymbolRecord
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

	mongoStore, err := store.Connect(ctx, mongoURL)
	if err != nil {
		return err
	}

	defer func() {
		if err := mongoStore.Close(ctx); err != nil {
			log.Errorf("failed to close mongo connection: %v", err)
		}
	}()

	today := utils.TradeDate(time.Now().In(utils.IST))

	doc, err := mongoStore.FindByTradeDate(ctx, today)
	if err != nil {
		return err
	}

	if doc == nil {
		return fmt.Errorf("no document found for %s", today)
	}

	if err := os.MkdirAll(args.OutDir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", args.OutDir, err)
	}

	dateCompact := strings.ReplaceAll(today, "-", "")

	schemaPath := filepath.Join(args.OutDir, fmt.Sprintf("data_%s.json", dateCompact))
	if err := writeSchemaSample(doc, schemaPath); err != nil {
		return err
	}

	csvPath := filepath.Join(args.OutDir, fmt.Sprintf("symbols_%s.csv", dateCompact))
	if err := writeSymbolCSV(doc, csvPath); err != nil {
		return err
	}

	return nil
}

func writeSchemaSample(doc *models.SnapshotDocument, outPath string) error {
	export := schemaExport{
		TradeDate: doc.TradeDate,
		Data:      make(map[string]map[string]models.ExpiryBucket),
		UpdatedAt: doc.UpdatedAt.Format(time.RFC3339),
	}

	for underlying, expiries := range doc.Data {
		keys := make([]string, 0, len(expiries))
		for key := range expiries {
			keys = append(keys, key)
		}

		if len(keys) == 0 {
			continue
		}

		sort.Strings(keys)
		first := keys[0]

		bucket := expiries[first]
		if len(bucket.Symbols) > 1 {
			bucket.Symbols = bucket.Symbols[:1]
		}

		export.Data[underlying] = map[string]models.ExpiryBucket{first: bucket}
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("writeSchemaSample: failed to marshal: %w", err)
	}

	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("writeSchemaSample: failed to write %s: %w", outPath, err)
	}

	log.Infof("exported schema sample to %s", outPath)

	return nil
}

func writeSymbolCSV(doc *models.SnapshotDocument, outPath string) error {
	var rows []symbolCSVRow

	underlyings := make([]string, 0, len(doc.Data))
	for name := range doc.Data {
		underlyings = append(underlyings, name)
	}

	sort.Strings(underlyings)

	for _, underlying := range underlyings {
		expiries := doc.Data[underlying]

		keys := make([]string, 0, len(expiries))
		for key := range expiries {
			keys = append(keys, key)
		}

		sort.Strings(keys)

		for _, key := range keys {
			for _, record := range expiries[key].Symbols {
				rows = append(rows, symbolCSVRow{
					Underlying:         underlying,
					ExpiryKey:          key,
					OptionSymbolRecord: record,
				})
			}
		}
	}

	file, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("writeSymbolCSV: failed to create %s: %w", outPath, err)
	}

	defer file.Close()

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("writeSymbolCSV: error marshalling file: %v", err)
	}

	log.Infof("Exported %d symbols to %s", len(rows), outPath)

	return nil
}

func main() {
	runCmd.PersistentFlags().String("go-env", "development", "The go environment to run the command in")
	runCmd.PersistentFlags().String("out-dir", ".", "Directory to write export files to")

	if err := runCmd.Execute(); err != nil {
		log.Fatalf("error executing command: %v", err)
	}
}
