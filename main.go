package main

import (
	"errors"
	"fmt"
	"os"

	"hemnet-scraper/config"
	"hemnet-scraper/models"
	"hemnet-scraper/scraper/hemnet"
	"hemnet-scraper/services"
	"hemnet-scraper/storage"
	"hemnet-scraper/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()

	variant, err := models.VariantByName(cfg.Mode)
	if err != nil {
		logger.Error("Invalid configuration: %v", err)
		os.Exit(1)
	}

	outputPath := cfg.OutputPath
	if outputPath == "" {
		outputPath = variant.OutputPath
	}

	logger.Info("=== Hemnet Scraper starting ===")
	logger.Info("Config — mode: %s | max pages: %d | delay: %dms | output: %s",
		variant.Name, cfg.MaxPages, cfg.PageDelayMs, outputPath)

	scraper := hemnet.New(cfg, variant, logger)
	result := scraper.Scrape()

	logger.Info("Run finished — %d listings collected, %d skipped across %d pages",
		len(result.Listings), result.Skipped, result.Pages)

	var writer storage.ListingWriter = storage.NewCSVWriter(outputPath)
	if err := writer.Write(variant, result.Listings); err != nil {
		if errors.Is(err, storage.ErrNoListings) {
			logger.Warn("No listings to save — %s was not written", outputPath)
			os.Exit(1)
		}
		logger.Error("CSV write failed: %v", err)
		os.Exit(1)
	}
	logger.Info("Listings saved to %s", outputPath)

	summary := services.NewSummaryService(logger)
	summary.Print(summary.Generate(result.Listings))

	fmt.Printf("  Done. %d listings → %s\n\n", len(result.Listings), outputPath)
}
