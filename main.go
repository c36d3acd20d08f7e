// Package main provides the entry point for the Color Detector application.
package main

import (
	"log"
	"os"

	"color-detector/internal/app"
	"color-detector/internal/palette"
	"color-detector/internal/version"
	"color-detector/ui/mainwindow"
	"color-detector/ui/prefs"

	fyneapp "fyne.io/fyne/v2/app"
)

const appID = "io.github.colordetector"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting Color Detector %s", version.String())

	appPrefs := prefs.Load()
	cfg := app.LoadConfig(appPrefs, nil)
	table := palette.Load(cfg.ColorsPath, nil)
	log.Printf("Palette: %d reference colors", table.Len())

	state := app.NewState(table, nil)

	fyneApp := fyneapp.NewWithID(appID)
	fyneApp.Settings().SetTheme(&app.ColorDetectorTheme{})

	win := mainwindow.New(fyneApp, state, mainwindow.Options{
		Config:         cfg,
		Prefs:          appPrefs,
		ChooseOnUpload: true,
	})

	// An image path on the command line opens the upload screen with it.
	if len(os.Args) > 1 {
		if err := win.OpenImage(os.Args[1]); err != nil {
			log.Printf("Failed to load image %s: %v", os.Args[1], err)
		}
	}

	win.ShowAndRun()
}
