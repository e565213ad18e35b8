// Package main provides the entry point for the Fourier Paint application.
package main

import (
	"log"
	"os"

	"fourier-paint/internal/app"
	"fourier-paint/internal/version"
	"fourier-paint/ui/mainwindow"
	"fourier-paint/ui/prefs"

	fyneapp "fyne.io/fyne/v2/app"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting Fourier Paint v%s", version.Version)

	fyneApp := fyneapp.NewWithID("io.fourierpaint.app")
	fyneApp.Settings().SetTheme(&app.FourierPaintTheme{})

	appState := app.NewState()
	appPrefs := prefs.Load()

	win := mainwindow.New(fyneApp, appState, appPrefs)

	// An image path on the command line is loaded straight away.
	if len(os.Args) > 1 {
		imagePath := os.Args[1]
		if err := appState.LoadImage(imagePath); err != nil {
			log.Printf("Failed to load image %s: %v", imagePath, err)
		}
	}

	win.ShowAndRun()
}
