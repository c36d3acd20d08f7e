// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"log"

	"color-detector/internal/app"
	"color-detector/internal/version"
	"color-detector/ui/prefs"
	"color-detector/ui/views"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// Options configures a MainWindow.
type Options struct {
	Config         app.Config
	Prefs          *prefs.Prefs       // nil disables saving the window size
	OpenCamera     views.CameraOpener // nil uses views.OpenDevice
	Logger         *log.Logger
	ChooseOnUpload bool // Open the file dialog as soon as the upload screen shows
}

// MainWindow is the primary application window. It owns the screen views
// and swaps them as the application state moves between screens.
type MainWindow struct {
	fyne.Window
	app   fyne.App
	state *app.State
	opts  Options

	statusBar *widget.Label
	body      *fyne.Container

	dashboard *views.Dashboard
	camera    *views.CameraView
	upload    *views.UploadView
}

// New creates a new main window showing the dashboard.
func New(fyneApp fyne.App, state *app.State, opts Options) *MainWindow {
	if opts.OpenCamera == nil {
		opts.OpenCamera = views.OpenDevice
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	mw := &MainWindow{
		Window: fyneApp.NewWindow("Color Detector"),
		app:    fyneApp,
		state:  state,
		opts:   opts,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()

	return mw
}

// setupUI creates the main layout: current screen above a status bar.
func (mw *MainWindow) setupUI() {
	mw.statusBar = widget.NewLabel(fmt.Sprintf("%d reference colors loaded", mw.state.Table().Len()))
	mw.dashboard = views.NewDashboard(mw.onOpenCamera, mw.onOpenUpload)
	mw.body = container.NewStack(mw.dashboard.Content())

	mw.SetContent(container.NewBorder(nil, mw.statusBar, nil, nil, mw.body))
	mw.Resize(fyne.NewSize(mw.opts.Config.WindowWidth, mw.opts.Config.WindowHeight))

	mw.SetCloseIntercept(func() {
		mw.stopCamera()
		mw.SavePreferences()
		mw.Close()
	})
}

func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image...", mw.onOpenImage),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Dashboard", mw.onBack),
		fyne.NewMenuItem("Camera", mw.onOpenCamera),
		fyne.NewMenuItem("Upload", mw.onOpenUpload),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Zoom In", mw.onZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.onZoomOut),
		fyne.NewMenuItem("Fit to Window", mw.onFitToWindow),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, viewMenu, helpMenu))
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventScreenChanged, func(data interface{}) {
		if screen, ok := data.(app.Screen); ok {
			mw.showScreen(screen)
		}
	})

	mw.state.On(app.EventImageLoaded, func(data interface{}) {
		mw.updateStatus("Image loaded")
	})
}

// showScreen builds the view for screen and makes it the window content.
func (mw *MainWindow) showScreen(screen app.Screen) {
	mw.stopCamera()
	mw.upload = nil

	var content fyne.CanvasObject
	switch screen {
	case app.ScreenCamera:
		mw.camera = views.NewCameraView(mw.state, mw.opts.Config, mw.opts.OpenCamera, mw.opts.Logger, mw.onBack)
		content = mw.camera.Content()
		if mw.camera.Available() {
			mw.updateStatus("Camera running")
		} else {
			mw.updateStatus("Camera unavailable")
		}
	case app.ScreenUpload:
		mw.upload = views.NewUploadView(mw.state, mw.Window, mw.opts.Logger, mw.onBack)
		mw.upload.Canvas().OnZoomChange(func(zoom float64) {
			mw.updateStatus(fmt.Sprintf("Zoom: %.0f%%", zoom*100))
		})
		content = mw.upload.Content()
		mw.updateStatus("Choose an image")
		if mw.opts.ChooseOnUpload {
			mw.upload.ShowChooser()
		}
	default:
		content = mw.dashboard.Content()
		mw.updateStatus(fmt.Sprintf("%d reference colors loaded", mw.state.Table().Len()))
	}

	mw.body.Objects = []fyne.CanvasObject{content}
	mw.body.Refresh()
}

func (mw *MainWindow) stopCamera() {
	if mw.camera == nil {
		return
	}
	if err := mw.camera.Stop(); err != nil {
		mw.opts.Logger.Printf("Camera: %v", err)
	}
	mw.camera = nil
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// Status returns the status bar text.
func (mw *MainWindow) Status() string {
	return mw.statusBar.Text
}

// Dashboard returns the dashboard view.
func (mw *MainWindow) Dashboard() *views.Dashboard {
	return mw.dashboard
}

// CameraView returns the active camera view, or nil.
func (mw *MainWindow) CameraView() *views.CameraView {
	return mw.camera
}

// UploadView returns the active upload view, or nil.
func (mw *MainWindow) UploadView() *views.UploadView {
	return mw.upload
}

// SavePreferences stores the window size.
func (mw *MainWindow) SavePreferences() {
	if mw.opts.Prefs == nil {
		return
	}
	size := mw.Canvas().Size()
	if size.Width > 0 && size.Height > 0 {
		mw.opts.Prefs.SetFloat(app.PrefWindowWidth, float64(size.Width))
		mw.opts.Prefs.SetFloat(app.PrefWindowHeight, float64(size.Height))
	}
	if err := mw.opts.Prefs.SaveIfChanged(); err != nil {
		mw.opts.Logger.Printf("Preferences: save failed: %v", err)
	}
}

func (mw *MainWindow) onOpenCamera() {
	if mw.state.Screen() == app.ScreenCamera {
		return
	}
	mw.goDashboard()
	if err := mw.state.OpenCamera(); err != nil {
		mw.opts.Logger.Printf("Screen: %v", err)
	}
}

func (mw *MainWindow) onOpenUpload() {
	if mw.state.Screen() == app.ScreenUpload {
		return
	}
	mw.goDashboard()
	if err := mw.state.OpenUpload(); err != nil {
		mw.opts.Logger.Printf("Screen: %v", err)
	}
}

func (mw *MainWindow) onOpenImage() {
	if mw.state.Screen() == app.ScreenUpload && mw.upload != nil {
		mw.upload.ShowChooser()
		return
	}
	mw.onOpenUpload()
	if mw.upload != nil && !mw.opts.ChooseOnUpload {
		mw.upload.ShowChooser()
	}
}

// OpenImage switches to the upload screen and loads the image at path
// without showing the file chooser.
func (mw *MainWindow) OpenImage(path string) error {
	choose := mw.opts.ChooseOnUpload
	mw.opts.ChooseOnUpload = false
	mw.onOpenUpload()
	mw.opts.ChooseOnUpload = choose

	if mw.upload == nil {
		return fmt.Errorf("failed to open upload screen from %s", mw.state.Screen())
	}
	return mw.upload.LoadPath(path)
}

func (mw *MainWindow) onBack() {
	mw.goDashboard()
}

// goDashboard returns to the dashboard if another screen is showing. The
// camera is released first so no frame lands after the transition.
func (mw *MainWindow) goDashboard() {
	if mw.state.Screen() == app.ScreenDashboard {
		return
	}
	mw.stopCamera()
	if err := mw.state.BackToDashboard(); err != nil {
		mw.opts.Logger.Printf("Screen: %v", err)
	}
}

func (mw *MainWindow) onZoomIn() {
	if mw.upload != nil {
		mw.upload.Canvas().ZoomIn()
	}
}

func (mw *MainWindow) onZoomOut() {
	if mw.upload != nil {
		mw.upload.Canvas().ZoomOut()
	}
}

func (mw *MainWindow) onFitToWindow() {
	if mw.upload != nil {
		mw.upload.Canvas().SetFitToWindow(true)
	}
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About Color Detector",
		fmt.Sprintf("Color Detector v%s\n\n"+
			"Names the color under the camera or at a point in an image.\n\n"+
			"Reference colors: %d\n\n"+
			"%s",
			version.Version, mw.state.Table().Len(), version.String()),
		mw.Window)
}
