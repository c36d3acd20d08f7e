// Package views provides the dashboard, camera, and upload screens.
package views

import (
	"color-detector/internal/app"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const (
	appTitle        = "Color Detector"
	dashboardButton = 160
)

// Dashboard is the start screen with the Camera and Upload buttons.
type Dashboard struct {
	CameraButton *widget.Button
	UploadButton *widget.Button

	content fyne.CanvasObject
}

// NewDashboard builds the start screen. The callbacks run when a button is released.
func NewDashboard(onCamera, onUpload func()) *Dashboard {
	d := &Dashboard{
		CameraButton: newDashboardButton("Camera", theme.MediaVideoIcon(), onCamera),
		UploadButton: newDashboardButton("Upload", theme.FileImageIcon(), onUpload),
	}

	title := canvas.NewText(appTitle, app.PanelColor)
	title.TextSize = theme.TextHeadingSize()
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.Alignment = fyne.TextAlignCenter

	panel := canvas.NewRectangle(app.PanelColor)
	panel.CornerRadius = 25

	buttons := container.NewGridWrap(fyne.NewSquareSize(dashboardButton), d.CameraButton, d.UploadButton)

	d.content = container.NewStack(
		canvas.NewRectangle(app.DashboardBackground),
		container.NewBorder(
			container.NewPadded(title), nil, nil, nil,
			container.NewPadded(container.NewStack(panel, container.NewCenter(buttons))),
		),
	)
	return d
}

// Content returns the screen's root object.
func (d *Dashboard) Content() fyne.CanvasObject {
	return d.content
}

func newDashboardButton(label string, icon fyne.Resource, onTap func()) *widget.Button {
	btn := widget.NewButtonWithIcon(label, icon, onTap)
	btn.Importance = widget.HighImportance
	btn.IconPlacement = widget.ButtonIconLeadingText
	return btn
}
