package main

import (
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/component"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"git.sr.ht/~gioverse/wallpaper/debug"
	"git.sr.ht/~gioverse/wallpaper/ninepatch"
	"git.sr.ht/~gioverse/wallpaper/wallpaper"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

var (
	// DoneIcon is shown once the wallpaper is set.
	DoneIcon = mustIcon(icons.ActionDone)
	// ErrorIcon is shown when the wallpaper could not be set.
	ErrorIcon = mustIcon(icons.AlertErrorOutline)
)

func mustIcon(data []byte) *widget.Icon {
	icon, err := widget.NewIcon(data)
	if err != nil {
		panic(err)
	}
	return icon
}

// progress is the UI's progress indicator. It is only touched from the
// event loop.
type progress struct {
	visible    bool
	message    string
	invalidate func()
}

// Show implements wallpaper.Progress.
func (p *progress) Show(message string) {
	p.visible, p.message = true, message
	p.invalidate()
}

// Dismiss implements wallpaper.Progress.
func (p *progress) Dismiss() {
	p.visible = false
	p.invalidate()
}

// UI manages the state for the entire application's UI.
type UI struct {
	Theme      *material.Theme
	Background color.NRGBA
	// Frame surrounds the status panel.
	Frame ninepatch.Surface
	// Progress is the indicator driven by the task.
	Progress *progress
	// Status describes the outcome once the task is done.
	Status string
	// Result of the task, once done.
	Result *wallpaper.Result
	// Debug outlines the content area of the frame.
	Debug bool
}

// Layout the application UI.
func (ui *UI) Layout(gtx C) D {
	paint.Fill(gtx.Ops, ui.Background)
	dims := layout.Center.Layout(gtx, func(gtx C) D {
		gtx.Constraints.Min = image.Point{}
		return ui.Frame.Layout(gtx, func(gtx C) D {
			return debug.Outline(ui.Debug, gtx, func(gtx C) D {
				return layout.UniformInset(unit.Dp(12)).Layout(gtx, ui.layoutStatus)
			})
		})
	})
	if ui.Progress.visible {
		// The indicator blocks the UI underneath and cannot be dismissed.
		component.Rect{
			Size:  gtx.Constraints.Max,
			Color: color.NRGBA{A: 160},
		}.Layout(gtx)
		layout.Center.Layout(gtx, ui.layoutProgress)
	}
	return dims
}

func (ui *UI) layoutStatus(gtx C) D {
	return layout.Flex{
		Axis:      layout.Horizontal,
		Alignment: layout.Middle,
	}.Layout(
		gtx,
		layout.Rigid(func(gtx C) D {
			if ui.Result == nil {
				return D{}
			}
			icon, clr := DoneIcon, ui.Theme.Palette.ContrastBg
			if !ui.Result.OK() {
				icon, clr = ErrorIcon, color.NRGBA{R: 200, A: 255}
			}
			gtx.Constraints.Max = image.Pt(gtx.Dp(unit.Dp(24)), gtx.Dp(unit.Dp(24)))
			return icon.Layout(gtx, clr)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
		layout.Rigid(material.Body1(ui.Theme, ui.Status).Layout),
	)
}

func (ui *UI) layoutProgress(gtx C) D {
	return layout.Flex{
		Axis:      layout.Vertical,
		Alignment: layout.Middle,
	}.Layout(
		gtx,
		layout.Rigid(material.Loader(ui.Theme).Layout),
		layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
		layout.Rigid(func(gtx C) D {
			label := material.Body1(ui.Theme, ui.Progress.message)
			label.Color = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			return label.Layout(gtx)
		}),
	)
}
