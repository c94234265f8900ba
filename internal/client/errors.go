package client

import "errors"

var (
	ErrNoMaterials     = errors.New("no materials selected")
	ErrBusy            = errors.New("generation already in progress")
	ErrTransient       = errors.New("generation temporarily failed")
	ErrUnknownMaterial = errors.New("unknown material")
	ErrNothingToSave   = errors.New("no activity to save")
)

// Messages shown to the user.
const (
	MsgNoMaterials = "Please select at least one material to start your lab experiment! 🧪"
	MsgTryAgain    = "Oops! Our idea brain needs a moment. Try again! 🤖"
)
