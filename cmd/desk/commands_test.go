package desk

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Flissel/Vibemind-sub001/ipc/common"
)

func TestFormatMouse(t *testing.T) {
	out := formatMouse(common.MousePosition{X: 101.5, Y: -3.25, Confidence: 0.875})
	assert.Equal(t, "x=101.5, y=-3.2, confidence=0.88", out)
}

func TestFormatElement(t *testing.T) {
	out := formatElement(&common.DesktopElement{
		ID:        7,
		Text:      "OK",
		AppName:   "notepad.exe",
		X:         10.5,
		Y:         20,
		Width:     80,
		Height:    24,
		Type:      common.ElemButton,
		Clickable: true,
	})
	assert.Equal(t, `id=7 type=button text="OK" app=notepad.exe at=(10.5,20.0) size=80.0x24.0 clickable=true`, out)
}
