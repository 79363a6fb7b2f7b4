package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"pixview/internal/ui/input/types"
)

// OpenMode asks for the path of an image to open
type OpenMode struct {
	TextInputMode
}

func NewOpenMode(ti *textinput.Model) *OpenMode {
	return &OpenMode{
		TextInputMode: NewTextInputMode(types.ModeOpen, "open", "Open: ", ti),
	}
}
