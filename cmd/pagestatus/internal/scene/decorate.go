package scene

import (
	"fmt"

	"github.com/go-drift/pagestatus/pkg/status"
	"github.com/go-drift/pagestatus/pkg/view"
)

// Decorations are looked up by the names used in scenario files.
func (s *Scene) decoration(name string) (status.Decoration, error) {
	switch name {
	case "log":
		return status.HookFuncs{
			ShowParams: func(v view.View, params status.Params) {
				s.logger.Info("content shown", "view", view.KindOf(v), "params", len(params))
			},
			Hide: func(v view.View) {
				s.logger.Info("content hidden", "view", view.KindOf(v))
			},
		}, nil
	case "message":
		return status.HookFuncs{ShowParams: showMessage}, nil
	}
	return nil, fmt.Errorf("unknown decoration %q", name)
}

// showMessage puts params["message"] into the first text of the content.
func showMessage(v view.View, params status.Params) {
	msg, ok := params.String("message")
	if !ok {
		return
	}
	view.Walk(v, func(v view.View) bool {
		if t, ok := v.(*view.Text); ok {
			t.SetText(msg)
			return false
		}
		return true
	})
}
