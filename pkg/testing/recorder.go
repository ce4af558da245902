package testing

import (
	"github.com/go-drift/pagestatus/pkg/status"
	"github.com/go-drift/pagestatus/pkg/view"
)

// RecordingStatus is a DisplayStatus that records the calls it receives.
type RecordingStatus struct {
	Name       string
	Shows      int
	Hides      int
	Shown      bool
	LastParams status.Params
	// Err, when set, is returned from ShowView.
	Err error
	// Log, when set, receives "show:<name>" and "hide:<name>" entries.
	Log *[]string
}

// NewRecordingStatus returns a recording status named name.
func NewRecordingStatus(name string) *RecordingStatus {
	return &RecordingStatus{Name: name}
}

// ShowView records a show.
func (s *RecordingStatus) ShowView(params status.Params) error {
	if s.Err != nil {
		return s.Err
	}
	s.Shows++
	s.Shown = true
	s.LastParams = params
	if s.Log != nil {
		*s.Log = append(*s.Log, "show:"+s.Name)
	}
	return nil
}

// HideView records a hide. Hiding an already hidden status is recorded
// in Hides but leaves Shown false.
func (s *RecordingStatus) HideView() {
	s.Hides++
	s.Shown = false
	if s.Log != nil {
		*s.Log = append(*s.Log, "hide:"+s.Name)
	}
}

// Factory returns a status.Factory that always returns s.
func (s *RecordingStatus) Factory() status.Factory {
	return func() status.DisplayStatus { return s }
}

// RecordingHandler is a status.Handler creating a text view, that records
// inflations and hook calls.
type RecordingHandler struct {
	Text       string
	Inflates   int
	Shows      int
	Hides      int
	LastParams status.Params
	LastView   view.View
}

// NewRecordingHandler returns a handler whose content shows text.
func NewRecordingHandler(text string) *RecordingHandler {
	return &RecordingHandler{Text: text}
}

// Inflate creates the content.
func (h *RecordingHandler) Inflate(ctx status.InflateContext, parent view.Group) (view.View, error) {
	h.Inflates++
	return view.NewText(parent.Context(), h.Text), nil
}

// OnViewShowParams records a show.
func (h *RecordingHandler) OnViewShowParams(v view.View, params status.Params) {
	h.Shows++
	h.LastView = v
	h.LastParams = params
}

// OnViewHide records a hide.
func (h *RecordingHandler) OnViewHide(v view.View) {
	h.Hides++
	h.LastView = v
}

// Status returns a factory for a replacement status backed by h.
func (h *RecordingHandler) Status() status.Factory {
	return func() status.DisplayStatus { return status.NewReplacementStatus(h) }
}
