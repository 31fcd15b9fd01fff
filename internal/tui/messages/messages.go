package messages

// Mode is what the note screen is currently doing with keyboard input.
type Mode int

const (
	ModeList Mode = iota
	ModeSearch
	ModeForm
	ModeConfirm
	ModeHelp
)

// FormSubmitMsg is sent when the user saves the note form.
type FormSubmitMsg struct {
	Title   string
	Content string
}

// FormCancelMsg is sent when the user leaves the form without saving. The
// field values travel along so a new-note draft can be kept.
type FormCancelMsg struct {
	Title   string
	Content string
}

// ConfirmResultMsg carries the answer of the remove dialog.
type ConfirmResultMsg struct {
	Index     int
	Confirmed bool
}
