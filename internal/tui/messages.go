package tui

type answerMsg struct {
	question string
	reply    string
	warn     error
}

type refreshDoneMsg struct {
	count int
	err   error
}
