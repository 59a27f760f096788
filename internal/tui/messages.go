package tui

import "coteach/internal/service"

type submitDoneMsg struct {
	reply string
	err   error
}

type dashboardLoadedMsg struct {
	dash service.Dashboard
	page service.PageResult
	err  error
}

type exportDoneMsg struct {
	path string
	rows int
	err  error
}

type resetDoneMsg struct {
	err error
}
