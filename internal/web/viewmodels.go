package web

import "github.com/bbernstein/chargemap/backend-go/internal/view"

const refreshSeconds = 1

type PageVM struct {
	ViewID         string
	Title          string
	Loading        bool
	LoadingText    string
	RefreshSeconds int
	Map            *view.MapCanvas
}

func BuildPageVM(id string, page view.Page) PageVM {
	return PageVM{
		ViewID:         id,
		Title:          page.Title,
		Loading:        page.Loading,
		LoadingText:    page.LoadingText,
		RefreshSeconds: refreshSeconds,
		Map:            page.Map,
	}
}
