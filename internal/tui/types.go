package tui

type stage int

const (
	stageBrowse stage = iota
	stageSearch
	stageDetail
	stageAuthor
	stageChat
	stageLegal
)

const heroTitle = "AKRAM _LIBRARY"

const heroTagline = "A comprehensive collection of world literature, preserved in digital form."

const (
	minViewportWidth          = 40
	viewportHorizontalPadding = 4
)

const (
	searchPlaceholder = "Find a work by author or title…"
	chatPlaceholder   = "Ask for recommendations or nearby libraries…"
)
