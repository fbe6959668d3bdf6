package menu

// Button is a single inline keyboard button. Exactly one of Action or URL is set.
type Button struct {
	Label  string
	Action Action
	URL    string
}

// IsLink reports whether the button opens an external URL.
func (b Button) IsLink() bool {
	return b.URL != ""
}

// Screen is a rendered message: Markdown text plus keyboard rows.
type Screen struct {
	ID   ScreenID
	Text string
	Rows [][]Button
}

// Buttons returns all buttons in display order.
func (s Screen) Buttons() []Button {
	var out []Button
	for _, row := range s.Rows {
		out = append(out, row...)
	}
	return out
}

func navigate(label string, a Action) Button {
	return Button{Label: label, Action: a}
}

func link(label, url string) Button {
	return Button{Label: label, URL: url}
}

// column lays out buttons one per row.
func column(buttons ...Button) [][]Button {
	rows := make([][]Button, 0, len(buttons))
	for _, b := range buttons {
		rows = append(rows, []Button{b})
	}
	return rows
}
