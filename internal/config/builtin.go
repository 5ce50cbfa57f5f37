package config

// BuiltinLaunchers returns the launch commands known without configuration.
// Keys are the application names passed to --app; they double as the
// process names searched for the application's windows.
func BuiltinLaunchers() map[string]string {
	return map[string]string{
		"firefox":        "firefox",
		"chrome":         "google-chrome",
		"google-chrome":  "google-chrome",
		"chromium":       "chromium",
		"code":           "code --new-window",
		"thunderbird":    "thunderbird",
		"nautilus":       "nautilus --new-window",
		"gnome-terminal": "gnome-terminal",
		"xterm":          "xterm",
	}
}

// BuiltinLayouts returns the built-in layout library.
//
// These are always available to users without needing to define them in YAML.
// Users can define additional layouts, or replace these by name.
func BuiltinLayouts() map[string]Layout {
	return map[string]Layout{
		"browse-and-code": {
			Description: "Browser on the left half, editor on the right half",
			Windows: []Placement{
				{App: "firefox", Position: "left"},
				{App: "code", Position: "right"},
			},
		},
		"mail-corner": {
			Description: "Mail client in the top-right quadrant, terminal below it",
			Windows: []Placement{
				{App: "thunderbird", Position: "top right"},
				{App: "gnome-terminal", Position: "bottom right"},
			},
		},
	}
}
