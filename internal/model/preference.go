package model

// Theme is the colour scheme a session asked for
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// ParseTheme accepts light, dark or system.
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(s); t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return t, nil
	}
	return "", ValidationError{Field: "theme", Reason: "must be light, dark or system"}
}
