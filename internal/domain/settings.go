package domain

// AppSettings are the user-adjustable options of the app.
type AppSettings struct {
	APIKey        string `json:"apiKey"`
	DarkMode      bool   `json:"darkMode"`
	Notifications bool   `json:"notifications"`
	WeekStartsOn  int    `json:"weekStartsOn"` // 0 = Sunday, 1 = Monday
}

// DefaultSettings is what a fresh install starts with.
func DefaultSettings() AppSettings {
	return AppSettings{
		APIKey:        "",
		DarkMode:      false,
		Notifications: true,
		WeekStartsOn:  0,
	}
}

// SettingsUpdate is a partial settings change.
type SettingsUpdate struct {
	APIKey        *string `json:"apiKey,omitempty"`
	DarkMode      *bool   `json:"darkMode,omitempty"`
	Notifications *bool   `json:"notifications,omitempty"`
	WeekStartsOn  *int    `json:"weekStartsOn,omitempty"`
}

func (u SettingsUpdate) Apply(s AppSettings) AppSettings {
	if u.APIKey != nil {
		s.APIKey = *u.APIKey
	}
	if u.DarkMode != nil {
		s.DarkMode = *u.DarkMode
	}
	if u.Notifications != nil {
		s.Notifications = *u.Notifications
	}
	if u.WeekStartsOn != nil {
		s.WeekStartsOn = *u.WeekStartsOn
	}
	return s
}
