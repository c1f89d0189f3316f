package domain

// Bounds for numeric settings. Writes outside these ranges are rejected and
// leave the prior value unchanged.
const (
	MinQueueSize = 10
	MaxQueueSize = 1000

	MinCooldownSeconds = 10
	MaxCooldownSeconds = 3600

	MinWorkHour = 0
	MaxWorkHour = 23
)

// Settings is the single process-wide runtime configuration consulted by
// every other component.
type Settings struct {
	AutoGreet        bool `json:"auto_greet"`
	NotifyOperators  bool `json:"notify_operators"`
	CaptchaEnabled   bool `json:"captcha_enabled"`
	WorkHoursEnabled bool `json:"work_hours_enabled"`
	WorkHoursStart   int  `json:"work_hours_start"`
	WorkHoursEnd     int  `json:"work_hours_end"`
	MaxQueueSize     int  `json:"max_queue_size"`
	CooldownSeconds  int  `json:"cooldown_seconds"`
}

// DefaultSettings seeds every setting. Restoring a snapshot unmarshals over
// this value, so keys absent from older documents keep their defaults.
func DefaultSettings() Settings {
	return Settings{
		AutoGreet:        true,
		NotifyOperators:  true,
		CaptchaEnabled:   true,
		WorkHoursEnabled: false,
		WorkHoursStart:   9,
		WorkHoursEnd:     21,
		MaxQueueSize:     100,
		CooldownSeconds:  60,
	}
}

// InsideWorkHours reports whether the given hour falls in the configured
// window. The end bound is exclusive. Always true when the window is
// disabled.
func (s Settings) InsideWorkHours(hour int) bool {
	if !s.WorkHoursEnabled {
		return true
	}
	return s.WorkHoursStart <= hour && hour < s.WorkHoursEnd
}
