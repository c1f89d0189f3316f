package core

import (
	"github.com/spec-kit/support-bot/internal/domain"
	apperrors "github.com/spec-kit/support-bot/pkg/util"
)

// Settings returns a copy of the current runtime settings.
func (c *Core) Settings() domain.Settings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings
}

// ToggleAutoGreet flips the welcome-banner toggle and returns the new value.
func (c *Core) ToggleAutoGreet() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settings.AutoGreet = !c.settings.AutoGreet
	return c.settings.AutoGreet
}

// ToggleNotifyOperators flips the fan-out toggle and returns the new value.
func (c *Core) ToggleNotifyOperators() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settings.NotifyOperators = !c.settings.NotifyOperators
	return c.settings.NotifyOperators
}

// ToggleCaptcha flips the challenge stage and returns the new value. Users
// already past the gate are unaffected.
func (c *Core) ToggleCaptcha() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settings.CaptchaEnabled = !c.settings.CaptchaEnabled
	return c.settings.CaptchaEnabled
}

// ToggleWorkHours flips the work-hours window and returns the new value.
func (c *Core) ToggleWorkHours() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settings.WorkHoursEnabled = !c.settings.WorkHoursEnabled
	return c.settings.WorkHoursEnabled
}

// SetMaxQueueSize updates the queue capacity. Out-of-range values are
// rejected and the prior capacity stays. A shrink takes effect on the next
// enqueue; existing entries are not evicted eagerly.
func (c *Core) SetMaxQueueSize(size int) error {
	if size < domain.MinQueueSize || size > domain.MaxQueueSize {
		return apperrors.NewOutOfRange("max_queue_size", domain.MinQueueSize, domain.MaxQueueSize)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settings.MaxQueueSize = size
	return nil
}

// SetCooldownSeconds updates the anti-flood cooldown.
func (c *Core) SetCooldownSeconds(seconds int) error {
	if seconds < domain.MinCooldownSeconds || seconds > domain.MaxCooldownSeconds {
		return apperrors.NewOutOfRange("cooldown_seconds", domain.MinCooldownSeconds, domain.MaxCooldownSeconds)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settings.CooldownSeconds = seconds
	return nil
}

// SetWorkHoursStart updates the opening hour.
func (c *Core) SetWorkHoursStart(hour int) error {
	if hour < domain.MinWorkHour || hour > domain.MaxWorkHour {
		return apperrors.NewOutOfRange("work_hours_start", domain.MinWorkHour, domain.MaxWorkHour)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settings.WorkHoursStart = hour
	return nil
}

// SetWorkHoursEnd updates the closing hour (exclusive).
func (c *Core) SetWorkHoursEnd(hour int) error {
	if hour < domain.MinWorkHour || hour > domain.MaxWorkHour {
		return apperrors.NewOutOfRange("work_hours_end", domain.MinWorkHour, domain.MaxWorkHour)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settings.WorkHoursEnd = hour
	return nil
}

// InsideWorkHoursNow evaluates the work-hours window against the clock.
func (c *Core) InsideWorkHoursNow() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings.InsideWorkHours(c.now().Hour())
}
