package service

import (
	"print_notifier/internal/config"
)

// SettingsService applies admin commands to the live settings. Every change
// is validated by the store before detectors observe it.
type SettingsService struct {
	store *config.Store
}

func NewSettingsService(store *config.Store) *SettingsService {
	return &SettingsService{store: store}
}

func (s *SettingsService) Current() config.Settings { return s.store.Get() }

// SetProgressMode selects a progress policy by mode string. An explicit
// milestone list is dropped so the mode takes effect.
func (s *SettingsService) SetProgressMode(mode string) error {
	return s.store.Update(func(c *config.Settings) {
		c.Progress.Type = mode
		c.Progress.Milestones = nil
	})
}

func (s *SettingsService) SetBedThreshold(low float64) error {
	return s.store.Update(func(c *config.Settings) { c.Bed.Low = low })
}

func (s *SettingsService) SetToolThreshold(low float64, targetTemp bool) error {
	return s.store.Update(func(c *config.Settings) {
		c.Tool0.Low = low
		c.Tool0.TargetTemp = targetTemp
	})
}

func (s *SettingsService) SetBedWarmDuration(minutes int) error {
	return s.store.Update(func(c *config.Settings) { c.Bed.TargetHoldMinutes = minutes })
}

func (s *SettingsService) SetPauseInterval(minutes int) error {
	return s.store.Update(func(c *config.Settings) { c.Console.PauseIntervalMinutes = minutes })
}

func (s *SettingsService) SetMMUInterval(minutes int) error {
	return s.store.Update(func(c *config.Settings) { c.Console.MMUIntervalMinutes = minutes })
}

func (s *SettingsService) SetSoCThreshold(high float64) error {
	return s.store.Update(func(c *config.Settings) { c.SoC.High = high })
}

// SetThermalProtection maps the thermal protection command onto the runaway settings.
func (s *SettingsService) SetThermalProtection(p ThermalParams) error {
	return s.store.Update(func(c *config.Settings) {
		c.Thermal.RunawayThreshold = p.MaxTempDiff
		c.Thermal.WarmupBedSeconds = p.BedShouldIncTemp
		c.Thermal.WarmupHotendSeconds = p.HotendShouldIncTemp
		c.Thermal.WarmupChamberSeconds = p.ChamberShouldIncTemp
		c.Thermal.MinutesFrequency = p.DelayBetweenNotif
	})
}

func (s *SettingsService) SetSound(sound string) error {
	return s.store.Update(func(c *config.Settings) { c.Push.Sound = sound })
}
