package animation

import "time"

// TimerConfig returns the gentle breathing pulse used around the focus countdown.
func TimerConfig() Config {
	return Config{
		PeakScale:      1.1,
		HalfPeriod:     time.Second,
		FrameInterval:  16 * time.Millisecond,
		Stiffness:      180,
		Damping:        14,
		SettleDuration: 1500 * time.Millisecond,
	}
}

// RecordConfig returns the stronger pulse used on the record button.
func RecordConfig() Config {
	config := TimerConfig()
	config.PeakScale = 1.3
	return config
}
