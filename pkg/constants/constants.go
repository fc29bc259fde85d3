package constants

const (
	AppName = "glowgrind"

	ConfigName   = "config"
	ConfigFormat = "yaml"
	EnvPrefix    = "GLOWGRIND"

	DefaultConfigPath = "."
)

// Submission kinds.
const (
	KindBooking  = "booking"
	KindContact  = "contact"
	KindTraining = "training"
)
