package config

type Config struct {
	// APIURL is the base URL of the general VoiceAI backend, including
	// the /api prefix (auth, history, voice cloning, payment).
	APIURL string

	// BaseOrigin is APIURL with the /api suffix stripped. Cloned-voice
	// audio files are served from this origin.
	BaseOrigin string

	// TTSURL is the base URL of the synthesis service. Built-in-voice
	// audio files are served from this origin.
	TTSURL string

	// CallbackAddr is the loopback address the payment-return listener
	// binds to.
	CallbackAddr string

	// DataDir holds the guest usage counter and downloaded audio.
	DataDir string

	Environment string
}
