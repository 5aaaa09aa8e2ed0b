package domain

// SoundDescriptor is a composed voice set or notification set.
type SoundDescriptor struct {
	Name string `mapstructure:"-"`

	Voices          map[string][]string `mapstructure:"Voices"`
	Notifications   map[string][]string `mapstructure:"Notifications"`
	Variants        map[string][]string `mapstructure:"Variants"`
	Prefixes        map[string][]string `mapstructure:"Prefixes"`
	DefaultVariant  string              `mapstructure:"DefaultVariant"`
	DefaultPrefix   string              `mapstructure:"DefaultPrefix"`
	DisableVariants []string            `mapstructure:"DisableVariants"`
	DisablePrefixes []string            `mapstructure:"DisablePrefixes"`
}

// NewSoundDescriptor returns a sound set with default field values.
func NewSoundDescriptor(name string) *SoundDescriptor {
	return &SoundDescriptor{
		Name:           name,
		Voices:         map[string][]string{},
		Notifications:  map[string][]string{},
		Variants:       map[string][]string{},
		Prefixes:       map[string][]string{},
		DefaultVariant: ".aud",
	}
}

// HasVoice reports whether the set defines samples for the voice category.
func (s *SoundDescriptor) HasVoice(category string) bool {
	return len(s.Voices[category]) > 0
}

// MusicDescriptor is one music track.
type MusicDescriptor struct {
	Name      string `mapstructure:"-"`
	Title     string `mapstructure:"-"`
	Filename  string `mapstructure:"Filename"`
	Extension string `mapstructure:"Extension"`
	Hidden    bool   `mapstructure:"Hidden"`
}

// File returns the track file name with its extension.
func (m *MusicDescriptor) File() string {
	if m.Extension == "" {
		return m.Filename
	}
	return m.Filename + "." + m.Extension
}
