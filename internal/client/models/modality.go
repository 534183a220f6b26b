package models

// Modality is a translation channel metered separately for guests.
type Modality string

const (
	ModalityASL   Modality = "asl"
	ModalityText  Modality = "text"
	ModalityVoice Modality = "voice"
)

// Modalities lists every known modality.
func Modalities() []Modality {
	return []Modality{ModalityASL, ModalityText, ModalityVoice}
}

// Valid reports whether m is a known modality.
func (m Modality) Valid() bool {
	switch m {
	case ModalityASL, ModalityText, ModalityVoice:
		return true
	}
	return false
}
