package results

import "fmt"

// Meaning is the predicted class of a protein.
type Meaning int

const (
	NonEffector Meaning = iota
	Effector
)

var meaningNames = [...]string{
	NonEffector: "predicted_non-effector",
	Effector:    "predicted_effector",
}

// String returns the display form written to CSV and FASTA headers.
func (m Meaning) String() string {
	if m < NonEffector || m > Effector {
		return fmt.Sprintf("Meaning(%d)", int(m))
	}
	return meaningNames[m]
}

// Label is the integer class the classifier emits for m.
func (m Meaning) Label() int { return int(m) }

// MeaningOf converts a classifier label.
func MeaningOf(label int) (Meaning, error) {
	switch label {
	case 0:
		return NonEffector, nil
	case 1:
		return Effector, nil
	}
	return 0, fmt.Errorf("label %d is not 0 or 1", label)
}

