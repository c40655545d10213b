// pkg/api/classification_v1.go
package api

// ClassificationV1 is the stable JSON schema for one classified protein.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type ClassificationV1 struct {
	ProteinID   string  `json:"protein_id"`
	Sequence    string  `json:"sequence"`
	Prediction  int     `json:"prediction"`  // 0 | 1
	Probability float64 `json:"probability"` // P(effector), 2 dp
	Meaning     string  `json:"meaning"`     // "predicted_effector" | "predicted_non-effector"
}

// ClassificationTableV1 wraps a run's rows with the inputs that produced them.
type ClassificationTableV1 struct {
	Source string             `json:"source"`
	Model  string             `json:"model"`
	Rows   []ClassificationV1 `json:"rows"`
}
