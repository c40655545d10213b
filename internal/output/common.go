package output

// Output formats understood by the writers registry.
const (
	FormatCSV   = "csv"
	FormatFASTA = "fasta"
	FormatJSON  = "json"
)

// CSVHeader is the canonical header row of the classification table.
// Keep this as the single source of truth; all writers should use it.
const CSVHeader = "protein_id,sequence,prediction,probability,meaning"

// CSVColumns is CSVHeader split into fields.
var CSVColumns = []string{"protein_id", "sequence", "prediction", "probability", "meaning"}
