package features

// Per-residue property scales, keyed by upper-case one-letter code.
// Every table carries the same 20 keys; CheckTables enforces it.

// gravy is the Kyte-Doolittle hydropathy index.
var gravy = map[rune]float64{
	'A': 1.8, 'R': -4.5, 'N': -3.5, 'D': -3.5, 'C': 2.5,
	'Q': -3.5, 'E': -3.5, 'G': -0.4, 'H': -3.2, 'I': 4.5,
	'L': 3.8, 'K': -3.9, 'M': 1.9, 'F': 2.8, 'P': -1.6,
	'S': -0.8, 'T': -0.7, 'W': -0.9, 'Y': -1.3, 'V': 4.2,
}

// hydrophobicity is the Eisenberg normalised consensus scale.
var hydrophobicity = map[rune]float64{
	'A': 0.62, 'R': -2.53, 'N': -0.78, 'D': -0.90, 'C': 0.29,
	'Q': -0.85, 'E': -0.74, 'G': 0.48, 'H': -0.40, 'I': 1.38,
	'L': 1.06, 'K': -1.50, 'M': 0.64, 'F': 1.19, 'P': 0.12,
	'S': -0.18, 'T': -0.05, 'W': 0.81, 'Y': 0.26, 'V': 1.08,
}

// exposed is the percentage of each residue found solvent exposed (Janin).
var exposed = map[rune]float64{
	'A': 6.6, 'R': 4.5, 'N': 6.7, 'D': 7.7, 'C': 0.9,
	'Q': 5.2, 'E': 5.7, 'G': 6.7, 'H': 2.5, 'I': 2.8,
	'L': 4.8, 'K': 10.3, 'M': 1.0, 'F': 2.4, 'P': 4.8,
	'S': 9.4, 'T': 7.0, 'W': 1.4, 'Y': 5.1, 'V': 4.5,
}

// disorder is the TOP-IDP disorder propensity.
var disorder = map[rune]float64{
	'A': 0.06, 'R': 0.180, 'N': 0.007, 'D': 0.192, 'C': 0.02,
	'Q': 0.318, 'E': 0.736, 'G': 0.166, 'H': 0.303, 'I': -0.486,
	'L': -0.326, 'K': 0.586, 'M': -0.397, 'F': -0.697, 'P': 0.987,
	'S': 0.341, 'T': 0.059, 'W': -0.884, 'Y': -0.510, 'V': -0.121,
}

// bulkiness is the Zimmerman side-chain bulkiness.
var bulkiness = map[rune]float64{
	'A': 11.50, 'R': 14.28, 'N': 12.82, 'D': 11.68, 'C': 13.46,
	'Q': 14.45, 'E': 13.57, 'G': 3.40, 'H': 13.69, 'I': 21.40,
	'L': 21.40, 'K': 15.71, 'M': 16.25, 'F': 19.80, 'P': 17.43,
	'S': 9.47, 'T': 15.77, 'W': 21.67, 'Y': 18.03, 'V': 21.57,
}

// interfacePropensity is the protein-protein interface propensity.
var interfacePropensity = map[rune]float64{
	'A': -0.17, 'R': 0.27, 'N': 0.12, 'D': -0.38, 'C': 0.43,
	'Q': -0.11, 'E': -0.13, 'G': -0.07, 'H': 0.41, 'I': 0.44,
	'L': 0.40, 'K': -0.36, 'M': 0.66, 'F': 0.82, 'P': -0.25,
	'S': -0.33, 'T': -0.18, 'W': 0.83, 'Y': 0.66, 'V': 0.27,
}

// names lists the vector components in order.
var names = [Len]string{"gravy", "hydrophobicity", "exposed", "disorder", "bulkiness", "interface"}

// tables is indexed like Vector.
var tables = [Len]map[rune]float64{gravy, hydrophobicity, exposed, disorder, bulkiness, interfacePropensity}
