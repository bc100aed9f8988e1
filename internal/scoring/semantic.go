package scoring

// MaxSemanticScore is the semantic component ceiling.
const MaxSemanticScore = 10.0

// Empirical rescaling bounds for cosine similarity. Cosine scores between
// embeddings of related recruiting text concentrate well above zero, so a
// naive 0-1 mapping would waste most of the 0-10 band. Values observed
// against the configured provider cluster in roughly [0.55, 0.95] for
// related candidate/job pairs; the floor and ceiling below spread that
// range across the band. Recalibrate both constants together when changing
// embedding providers.
const (
	semanticFloor = 0.3
	semanticCeil  = 0.9
)

// RescaleSemantic maps a raw cosine similarity onto the 0-10 band, linear
// between the calibration bounds and clamped outside them.
func RescaleSemantic(cosine float64) float64 {
	if cosine <= semanticFloor {
		return 0
	}
	if cosine >= semanticCeil {
		return MaxSemanticScore
	}
	return MaxSemanticScore * (cosine - semanticFloor) / (semanticCeil - semanticFloor)
}
