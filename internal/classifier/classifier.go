// Package classifier scores an engineered feature vector with a pretrained
// standardized logistic model. A loaded Model is immutable and safe for
// concurrent use.
package classifier

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
)

// FeatureVersion identifies the feature layout below. Changing order or count
// requires a new model version.
const FeatureVersion = "v1"

// Feature indexes of Vector.
const (
	FeatureKeywordMatch = iota
	FeatureSemanticSimilarity
	FeatureSkillsMatch
	FeatureExperienceMatch
	FeatureATSFormatting
	FeatureSectionCompleteness
	FeatureYears
	FeatureKeywordOverlap
	FeatureResumeLengthWords
	NumFeatures
)

// FeatureNames lists feature names in vector order.
var FeatureNames = [NumFeatures]string{
	"keyword_match",
	"semantic_similarity",
	"skills_match",
	"experience_match",
	"ats_formatting",
	"section_completeness",
	"years",
	"keyword_overlap",
	"resume_length_words",
}

// Vector is a fixed-order feature vector.
type Vector [NumFeatures]float64

//go:embed models/logistic_v1.json
var defaultModel []byte

// LoadError reports a model that failed to initialize. It is fatal at startup.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load model %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

type modelFile struct {
	Version  string    `json:"version"`
	Features []string  `json:"features"`
	Means    []float64 `json:"means"`
	Stds     []float64 `json:"stds"`
	Weights  []float64 `json:"weights"`
	Bias     float64   `json:"bias"`
}

// Model is a validated logistic model.
type Model struct {
	version string
	means   Vector
	stds    Vector
	weights Vector
	bias    float64
}

// Load reads the model at path, or the embedded default model when path is
// empty.
func Load(path string) (*Model, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return LoadBytes("embedded:logistic_v1", defaultModel)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	return LoadBytes(path, data)
}

// LoadBytes parses and validates a JSON model definition.
func LoadBytes(source string, data []byte) (*Model, error) {
	var mf modelFile
	if err := json.Unmarshal(data, &mf); err != nil {
		return nil, &LoadError{Source: source, Err: fmt.Errorf("decode: %w", err)}
	}
	m, err := fromFile(mf)
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	return m, nil
}

func fromFile(mf modelFile) (*Model, error) {
	if mf.Version != FeatureVersion {
		return nil, fmt.Errorf("model version %q does not match feature version %q", mf.Version, FeatureVersion)
	}
	if len(mf.Features) != NumFeatures || len(mf.Means) != NumFeatures || len(mf.Stds) != NumFeatures || len(mf.Weights) != NumFeatures {
		return nil, fmt.Errorf("expected %d features, got features=%d means=%d stds=%d weights=%d",
			NumFeatures, len(mf.Features), len(mf.Means), len(mf.Stds), len(mf.Weights))
	}
	m := &Model{version: mf.Version, bias: mf.Bias}
	for i := 0; i < NumFeatures; i++ {
		if mf.Features[i] != FeatureNames[i] {
			return nil, fmt.Errorf("feature %d is %q, want %q", i, mf.Features[i], FeatureNames[i])
		}
		if mf.Stds[i] <= 0 || !finite(mf.Stds[i]) {
			return nil, fmt.Errorf("feature %q has invalid std %v", FeatureNames[i], mf.Stds[i])
		}
		if !finite(mf.Means[i]) || !finite(mf.Weights[i]) {
			return nil, fmt.Errorf("feature %q has non-finite parameters", FeatureNames[i])
		}
		m.means[i] = mf.Means[i]
		m.stds[i] = mf.Stds[i]
		m.weights[i] = mf.Weights[i]
	}
	if !finite(mf.Bias) {
		return nil, errors.New("bias is not finite")
	}
	return m, nil
}

// Version returns the model's feature version.
func (m *Model) Version() string {
	return m.version
}

// Predict returns the calibrated score in [0,100].
func (m *Model) Predict(v Vector) float64 {
	logit := m.bias
	for i := 0; i < NumFeatures; i++ {
		x := v[i]
		if !finite(x) {
			x = m.means[i]
		}
		logit += m.weights[i] * (x - m.means[i]) / m.stds[i]
	}
	score := 100 / (1 + math.Exp(-logit))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
