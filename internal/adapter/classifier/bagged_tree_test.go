package classifier

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Lanziify/seps-web-server/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const featureNamesJSON = `[
	"general_appearance", "manner_of_speaking", "physical_condition",
	"mental_alertness", "self_confidence", "ability_to_present_ideas",
	"communication_skills", "performance_rating"
]`

func writeArtifact(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// Three stumps on performance_rating: two vote class 1 above 70, one always
// votes class 0.
func majorityArtifact() string {
	return `{
		"n_classes": 2,
		"feature_names": ` + featureNamesJSON + `,
		"trees": [
			{"nodes": [
				{"leaf": false, "feature": 7, "threshold": 70, "left": 1, "right": 2},
				{"leaf": true, "class": 0},
				{"leaf": true, "class": 1}
			]},
			{"nodes": [
				{"leaf": false, "feature": 7, "threshold": 70, "left": 1, "right": 2},
				{"leaf": true, "class": 0},
				{"leaf": true, "class": 1}
			]},
			{"nodes": [
				{"leaf": true, "class": 0}
			]}
		]
	}`
}

func TestBaggedTreeClassifier_MajorityVote(t *testing.T) {
	path := writeArtifact(t, majorityArtifact())
	c, err := NewBaggedTreeClassifier(path)
	require.NoError(t, err)

	high := domain.FeatureVector{4, 4, 3, 4, 4, 3, 4, 85}
	low := domain.FeatureVector{2, 2, 2, 2, 2, 2, 2, 50}

	got, err := c.Predict(high)
	require.NoError(t, err)
	assert.Equal(t, 1, got)

	got, err = c.Predict(low)
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}

func TestBaggedTreeClassifier_Deterministic(t *testing.T) {
	path := writeArtifact(t, majorityArtifact())
	c, err := NewBaggedTreeClassifier(path)
	require.NoError(t, err)

	features := domain.FeatureVector{4, 4, 3, 4, 4, 3, 4, 85}
	first, err := c.Predict(features)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		got, err := c.Predict(features)
		require.NoError(t, err)
		assert.Equal(t, first, got)
	}
}

func TestBaggedTreeClassifier_TieGoesToLowerClass(t *testing.T) {
	path := writeArtifact(t, `{
		"n_classes": 2,
		"feature_names": `+featureNamesJSON+`,
		"trees": [
			{"nodes": [{"leaf": true, "class": 1}]},
			{"nodes": [{"leaf": true, "class": 0}]}
		]
	}`)
	c, err := NewBaggedTreeClassifier(path)
	require.NoError(t, err)

	got, err := c.Predict(domain.FeatureVector{})
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}

func TestNewBaggedTreeClassifier_MissingFile(t *testing.T) {
	_, err := NewBaggedTreeClassifier(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestNewBaggedTreeClassifier_WrongFeatureOrder(t *testing.T) {
	path := writeArtifact(t, `{
		"n_classes": 2,
		"feature_names": [
			"manner_of_speaking", "general_appearance", "physical_condition",
			"mental_alertness", "self_confidence", "ability_to_present_ideas",
			"communication_skills", "performance_rating"
		],
		"trees": [{"nodes": [{"leaf": true, "class": 0}]}]
	}`)
	_, err := NewBaggedTreeClassifier(path)
	assert.ErrorContains(t, err, "training order")
}

func TestNewBaggedTreeClassifier_NoTrees(t *testing.T) {
	path := writeArtifact(t, `{
		"n_classes": 2,
		"feature_names": `+featureNamesJSON+`,
		"trees": []
	}`)
	_, err := NewBaggedTreeClassifier(path)
	assert.ErrorContains(t, err, "no trees")
}

func TestNewBaggedTreeClassifier_BadChildIndex(t *testing.T) {
	path := writeArtifact(t, `{
		"n_classes": 2,
		"feature_names": `+featureNamesJSON+`,
		"trees": [
			{"nodes": [
				{"leaf": false, "feature": 0, "threshold": 1, "left": 0, "right": 1},
				{"leaf": true, "class": 0}
			]}
		]
	}`)
	_, err := NewBaggedTreeClassifier(path)
	assert.ErrorContains(t, err, "child index")
}
