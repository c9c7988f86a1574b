package classifier

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Lanziify/seps-web-server/internal/domain"
)

// node is one decision node in a fitted tree. Non-leaf nodes compare the
// feature at Feature against Threshold and descend left (<=) or right (>).
type node struct {
	Leaf      bool    `json:"leaf"`
	Class     int     `json:"class"`
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
}

// tree is a flat array of nodes; index 0 is the root.
type tree struct {
	Nodes []node `json:"nodes"`
}

// artifact is the JSON export of the fitted bagged-tree ensemble.
type artifact struct {
	NumClasses   int      `json:"n_classes"`
	FeatureNames []string `json:"feature_names"`
	Trees        []tree   `json:"trees"`
}

// BaggedTreeClassifier wraps the pre-trained employability ensemble. It is a
// pure function over the feature vector after load: each tree votes and the
// majority class wins, ties resolved toward the lower class index.
type BaggedTreeClassifier struct {
	model artifact
}

var _ domain.Classifier = (*BaggedTreeClassifier)(nil)

// NewBaggedTreeClassifier loads and validates the model artifact at path.
func NewBaggedTreeClassifier(path string) (*BaggedTreeClassifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact: %w", err)
	}

	var model artifact
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("failed to parse model artifact: %w", err)
	}
	if err := validate(model); err != nil {
		return nil, fmt.Errorf("invalid model artifact %s: %w", path, err)
	}

	return &BaggedTreeClassifier{model: model}, nil
}

func validate(model artifact) error {
	if model.NumClasses < 2 {
		return fmt.Errorf("expected at least 2 classes, got %d", model.NumClasses)
	}
	if len(model.FeatureNames) != domain.FeatureCount {
		return fmt.Errorf("expected %d features, got %d", domain.FeatureCount, len(model.FeatureNames))
	}
	for i, name := range model.FeatureNames {
		if name != domain.FeatureNames[i] {
			return fmt.Errorf("feature %d: artifact order %q does not match training order %q",
				i, name, domain.FeatureNames[i])
		}
	}
	if len(model.Trees) == 0 {
		return fmt.Errorf("artifact contains no trees")
	}
	for ti, t := range model.Trees {
		if len(t.Nodes) == 0 {
			return fmt.Errorf("tree %d has no nodes", ti)
		}
		for ni, n := range t.Nodes {
			if n.Leaf {
				if n.Class < 0 || n.Class >= model.NumClasses {
					return fmt.Errorf("tree %d node %d: class %d out of range", ti, ni, n.Class)
				}
				continue
			}
			if n.Feature < 0 || n.Feature >= domain.FeatureCount {
				return fmt.Errorf("tree %d node %d: feature index %d out of range", ti, ni, n.Feature)
			}
			if n.Left <= ni || n.Left >= len(t.Nodes) || n.Right <= ni || n.Right >= len(t.Nodes) {
				return fmt.Errorf("tree %d node %d: child index out of range", ti, ni)
			}
		}
	}
	return nil
}

// Predict runs the feature vector through every tree and returns the
// majority class index (0-based, as the model was trained).
func (c *BaggedTreeClassifier) Predict(features domain.FeatureVector) (int, error) {
	votes := make([]int, c.model.NumClasses)
	for ti := range c.model.Trees {
		class, err := c.model.Trees[ti].classify(features)
		if err != nil {
			return 0, fmt.Errorf("tree %d: %w", ti, err)
		}
		votes[class]++
	}

	best := 0
	for class, count := range votes {
		if count > votes[best] {
			best = class
		}
	}
	return best, nil
}

func (t *tree) classify(features domain.FeatureVector) (int, error) {
	idx := 0
	// child indices always increase, so len(Nodes) steps bound the walk
	for steps := 0; steps <= len(t.Nodes); steps++ {
		n := t.Nodes[idx]
		if n.Leaf {
			return n.Class, nil
		}
		if float64(features[n.Feature]) <= n.Threshold {
			idx = n.Left
		} else {
			idx = n.Right
		}
	}
	return 0, fmt.Errorf("no leaf reached")
}
