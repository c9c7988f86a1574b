package domain

// Classifier wraps the pre-trained employability model. Implementations are
// deterministic pure functions over the feature vector: no persistence, no
// network. Predict returns the 0-based class index emitted by the model;
// the prediction workflow maps it to the 1-based classification schema.
type Classifier interface {
	Predict(features FeatureVector) (int, error)
}
