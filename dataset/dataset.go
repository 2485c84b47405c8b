/*
Package dataset provides the binarized training dataset decision-tree
models are built against. Every ordered or categorical feature of the
original data has been turned upstream into one or more binary
columns ("feature >= threshold", "feature is value"), each recorded
here as the set of rows on which the condition holds. Target classes
are recorded the same way, one row set per class value.

The dataset answers the questions model construction and serialization
ask: the best label and loss for a set of rows, the original feature
behind a binary column, the reference value a column compares against,
and the output configuration.
*/
package dataset

import (
	"fmt"

	"github.com/canopyml/canopy/bitmask"
	"github.com/canopyml/canopy/feature"
)

/*
StatisticsError represents an error computing summary statistics over
a set of rows.
*/
type StatisticsError string

/*
ErrNoStatistics is the error returned when summary statistics are
requested for an empty set of rows, for which no label or loss is
defined.
*/
const ErrNoStatistics = StatisticsError("cannot compute summary statistics for an empty set of rows")

func (se StatisticsError) Error() string {
	return string(se)
}

/*
Config holds the dataset settings the model core consults: the
regularization constant charged per leaf as complexity, and whether
serialized trees should be collapsed into N-ary form.
*/
type Config struct {
	Regularization float64
	NonBinary      bool
}

/*
Stats holds the summary statistics of a set of rows: the class index
minimizing misclassifications over the set, and the loss incurred by
predicting it, normalized by the total number of rows in the dataset.
*/
type Stats struct {
	Optimal int
	MaxLoss float64
}

type column struct {
	feature   int
	reference interface{}
	mask      *bitmask.Bitmask
}

/*
Dataset is an in-memory binarized dataset.
*/
type Dataset struct {
	config   Config
	features []feature.Feature
	columns  []column
	targets  []*bitmask.Bitmask
	count    int
}

/*
New takes a Config, the original feature metadata and the number of
rows and returns an empty Dataset to which binary columns and target
classes can be added.
*/
func New(config Config, features []feature.Feature, rows int) *Dataset {
	return &Dataset{
		config:   config,
		features: features,
		count:    rows,
	}
}

/*
AddColumn takes an original feature index, the reference value its
condition compares against (a float64 threshold for numeric features,
a string for categorical ones) and the set of rows satisfying the
condition. It appends the binary column and returns its binary feature
index, or an error if the original feature is unknown or the reference
value does not belong to its domain.
*/
func (ds *Dataset) AddColumn(featureIndex int, reference interface{}, mask *bitmask.Bitmask) (int, error) {
	if featureIndex < 0 || featureIndex >= len(ds.features) {
		return 0, fmt.Errorf("adding binary column: unknown original feature %d", featureIndex)
	}
	ok, err := ds.features[featureIndex].Valid(reference)
	if err != nil || !ok {
		return 0, fmt.Errorf("adding binary column for feature %s: invalid reference value: %v", ds.features[featureIndex].Name(), err)
	}
	ds.columns = append(ds.columns, column{featureIndex, reference, mask})
	return len(ds.columns) - 1, nil
}

/*
AddTarget takes the set of rows labeled with a class value and appends
it as a target class, returning the class index predictions refer to.
*/
func (ds *Dataset) AddTarget(mask *bitmask.Bitmask) int {
	ds.targets = append(ds.targets, mask)
	return len(ds.targets) - 1
}

/*
Config returns the dataset configuration.
*/
func (ds *Dataset) Config() Config {
	return ds.config
}

/*
Count returns the number of rows in the dataset.
*/
func (ds *Dataset) Count() int {
	return ds.count
}

/*
FeatureCount returns the number of binary columns in the dataset. It
is the offset index translation uses to tell predictions apart from
split features.
*/
func (ds *Dataset) FeatureCount() int {
	return len(ds.columns)
}

/*
OriginalFeature takes a binary feature index and returns the index of
the original feature its condition was derived from, or an error if
the binary feature is unknown.
*/
func (ds *Dataset) OriginalFeature(binaryFeature int) (int, error) {
	if binaryFeature < 0 || binaryFeature >= len(ds.columns) {
		return 0, fmt.Errorf("unknown binary feature %d", binaryFeature)
	}
	return ds.columns[binaryFeature].feature, nil
}

/*
Reference takes a binary feature index and returns the reference value
its condition compares against, or an error if the binary feature is
unknown.
*/
func (ds *Dataset) Reference(binaryFeature int) (interface{}, error) {
	if binaryFeature < 0 || binaryFeature >= len(ds.columns) {
		return nil, fmt.Errorf("unknown binary feature %d", binaryFeature)
	}
	return ds.columns[binaryFeature].reference, nil
}

/*
Kind takes an original feature index and returns the kind of its value
domain, or an error if the feature is unknown.
*/
func (ds *Dataset) Kind(featureIndex int) (feature.Kind, error) {
	if featureIndex < 0 || featureIndex >= len(ds.features) {
		return "", fmt.Errorf("unknown original feature %d", featureIndex)
	}
	return ds.features[featureIndex].Kind(), nil
}

/*
Feature takes an original feature index and returns its metadata, or
an error if the feature is unknown.
*/
func (ds *Dataset) Feature(featureIndex int) (feature.Feature, error) {
	if featureIndex < 0 || featureIndex >= len(ds.features) {
		return nil, fmt.Errorf("unknown original feature %d", featureIndex)
	}
	return ds.features[featureIndex], nil
}

/*
Column takes a binary feature index and returns the set of rows on
which its condition holds, or an error if the binary feature is
unknown.
*/
func (ds *Dataset) Column(binaryFeature int) (*bitmask.Bitmask, error) {
	if binaryFeature < 0 || binaryFeature >= len(ds.columns) {
		return nil, fmt.Errorf("unknown binary feature %d", binaryFeature)
	}
	return ds.columns[binaryFeature].mask, nil
}

/*
SummaryStatistics takes a non-empty set of rows and returns its
summary statistics: the target class with the most rows in the set,
and the loss of predicting that class for every row in the set,
normalized by the dataset row count. It returns ErrNoStatistics if the
set is empty, and an error if no target classes have been declared.
*/
func (ds *Dataset) SummaryStatistics(capture *bitmask.Bitmask) (Stats, error) {
	if capture == nil || capture.Empty() {
		return Stats{}, ErrNoStatistics
	}
	if len(ds.targets) == 0 {
		return Stats{}, fmt.Errorf("computing summary statistics: dataset has no target classes")
	}
	best, bestCount := 0, -1
	for class, mask := range ds.targets {
		c := capture.IntersectionCount(mask)
		if c > bestCount {
			best, bestCount = class, c
		}
	}
	loss := float64(capture.Count()-bestCount) / float64(ds.count)
	return Stats{Optimal: best, MaxLoss: loss}, nil
}
