// internal/evaluate/classification.go
package evaluate

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ClassificationOptions controls thresholding and the F-beta weight.
type ClassificationOptions struct {
	Threshold float64
	Beta      float64
}

// DefaultClassificationOptions: probabilities strictly above 0.5 are
// positive; F-beta weights recall with beta 2.
var DefaultClassificationOptions = ClassificationOptions{Threshold: 0.5, Beta: 2}

// Confusion is the 2×2 binary confusion matrix.
type Confusion struct {
	TN, FP, FN, TP int
}

// Total is the number of counted samples.
func (c Confusion) Total() int { return c.TN + c.FP + c.FN + c.TP }

// ClassificationResult is one held-out sample.
type ClassificationResult struct {
	YTrue   int
	Proba   float64
	YPred   int
	Correct bool
}

type ClassificationReport struct {
	Loss      float64
	Accuracy  float64
	Threshold float64
	Beta      float64
	Confusion Confusion
	Precision float64
	Recall    float64
	F1        float64
	FBeta     float64
	Results   []ClassificationResult
}

// Classification evaluates m as a binary classifier on (x, y).
func Classification(m Model, x *mat.Dense, y []float64, opt ClassificationOptions) (ClassificationReport, error) {
	labels := make([]int, len(y))
	for i, v := range y {
		switch v {
		case 0:
			labels[i] = 0
		case 1:
			labels[i] = 1
		default:
			return ClassificationReport{}, fmt.Errorf("%w: row %d has %v", ErrNonBinaryLabel, i, v)
		}
	}

	loss, acc, proba, err := run(m, x, y)
	if err != nil {
		return ClassificationReport{}, err
	}

	rep := ClassificationReport{
		Loss:      loss,
		Accuracy:  acc,
		Threshold: opt.Threshold,
		Beta:      opt.Beta,
		Results:   make([]ClassificationResult, len(y)),
	}
	for i, p := range proba {
		pred := 0
		if p > opt.Threshold {
			pred = 1
		}
		rep.Results[i] = ClassificationResult{YTrue: labels[i], Proba: p, YPred: pred, Correct: labels[i] == pred}
		rep.Confusion.add(labels[i], pred)
	}

	c := rep.Confusion
	rep.Precision = ratio(c.TP, c.TP+c.FP)
	rep.Recall = ratio(c.TP, c.TP+c.FN)
	rep.F1 = fbeta(rep.Precision, rep.Recall, 1)
	rep.FBeta = fbeta(rep.Precision, rep.Recall, opt.Beta)
	return rep, nil
}

func (c *Confusion) add(truth, pred int) {
	switch {
	case truth == 0 && pred == 0:
		c.TN++
	case truth == 0:
		c.FP++
	case pred == 0:
		c.FN++
	default:
		c.TP++
	}
}

// ratio is num/den with an undefined ratio scored as 0.
func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

func fbeta(precision, recall, beta float64) float64 {
	b2 := beta * beta
	den := b2*precision + recall
	if den == 0 {
		return 0
	}
	return (1 + b2) * precision * recall / den
}
