package model

import (
	"fmt"
	"sort"
	"strings"
)

// ClassMetrics is the per-class slice of a classification report.
type ClassMetrics struct {
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// ClassificationReport mirrors the familiar two-class report: precision,
// recall and F1 per class plus overall accuracy.
type ClassificationReport struct {
	Negative ClassMetrics
	Positive ClassMetrics
	Accuracy float64
}

// Report computes the classification report for predictions against truth.
func Report(yTrue, yPred []int) ClassificationReport {
	var tp, tn, fp, fn int
	for i := range yTrue {
		switch {
		case yTrue[i] == 1 && yPred[i] == 1:
			tp++
		case yTrue[i] == 0 && yPred[i] == 0:
			tn++
		case yTrue[i] == 0 && yPred[i] == 1:
			fp++
		default:
			fn++
		}
	}
	report := ClassificationReport{
		Negative: classMetrics(tn, fn, fp, tn+fp),
		Positive: classMetrics(tp, fp, fn, tp+fn),
	}
	if len(yTrue) > 0 {
		report.Accuracy = float64(tp+tn) / float64(len(yTrue))
	}
	return report
}

// classMetrics computes one class's row. predicted counts the rows predicted
// as the class that were wrong, missed the rows of the class predicted as
// the other one.
func classMetrics(correct, predictedWrong, missed, support int) ClassMetrics {
	m := ClassMetrics{Support: support}
	if correct+predictedWrong > 0 {
		m.Precision = float64(correct) / float64(correct+predictedWrong)
	}
	if correct+missed > 0 {
		m.Recall = float64(correct) / float64(correct+missed)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	return m
}

// String renders the report in the two-row layout the training command logs.
func (r ClassificationReport) String() string {
	var b strings.Builder
	b.WriteString("              precision    recall  f1-score   support\n")
	fmt.Fprintf(&b, "           0      %.3f     %.3f     %.3f   %7d\n",
		r.Negative.Precision, r.Negative.Recall, r.Negative.F1, r.Negative.Support)
	fmt.Fprintf(&b, "           1      %.3f     %.3f     %.3f   %7d\n",
		r.Positive.Precision, r.Positive.Recall, r.Positive.F1, r.Positive.Support)
	fmt.Fprintf(&b, "    accuracy      %.3f", r.Accuracy)
	return b.String()
}

// Accuracy is the fraction of exact prediction matches.
func Accuracy(yTrue, yPred []int) float64 {
	if len(yTrue) == 0 {
		return 0
	}
	correct := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(yTrue))
}

// ROCAUC computes the area under the ROC curve from positive-class scores
// using the rank statistic, with tied scores sharing their average rank.
func ROCAUC(yTrue []int, scores []float64) float64 {
	n := len(yTrue)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return scores[order[a]] < scores[order[b]]
	})

	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j < n && scores[order[j]] == scores[order[i]] {
			j++
		}
		avg := float64(i+j+1) / 2 // ranks are 1-based
		for k := i; k < j; k++ {
			ranks[order[k]] = avg
		}
		i = j
	}

	var posRankSum float64
	var pos, neg float64
	for i, label := range yTrue {
		if label == 1 {
			posRankSum += ranks[i]
			pos++
		} else {
			neg++
		}
	}
	if pos == 0 || neg == 0 {
		return 0
	}
	return (posRankSum - pos*(pos+1)/2) / (pos * neg)
}
