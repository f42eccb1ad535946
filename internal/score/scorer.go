package score

import (
	"fmt"
	"math"

	"github.com/ppiankov/phenotidy/internal/model"
)

// Scorer calculates the annotation completeness index and generates
// diagnostic signals. The index describes how complete the source
// annotations are; it never alters the tidy rows.
type Scorer struct{}

// NewScorer creates a new scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Calculate derives the completeness index from run statistics
func (s *Scorer) Calculate(stats *model.Stats) model.Score {
	var signals []model.Signal

	// 1. Classification coverage (0-50 points)
	classScore, classSignal := s.calculateClassification(stats)
	signals = append(signals, classSignal)

	// 2. Inheritance coverage (0-30 points)
	inheritScore, inheritSignal := s.calculateInheritance(stats)
	signals = append(signals, inheritSignal)

	// 3. Annotation density (0-20 points)
	densityScore, densitySignal := s.calculateDensity(stats)
	signals = append(signals, densitySignal)

	// 4. Provisional and susceptibility share (signals only, no points)
	if markerSignal := s.detectMarkerSkew(stats); markerSignal.Type != "" {
		signals = append(signals, markerSignal)
	}

	totalScore := classScore + inheritScore + densityScore

	confidence := s.determineConfidence(totalScore, stats.Entries)

	return model.Score{
		Index:      totalScore,
		Confidence: confidence,
		Signals:    signals,
	}
}

// calculateClassification scores the share of entries matching either
// structural pattern (0-50 points)
func (s *Scorer) calculateClassification(stats *model.Stats) (int, model.Signal) {
	matched := stats.LongForm + stats.ShortForm

	if stats.Entries == 0 {
		return 0, model.Signal{
			Type:        model.SignalClassification,
			Severity:    model.SeverityCritical,
			Description: "No phenotype entries found",
			Data: map[string]interface{}{
				"entries": 0,
			},
		}
	}

	ratio := float64(matched) / float64(stats.Entries)
	score := int(math.Min(ratio*50, 50))

	severity := model.SeverityInfo
	if ratio < 0.5 {
		severity = model.SeverityCritical
	} else if ratio < 0.9 {
		severity = model.SeverityWarning
	}

	return score, model.Signal{
		Type:        model.SignalClassification,
		Severity:    severity,
		Description: fmt.Sprintf("Classified %d of %d entries (%.1f%%)", matched, stats.Entries, ratio*100),
		Data: map[string]interface{}{
			"entries":   stats.Entries,
			"matched":   matched,
			"unmatched": stats.Unmatched,
			"ratio":     ratio,
			"score":     score,
			"formula":   "min(matched / entries * 50, 50)",
		},
	}
}

// calculateInheritance scores the share of classified entries carrying
// inheritance text (0-30 points). Missing inheritance is common in the
// source data and is preserved, not repaired; the score merely reports it.
func (s *Scorer) calculateInheritance(stats *model.Stats) (int, model.Signal) {
	matched := stats.LongForm + stats.ShortForm
	missing := stats.LongFormNoInherit + stats.ShortFormNoInherit

	if matched == 0 {
		return 0, model.Signal{
			Type:        model.SignalInheritanceCoverage,
			Severity:    model.SeverityWarning,
			Description: "No classified entries to evaluate",
			Data:        map[string]interface{}{"matched": 0},
		}
	}

	withInheritance := matched - missing
	ratio := float64(withInheritance) / float64(matched)
	score := int(math.Min(ratio*30, 30))

	severity := model.SeverityInfo
	if ratio < 0.25 {
		severity = model.SeverityWarning
	}

	return score, model.Signal{
		Type:        model.SignalInheritanceCoverage,
		Severity:    severity,
		Description: fmt.Sprintf("Inheritance annotated on %d of %d classified entries (%.1f%%)", withInheritance, matched, ratio*100),
		Data: map[string]interface{}{
			"matched":          matched,
			"with_inheritance": withInheritance,
			"missing":          missing,
			"ratio":            ratio,
			"score":            score,
			"formula":          "min(with_inheritance / matched * 30, 30)",
		},
	}
}

// calculateDensity scores how many records carry any annotation at all
// (0-20 points). Empty annotation fields are the common, expected case.
func (s *Scorer) calculateDensity(stats *model.Stats) (int, model.Signal) {
	if stats.Records == 0 {
		return 0, model.Signal{
			Type:        model.SignalSparseAnnotation,
			Severity:    model.SeverityCritical,
			Description: "Empty input table",
			Data:        map[string]interface{}{"records": 0},
		}
	}

	ratio := float64(stats.RecordsAnnotated) / float64(stats.Records)
	score := int(math.Min(ratio*20, 20))

	return score, model.Signal{
		Type:        model.SignalSparseAnnotation,
		Severity:    model.SeverityInfo,
		Description: fmt.Sprintf("%d of %d records carry a phenotype annotation (%.1f%%)", stats.RecordsAnnotated, stats.Records, ratio*100),
		Data: map[string]interface{}{
			"records":   stats.Records,
			"annotated": stats.RecordsAnnotated,
			"ratio":     ratio,
			"score":     score,
			"formula":   "min(annotated / records * 20, 20)",
		},
	}
}

// detectMarkerSkew flags runs where provisional or susceptibility
// phenotypes dominate the classified entries
func (s *Scorer) detectMarkerSkew(stats *model.Stats) model.Signal {
	matched := stats.LongForm + stats.ShortForm
	if matched == 0 {
		return model.Signal{}
	}

	provisionalRatio := float64(stats.Provisional) / float64(matched)
	susceptibilityRatio := float64(stats.Susceptibility) / float64(matched)

	if provisionalRatio >= 0.5 {
		return model.Signal{
			Type:        model.SignalProvisionalShare,
			Severity:    model.SeverityWarning,
			Description: fmt.Sprintf("Provisional mappings dominate: %.1f%% of classified entries", provisionalRatio*100),
			Data: map[string]interface{}{
				"provisional": stats.Provisional,
				"matched":     matched,
				"ratio":       provisionalRatio,
			},
		}
	}

	if susceptibilityRatio >= 0.5 {
		return model.Signal{
			Type:        model.SignalSusceptibilityShare,
			Severity:    model.SeverityInfo,
			Description: fmt.Sprintf("Susceptibility phenotypes dominate: %.1f%% of classified entries", susceptibilityRatio*100),
			Data: map[string]interface{}{
				"susceptibility": stats.Susceptibility,
				"matched":        matched,
				"ratio":          susceptibilityRatio,
			},
		}
	}

	return model.Signal{}
}

// determineConfidence maps the index and sample size to a confidence level
func (s *Scorer) determineConfidence(totalScore int, entries int) string {
	if entries < 10 {
		return "low"
	}

	switch {
	case totalScore >= 75:
		return "high"
	case totalScore >= 45:
		return "medium"
	default:
		return "low"
	}
}
