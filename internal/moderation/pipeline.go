package moderation

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/thearpankumar/Instructify/internal/oracle"
)

// Stage identifiers recorded on verdicts.
const (
	StageKeyword     = "keyword"
	StageOracle      = "ai"
	StageOracleError = "ai_error"
)

// CategoryOracleError marks verdicts produced by the fail-closed path when
// the oracle is unreachable or unparseable.
const CategoryOracleError = "oracle_error"

const (
	keywordBlockConfidence = 0.9
	keywordPassConfidence  = 0.8
)

// Verdict is the pipeline's judgment on one piece of text.
type Verdict struct {
	IsSafe     bool    `json:"is_safe"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
	Category   string  `json:"category"`
	Stage      string  `json:"stage"`
}

// SafetyClassifier is the oracle capability the pipeline depends on.
type SafetyClassifier interface {
	ClassifySafety(ctx context.Context, text string) (*oracle.SafetyVerdict, error)
}

// Pipeline is the two-stage content filter applied to every chat message
// and assistant exchange. Stage one is the lexical keyword filter; stage
// two delegates to the oracle. Any oracle failure is converted into an
// unsafe verdict so the filter fails closed.
type Pipeline struct {
	classifier SafetyClassifier
}

func NewPipeline(classifier SafetyClassifier) *Pipeline {
	return &Pipeline{classifier: classifier}
}

// Filter screens text through both stages. Text is safe only when the
// keyword stage finds nothing and the oracle agrees it is safe.
func (p *Pipeline) Filter(ctx context.Context, text string) Verdict {
	if keyword, category, ok := matchKeyword(text); ok {
		return Verdict{
			IsSafe:     false,
			Confidence: keywordBlockConfidence,
			Reason:     fmt.Sprintf("Contains harmful keyword: %q (category: %s)", keyword, category),
			Category:   category,
			Stage:      StageKeyword,
		}
	}

	result, err := p.classifier.ClassifySafety(ctx, text)
	if err != nil {
		// Fail closed: an unreachable or unparseable oracle blocks the
		// message rather than letting it through unjudged.
		confidence := 0.0
		if errors.Is(err, oracle.ErrMalformed) {
			confidence = 0.5
		}
		log.Printf("moderation: oracle classification failed, blocking: %v", err)
		return Verdict{
			IsSafe:     false,
			Confidence: confidence,
			Reason:     "Content filtering failed - blocked for safety",
			Category:   CategoryOracleError,
			Stage:      StageOracleError,
		}
	}

	return Verdict{
		IsSafe:     result.IsSafe,
		Confidence: result.Confidence,
		Reason:     result.Reason,
		Category:   result.Category,
		Stage:      StageOracle,
	}
}
