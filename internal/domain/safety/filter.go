// Package safety implements the pre-flight content filter for chat messages.
package safety

import "strings"

// Category identifies which keyword class blocked a message.
type Category string

const (
	CategoryEmergency     Category = "emergency"
	CategoryMedicalAdvice Category = "medical_advice"
)

// Result is the outcome of classifying one message.
type Result struct {
	Blocked  bool
	Category Category
	// Reply is the canned response returned to the user when Blocked.
	Reply string
}

// Classifier decides whether a message may reach the assistant.
// The default implementation is keyword based; a model-based classifier can
// replace it without touching the orchestrator.
type Classifier interface {
	Classify(text string) Result
}

// Canned replies returned instead of contacting the assistant. These strings
// are part of the product contract and are shown to end users verbatim.
const (
	emergencyReply     = "緊急の医療状況と思われます。直ちに119番（救急）または最寄りの医療機関にご相談ください。このチャットでは緊急対応はできません。"
	medicalAdviceReply = "申し訳ございませんが、具体的な医療診断や治療法についてはお答えできません。必ず医療従事者にご相談ください。"
)

// KeywordFilter blocks messages by exact substring match against two ordered
// keyword sets. Emergency terms take precedence over advice terms. The match
// is intentionally naive: no tokenization, no normalization. False positives
// on benign mentions are an accepted trade-off.
type KeywordFilter struct {
	emergency     []string
	medicalAdvice []string
}

// NewKeywordFilter returns the filter with the production keyword sets.
func NewKeywordFilter() *KeywordFilter {
	return &KeywordFilter{
		emergency:     []string{"救急", "緊急", "意識不明", "呼吸停止", "心停止", "大量出血", "自殺", "自害"},
		medicalAdvice: []string{"診断", "治療法", "薬の処方", "手術", "病気の特定"},
	}
}

// Classify scans the message. Pure function of its input.
func (f *KeywordFilter) Classify(text string) Result {
	for _, keyword := range f.emergency {
		if strings.Contains(text, keyword) {
			return Result{Blocked: true, Category: CategoryEmergency, Reply: emergencyReply}
		}
	}
	for _, keyword := range f.medicalAdvice {
		if strings.Contains(text, keyword) {
			return Result{Blocked: true, Category: CategoryMedicalAdvice, Reply: medicalAdviceReply}
		}
	}
	return Result{}
}

var _ Classifier = (*KeywordFilter)(nil)
