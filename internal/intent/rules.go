package intent

import (
	"strings"

	"github.com/Veraticus/tech-concierge/internal/model"
)

// rule maps phrases found in a lowercased message to a value.
// A rule matches when any phrase in AnyOf is present and, if AllOf is set,
// every phrase in AllOf is present too. Rules are evaluated in order and the
// first match wins.
type rule[T ~string] struct {
	Value T
	AllOf []string
	AnyOf []string
}

func (r rule[T]) matches(text string) bool {
	for _, phrase := range r.AllOf {
		if !strings.Contains(text, phrase) {
			return false
		}
	}
	if len(r.AnyOf) == 0 {
		return len(r.AllOf) > 0
	}
	for _, phrase := range r.AnyOf {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}

// firstMatch returns the value of the first rule matching text.
func firstMatch[T ~string](rules []rule[T], text string) (T, bool) {
	for _, r := range rules {
		if r.matches(text) {
			return r.Value, true
		}
	}
	var zero T
	return zero, false
}

var urgencyRules = []rule[model.Urgency]{
	{Value: model.UrgencyToday, AnyOf: []string{"today", "asap", "urgent"}},
	{Value: model.UrgencyTomorrow, AnyOf: []string{"tomorrow"}},
	{Value: model.UrgencyThisWeek, AnyOf: []string{"week", "weekend"}},
	{Value: model.UrgencyFlexible, AnyOf: []string{"flexible", "whenever"}},
}

var useCaseRules = []rule[model.UseCase]{
	{Value: model.UseCaseVideoEditing, AllOf: []string{"video"}, AnyOf: []string{"edit", "editing"}},
	{Value: model.UseCaseGaming, AnyOf: []string{"game", "gaming"}},
	{Value: model.UseCaseWork, AnyOf: []string{"work", "office", "productivity"}},
	{Value: model.UseCaseStudent, AnyOf: []string{"student", "school", "college"}},
	{Value: model.UseCasePhotoEditing, AllOf: []string{"photo", "edit"}},
	{Value: model.UseCaseDevelopment, AnyOf: []string{"coding", "programming", "development"}},
	{Value: model.UseCaseContentCreation, AnyOf: []string{"streaming", "content creation"}},
}

var categoryRules = []rule[model.Category]{
	{Value: model.CategoryLaptops, AnyOf: []string{"laptop", "notebook"}},
	{Value: model.CategoryDesktops, AnyOf: []string{"desktop", "pc"}},
	{Value: model.CategoryTVs, AnyOf: []string{"tv", "television"}},
	{Value: model.CategoryTablets, AnyOf: []string{"tablet", "ipad"}},
	{Value: model.CategoryPhones, AnyOf: []string{"phone", "smartphone"}},
	{Value: model.CategoryCameras, AnyOf: []string{"camera"}},
	{Value: model.CategoryAudio, AnyOf: []string{"headphone", "earbuds"}},
	{Value: model.CategoryHomeTheater, AnyOf: []string{"home theater", "soundbar", "speaker"}},
}

// recommendPhrases signal that the shopper is asking to see options.
var recommendPhrases = []string{
	"show me",
	"recommend",
	"find",
	"looking for",
	"need",
	"want",
	"search",
}
