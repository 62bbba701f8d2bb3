package model

import "strings"

// UseCase is the shopper's stated purpose for a purchase.
// The set is open: hosts may send values not listed here.
type UseCase string

const (
	// UseCaseVideoEditing covers video editing and post-production.
	UseCaseVideoEditing UseCase = "video-editing"
	// UseCaseGaming covers PC and console gaming.
	UseCaseGaming UseCase = "gaming"
	// UseCaseWork covers office and productivity work.
	UseCaseWork UseCase = "work"
	// UseCaseStudent covers school and college needs.
	UseCaseStudent UseCase = "student"
	// UseCasePhotoEditing covers photo editing.
	UseCasePhotoEditing UseCase = "photo-editing"
	// UseCaseDevelopment covers coding and software development.
	UseCaseDevelopment UseCase = "development"
	// UseCaseContentCreation covers streaming and content creation.
	UseCaseContentCreation UseCase = "content-creation"
)

// Category is the kind of device the shopper is looking for.
type Category string

// Device categories recognized by intent extraction.
const (
	CategoryLaptops     Category = "laptops"
	CategoryDesktops    Category = "desktops"
	CategoryTVs         Category = "tvs"
	CategoryTablets     Category = "tablets"
	CategoryPhones      Category = "phones"
	CategoryCameras     Category = "cameras"
	CategoryAudio       Category = "audio"
	CategoryHomeTheater Category = "home-theater"
)

// Urgency is how soon the shopper needs the purchase.
type Urgency string

// Urgency values.
const (
	UrgencyToday    Urgency = "today"
	UrgencyTomorrow Urgency = "tomorrow"
	UrgencyThisWeek Urgency = "this-week"
	UrgencyFlexible Urgency = "flexible"
)

// Valid reports whether u is one of the known urgency values.
func (u Urgency) Valid() bool {
	switch u {
	case UrgencyToday, UrgencyTomorrow, UrgencyThisWeek, UrgencyFlexible:
		return true
	default:
		return false
	}
}

// Context is the structured shopper intent accumulated over a conversation.
// Zero values mean "unset"; a set Budget is always a positive amount.
type Context struct {
	UseCase         UseCase  `json:"useCase,omitempty" yaml:"use_case,omitempty"`
	Category        Category `json:"category,omitempty" yaml:"category,omitempty"`
	Urgency         Urgency  `json:"urgency,omitempty" yaml:"urgency,omitempty"`
	Location        string   `json:"location,omitempty" yaml:"location,omitempty"`
	ExistingDevices []string `json:"existingDevices,omitempty" yaml:"existing_devices,omitempty"`
	Budget          float64  `json:"budget,omitempty" yaml:"budget,omitempty"`
}

// HasBudget reports whether a budget has been captured.
func (c Context) HasBudget() bool {
	return c.Budget > 0
}

// HasSignal reports whether the context carries enough intent to recommend from.
func (c Context) HasSignal() bool {
	return c.HasBudget() || c.UseCase != "" || c.Category != ""
}

// IsEmpty reports whether no field is set.
func (c Context) IsEmpty() bool {
	return !c.HasSignal() && c.Urgency == "" && c.Location == "" && len(c.ExistingDevices) == 0
}

// Subject returns the use case, or the category when no use case is known.
func (c Context) Subject() string {
	if c.UseCase != "" {
		return string(c.UseCase)
	}
	return string(c.Category)
}

// Merge returns a copy of c with unset fields filled from other.
// Fields already set on c are kept.
func (c Context) Merge(other Context) Context {
	merged := c.Clone()
	if !merged.HasBudget() && other.HasBudget() {
		merged.Budget = other.Budget
	}
	if merged.UseCase == "" {
		merged.UseCase = other.UseCase
	}
	if merged.Category == "" {
		merged.Category = other.Category
	}
	if merged.Urgency == "" {
		merged.Urgency = other.Urgency
	}
	if strings.TrimSpace(merged.Location) == "" {
		merged.Location = other.Location
	}
	if len(merged.ExistingDevices) == 0 && len(other.ExistingDevices) > 0 {
		merged.ExistingDevices = append([]string(nil), other.ExistingDevices...)
	}
	return merged
}

// Clone returns a deep copy of c.
func (c Context) Clone() Context {
	out := c
	if c.ExistingDevices != nil {
		out.ExistingDevices = append([]string(nil), c.ExistingDevices...)
	}
	return out
}
