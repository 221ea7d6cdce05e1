package domain

import (
	"fmt"
	"strings"
)

type YearKey string

const (
	YearFreshman  YearKey = "Freshman"
	YearSophomore YearKey = "Sophomore"
	YearJunior    YearKey = "Junior"
	YearSenior    YearKey = "Senior"
)

// Years returns the class levels in curriculum order.
func Years() []YearKey {
	return []YearKey{YearFreshman, YearSophomore, YearJunior, YearSenior}
}

// ParseYearKey accepts a class level name in any case.
func ParseYearKey(s string) (YearKey, error) {
	for _, y := range Years() {
		if strings.EqualFold(string(y), strings.TrimSpace(s)) {
			return y, nil
		}
	}
	return "", fmt.Errorf("unknown year %q (want Freshman, Sophomore, Junior or Senior)", s)
}

// Step indexes the fixed onboarding sequence.
type Step int

const (
	StepWelcome Step = iota
	StepSchool
	StepMajorCheck
	StepMajorOrInterests
	StepResults
)

// LastStep is the terminal onboarding step.
const LastStep = StepResults

func (s Step) Valid() bool {
	return s >= StepWelcome && s <= LastStep
}

func (s Step) String() string {
	switch s {
	case StepWelcome:
		return "welcome"
	case StepSchool:
		return "school"
	case StepMajorCheck:
		return "major_check"
	case StepMajorOrInterests:
		return "major_or_interests"
	case StepResults:
		return "results"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// KnowsMajor records whether the student already has a major in mind.
// The zero value is KnowsMajorUnknown.
type KnowsMajor int

const (
	KnowsMajorUnknown KnowsMajor = iota
	KnowsMajorYes
	KnowsMajorNo
)

func (k KnowsMajor) String() string {
	switch k {
	case KnowsMajorYes:
		return "yes"
	case KnowsMajorNo:
		return "no"
	default:
		return "unknown"
	}
}

type ResourceType string

const (
	ResourceVideo   ResourceType = "video"
	ResourceBook    ResourceType = "book"
	ResourceWebsite ResourceType = "website"
	ResourceCourse  ResourceType = "course"
)

// ValidResourceTypes is the set of resource types the dashboard knows how to label.
var ValidResourceTypes = map[ResourceType]bool{
	ResourceVideo: true, ResourceBook: true, ResourceWebsite: true, ResourceCourse: true,
}
