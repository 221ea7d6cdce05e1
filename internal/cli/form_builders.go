package cli

import (
	"errors"
	"strings"

	"github.com/alexanderramin/compass/internal/domain"
	"github.com/charmbracelet/huh"
)

// schoolInput returns the required school name field.
func schoolInput(value *string) *huh.Input {
	return huh.NewInput().
		Title("Which school do you attend?").
		Placeholder("Enter your school name").
		Value(value).
		Validate(validateRequired("Please enter your school name"))
}

// knowsMajorSelect asks whether the student already has a major.
func knowsMajorSelect(value *domain.KnowsMajor) *huh.Select[domain.KnowsMajor] {
	return huh.NewSelect[domain.KnowsMajor]().
		Title("Do you know your major?").
		Options(
			huh.NewOption("Yes, I know my major", domain.KnowsMajorYes),
			huh.NewOption("No, I'd like to explore options", domain.KnowsMajorNo),
		).
		Value(value)
}

// majorSelect offers the catalog majors.
func majorSelect(majors []string, value *string) *huh.Select[string] {
	return huh.NewSelect[string]().
		Title("Select Your Major").
		Description("Choose your major").
		Options(huh.NewOptions(majors...)...).
		Height(12).
		Value(value)
}

// interestsSelect offers the interest vocabulary; at least one is required.
func interestsSelect(value *[]string) *huh.MultiSelect[string] {
	return huh.NewMultiSelect[string]().
		Title("What interests you?").
		Description("Select all that spark your curiosity").
		Options(huh.NewOptions(domain.InterestOptions...)...).
		Height(12).
		Value(value).
		Validate(func(v []string) error {
			if len(v) == 0 {
				return errors.New("pick at least one interest")
			}
			return nil
		})
}

func nameInput(value *string) *huh.Input {
	return huh.NewInput().
		Title("Your Name").
		Placeholder("Enter your name").
		Value(value)
}

func funFactInput(value *string) *huh.Input {
	return huh.NewInput().
		Title("Fun Fact About You").
		Placeholder("Share something interesting!").
		Value(value)
}

func validateRequired(msg string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(msg)
		}
		return nil
	}
}
