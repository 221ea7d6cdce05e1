package domain

import "slices"

// InterestOptions is the fixed interest vocabulary in presentation order.
var InterestOptions = []string{
	"Artificial Intelligence", "Cybersecurity", "Robotics", "Data Science", "Web Development",
	"Blockchain Technology", "Environmental Science", "Renewable Energy", "Biotechnology", "Genetic Engineering",
	"Psychology", "Sociology", "Political Science", "International Relations", "Philosophy",
	"History", "Music Production", "Graphic Design", "Film Production", "Medicine",
	"Nursing", "Public Health", "Sports Science", "Entrepreneurship", "Marketing Analytics",
	"Financial Technology (FinTech)", "Mechanical Engineering", "Aerospace Engineering", "Game Development", "Culinary Arts",
}

// IsInterest reports whether s belongs to the interest vocabulary.
func IsInterest(s string) bool {
	return slices.Contains(InterestOptions, s)
}
