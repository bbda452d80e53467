// Package identity generates plausible student identity facts: names,
// birth dates in a student-typical age range, and school email addresses.
package identity

import (
	"math/rand/v2"
	"time"
)

const (
	// Students are assumed to be between minAgeYears and maxAgeYears old.
	minAgeYears = 18
	maxAgeYears = 24
)

// Generator produces identity facts for fields the caller left empty.
type Generator interface {
	// GenerateName returns a plausible first and last name.
	GenerateName() (first, last string)

	// GenerateBirthDate returns a birth date within a realistic student
	// age range.
	GenerateBirthDate() time.Time
}

var firstNames = []string{
	"James", "Mary", "John", "Patricia", "Robert", "Jennifer", "Michael",
	"Linda", "David", "Elizabeth", "William", "Barbara", "Richard", "Susan",
	"Joseph", "Jessica", "Thomas", "Sarah", "Daniel", "Karen", "Matthew",
	"Emily", "Anthony", "Ashley", "Mark", "Amanda", "Steven", "Melissa",
	"Andrew", "Michelle", "Joshua", "Laura", "Kevin", "Rachel", "Brian",
	"Hannah", "Tyler", "Olivia", "Ryan", "Emma",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
	"Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez",
	"Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
	"Lee", "Perez", "Thompson", "White", "Harris", "Sanchez", "Clark",
	"Ramirez", "Lewis", "Robinson", "Walker", "Young", "Allen", "King",
	"Wright", "Scott", "Torres", "Nguyen", "Hill", "Flores",
}

type randomGenerator struct{}

// NewGenerator returns a Generator backed by the process-wide random
// source.
func NewGenerator() Generator {
	return randomGenerator{}
}

func (randomGenerator) GenerateName() (string, string) {
	return firstNames[rand.IntN(len(firstNames))], lastNames[rand.IntN(len(lastNames))]
}

func (randomGenerator) GenerateBirthDate() time.Time {
	now := time.Now()

	years := minAgeYears + rand.IntN(maxAgeYears-minAgeYears+1)
	// Random month and a day safe in every month.
	month := time.Month(1 + rand.IntN(12))
	day := 1 + rand.IntN(28)

	return time.Date(now.Year()-years, month, day, 0, 0, 0, 0, time.UTC)
}
