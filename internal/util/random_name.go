package util

import (
	"fmt"
	"math/rand"
)

var adjectives = []string{
	"Lucky", "Bold", "Quiet", "Sly", "Patient", "Reckless", "Steady", "Cheery",
	"Gracious", "Grand", "Prime", "Swift", "Fuzzy", "Smiling", "Bluffing",
	"Stacked", "Suited", "Wild", "Cold", "Daring",
}

var animals = []string{
	"Shark", "Fox", "Otter", "Badger", "Lion", "Tiger", "Wolf", "Panda",
	"Eagle", "Owl", "Raven", "Moose", "Rhino", "Gecko", "Heron", "Lynx",
	"Walrus", "Ferret", "Bison", "Crane",
}

// GetRandomName returns a display name for players who join without one
func GetRandomName() string {
	adjective := adjectives[rand.Intn(len(adjectives))]
	animal := animals[rand.Intn(len(animals))]

	return fmt.Sprintf("%s %s", adjective, animal)
}
