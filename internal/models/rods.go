package models

// DefaultRod is the rod every player starts with and can never lose.
const DefaultRod = "normal"
