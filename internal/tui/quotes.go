package tui

import "hash/fnv"

// A small built-in rotation; the pick is a pure function of the date so the
// quote stays fixed for the whole day.
var quotes = []string{
	"We are what we repeatedly do. Excellence, then, is not an act, but a habit. — Will Durant",
	"Small disciplines repeated with consistency every day lead to great achievements. — John Maxwell",
	"You do not rise to the level of your goals. You fall to the level of your systems. — James Clear",
	"Motivation is what gets you started. Habit is what keeps you going. — Jim Ryun",
	"The chains of habit are too weak to be felt until they are too strong to be broken. — Samuel Johnson",
	"First we make our habits, then our habits make us. — Charles C. Noble",
	"Success is the sum of small efforts, repeated day in and day out. — Robert Collier",
	"It's not what we do once in a while that shapes our lives. It's what we do consistently. — Tony Robbins",
	"A year from now you may wish you had started today. — Karen Lamb",
	"Don't break the chain. — Jerry Seinfeld",
}

// quoteOfDay picks a quote deterministically for a canonical date.
func quoteOfDay(date string) string {
	h := fnv.New32a()
	h.Write([]byte(date))
	return quotes[int(h.Sum32())%len(quotes)]
}
