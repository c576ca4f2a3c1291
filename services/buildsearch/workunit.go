package buildsearch

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// WorkUnit is one listing page of one class to crawl.
type WorkUnit struct {
	Class string
	Page  int
}

func (u WorkUnit) String() string {
	return fmt.Sprintf("%s page %d", u.Class, u.Page)
}

// WorkUnits is the cross product of `classes` and pages 1..pages.
func WorkUnits(classes []string, pages int) []WorkUnit {
	units := make([]WorkUnit, 0, len(classes)*max(pages, 0))
	for _, class := range classes {
		for page := 1; page <= pages; page++ {
			units = append(units, WorkUnit{Class: class, Page: page})
		}
	}
	return units
}

// Shuffle permutes units in place so no single forum section gets a
// predictable burst of requests.
func Shuffle(units []WorkUnit, r *rand.Rand) {
	r.Shuffle(len(units), func(i, j int) {
		units[i], units[j] = units[j], units[i]
	})
}

// JitterDelay is mean, plus up to one mean, minus up to one mean. it
// ranges over [0, 2*mean) and averages to mean.
func JitterDelay(mean time.Duration, r *rand.Rand) time.Duration {
	delay := float64(mean)
	delay += r.Float64() * float64(mean)
	delay -= r.Float64() * float64(mean)
	if delay < 0 {
		return 0
	}
	return time.Duration(delay)
}
