package facade

import (
	"math"
	"math/rand/v2"
)

// knapsackScale converts metres to integer millimetres.
const knapsackScale = 1000

// Slots is the result of dividing one face into panel columns.
type Slots struct {
	Sizes     []PanelSize
	Width     float64 // full face width
	Remainder float64 // width not covered by Sizes
}

// Offset returns the extra width given to every slot so that the slots
// tile the face. Zero slots yield zero.
func (s Slots) Offset() float64 {
	if len(s.Sizes) == 0 {
		return 0
	}
	return round3(s.Remainder / float64(len(s.Sizes)))
}

// DivideFacade fills a face of the given width with panel slots. A concave
// side loses ConcaveBuffer of usable width. The slot order is shuffled.
func DivideFacade(width float64, leftConvex, rightConvex bool, sizes SizeTable, rng *rand.Rand) Slots {
	avail := width
	if !leftConvex {
		avail -= ConcaveBuffer
	}
	if !rightConvex {
		avail -= ConcaveBuffer
	}

	counts := knapsack(sizes, avail, rng)
	var slots []PanelSize
	for _, k := range sizes.sizes() {
		for range counts[k] {
			slots = append(slots, k)
		}
	}
	rng.Shuffle(len(slots), func(i, j int) { slots[i], slots[j] = slots[j], slots[i] })

	return Slots{
		Sizes:     slots,
		Width:     width,
		Remainder: width - sizes.Width(slots),
	}
}

// knapsack solves the unbounded knapsack over sizes for the given capacity,
// maximising filled width and then the number of panels. Equal solutions
// are separated by a random size order.
func knapsack(sizes SizeTable, capacity float64, rng *rand.Rand) map[PanelSize]int {
	if capacity <= 0 || len(sizes) == 0 {
		return nil
	}
	keys := sizes.sizes()
	rng.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })

	units := make([]int, len(keys))
	g := 0
	for i, k := range keys {
		units[i] = int(math.Round(sizes[k] * knapsackScale))
		if units[i] > 0 {
			g = gcd(g, units[i])
		}
	}
	if g == 0 {
		return nil
	}
	for i := range units {
		units[i] /= g
	}
	c := int(math.Floor(capacity*knapsackScale+1e-6)) / g
	if c <= 0 {
		return nil
	}

	filled := make([]int, c+1)
	count := make([]int, c+1)
	choice := make([]int, c+1)
	for w := 1; w <= c; w++ {
		filled[w], count[w], choice[w] = filled[w-1], count[w-1], -1
		for i, u := range units {
			if u <= 0 || u > w {
				continue
			}
			f, n := filled[w-u]+u, count[w-u]+1
			if f > filled[w] || (f == filled[w] && n > count[w]) {
				filled[w], count[w], choice[w] = f, n, i
			}
		}
	}

	out := make(map[PanelSize]int)
	for w := c; w > 0; {
		i := choice[w]
		if i < 0 {
			w--
			continue
		}
		out[keys[i]]++
		w -= units[i]
	}
	return out
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
