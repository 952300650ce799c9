package sorttable

// ShakerSort sorts s in place with a cocktail (bidirectional bubble) sort.
// It is stable, so equal elements keep the order a previous sort gave them.
// Quadratic; meant for tables a person scrolls through, not bulk data.
func ShakerSort[T any](s []T, cmp func(a, b T) int) {
	start, end := 0, len(s)-1
	for swapped := true; swapped; {
		swapped = false
		for i := start; i < end; i++ {
			if cmp(s[i], s[i+1]) > 0 {
				s[i], s[i+1] = s[i+1], s[i]
				swapped = true
			}
		}
		end--
		if !swapped {
			break
		}
		for i := end; i > start; i-- {
			if cmp(s[i], s[i-1]) < 0 {
				s[i], s[i-1] = s[i-1], s[i]
				swapped = true
			}
		}
		start++
	}
}
