package cards

import "fmt"

var sampleAreas = []string{"45 m²", "78 m²", "120 m²", "64 m²", "150 m²"}

// SampleCards returns the built-in list shown when no real data can be
// loaded. The result is identical on every call.
func SampleCards() []Card {
	out := make([]Card, len(sampleAreas))
	for i, area := range sampleAreas {
		img := fmt.Sprintf("images/project-%d.jpg", i+1)
		out[i] = Card{
			ID:       fmt.Sprintf("sample-%d", i+1),
			Area:     area,
			ImageURL: img,
			Photos:   []Photo{{URL: img, Title: fmt.Sprintf("%s, photo 1", area)}},
		}
	}
	return out
}
