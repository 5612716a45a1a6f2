package cards

// GalleryItem is one photo in the flattened gallery view.
type GalleryItem struct {
	CardID string `json:"card_id"`
	Area   string `json:"area"`
	URL    string `json:"url"`
	Title  string `json:"title"`
}

// Gallery flattens the photos of every card, in card order then photo order.
func Gallery(cards []Card) []GalleryItem {
	n := 0
	for _, c := range cards {
		n += len(c.Photos)
	}
	out := make([]GalleryItem, 0, n)
	for _, c := range cards {
		for _, p := range c.Photos {
			out = append(out, GalleryItem{CardID: c.ID, Area: c.Area, URL: p.URL, Title: p.Title})
		}
	}
	return out
}
