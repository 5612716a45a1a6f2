package cards

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Photo is one image belonging to a project card.
type Photo struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// Card is a project entry shown in the carousel. Photos belong to the card;
// the gallery is derived from them (see Gallery).
type Card struct {
	ID       string  `json:"id"`
	Area     string  `json:"area"`
	ImageURL string  `json:"imageUrl"`
	Photos   []Photo `json:"photos"`
	Liked    bool    `json:"liked,omitempty"`
	Likes    int     `json:"likes,omitempty"`
}

// clone returns a deep copy of cards so callers never share backing arrays
// with the store.
func clone(cards []Card) []Card {
	if cards == nil {
		return nil
	}
	out := make([]Card, len(cards))
	for i, c := range cards {
		out[i] = c
		if c.Photos != nil {
			out[i].Photos = append([]Photo(nil), c.Photos...)
		}
	}
	return out
}

// projectsResponse is the payload of GET /api/projects.
type projectsResponse struct {
	Success  bool         `json:"success"`
	Projects []projectDTO `json:"projects"`
	Error    string       `json:"error,omitempty"`
}

type projectDTO struct {
	ID           flexibleID `json:"id"`
	Area         string     `json:"area"`
	MainImageURL string     `json:"main_image_url"`
	Photos       []string   `json:"photos"`
	IsLiked      bool       `json:"is_liked,omitempty"`
	LikesCount   int        `json:"likes_count,omitempty"`
}

// toCard converts the wire shape into a Card. Photo titles are not part of
// the wire format and are derived from the area.
func (p projectDTO) toCard() Card {
	c := Card{
		ID:       string(p.ID),
		Area:     p.Area,
		ImageURL: p.MainImageURL,
		Liked:    p.IsLiked,
		Likes:    p.LikesCount,
		Photos:   make([]Photo, 0, len(p.Photos)),
	}
	for i, u := range p.Photos {
		c.Photos = append(c.Photos, Photo{URL: u, Title: fmt.Sprintf("%s, photo %d", p.Area, i+1)})
	}
	return c
}

// flexibleID accepts both string and numeric JSON ids.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*f = flexibleID(n.String())
	return nil
}
