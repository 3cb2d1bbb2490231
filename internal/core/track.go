package core

// Track is the metadata of the item a speaker is currently playing.
type Track struct {
	Title   string `json:"title"`
	Creator string `json:"creator,omitempty"`
	Album   string `json:"album,omitempty"`
	URI     string `json:"uri,omitempty"`
}

// HasCreator reports whether the track carries an artist.
func (t *Track) HasCreator() bool {
	return t != nil && t.Creator != ""
}
