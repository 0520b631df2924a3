package audio

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2"
)

const (
	// SourceCommentDescription is the COMM frame description holding the URL.
	SourceCommentDescription = "source"
	// SourceURLDescription is the TXXX frame description holding the URL.
	SourceURLDescription = "mixfetch_source_url"
)

// ErrUnsupportedFormat is returned for files that do not carry ID3v2 tags.
var ErrUnsupportedFormat = errors.New("file format does not support id3v2 tags")

// Tagger writes source frames into MP3 files.
type Tagger struct {
	language string
}

// NewTagger returns a tagger writing comment frames in the given ISO 639-2
// language. An empty language defaults to "eng".
func NewTagger(language string) *Tagger {
	language = strings.ToLower(strings.TrimSpace(language))
	if len(language) != 3 {
		language = "eng"
	}
	return &Tagger{language: language}
}

// TagSource stores url in a COMM frame and a TXXX frame. Frames already in the
// file are kept; an earlier source frame with the same description is replaced.
func (t *Tagger) TagSource(path, url string) error {
	if !strings.EqualFold(filepath.Ext(path), ".mp3") {
		return fmt.Errorf("tag %s: %w", filepath.Base(path), ErrUnsupportedFormat)
	}
	url = strings.TrimSpace(url)
	if url == "" {
		return errors.New("tag source: url required")
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("open tags %s: %w", filepath.Base(path), err)
	}
	defer tag.Close()

	dropFrames(tag, "COMM", func(f id3v2.Framer) bool {
		cf, ok := f.(id3v2.CommentFrame)
		return ok && cf.Description == SourceCommentDescription
	})
	dropFrames(tag, "TXXX", func(f id3v2.Framer) bool {
		uf, ok := f.(id3v2.UserDefinedTextFrame)
		return ok && uf.Description == SourceURLDescription
	})

	tag.AddCommentFrame(id3v2.CommentFrame{
		Encoding:    id3v2.EncodingUTF8,
		Language:    t.language,
		Description: SourceCommentDescription,
		Text:        url,
	})
	tag.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
		Encoding:    id3v2.EncodingUTF8,
		Description: SourceURLDescription,
		Value:       url,
	})

	if err := tag.Save(); err != nil {
		return fmt.Errorf("save tags %s: %w", filepath.Base(path), err)
	}
	return nil
}

// dropFrames removes the frames under id that match, re-adding the rest.
func dropFrames(tag *id3v2.Tag, id string, match func(id3v2.Framer) bool) {
	frames := tag.GetFrames(id)
	if len(frames) == 0 {
		return
	}
	tag.DeleteFrames(id)
	for _, frame := range frames {
		if !match(frame) {
			tag.AddFrame(id, frame)
		}
	}
}
