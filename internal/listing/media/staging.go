// Package media manages the files a user has chosen for upload before the
// listing is submitted, and the naming rules for where they land in the blob
// store.
package media

import "strings"

// MaxStagedFiles caps the staging area. Selection past the cap keeps the
// files accepted earliest, not the newest.
const MaxStagedFiles = 10

// File is a file picked for upload, fully buffered.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

func (f File) IsImage() bool {
	return strings.HasPrefix(f.ContentType, "image/")
}

// PreviewHandle is a revocable display reference for a staged file. Release
// must be safe to call more than once; the staging area guarantees it is
// called at least once for every handle it acquires.
type PreviewHandle interface {
	URL() string
	Release()
}

type PreviewAllocator interface {
	Acquire(f File) (PreviewHandle, error)
}

type stagedEntry struct {
	file    File
	preview PreviewHandle
}

// StagingArea holds the ordered staged set and the index of the designated
// primary image. It is owned by a single publish flow and is not safe for
// concurrent use.
type StagingArea struct {
	previews PreviewAllocator
	entries  []stagedEntry
	primary  int
}

func NewStagingArea(previews PreviewAllocator) *StagingArea {
	return &StagingArea{previews: previews}
}

// Select appends the image-typed files among newFiles, truncating the
// combined set at MaxStagedFiles, and returns how many were retained.
// Selecting no valid files is a no-op. Every retained file gets a preview
// handle; a file whose preview cannot be acquired is dropped.
func (s *StagingArea) Select(newFiles []File) int {
	accepted := 0
	for _, f := range newFiles {
		if !f.IsImage() {
			continue
		}
		if len(s.entries) >= MaxStagedFiles {
			break
		}
		preview, err := s.previews.Acquire(f)
		if err != nil {
			continue
		}
		s.entries = append(s.entries, stagedEntry{file: f, preview: preview})
		accepted++
	}
	if s.primary >= len(s.entries) {
		s.primary = 0
	}
	return accepted
}

// Remove releases the entry's preview, drops it, and renormalizes the primary
// index: removing the primary itself resets it to 0, removing an earlier
// entry shifts it down, removing a later entry leaves it alone. Returns false
// for an out-of-range index.
func (s *StagingArea) Remove(index int) bool {
	if index < 0 || index >= len(s.entries) {
		return false
	}
	s.entries[index].preview.Release()
	s.entries = append(s.entries[:index], s.entries[index+1:]...)
	switch {
	case len(s.entries) == 0:
		s.primary = 0
	case index == s.primary:
		s.primary = 0
	case index < s.primary:
		s.primary--
	}
	return true
}

// SetPrimary is bounds-checked; out-of-range is a no-op.
func (s *StagingArea) SetPrimary(index int) bool {
	if index < 0 || index >= len(s.entries) {
		return false
	}
	s.primary = index
	return true
}

// Clear releases every preview and empties the area. Also the teardown path:
// callers abandoning the publish flow call Clear so no preview outlives its
// entry.
func (s *StagingArea) Clear() {
	for _, e := range s.entries {
		e.preview.Release()
	}
	s.entries = nil
	s.primary = 0
}

func (s *StagingArea) Len() int          { return len(s.entries) }
func (s *StagingArea) PrimaryIndex() int { return s.primary }

// Files returns the staged files in selection order.
func (s *StagingArea) Files() []File {
	files := make([]File, len(s.entries))
	for i, e := range s.entries {
		files[i] = e.file
	}
	return files
}

// PreviewURLs returns the preview references in the same order as Files.
func (s *StagingArea) PreviewURLs() []string {
	urls := make([]string, len(s.entries))
	for i, e := range s.entries {
		urls[i] = e.preview.URL()
	}
	return urls
}
