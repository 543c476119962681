package models

import "time"

// Commit is a Bitbucket commit as returned by the upstream API
type Commit struct {
	Hash       string    `json:"hash"`
	Message    string    `json:"message"`
	Date       time.Time `json:"date"`
	AuthorRaw  string    `json:"author_raw"`
	Repository string    `json:"repository"`
	Diffstat   *Diffstat `json:"diffstat,omitempty"`
}

// FileChange is one file entry of a commit diffstat
type FileChange struct {
	Path         string `json:"path"`
	Status       string `json:"status"`
	LinesAdded   int    `json:"lines_added"`
	LinesRemoved int    `json:"lines_removed"`
}

// Diffstat summarises the files touched by a commit
type Diffstat struct {
	Files        []FileChange `json:"files"`
	LinesAdded   int          `json:"lines_added"`
	LinesRemoved int          `json:"lines_removed"`
}

// NewDiffstat builds a Diffstat and its totals from file changes
func NewDiffstat(files []FileChange) *Diffstat {
	d := &Diffstat{Files: files}
	for _, f := range files {
		d.LinesAdded += f.LinesAdded
		d.LinesRemoved += f.LinesRemoved
	}
	return d
}

// Repository is a Bitbucket repository inside a workspace
type Repository struct {
	Slug        string     `json:"slug"`
	Name        string     `json:"name"`
	FullName    string     `json:"full_name"`
	Description string     `json:"description"`
	IsPrivate   bool       `json:"is_private"`
	UpdatedOn   *time.Time `json:"updated_on"`
}
