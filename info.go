package pdfgraph

// Info is the document information dictionary (PDF 1.7 §14.3.3):
// author/title metadata, mostly free-text and rarely relied on by
// downstream tooling but cheap to surface.
type Info struct {
	Title        string `pdf:"Title,optional"`
	Author       string `pdf:"Author,optional"`
	Subject      string `pdf:"Subject,optional"`
	Keywords     string `pdf:"Keywords,optional"`
	Creator      string `pdf:"Creator,optional"`
	Producer     string `pdf:"Producer,optional"`
	CreationDate string `pdf:"CreationDate,optional"`
	ModDate      string `pdf:"ModDate,optional"`
}
