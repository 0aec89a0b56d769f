package entity

// FileMetadata describes an uploaded file. The content itself is never kept.
type FileMetadata struct {
	Name string
	Type string
	Size int64
}
